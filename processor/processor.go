package processor

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/medvault-org/medvault/documents"
	"github.com/medvault-org/medvault/extraction"
	"github.com/medvault-org/medvault/matching"
	"github.com/medvault-org/medvault/patients"
)

var ErrNotAwaitingConfirmation = errors.New("document is not awaiting confirmation")

// Outcome is the result of resolving a classified document against the
// caller's patient roster.
type Outcome struct {
	Scenario   matching.Scenario    `json:"scenario"`
	Candidates []matching.Candidate `json:"candidates,omitempty"`
	Document   *documents.Document  `json:"document"`
}

// Processor drives a document through the matching stage of the pipeline.
// Extraction and classification happen upstream; the processor takes their
// output and decides whether the document can be linked automatically or
// has to wait for a human.
type Processor struct {
	documents  documents.Service
	patients   patients.Service
	matcher    *matching.Matcher
	thresholds matching.Thresholds
	logger     *zap.SugaredLogger
}

func NewProcessor(
	documentsService documents.Service,
	patientsService patients.Service,
	matcher *matching.Matcher,
	thresholds matching.Thresholds,
	logger *zap.SugaredLogger,
) (*Processor, error) {
	if err := thresholds.Validate(); err != nil {
		return nil, err
	}
	return &Processor{
		documents:  documentsService,
		patients:   patientsService,
		matcher:    matcher,
		thresholds: thresholds,
		logger:     logger,
	}, nil
}

// Resolve applies a classification result to a document and matches the
// extracted subject names against the caller's roster. An unambiguous
// high-confidence candidate is linked immediately; every other scenario
// parks the document until Confirm or Cancel is called.
func (p *Processor) Resolve(ctx context.Context, userId string, documentId string, result *extraction.ClassificationResult) (*Outcome, error) {
	document, err := p.documents.SetStatus(ctx, userId, documentId, documents.StatusMatching)
	if err != nil {
		return nil, err
	}

	document, err = p.applyClassification(ctx, userId, documentId, document, result)
	if err != nil {
		return nil, err
	}

	roster, err := p.patients.Roster(ctx, userId)
	if err != nil {
		return nil, fmt.Errorf("unable to load roster: %w", err)
	}

	candidates, err := p.collectCandidates(result.SubjectNames(), roster)
	if err != nil {
		return nil, err
	}

	scenario := p.thresholds.Classify(candidates)
	p.logger.Infow("resolved document candidates",
		"resolutionId", uuid.NewString(),
		"documentId", documentId,
		"scenario", scenario,
		"candidates", len(candidates),
	)

	if scenario == matching.ScenarioAutoAccept {
		accepted := candidates[0]
		document, err = p.link(ctx, userId, documentId, &accepted.PatientId, &accepted.Confidence)
		if err != nil {
			return nil, err
		}
		return &Outcome{Scenario: scenario, Candidates: candidates, Document: document}, nil
	}

	document, err = p.documents.SetStatus(ctx, userId, documentId, documents.StatusAwaitingConfirmation)
	if err != nil {
		return nil, err
	}
	return &Outcome{Scenario: scenario, Candidates: candidates, Document: document}, nil
}

// Confirm completes a parked document with the user's decision. A nil
// patientId is an explicit skip: the document completes unassigned and can
// be linked later.
func (p *Processor) Confirm(ctx context.Context, userId string, documentId string, patientId *string) (*documents.Document, error) {
	document, err := p.documents.Get(ctx, userId, documentId)
	if err != nil {
		return nil, err
	}
	if document.Status != documents.StatusAwaitingConfirmation {
		return nil, ErrNotAwaitingConfirmation
	}

	return p.link(ctx, userId, documentId, patientId, nil)
}

// Cancel returns a parked document to the pending state so processing can
// be retried from the start instead of losing the upload.
func (p *Processor) Cancel(ctx context.Context, userId string, documentId string) (*documents.Document, error) {
	document, err := p.documents.Get(ctx, userId, documentId)
	if err != nil {
		return nil, err
	}
	if document.Status != documents.StatusAwaitingConfirmation {
		return nil, ErrNotAwaitingConfirmation
	}

	return p.documents.SetStatus(ctx, userId, documentId, documents.StatusPending)
}

// Fail marks a document as failed so the queue surfaces it for retry.
func (p *Processor) Fail(ctx context.Context, userId string, documentId string) (*documents.Document, error) {
	return p.documents.SetStatus(ctx, userId, documentId, documents.StatusError)
}

func (p *Processor) applyClassification(ctx context.Context, userId string, documentId string, document *documents.Document, result *extraction.ClassificationResult) (*documents.Document, error) {
	if result == nil {
		return document, nil
	}

	classification := result.Classification
	update := documents.Update{
		Tags: &result.Tags,
	}
	if classification.Type != "" {
		update.Type = &classification.Type
	}
	if classification.Specialty != "" {
		update.Specialty = &classification.Specialty
	}
	if classification.Date != nil {
		update.DocumentDate = classification.Date
	}
	return p.documents.Update(ctx, userId, documentId, update)
}

// collectCandidates matches every subject name against the roster and
// merges the results, keeping the best confidence per patient. The merged
// list is ordered by confidence, ties broken by the order candidates were
// first seen.
func (p *Processor) collectCandidates(names []string, roster []matching.RosterEntry) ([]matching.Candidate, error) {
	type ranked struct {
		candidate matching.Candidate
		seen      int
	}
	best := make(map[string]ranked)
	order := 0

	for _, name := range names {
		matches, err := p.matcher.FindAllMatches(name, roster, p.thresholds.ReviewRequired)
		if err != nil {
			return nil, err
		}
		for _, candidate := range matches {
			existing, ok := best[candidate.PatientId]
			if !ok {
				best[candidate.PatientId] = ranked{candidate: candidate, seen: order}
				order++
			} else if candidate.Confidence > existing.candidate.Confidence {
				existing.candidate = candidate
				best[candidate.PatientId] = existing
			}
		}
	}

	merged := make([]ranked, 0, len(best))
	for _, r := range best {
		merged = append(merged, r)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		if merged[i].candidate.Confidence != merged[j].candidate.Confidence {
			return merged[i].candidate.Confidence > merged[j].candidate.Confidence
		}
		return merged[i].seen < merged[j].seen
	})

	candidates := make([]matching.Candidate, 0, len(merged))
	for _, r := range merged {
		candidates = append(candidates, r.candidate)
	}
	return candidates, nil
}

// link assigns the patient, renames the document and completes it.
func (p *Processor) link(ctx context.Context, userId string, documentId string, patientId *string, confidence *int) (*documents.Document, error) {
	document, err := p.documents.LinkPatient(ctx, userId, documentId, patientId, confidence)
	if err != nil {
		return nil, err
	}

	patientName := ""
	if patientId != nil {
		patient, err := p.patients.Get(ctx, userId, *patientId)
		if err != nil {
			return nil, err
		}
		patientName = patient.Name
	}

	var date *string
	if document.DocumentDate != "" {
		date = &document.DocumentDate
	}
	finalName := FinalName(date, patientName, document.Type, document.Specialty, document.OriginalName)
	document, err = p.documents.Update(ctx, userId, documentId, documents.Update{FinalName: &finalName})
	if err != nil {
		return nil, err
	}

	return p.documents.SetStatus(ctx, userId, documentId, documents.StatusCompleted)
}
