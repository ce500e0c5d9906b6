package documents

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/medvault-org/medvault/matching"
	"github.com/medvault-org/medvault/normalize"
	"github.com/medvault-org/medvault/store"
	"github.com/medvault-org/medvault/synonyms"
)

// searchPageLimit bounds the working set for in-memory search.
const searchPageLimit = 1000

type service struct {
	repo       Repository
	expander   *synonyms.Expander
	thresholds matching.Thresholds
	logger     *zap.SugaredLogger
}

var _ Service = &service{}

func NewService(repo Repository, expander *synonyms.Expander, thresholds matching.Thresholds, logger *zap.SugaredLogger) (Service, error) {
	if err := thresholds.Validate(); err != nil {
		return nil, err
	}
	return &service{
		repo:       repo,
		expander:   expander,
		thresholds: thresholds,
		logger:     logger,
	}, nil
}

func (s *service) Get(ctx context.Context, userId string, id string) (*Document, error) {
	return s.repo.Get(ctx, userId, id)
}

func (s *service) List(ctx context.Context, userId string, pagination store.Pagination) ([]Document, error) {
	return s.repo.List(ctx, userId, pagination)
}

func (s *service) Create(ctx context.Context, document Document) (*Document, error) {
	document.Tags = SanitizeAutoTags(document.Tags)
	if document.Status == "" {
		document.Status = StatusPending
	}
	return s.repo.Create(ctx, document)
}

func (s *service) Update(ctx context.Context, userId string, id string, update Update) (*Document, error) {
	set := bson.M{}
	if update.FinalName != nil {
		set["finalName"] = *update.FinalName
	}
	if update.Type != nil {
		set["type"] = *update.Type
	}
	if update.Specialty != nil {
		set["specialty"] = *update.Specialty
	}
	if update.DocumentDate != nil {
		set["documentDate"] = *update.DocumentDate
	}
	if update.ExtractedText != nil {
		set["extractedText"] = *update.ExtractedText
	}
	if update.Tags != nil {
		set["tags"] = SanitizeAutoTags(*update.Tags)
	}
	return s.repo.Update(ctx, userId, id, bson.M{"$set": set})
}

func (s *service) Delete(ctx context.Context, userId string, id string) error {
	return s.repo.Delete(ctx, userId, id)
}

func (s *service) AddManualTag(ctx context.Context, userId string, id string, tag string) (*Document, error) {
	document, err := s.repo.Get(ctx, userId, id)
	if err != nil {
		return nil, err
	}

	normalized, err := validateManualTag(document, tag)
	if err != nil {
		return nil, err
	}

	update := bson.M{"$push": bson.M{"manualTags": normalized}}
	updated, err := s.repo.Update(ctx, userId, id, update)
	if err != nil {
		return nil, err
	}
	s.logger.Debugw("added manual tag", "documentId", id, "tag", normalized)
	return updated, nil
}

func (s *service) RemoveManualTag(ctx context.Context, userId string, id string, tag string) (*Document, error) {
	document, err := s.repo.Get(ctx, userId, id)
	if err != nil {
		return nil, err
	}

	normalized := normalize.Text(tag)
	remaining := make([]string, 0, len(document.ManualTags))
	for _, existing := range document.ManualTags {
		if normalize.Text(existing) != normalized {
			remaining = append(remaining, existing)
		}
	}
	if len(remaining) == len(document.ManualTags) {
		return nil, ErrTagNotFound
	}

	return s.repo.Update(ctx, userId, id, bson.M{"$set": bson.M{"manualTags": remaining}})
}

// LinkPatient assigns a document to a patient, or clears the assignment
// when patientId is nil. A sub-warning confidence flags the document for
// review so the assignment stays visible in the review queue.
func (s *service) LinkPatient(ctx context.Context, userId string, id string, patientId *string, confidence *int) (*Document, error) {
	set := bson.M{
		"reviewRequired": confidence != nil && *confidence < s.thresholds.AcceptWithWarning,
	}
	update := bson.M{"$set": set}

	if patientId != nil {
		set["patientId"] = *patientId
	} else {
		update["$unset"] = bson.M{"patientId": ""}
	}
	if confidence != nil {
		if *confidence < 0 || *confidence > 100 {
			return nil, matching.ErrInvalidConfidence
		}
		set["matchConfidence"] = *confidence
	} else {
		if unset, ok := update["$unset"].(bson.M); ok {
			unset["matchConfidence"] = ""
		} else {
			update["$unset"] = bson.M{"matchConfidence": ""}
		}
	}

	updated, err := s.repo.Update(ctx, userId, id, update)
	if err != nil {
		return nil, err
	}
	s.logger.Infow("linked document to patient",
		"documentId", id,
		"patientId", patientId,
		"confidence", confidence,
	)
	return updated, nil
}

func (s *service) SetStatus(ctx context.Context, userId string, id string, status Status) (*Document, error) {
	switch status {
	case StatusPending, StatusExtracting, StatusClassifying, StatusMatching,
		StatusAwaitingConfirmation, StatusCompleted, StatusError:
	default:
		return nil, fmt.Errorf("invalid document status %q", status)
	}
	return s.repo.Update(ctx, userId, id, bson.M{"$set": bson.M{"status": status}})
}

// Search filters the caller's documents by free-text query and structured
// filters, then groups the hits by patient. Filtering happens in memory so
// synonym expansion and tag matching share one code path with the tests.
func (s *service) Search(ctx context.Context, userId string, query string, filter SearchFilter) ([]PatientGroup, error) {
	pagination := store.Pagination{Offset: 0, Limit: searchPageLimit}
	docs, err := s.repo.List(ctx, userId, pagination)
	if err != nil {
		return nil, fmt.Errorf("unable to list documents for search: %w", err)
	}

	matched := Filter(docs, query, filter, s.expander)
	return GroupByPatient(matched), nil
}
