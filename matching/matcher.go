package matching

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/medvault-org/medvault/normalize"
)

// DefaultBestMatchThreshold is the minimum similarity FindBestMatch
// requires when the caller has no tuned value.
const DefaultBestMatchThreshold = 0.75

// DefaultMinConfidence is the confidence floor FindAllMatches applies when
// listing disambiguation candidates.
const DefaultMinConfidence = 50

type Matcher struct {
	logger *zap.SugaredLogger
}

func NewMatcher(logger *zap.SugaredLogger) *Matcher {
	return &Matcher{logger: logger}
}

type nameEntry struct {
	name      string
	patientId string
	kind      MatchType
	order     int
}

// flatten builds one searchable entry per patient name plus one per alias.
func flatten(roster []RosterEntry) []nameEntry {
	entries := make([]nameEntry, 0, len(roster))
	for i, patient := range roster {
		entries = append(entries, nameEntry{
			name:      patient.Name,
			patientId: patient.Id,
			kind:      MatchTypeName,
			order:     i,
		})
		for _, alias := range patient.Aliases {
			entries = append(entries, nameEntry{
				name:      alias,
				patientId: patient.Id,
				kind:      MatchTypeAlias,
				order:     i,
			})
		}
	}
	return entries
}

// FindBestMatch scores searchName against every name and alias in the
// roster and returns the single best candidate with similarity at or above
// threshold, or nil when nothing qualifies. A search name that normalizes
// to nothing, or an empty roster, yields nil. A threshold outside [0, 1]
// is rejected.
func (m *Matcher) FindBestMatch(searchName string, roster []RosterEntry, threshold float64) (*Candidate, error) {
	if threshold < 0 || threshold > 1 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidThreshold, threshold)
	}
	if normalize.Text(searchName) == "" || len(roster) == 0 {
		return nil, nil
	}

	var best *Candidate
	var bestScore float64
	for _, entry := range flatten(roster) {
		score := Similarity(searchName, entry.name)
		if score < threshold || score < bestScore {
			continue
		}
		if best != nil && score == bestScore {
			continue
		}
		bestScore = score
		best = &Candidate{
			PatientId:   entry.patientId,
			MatchedName: entry.name,
			MatchType:   entry.kind,
			Confidence:  ConfidenceFromScore(score),
		}
	}

	if best != nil && m.logger != nil {
		m.logger.Debugw("best name match",
			"searchName", searchName,
			"matchedName", best.MatchedName,
			"confidence", best.Confidence,
		)
	}
	return best, nil
}

// FindAllMatches returns every patient with a name or alias scoring at or
// above minConfidence, one candidate per patient (its best name or alias),
// ordered by confidence descending. Ties keep roster order, which makes
// repeated calls deterministic. A floor outside [0, 100] is rejected.
func (m *Matcher) FindAllMatches(searchName string, roster []RosterEntry, minConfidence int) ([]Candidate, error) {
	if _, err := ScoreThresholdFromConfidence(minConfidence); err != nil {
		return nil, err
	}
	if normalize.Text(searchName) == "" || len(roster) == 0 {
		return []Candidate{}, nil
	}

	type patientMatch struct {
		candidate Candidate
		order     int
	}
	byPatient := make(map[string]patientMatch)
	for _, entry := range flatten(roster) {
		confidence := ConfidenceFromScore(Similarity(searchName, entry.name))
		if confidence < minConfidence {
			continue
		}
		existing, ok := byPatient[entry.patientId]
		if ok && existing.candidate.Confidence >= confidence {
			continue
		}
		byPatient[entry.patientId] = patientMatch{
			candidate: Candidate{
				PatientId:   entry.patientId,
				MatchedName: entry.name,
				MatchType:   entry.kind,
				Confidence:  confidence,
			},
			order: entry.order,
		}
	}

	matches := make([]patientMatch, 0, len(byPatient))
	for _, match := range byPatient {
		matches = append(matches, match)
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].candidate.Confidence != matches[j].candidate.Confidence {
			return matches[i].candidate.Confidence > matches[j].candidate.Confidence
		}
		return matches[i].order < matches[j].order
	})

	candidates := make([]Candidate, len(matches))
	for i, match := range matches {
		candidates[i] = match.candidate
	}
	return candidates, nil
}
