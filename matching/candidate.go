package matching

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfidence = errors.New("confidence must be between 0 and 100")
	ErrInvalidThreshold  = errors.New("threshold must be between 0 and 1")
)

// MatchType distinguishes whether a candidate matched on the patient's
// canonical name or on one of its aliases.
type MatchType string

const (
	MatchTypeName  MatchType = "name"
	MatchTypeAlias MatchType = "alias"
)

// Candidate is the result of matching a search name against one patient.
// A matching pass produces at most one candidate per patient: the best
// score across the patient's name and aliases wins.
type Candidate struct {
	PatientId   string    `json:"patientId"`
	MatchedName string    `json:"matchedName"`
	MatchType   MatchType `json:"matchType"`
	Confidence  int       `json:"confidence"`
}

func (c Candidate) Validate() error {
	if c.PatientId == "" {
		return errors.New("candidate patient id is missing")
	}
	if c.MatchType != MatchTypeName && c.MatchType != MatchTypeAlias {
		return fmt.Errorf("invalid match type %q", c.MatchType)
	}
	if c.Confidence < 0 || c.Confidence > 100 {
		return fmt.Errorf("%w: got %d", ErrInvalidConfidence, c.Confidence)
	}
	return nil
}

// RosterEntry is one patient of the access-filtered roster the caller
// passes to the matcher. Visibility and sharing rules are evaluated
// upstream; the matcher treats the roster as final.
type RosterEntry struct {
	Id      string
	Name    string
	Aliases []string
}
