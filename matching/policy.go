package matching

import "fmt"

// Scenario is the discrete outcome of the resolution policy. It drives
// whether a document is linked automatically, presented for confirmation,
// or left for manual selection.
type Scenario string

const (
	// ScenarioNoMatch means no candidate qualified; the caller offers
	// manual selection from the full roster or an explicit skip.
	ScenarioNoMatch Scenario = "no_match"
	// ScenarioLowConfidence means exactly one candidate in the warning
	// band; the caller asks for confirmation with it pre-highlighted.
	ScenarioLowConfidence Scenario = "low_confidence"
	// ScenarioMultiple means more than one plausible candidate, or a single
	// candidate below the warning band; the caller presents a choice
	// with nothing pre-selected.
	ScenarioMultiple Scenario = "multiple"
	// ScenarioAutoAccept means a single candidate above the auto-accept
	// bar; the caller links without user interaction.
	ScenarioAutoAccept Scenario = "auto_accept"
)

// Thresholds are the product-tuned confidence cut-offs driving the
// resolution policy. The values mirror the shipped configuration and have
// no documented derivation; treat them as configuration, not ground truth.
type Thresholds struct {
	AutoAccept        int `json:"autoAccept"`
	AcceptWithWarning int `json:"acceptWithWarning"`
	ReviewRequired    int `json:"reviewRequired"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		AutoAccept:        90,
		AcceptWithWarning: 75,
		ReviewRequired:    50,
	}
}

func (t Thresholds) Validate() error {
	for _, v := range []int{t.AutoAccept, t.AcceptWithWarning, t.ReviewRequired} {
		if v < 0 || v > 100 {
			return fmt.Errorf("%w: got %d", ErrInvalidConfidence, v)
		}
	}
	if t.ReviewRequired > t.AcceptWithWarning || t.AcceptWithWarning > t.AutoAccept {
		return fmt.Errorf("thresholds must be ordered: review <= warning <= auto, got %+v", t)
	}
	return nil
}

// Classify maps an ordered candidate list to exactly one scenario. It is a
// pure function of the list; the branches are mutually exclusive and cover
// every input.
func (t Thresholds) Classify(candidates []Candidate) Scenario {
	switch {
	case len(candidates) == 0:
		return ScenarioNoMatch
	case len(candidates) == 1 && candidates[0].Confidence >= t.AutoAccept:
		return ScenarioAutoAccept
	case len(candidates) == 1 && candidates[0].Confidence >= t.AcceptWithWarning:
		return ScenarioLowConfidence
	default:
		return ScenarioMultiple
	}
}

// Classify applies the default thresholds.
func Classify(candidates []Candidate) Scenario {
	return DefaultThresholds().Classify(candidates)
}
