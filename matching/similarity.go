package matching

import (
	"fmt"
	"math"

	"github.com/agnivade/levenshtein"

	"github.com/medvault-org/medvault/normalize"
)

// partialMatchPenalty discounts scores obtained by matching a window of the
// longer string instead of the whole string, so that an abbreviated query
// ("Maria S") scores high against "Maria Silva" without tying with an
// exact match.
const partialMatchPenalty = 0.85

// Similarity scores two free-text names in [0, 1]. Both sides are
// normalized before comparison. The score is the better of a whole-string
// normalized edit distance and a penalized best-window edit distance of the
// shorter string slid across the longer one.
func Similarity(a, b string) float64 {
	na := normalize.Text(a)
	nb := normalize.Text(b)
	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 1
	}

	ra := []rune(na)
	rb := []rune(nb)
	longest := max(len(ra), len(rb))
	whole := 1 - float64(levenshtein.ComputeDistance(na, nb))/float64(longest)

	short, long := ra, rb
	if len(short) > len(long) {
		short, long = long, short
	}
	best := len(short)
	for offset := 0; offset+len(short) <= len(long); offset++ {
		window := string(long[offset : offset+len(short)])
		if d := levenshtein.ComputeDistance(string(short), window); d < best {
			best = d
		}
	}
	partial := (1 - float64(best)/float64(len(short))) * partialMatchPenalty

	return math.Max(math.Max(whole, partial), 0)
}

// ConfidenceFromScore converts a raw similarity score to the 0-100 integer
// confidence scale.
func ConfidenceFromScore(score float64) int {
	return int(math.Round(score * 100))
}

// DistanceThresholdFromConfidence converts a confidence floor to the
// equivalent internal distance threshold. The two scales run in opposite
// directions: a confidence floor of 75 corresponds to a distance threshold
// of 0.25. Out-of-range input is a caller contract violation and is
// rejected rather than clamped.
func DistanceThresholdFromConfidence(confidence int) (float64, error) {
	if confidence < 0 || confidence > 100 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidConfidence, confidence)
	}
	return 1 - float64(confidence)/100, nil
}

// ScoreThresholdFromConfidence converts a confidence floor to the minimum
// similarity score a result must reach.
func ScoreThresholdFromConfidence(confidence int) (float64, error) {
	distance, err := DistanceThresholdFromConfidence(confidence)
	if err != nil {
		return 0, err
	}
	return 1 - distance, nil
}
