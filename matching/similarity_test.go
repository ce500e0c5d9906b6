package matching_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/medvault-org/medvault/matching"
	"github.com/medvault-org/medvault/test"
)

var _ = Describe("Similarity", func() {
	It("returns 1 for identical names", func() {
		Expect(matching.Similarity("Maria Silva", "Maria Silva")).To(Equal(1.0))
	})

	It("returns 1 for names identical after normalization", func() {
		Expect(matching.Similarity("MARÍA SILVA", "maria silva")).To(Equal(1.0))
	})

	It("returns 0 when either side is empty", func() {
		Expect(matching.Similarity("", "Maria")).To(BeZero())
		Expect(matching.Similarity("Maria", "")).To(BeZero())
		Expect(matching.Similarity("", "")).To(BeZero())
	})

	It("is symmetric", func() {
		pairs := [][2]string{
			{"Maria S.", "Maria Silva"},
			{"Ana", "Ana Paula Costa"},
			{"João", "Mariana Souza"},
		}
		for i := 0; i < 20; i++ {
			pairs = append(pairs, [2]string{test.Faker.Person().Name(), test.Faker.Person().Name()})
		}
		for _, pair := range pairs {
			Expect(matching.Similarity(pair[0], pair[1])).To(Equal(matching.Similarity(pair[1], pair[0])))
		}
	})

	It("stays within [0, 1]", func() {
		for i := 0; i < 50; i++ {
			score := matching.Similarity(test.Faker.Person().Name(), test.Faker.Person().Name())
			Expect(score).To(BeNumerically(">=", 0))
			Expect(score).To(BeNumerically("<=", 1))
		}
	})

	It("scores closer names higher", func() {
		near := matching.Similarity("Maria Silva", "Maria Silvah")
		far := matching.Similarity("Maria Silva", "Zzqx Unknown")
		Expect(near).To(BeNumerically(">", far))
	})

	It("scores an abbreviated query high against its full name", func() {
		score := matching.Similarity("Maria S.", "Maria Silva")
		Expect(score).To(BeNumerically(">=", 0.75))
		Expect(score).To(BeNumerically("<", 0.90))
	})
})

var _ = Describe("ConfidenceFromScore", func() {
	It("scales and rounds to the integer percentage", func() {
		Expect(matching.ConfidenceFromScore(1)).To(Equal(100))
		Expect(matching.ConfidenceFromScore(0)).To(Equal(0))
		Expect(matching.ConfidenceFromScore(0.754)).To(Equal(75))
		Expect(matching.ConfidenceFromScore(0.755)).To(Equal(76))
	})
})

var _ = Describe("DistanceThresholdFromConfidence", func() {
	It("inverts the confidence scale", func() {
		Expect(matching.DistanceThresholdFromConfidence(75)).To(Equal(0.25))
		Expect(matching.DistanceThresholdFromConfidence(100)).To(Equal(0.0))
		Expect(matching.DistanceThresholdFromConfidence(0)).To(Equal(1.0))
	})

	It("rejects out-of-range confidence instead of clamping", func() {
		_, err := matching.DistanceThresholdFromConfidence(-1)
		Expect(err).To(MatchError(matching.ErrInvalidConfidence))
		_, err = matching.DistanceThresholdFromConfidence(101)
		Expect(err).To(MatchError(matching.ErrInvalidConfidence))
	})
})

var _ = Describe("ScoreThresholdFromConfidence", func() {
	It("returns the minimum qualifying similarity", func() {
		Expect(matching.ScoreThresholdFromConfidence(75)).To(Equal(0.75))
		Expect(matching.ScoreThresholdFromConfidence(50)).To(Equal(0.5))
	})

	It("propagates range violations", func() {
		_, err := matching.ScoreThresholdFromConfidence(200)
		Expect(err).To(MatchError(matching.ErrInvalidConfidence))
	})
})
