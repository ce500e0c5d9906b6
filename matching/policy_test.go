package matching_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/medvault-org/medvault/matching"
)

func candidate(id string, confidence int) matching.Candidate {
	return matching.Candidate{
		PatientId:   id,
		MatchedName: "name",
		MatchType:   matching.MatchTypeName,
		Confidence:  confidence,
	}
}

var _ = Describe("Thresholds", func() {
	Describe("Validate", func() {
		It("accepts the defaults", func() {
			Expect(matching.DefaultThresholds().Validate()).To(Succeed())
		})

		It("rejects out-of-range values", func() {
			t := matching.Thresholds{AutoAccept: 110, AcceptWithWarning: 75, ReviewRequired: 50}
			Expect(t.Validate()).To(MatchError(matching.ErrInvalidConfidence))
		})

		It("rejects unordered thresholds", func() {
			t := matching.Thresholds{AutoAccept: 70, AcceptWithWarning: 90, ReviewRequired: 50}
			Expect(t.Validate()).ToNot(Succeed())
		})
	})

	Describe("Classify", func() {
		It("returns no match for an empty list", func() {
			Expect(matching.Classify(nil)).To(Equal(matching.ScenarioNoMatch))
			Expect(matching.Classify([]matching.Candidate{})).To(Equal(matching.ScenarioNoMatch))
		})

		It("auto-accepts a single candidate at or above 90", func() {
			Expect(matching.Classify([]matching.Candidate{candidate("p1", 90)})).To(Equal(matching.ScenarioAutoAccept))
			Expect(matching.Classify([]matching.Candidate{candidate("p1", 100)})).To(Equal(matching.ScenarioAutoAccept))
		})

		It("asks for confirmation on a single candidate in [75, 90)", func() {
			Expect(matching.Classify([]matching.Candidate{candidate("p1", 75)})).To(Equal(matching.ScenarioLowConfidence))
			Expect(matching.Classify([]matching.Candidate{candidate("p1", 89)})).To(Equal(matching.ScenarioLowConfidence))
		})

		It("treats a single candidate below the warning band as a manual choice", func() {
			Expect(matching.Classify([]matching.Candidate{candidate("p1", 74)})).To(Equal(matching.ScenarioMultiple))
			Expect(matching.Classify([]matching.Candidate{candidate("p1", 50)})).To(Equal(matching.ScenarioMultiple))
		})

		It("returns multiple for two or more candidates regardless of confidence", func() {
			lists := [][]matching.Candidate{
				{candidate("p1", 95), candidate("p2", 94)},
				{candidate("p1", 80), candidate("p2", 55)},
				{candidate("p1", 51), candidate("p2", 50), candidate("p3", 50)},
			}
			for _, list := range lists {
				Expect(matching.Classify(list)).To(Equal(matching.ScenarioMultiple))
			}
		})

		It("returns exactly one scenario for every candidate list", func() {
			scenarios := []matching.Scenario{
				matching.ScenarioNoMatch,
				matching.ScenarioLowConfidence,
				matching.ScenarioMultiple,
				matching.ScenarioAutoAccept,
			}
			for size := 0; size <= 3; size++ {
				for confidence := 0; confidence <= 100; confidence += 5 {
					list := make([]matching.Candidate, size)
					for i := range list {
						list[i] = candidate("p", confidence)
					}
					Expect(scenarios).To(ContainElement(matching.Classify(list)))
				}
			}
		})

		It("honors custom thresholds", func() {
			t := matching.Thresholds{AutoAccept: 95, AcceptWithWarning: 80, ReviewRequired: 60}
			Expect(t.Classify([]matching.Candidate{candidate("p1", 92)})).To(Equal(matching.ScenarioLowConfidence))
			Expect(t.Classify([]matching.Candidate{candidate("p1", 96)})).To(Equal(matching.ScenarioAutoAccept))
		})
	})
})

var _ = Describe("Candidate", func() {
	It("validates confidence range", func() {
		c := candidate("p1", 101)
		Expect(c.Validate()).To(MatchError(matching.ErrInvalidConfidence))
		c = candidate("p1", -1)
		Expect(c.Validate()).To(MatchError(matching.ErrInvalidConfidence))
		Expect(candidate("p1", 100).Validate()).To(Succeed())
	})

	It("requires a patient id and a known match type", func() {
		Expect(candidate("", 80).Validate()).ToNot(Succeed())
		c := candidate("p1", 80)
		c.MatchType = "guess"
		Expect(c.Validate()).ToNot(Succeed())
	})
})
