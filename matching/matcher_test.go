package matching_test

import (
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/medvault-org/medvault/matching"
	"github.com/medvault-org/medvault/test"
)

var _ = Describe("Matcher", func() {
	var matcher *matching.Matcher

	BeforeEach(func() {
		matcher = matching.NewMatcher(nil)
	})

	family := []matching.RosterEntry{
		{Id: "p1", Name: "Maria Silva", Aliases: []string{"Mariazinha"}},
		{Id: "p2", Name: "Mariana Souza"},
	}

	Describe("FindBestMatch", func() {
		It("rejects a threshold outside [0, 1]", func() {
			_, err := matcher.FindBestMatch("Maria", family, 1.5)
			Expect(err).To(MatchError(matching.ErrInvalidThreshold))
			_, err = matcher.FindBestMatch("Maria", family, -0.1)
			Expect(err).To(MatchError(matching.ErrInvalidThreshold))
		})

		It("returns nil for an empty search name", func() {
			Expect(matcher.FindBestMatch("", family, matching.DefaultBestMatchThreshold)).To(BeNil())
		})

		It("returns nil for a whitespace-only search name even with a zero threshold", func() {
			Expect(matcher.FindBestMatch("   ", family, 0)).To(BeNil())
		})

		It("returns nil for an empty roster", func() {
			Expect(matcher.FindBestMatch("Maria", nil, matching.DefaultBestMatchThreshold)).To(BeNil())
		})

		It("returns nil when nothing reaches the threshold", func() {
			Expect(matcher.FindBestMatch("Zzqx Unknown", family, matching.DefaultBestMatchThreshold)).To(BeNil())
		})

		It("finds an exact name with full confidence", func() {
			best, err := matcher.FindBestMatch("Maria Silva", family, matching.DefaultBestMatchThreshold)
			Expect(err).ToNot(HaveOccurred())
			Expect(best).ToNot(BeNil())
			Expect(best.PatientId).To(Equal("p1"))
			Expect(best.MatchType).To(Equal(matching.MatchTypeName))
			Expect(best.Confidence).To(Equal(100))
		})

		It("matches against aliases", func() {
			best, err := matcher.FindBestMatch("Mariazinha", family, matching.DefaultBestMatchThreshold)
			Expect(err).ToNot(HaveOccurred())
			Expect(best).ToNot(BeNil())
			Expect(best.PatientId).To(Equal("p1"))
			Expect(best.MatchedName).To(Equal("Mariazinha"))
			Expect(best.MatchType).To(Equal(matching.MatchTypeAlias))
		})

		It("ignores case and accents", func() {
			best, err := matcher.FindBestMatch("MARÍA SILVA", family, matching.DefaultBestMatchThreshold)
			Expect(err).ToNot(HaveOccurred())
			Expect(best).ToNot(BeNil())
			Expect(best.Confidence).To(Equal(100))
		})

		It("produces valid candidates", func() {
			best, err := matcher.FindBestMatch("Maria Silva", family, matching.DefaultBestMatchThreshold)
			Expect(err).ToNot(HaveOccurred())
			Expect(best.Validate()).To(Succeed())
		})
	})

	Describe("FindAllMatches", func() {
		It("rejects a confidence floor outside [0, 100]", func() {
			_, err := matcher.FindAllMatches("Maria", family, 101)
			Expect(err).To(MatchError(matching.ErrInvalidConfidence))
		})

		It("returns an empty list for empty input", func() {
			Expect(matcher.FindAllMatches("", family, matching.DefaultMinConfidence)).To(BeEmpty())
			Expect(matcher.FindAllMatches("Maria", nil, matching.DefaultMinConfidence)).To(BeEmpty())
		})

		It("returns an empty list for a whitespace-only name even with a zero floor", func() {
			Expect(matcher.FindAllMatches("   ", family, 0)).To(BeEmpty())
		})

		It("returns an empty list for an unknown name", func() {
			Expect(matcher.FindAllMatches("Zzqx Unknown", family, matching.DefaultMinConfidence)).To(BeEmpty())
		})

		It("returns at most one candidate per patient", func() {
			roster := []matching.RosterEntry{
				{Id: "p1", Name: "Maria Silva", Aliases: []string{"Maria S", "Mariazinha Silva"}},
			}
			candidates, err := matcher.FindAllMatches("Maria Silva", roster, matching.DefaultMinConfidence)
			Expect(err).ToNot(HaveOccurred())
			Expect(candidates).To(HaveLen(1))
			Expect(candidates[0].Confidence).To(Equal(100))
		})

		It("orders candidates by confidence descending", func() {
			roster := []matching.RosterEntry{
				{Id: "p1", Name: "Ana Paula Costa"},
				{Id: "p2", Name: "Ana Silva"},
			}
			candidates, err := matcher.FindAllMatches("Ana Silva", roster, 40)
			Expect(err).ToNot(HaveOccurred())
			Expect(candidates).To(HaveLen(2))
			Expect(candidates[0].PatientId).To(Equal("p2"))
			Expect(candidates[0].Confidence).To(BeNumerically(">", candidates[1].Confidence))
		})

		It("is deterministic across repeated calls", func() {
			first, err := matcher.FindAllMatches("Maria", family, matching.DefaultMinConfidence)
			Expect(err).ToNot(HaveOccurred())
			for i := 0; i < 10; i++ {
				again, err := matcher.FindAllMatches("Maria", family, matching.DefaultMinConfidence)
				Expect(err).ToNot(HaveOccurred())
				Expect(again).To(Equal(first))
			}
		})

		It("never grows the result set when the floor is raised", func() {
			roster := make([]matching.RosterEntry, 0, 20)
			for i := 0; i < 20; i++ {
				roster = append(roster, matching.RosterEntry{
					Id:   fmt.Sprintf("p%d", i),
					Name: test.Faker.Person().Name(),
				})
			}
			search := test.Faker.Person().FirstName()
			previous := len(roster) + 1
			for _, floor := range []int{0, 25, 50, 75, 90, 100} {
				candidates, err := matcher.FindAllMatches(search, roster, floor)
				Expect(err).ToNot(HaveOccurred())
				Expect(len(candidates)).To(BeNumerically("<=", previous))
				previous = len(candidates)
			}
		})
	})

	Describe("resolution scenarios", func() {
		It("classifies an unknown name as no match", func() {
			candidates, err := matcher.FindAllMatches("Zzqx Unknown", family, matching.DefaultMinConfidence)
			Expect(err).ToNot(HaveOccurred())
			Expect(candidates).To(BeEmpty())
			Expect(matching.Classify(candidates)).To(Equal(matching.ScenarioNoMatch))
		})

		It("auto-accepts an exact match", func() {
			best, err := matcher.FindBestMatch("Maria Silva", family, matching.DefaultBestMatchThreshold)
			Expect(err).ToNot(HaveOccurred())
			Expect(best).ToNot(BeNil())
			Expect(best.Confidence).To(BeNumerically(">=", matching.DefaultThresholds().AutoAccept))
		})

		It("flags a single mid-band candidate for confirmation", func() {
			roster := []matching.RosterEntry{
				{Id: "p1", Name: "Maria Silva"},
				{Id: "p2", Name: "Mariana Souza"},
			}
			candidates, err := matcher.FindAllMatches("Maria S.", roster, 65)
			Expect(err).ToNot(HaveOccurred())
			Expect(candidates).To(HaveLen(1))
			Expect(candidates[0].Confidence).To(And(
				BeNumerically(">=", 75),
				BeNumerically("<", 90),
			))
			Expect(matching.Classify(candidates)).To(Equal(matching.ScenarioLowConfidence))
		})

		It("presents multiple candidates for selection", func() {
			roster := []matching.RosterEntry{
				{Id: "p1", Name: "Ana Silva"},
				{Id: "p2", Name: "Ana Paula Costa"},
			}
			candidates, err := matcher.FindAllMatches("Ana", roster, matching.DefaultMinConfidence)
			Expect(err).ToNot(HaveOccurred())
			Expect(len(candidates)).To(BeNumerically(">=", 2))
			Expect(matching.Classify(candidates)).To(Equal(matching.ScenarioMultiple))
		})
	})
})
