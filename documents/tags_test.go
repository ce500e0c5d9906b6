package documents_test

import (
	"fmt"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/medvault-org/medvault/documents"
)

var _ = Describe("SanitizeAutoTags", func() {
	It("normalizes and deduplicates preserving order", func() {
		tags := documents.SanitizeAutoTags([]string{"Glicemia", "  glicemia ", "Pressão Alta", "glicemia"})
		Expect(tags).To(Equal([]string{"glicemia", "pressao alta"}))
	})

	It("drops tags outside the length bounds", func() {
		tags := documents.SanitizeAutoTags([]string{"a", strings.Repeat("x", 51), "febre"})
		Expect(tags).To(Equal([]string{"febre"}))
	})

	It("caps the result at the automatic tag limit", func() {
		raw := make([]string, documents.MaxAutoTags+5)
		for i := range raw {
			raw[i] = fmt.Sprintf("tag%02d", i)
		}
		tags := documents.SanitizeAutoTags(raw)
		Expect(tags).To(HaveLen(documents.MaxAutoTags))
		Expect(tags[0]).To(Equal("tag00"))
	})

	It("returns an empty slice for empty input", func() {
		Expect(documents.SanitizeAutoTags(nil)).To(BeEmpty())
	})
})
