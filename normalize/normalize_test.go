package normalize_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/medvault-org/medvault/normalize"
	"github.com/medvault-org/medvault/test"
)

var _ = Describe("Text", func() {
	It("lower-cases input", func() {
		Expect(normalize.Text("Maria Silva")).To(Equal("maria silva"))
	})

	It("strips accents", func() {
		Expect(normalize.Text("María")).To(Equal(normalize.Text("Maria")))
		Expect(normalize.Text("coração")).To(Equal("coracao"))
		Expect(normalize.Text("congestão nasal")).To(Equal("congestao nasal"))
	})

	It("removes characters outside the allowed set", func() {
		Expect(normalize.Text("Maria S.")).To(Equal("maria s"))
		Expect(normalize.Text("anti-histamínico!")).To(Equal("anti-histaminico"))
		Expect(normalize.Text("glicose: 99mg/dl")).To(Equal("glicose 99mgdl"))
	})

	It("collapses whitespace runs and trims", func() {
		Expect(normalize.Text("  dor \t de   cabeça \n")).To(Equal("dor de cabeca"))
	})

	It("returns empty string for empty input", func() {
		Expect(normalize.Text("")).To(Equal(""))
	})

	It("returns empty string when nothing survives the filter", func() {
		Expect(normalize.Text("!@#$%")).To(Equal(""))
	})

	It("is idempotent", func() {
		samples := []string{
			"María José dos Santos",
			"  Dr.  João!  ",
			"hemoglobina glicada",
			"",
			"!@#",
		}
		for i := 0; i < 50; i++ {
			samples = append(samples, test.Faker.Person().Name())
		}
		for _, s := range samples {
			once := normalize.Text(s)
			Expect(normalize.Text(once)).To(Equal(once), "input: %q", s)
		}
	})
})

var _ = Describe("Terms", func() {
	It("normalizes every element and drops empty results", func() {
		terms := []string{"Gripe", "  ", "Dipirona!", "#!"}
		Expect(normalize.Terms(terms)).To(Equal([]string{"gripe", "dipirona"}))
	})
})
