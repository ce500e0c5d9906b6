package documents_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/medvault-org/medvault/documents"
	"github.com/medvault-org/medvault/synonyms"
)

var _ = Describe("Search", func() {
	var expander *synonyms.Expander

	BeforeEach(func() {
		var err error
		expander, err = synonyms.NewExpander(synonyms.Dictionary)
		Expect(err).ToNot(HaveOccurred())
	})

	ptr := func(s string) *string { return &s }
	boolPtr := func(b bool) *bool { return &b }

	doc := func(mutate func(d *documents.Document)) documents.Document {
		d := documents.Document{
			UserId:    "u1",
			FinalName: "Documento",
			Status:    documents.StatusCompleted,
		}
		mutate(&d)
		return d
	}

	Describe("Filter", func() {
		It("matches the query against name, text, type and specialty", func() {
			docs := []documents.Document{
				doc(func(d *documents.Document) { d.FinalName = "Hemograma Completo" }),
				doc(func(d *documents.Document) { d.OriginalName = "hemograma_2025.pdf" }),
				doc(func(d *documents.Document) { d.ExtractedText = "Resultado do hemograma dentro da normalidade" }),
				doc(func(d *documents.Document) { d.Type = "hemograma" }),
				doc(func(d *documents.Document) { d.FinalName = "Raio-X Torax" }),
			}

			matched := documents.Filter(docs, "Hemograma", documents.SearchFilter{}, expander)
			Expect(matched).To(HaveLen(4))
		})

		It("matches tags through synonym expansion in both directions", func() {
			tagged := func(tag string) documents.Document {
				return doc(func(d *documents.Document) {
					d.FinalName = "Receita"
					d.Tags = []string{tag}
				})
			}

			byGroupName := documents.Filter([]documents.Document{tagged("dipirona")}, "gripe", documents.SearchFilter{}, expander)
			Expect(byGroupName).To(HaveLen(1))

			byMember := documents.Filter([]documents.Document{tagged("gripe")}, "dipirona", documents.SearchFilter{}, expander)
			Expect(byMember).To(HaveLen(1))
		})

		It("matches expanded terms inside the extracted text", func() {
			docs := []documents.Document{
				doc(func(d *documents.Document) {
					d.ExtractedText = "Prescrito paracetamol a cada 8 horas"
				}),
			}

			matched := documents.Filter(docs, "gripe", documents.SearchFilter{}, expander)
			Expect(matched).To(HaveLen(1))
		})

		It("does not leak matches across synonym groups", func() {
			docs := []documents.Document{
				doc(func(d *documents.Document) { d.Tags = []string{"dipirona"} }),
			}

			matched := documents.Filter(docs, "vacina", documents.SearchFilter{}, expander)
			Expect(matched).To(BeEmpty())
		})

		It("excludes a text match that fails an active type filter", func() {
			docs := []documents.Document{
				doc(func(d *documents.Document) {
					d.FinalName = "Hemograma Completo"
					d.Type = "exame"
				}),
				doc(func(d *documents.Document) {
					d.FinalName = "Receita Hemograma"
					d.Type = "receita"
				}),
			}

			matched := documents.Filter(docs, "hemograma", documents.SearchFilter{Type: ptr("exame")}, expander)
			Expect(matched).To(HaveLen(1))
			Expect(matched[0].FinalName).To(Equal("Hemograma Completo"))
		})

		It("combines structured filters with AND", func() {
			docs := []documents.Document{
				doc(func(d *documents.Document) {
					d.Type = "exame"
					d.Specialty = "cardiologia"
					d.PatientId = ptr("p1")
				}),
				doc(func(d *documents.Document) {
					d.Type = "exame"
					d.Specialty = "pediatria"
					d.PatientId = ptr("p1")
				}),
				doc(func(d *documents.Document) {
					d.Type = "exame"
					d.Specialty = "cardiologia"
					d.PatientId = ptr("p2")
				}),
			}

			matched := documents.Filter(docs, "", documents.SearchFilter{
				Type:      ptr("exame"),
				Specialty: ptr("cardiologia"),
				PatientId: ptr("p1"),
			}, expander)
			Expect(matched).To(HaveLen(1))
			Expect(*matched[0].PatientId).To(Equal("p1"))
		})

		It("filters on the review flag", func() {
			docs := []documents.Document{
				doc(func(d *documents.Document) { d.ReviewRequired = true }),
				doc(func(d *documents.Document) { d.ReviewRequired = false }),
			}

			matched := documents.Filter(docs, "", documents.SearchFilter{ReviewRequired: boolPtr(true)}, expander)
			Expect(matched).To(HaveLen(1))
			Expect(matched[0].ReviewRequired).To(BeTrue())
		})

		It("returns all documents for an empty query with no filters", func() {
			docs := []documents.Document{
				doc(func(d *documents.Document) { d.FinalName = "A" }),
				doc(func(d *documents.Document) { d.FinalName = "B" }),
			}

			matched := documents.Filter(docs, "  ", documents.SearchFilter{}, expander)
			Expect(matched).To(HaveLen(2))
		})

		It("preserves the input order", func() {
			docs := []documents.Document{
				doc(func(d *documents.Document) { d.FinalName = "Hemograma B" }),
				doc(func(d *documents.Document) { d.FinalName = "Hemograma A" }),
				doc(func(d *documents.Document) { d.FinalName = "Hemograma C" }),
			}

			matched := documents.Filter(docs, "hemograma", documents.SearchFilter{}, expander)
			names := make([]string, 0, len(matched))
			for _, m := range matched {
				names = append(names, m.FinalName)
			}
			Expect(names).To(Equal([]string{"Hemograma B", "Hemograma A", "Hemograma C"}))
		})
	})

	Describe("GroupByPatient", func() {
		It("groups by patient in order of first appearance", func() {
			docs := []documents.Document{
				doc(func(d *documents.Document) { d.PatientId = ptr("p2") }),
				doc(func(d *documents.Document) { d.PatientId = ptr("p1") }),
				doc(func(d *documents.Document) { d.PatientId = ptr("p2") }),
			}

			groups := documents.GroupByPatient(docs)
			Expect(groups).To(HaveLen(2))
			Expect(*groups[0].PatientId).To(Equal("p2"))
			Expect(groups[0].Documents).To(HaveLen(2))
			Expect(*groups[1].PatientId).To(Equal("p1"))
			Expect(groups[1].Documents).To(HaveLen(1))
		})

		It("collects unassigned documents under a nil patient id", func() {
			docs := []documents.Document{
				doc(func(d *documents.Document) { d.PatientId = ptr("p1") }),
				doc(func(d *documents.Document) { d.PatientId = nil }),
			}

			groups := documents.GroupByPatient(docs)
			Expect(groups).To(HaveLen(2))
			Expect(groups[1].PatientId).To(BeNil())
			Expect(groups[1].Documents).To(HaveLen(1))
		})

		It("omits empty groups", func() {
			Expect(documents.GroupByPatient(nil)).To(BeEmpty())
		})
	})
})
