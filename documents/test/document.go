package test

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/medvault-org/medvault/documents"
	"github.com/medvault-org/medvault/test"
)

var documentTypes = []string{"exame", "receita", "laudo", "atestado"}

var specialties = []string{"cardiologia", "pediatria", "clinica geral", "dermatologia"}

func RandomDocument() documents.Document {
	id := primitive.NewObjectID()
	tagCount := test.Faker.IntBetween(0, 4)
	tags := make([]string, 0, tagCount)
	for i := 0; i < tagCount; i++ {
		tags = append(tags, test.Faker.Lorem().Word())
	}
	return documents.Document{
		Id:            &id,
		UserId:        test.Faker.UUID().V4(),
		FinalName:     test.Faker.Lorem().Sentence(3),
		OriginalName:  test.Faker.File().FilenameWithExtension(),
		Type:          documentTypes[test.Faker.IntBetween(0, len(documentTypes)-1)],
		Specialty:     specialties[test.Faker.IntBetween(0, len(specialties)-1)],
		DocumentDate:  "2025-03-14",
		ExtractedText: test.Faker.Lorem().Paragraph(2),
		Tags:          tags,
		Status:        documents.StatusPending,
	}
}
