package test

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/medvault-org/medvault/patients"
	"github.com/medvault-org/medvault/test"
)

func RandomPatient() patients.Patient {
	id := primitive.NewObjectID()
	aliasCount := test.Faker.IntBetween(0, 3)
	aliases := make([]string, 0, aliasCount)
	for i := 0; i < aliasCount; i++ {
		aliases = append(aliases, test.Faker.Person().Name())
	}
	return patients.Patient{
		Id:       &id,
		UserId:   test.Faker.UUID().V4(),
		Name:     test.Faker.Person().Name(),
		Aliases:  aliases,
		IsShared: test.Faker.Boolean().Bool(),
	}
}
