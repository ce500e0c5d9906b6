package test

import (
	"context"
	"sync"

	"github.com/mohae/deepcopy"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/medvault-org/medvault/patients"
	"github.com/medvault-org/medvault/store"
)

// FakeRepository is an in-memory stand-in for the mongo repository, used by
// service and workflow tests. It supports the subset of update documents
// the service issues ($set and $push on aliases).
type FakeRepository struct {
	mu       sync.Mutex
	patients map[string]patients.Patient
}

var _ patients.Repository = &FakeRepository{}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{
		patients: make(map[string]patients.Patient),
	}
}

func (f *FakeRepository) Get(ctx context.Context, userId string, id string) (*patients.Patient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	patient, ok := f.patients[id]
	if !ok || patient.UserId != userId {
		return nil, patients.ErrNotFound
	}
	copied := deepcopy.Copy(patient).(patients.Patient)
	return &copied, nil
}

func (f *FakeRepository) List(ctx context.Context, filter *patients.Filter, pagination store.Pagination) ([]*patients.Patient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	result := make([]*patients.Patient, 0)
	for _, patient := range f.patients {
		if patient.UserId != filter.UserId {
			continue
		}
		copied := deepcopy.Copy(patient).(patients.Patient)
		result = append(result, &copied)
	}
	return result, nil
}

func (f *FakeRepository) Create(ctx context.Context, patient patients.Patient) (*patients.Patient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if patient.Id == nil {
		id := primitive.NewObjectID()
		patient.Id = &id
	}
	f.patients[patient.Id.Hex()] = patient
	copied := patient
	return &copied, nil
}

func (f *FakeRepository) Update(ctx context.Context, userId string, id string, update bson.M) (*patients.Patient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	patient, ok := f.patients[id]
	if !ok || patient.UserId != userId {
		return nil, patients.ErrNotFound
	}

	if set, ok := update["$set"].(bson.M); ok {
		if name, ok := set["name"].(string); ok {
			patient.Name = name
		}
		if isShared, ok := set["isShared"].(bool); ok {
			patient.IsShared = isShared
		}
		if aliases, ok := set["aliases"].([]string); ok {
			patient.Aliases = aliases
		}
	}
	if push, ok := update["$push"].(bson.M); ok {
		if alias, ok := push["aliases"].(string); ok {
			patient.Aliases = append(patient.Aliases, alias)
		}
	}

	f.patients[id] = patient
	copied := patient
	return &copied, nil
}

func (f *FakeRepository) Delete(ctx context.Context, userId string, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	patient, ok := f.patients[id]
	if !ok || patient.UserId != userId {
		return patients.ErrNotFound
	}
	delete(f.patients, id)
	return nil
}
