package test

import (
	"context"
	"sync"

	"github.com/mohae/deepcopy"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/medvault-org/medvault/documents"
	"github.com/medvault-org/medvault/store"
)

// FakeRepository is an in-memory stand-in for the mongo repository. It
// keeps documents in insertion order so listing is stable, and supports
// the update documents the service issues ($set, $unset, and $push on
// manualTags).
type FakeRepository struct {
	mu        sync.Mutex
	documents []documents.Document
}

var _ documents.Repository = &FakeRepository{}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{}
}

func (f *FakeRepository) Get(ctx context.Context, userId string, id string) (*documents.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	index := f.indexOf(userId, id)
	if index < 0 {
		return nil, documents.ErrNotFound
	}
	copied := deepcopy.Copy(f.documents[index]).(documents.Document)
	return &copied, nil
}

func (f *FakeRepository) List(ctx context.Context, userId string, pagination store.Pagination) ([]documents.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	result := make([]documents.Document, 0)
	for _, document := range f.documents {
		if document.UserId == userId {
			result = append(result, document)
		}
	}
	return result, nil
}

func (f *FakeRepository) Create(ctx context.Context, document documents.Document) (*documents.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if document.Id == nil {
		id := primitive.NewObjectID()
		document.Id = &id
	}
	f.documents = append(f.documents, document)
	copied := document
	return &copied, nil
}

func (f *FakeRepository) Update(ctx context.Context, userId string, id string, update bson.M) (*documents.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	index := f.indexOf(userId, id)
	if index < 0 {
		return nil, documents.ErrNotFound
	}
	document := f.documents[index]

	if set, ok := update["$set"].(bson.M); ok {
		if patientId, ok := set["patientId"].(string); ok {
			document.PatientId = &patientId
		}
		if confidence, ok := set["matchConfidence"].(int); ok {
			document.MatchConfidence = &confidence
		}
		if reviewRequired, ok := set["reviewRequired"].(bool); ok {
			document.ReviewRequired = reviewRequired
		}
		if status, ok := set["status"].(documents.Status); ok {
			document.Status = status
		}
		if manualTags, ok := set["manualTags"].([]string); ok {
			document.ManualTags = manualTags
		}
		if finalName, ok := set["finalName"].(string); ok {
			document.FinalName = finalName
		}
		if docType, ok := set["type"].(string); ok {
			document.Type = docType
		}
		if specialty, ok := set["specialty"].(string); ok {
			document.Specialty = specialty
		}
		if documentDate, ok := set["documentDate"].(string); ok {
			document.DocumentDate = documentDate
		}
		if extractedText, ok := set["extractedText"].(string); ok {
			document.ExtractedText = extractedText
		}
		if tags, ok := set["tags"].([]string); ok {
			document.Tags = tags
		}
	}
	if unset, ok := update["$unset"].(bson.M); ok {
		if _, ok := unset["patientId"]; ok {
			document.PatientId = nil
		}
		if _, ok := unset["matchConfidence"]; ok {
			document.MatchConfidence = nil
		}
	}
	if push, ok := update["$push"].(bson.M); ok {
		if tag, ok := push["manualTags"].(string); ok {
			document.ManualTags = append(document.ManualTags, tag)
		}
	}

	f.documents[index] = document
	copied := document
	return &copied, nil
}

func (f *FakeRepository) Delete(ctx context.Context, userId string, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	index := f.indexOf(userId, id)
	if index < 0 {
		return documents.ErrNotFound
	}
	f.documents = append(f.documents[:index], f.documents[index+1:]...)
	return nil
}

func (f *FakeRepository) indexOf(userId string, id string) int {
	for i, document := range f.documents {
		if document.Id != nil && document.Id.Hex() == id && document.UserId == userId {
			return i
		}
	}
	return -1
}
