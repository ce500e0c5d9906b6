package documents

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/medvault-org/medvault/store"
)

var (
	ErrNotFound = errors.New("document not found")
)

// Status tracks a document through the processing pipeline. A document
// waiting on a human decision is parked in StatusAwaitingConfirmation;
// cancelling the decision returns it to StatusPending so the pipeline can
// retry instead of dropping it.
type Status string

const (
	StatusPending              Status = "pending"
	StatusExtracting           Status = "extracting"
	StatusClassifying          Status = "classifying"
	StatusMatching             Status = "matching"
	StatusAwaitingConfirmation Status = "awaiting_confirmation"
	StatusCompleted            Status = "completed"
	StatusError                Status = "error"
)

type Service interface {
	Get(ctx context.Context, userId string, id string) (*Document, error)
	List(ctx context.Context, userId string, pagination store.Pagination) ([]Document, error)
	Create(ctx context.Context, document Document) (*Document, error)
	Update(ctx context.Context, userId string, id string, update Update) (*Document, error)
	Delete(ctx context.Context, userId string, id string) error
	AddManualTag(ctx context.Context, userId string, id string, tag string) (*Document, error)
	RemoveManualTag(ctx context.Context, userId string, id string, tag string) (*Document, error)
	LinkPatient(ctx context.Context, userId string, id string, patientId *string, confidence *int) (*Document, error)
	SetStatus(ctx context.Context, userId string, id string, status Status) (*Document, error)
	Search(ctx context.Context, userId string, query string, filter SearchFilter) ([]PatientGroup, error)
}

// Document is the metadata record for one uploaded medical document. The
// binary itself lives in blob storage owned by a collaborator; only the
// searchable fields are kept here.
type Document struct {
	Id           *primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserId       string              `bson:"userId" json:"userId"`
	PatientId    *string             `bson:"patientId,omitempty" json:"patientId,omitempty"`
	FinalName    string              `bson:"finalName,omitempty" json:"finalName,omitempty"`
	OriginalName string              `bson:"originalName,omitempty" json:"originalName,omitempty"`
	Type         string              `bson:"type,omitempty" json:"type,omitempty"`
	Specialty    string              `bson:"specialty,omitempty" json:"specialty,omitempty"`
	DocumentDate string              `bson:"documentDate,omitempty" json:"documentDate,omitempty"`

	// ExtractedText is the OCR output the classifier worked from.
	ExtractedText string `bson:"extractedText,omitempty" json:"extractedText,omitempty"`

	// Tags are the automatically extracted tags, in extraction order.
	// ManualTags were added by the user and are managed separately.
	Tags       []string `bson:"tags,omitempty" json:"tags,omitempty"`
	ManualTags []string `bson:"manualTags,omitempty" json:"manualTags,omitempty"`

	MatchConfidence *int      `bson:"matchConfidence,omitempty" json:"matchConfidence,omitempty"`
	ReviewRequired  bool      `bson:"reviewRequired,omitempty" json:"reviewRequired,omitempty"`
	Status          Status    `bson:"status,omitempty" json:"status,omitempty"`
	CreatedTime     time.Time `bson:"createdTime,omitempty" json:"createdTime,omitempty"`
	UpdatedTime     time.Time `bson:"updatedTime,omitempty" json:"updatedTime,omitempty"`
}

// Update carries the mutable classification fields. Nil fields are left
// untouched; Tags are sanitized before they are stored.
type Update struct {
	FinalName     *string
	Type          *string
	Specialty     *string
	DocumentDate  *string
	ExtractedText *string
	Tags          *[]string
}

// AllTags returns the union of automatic and manual tags.
func (d *Document) AllTags() []string {
	all := make([]string, 0, len(d.Tags)+len(d.ManualTags))
	all = append(all, d.Tags...)
	all = append(all, d.ManualTags...)
	return all
}
