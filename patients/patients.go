package patients

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/medvault-org/medvault/matching"
	"github.com/medvault-org/medvault/store"
)

var (
	ErrNotFound       = errors.New("patient not found")
	ErrDuplicate      = errors.New("patient already exists")
	ErrDuplicateAlias = errors.New("alias already exists for patient")
	ErrTooManyAliases = errors.New("patient has the maximum number of aliases")
	ErrNameRequired   = errors.New("patient name is required")
	ErrAliasRequired  = errors.New("alias must not be empty")
)

// MaxAliases is the hard cap on alternate names per patient.
const MaxAliases = 10

type Service interface {
	Get(ctx context.Context, userId string, id string) (*Patient, error)
	List(ctx context.Context, filter *Filter, pagination store.Pagination) ([]*Patient, error)
	Create(ctx context.Context, patient Patient) (*Patient, error)
	Update(ctx context.Context, userId string, id string, update Update) (*Patient, error)
	Delete(ctx context.Context, userId string, id string) error
	AddAlias(ctx context.Context, userId string, id string, alias string) (*Patient, error)
	RemoveAlias(ctx context.Context, userId string, id string, alias string) (*Patient, error)
	Roster(ctx context.Context, userId string) ([]matching.RosterEntry, error)
}

// Patient is a person documents can be attached to. It is owned exclusively
// by the account that created it; IsShared only records whether it is
// exposed to the owner's family group, which is enforced upstream.
type Patient struct {
	Id          *primitive.ObjectID `bson:"_id,omitempty"`
	UserId      string              `bson:"userId"`
	Name        string              `bson:"name"`
	Aliases     []string            `bson:"aliases,omitempty"`
	IsShared    bool                `bson:"isShared,omitempty"`
	CreatedTime time.Time           `bson:"createdTime,omitempty"`
	UpdatedTime time.Time           `bson:"updatedTime,omitempty"`
}

// RosterEntry converts the patient to the shape the matcher consumes.
func (p *Patient) RosterEntry() matching.RosterEntry {
	entry := matching.RosterEntry{
		Name:    p.Name,
		Aliases: p.Aliases,
	}
	if p.Id != nil {
		entry.Id = p.Id.Hex()
	}
	return entry
}

type Filter struct {
	UserId string
	Search *string
}

type Update struct {
	Name     *string
	IsShared *bool
}
