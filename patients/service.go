package patients

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/medvault-org/medvault/matching"
	"github.com/medvault-org/medvault/normalize"
	"github.com/medvault-org/medvault/store"
)

type service struct {
	repo   Repository
	logger *zap.SugaredLogger
}

var _ Service = &service{}

func NewService(repo Repository, logger *zap.SugaredLogger) (Service, error) {
	return &service{
		repo:   repo,
		logger: logger,
	}, nil
}

func (s *service) Get(ctx context.Context, userId string, id string) (*Patient, error) {
	return s.repo.Get(ctx, userId, id)
}

func (s *service) List(ctx context.Context, filter *Filter, pagination store.Pagination) ([]*Patient, error) {
	return s.repo.List(ctx, filter, pagination)
}

func (s *service) Create(ctx context.Context, patient Patient) (*Patient, error) {
	if patient.Name == "" {
		return nil, ErrNameRequired
	}
	if err := validateAliases(patient.Aliases); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, patient)
}

func (s *service) Update(ctx context.Context, userId string, id string, update Update) (*Patient, error) {
	set := bson.M{}
	if update.Name != nil {
		if *update.Name == "" {
			return nil, ErrNameRequired
		}
		set["name"] = *update.Name
	}
	if update.IsShared != nil {
		set["isShared"] = *update.IsShared
	}
	return s.repo.Update(ctx, userId, id, bson.M{"$set": set})
}

func (s *service) Delete(ctx context.Context, userId string, id string) error {
	return s.repo.Delete(ctx, userId, id)
}

// AddAlias enforces set semantics at mutation time: comparison is on the
// normalized form, duplicates are rejected, and the list never grows past
// MaxAliases.
func (s *service) AddAlias(ctx context.Context, userId string, id string, alias string) (*Patient, error) {
	if normalize.Text(alias) == "" {
		return nil, ErrAliasRequired
	}

	patient, err := s.repo.Get(ctx, userId, id)
	if err != nil {
		return nil, err
	}
	if len(patient.Aliases) >= MaxAliases {
		return nil, ErrTooManyAliases
	}
	if containsAlias(patient.Aliases, alias) || normalize.Text(patient.Name) == normalize.Text(alias) {
		return nil, ErrDuplicateAlias
	}

	update := bson.M{"$push": bson.M{"aliases": alias}}
	updated, err := s.repo.Update(ctx, userId, id, update)
	if err != nil {
		return nil, err
	}
	s.logger.Debugw("added patient alias", "patientId", id, "alias", alias)
	return updated, nil
}

func (s *service) RemoveAlias(ctx context.Context, userId string, id string, alias string) (*Patient, error) {
	patient, err := s.repo.Get(ctx, userId, id)
	if err != nil {
		return nil, err
	}

	remaining := make([]string, 0, len(patient.Aliases))
	for _, existing := range patient.Aliases {
		if normalize.Text(existing) != normalize.Text(alias) {
			remaining = append(remaining, existing)
		}
	}
	if len(remaining) == len(patient.Aliases) {
		return patient, nil
	}

	return s.repo.Update(ctx, userId, id, bson.M{"$set": bson.M{"aliases": remaining}})
}

// Roster returns the caller's patients in the shape the matcher consumes.
// Visibility is the caller's concern: userId identifies the account whose
// patients are in scope.
func (s *service) Roster(ctx context.Context, userId string) ([]matching.RosterEntry, error) {
	pagination := store.Pagination{Offset: 0, Limit: 1000}
	patients, err := s.repo.List(ctx, &Filter{UserId: userId}, pagination)
	if err != nil {
		return nil, fmt.Errorf("unable to list patients for roster: %w", err)
	}

	roster := make([]matching.RosterEntry, 0, len(patients))
	for _, patient := range patients {
		roster = append(roster, patient.RosterEntry())
	}
	return roster, nil
}

func validateAliases(aliases []string) error {
	if len(aliases) > MaxAliases {
		return ErrTooManyAliases
	}
	seen := make(map[string]struct{}, len(aliases))
	for _, alias := range aliases {
		normalized := normalize.Text(alias)
		if normalized == "" {
			return ErrAliasRequired
		}
		if _, ok := seen[normalized]; ok {
			return ErrDuplicateAlias
		}
		seen[normalized] = struct{}{}
	}
	return nil
}

func containsAlias(aliases []string, alias string) bool {
	normalized := normalize.Text(alias)
	for _, existing := range aliases {
		if normalize.Text(existing) == normalized {
			return true
		}
	}
	return false
}
