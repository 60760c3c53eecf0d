package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jask/communitydash/internal/database"
	"github.com/jask/communitydash/internal/database/repository"
)

var (
	ErrNotFound           = errors.New("community not found")
	ErrTooManyCommunities = errors.New("too many communities")
	ErrCommunityExists    = errors.New("a community with this name already exists")
	ErrNoName             = errors.New("a community must have a name")
	ErrNoDescription      = errors.New("a community must have a description")
	ErrSameName           = errors.New("same community name")
	ErrUnknownScorer      = errors.New("the scorer type does not exist")
)

// Scorer types a community can switch between.
const (
	ScorerWeighted       = "WEIGHTED"
	ScorerWeightedBinary = "WEIGHTED_BINARY"
)

// ScorerOption is one selectable scorer.
type ScorerOption struct {
	ID    string
	Label string
}

var scorerOptions = []ScorerOption{
	{ID: ScorerWeighted, Label: "Weighted"},
	{ID: ScorerWeightedBinary, Label: "Weighted Binary"},
}

// ScorerSummary is the current scorer plus everything selectable.
type ScorerSummary struct {
	Current string
	Options []ScorerOption
}

// CommunityInput is the create/update payload.
type CommunityInput struct {
	Name        string
	Description string
	UseCase     *string
}

// CommunityService enforces the community rules on top of the repositories.
type CommunityService struct {
	Communities *repository.CommunityRepo
	Limit       int
	Now         func() time.Time
}

func (s *CommunityService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return database.Now()
}

// Create adds a community to the account. Checks run in order: limit, duplicate
// name, then missing fields. Name and description are stored as sent.
func (s *CommunityService) Create(ctx context.Context, accountID string, in CommunityInput) (repository.Community, error) {
	name, description := in.Name, in.Description
	count, err := s.Communities.CountByAccount(ctx, accountID)
	if err != nil {
		return repository.Community{}, fmt.Errorf("count communities: %w", err)
	}
	if count >= s.Limit {
		return repository.Community{}, ErrTooManyCommunities
	}
	taken, err := s.Communities.NameTaken(ctx, name)
	if err != nil {
		return repository.Community{}, fmt.Errorf("check name: %w", err)
	}
	if taken {
		return repository.Community{}, ErrCommunityExists
	}
	if name == "" {
		return repository.Community{}, ErrNoName
	}
	if description == "" {
		return repository.Community{}, ErrNoDescription
	}

	now := s.now()
	c := repository.Community{
		ID:          uuid.NewString(),
		AccountID:   accountID,
		Name:        name,
		Description: description,
		UseCase:     normalizeUseCase(in.UseCase),
		ScorerType:  ScorerWeighted,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	ok, err := s.Communities.CreateWithinLimit(ctx, c, s.Limit)
	if database.IsUniqueViolation(err) {
		return repository.Community{}, ErrCommunityExists
	}
	if err != nil {
		return repository.Community{}, fmt.Errorf("insert community: %w", err)
	}
	if !ok {
		return repository.Community{}, ErrTooManyCommunities
	}
	return c, nil
}

// List returns the account's communities in creation order.
func (s *CommunityService) List(ctx context.Context, accountID string) ([]repository.Community, error) {
	list, err := s.Communities.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("list communities: %w", err)
	}
	return list, nil
}

// Update renames and redescribes a community. Keeping the stored name is rejected.
func (s *CommunityService) Update(ctx context.Context, accountID, id string, in CommunityInput) (repository.Community, error) {
	c, err := s.get(ctx, accountID, id)
	if err != nil {
		return repository.Community{}, err
	}
	name, description := in.Name, in.Description
	if name == "" {
		return repository.Community{}, ErrNoName
	}
	if description == "" {
		return repository.Community{}, ErrNoDescription
	}
	if name == c.Name {
		return repository.Community{}, ErrSameName
	}
	taken, err := s.Communities.NameTaken(ctx, name)
	if err != nil {
		return repository.Community{}, fmt.Errorf("check name: %w", err)
	}
	if taken {
		return repository.Community{}, ErrCommunityExists
	}

	c.Name = name
	c.Description = description
	if uc := normalizeUseCase(in.UseCase); uc != nil {
		c.UseCase = uc
	}
	c.UpdatedAt = s.now()
	err = s.Communities.Update(ctx, c)
	if database.IsUniqueViolation(err) {
		return repository.Community{}, ErrCommunityExists
	}
	if err != nil {
		return repository.Community{}, fmt.Errorf("update community: %w", err)
	}
	return c, nil
}

// Delete removes a community owned by the account.
func (s *CommunityService) Delete(ctx context.Context, accountID, id string) error {
	removed, err := s.Communities.Delete(ctx, accountID, id)
	if err != nil {
		return fmt.Errorf("delete community: %w", err)
	}
	if !removed {
		return ErrNotFound
	}
	return nil
}

// Scorers reports the community's scorer and the available options.
func (s *CommunityService) Scorers(ctx context.Context, accountID, id string) (ScorerSummary, error) {
	c, err := s.get(ctx, accountID, id)
	if err != nil {
		return ScorerSummary{}, err
	}
	opts := make([]ScorerOption, len(scorerOptions))
	copy(opts, scorerOptions)
	return ScorerSummary{Current: c.ScorerType, Options: opts}, nil
}

// SetScorer switches the community to scorerType.
func (s *CommunityService) SetScorer(ctx context.Context, accountID, id, scorerType string) error {
	if _, err := s.get(ctx, accountID, id); err != nil {
		return err
	}
	if !knownScorer(scorerType) {
		return ErrUnknownScorer
	}
	if err := s.Communities.SetScorerType(ctx, accountID, id, scorerType, s.now()); err != nil {
		return fmt.Errorf("set scorer: %w", err)
	}
	return nil
}

func (s *CommunityService) get(ctx context.Context, accountID, id string) (repository.Community, error) {
	c, err := s.Communities.Get(ctx, accountID, id)
	if err != nil {
		return repository.Community{}, fmt.Errorf("get community: %w", err)
	}
	if c == nil {
		return repository.Community{}, ErrNotFound
	}
	return *c, nil
}

func knownScorer(id string) bool {
	for _, o := range scorerOptions {
		if o.ID == id {
			return true
		}
	}
	return false
}

func normalizeUseCase(uc *string) *string {
	if uc == nil {
		return nil
	}
	v := strings.TrimSpace(*uc)
	if v == "" {
		return nil
	}
	return &v
}
