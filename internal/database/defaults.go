package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/jask/communitydash/internal/database/repository"
)

// DemoAddress owns the seeded communities.
const DemoAddress = "0xdemo"

// SeedDemo ensures a demo account with a couple of communities exists.
// It is idempotent and safe to run on every startup.
func SeedDemo(ctx context.Context, db *sql.DB) error {
	acctRepo := repository.NewAccountRepo(db)
	commRepo := repository.NewCommunityRepo(db)

	acct, err := acctRepo.Ensure(ctx, DemoAddress, Now())
	if err != nil {
		return err
	}
	existing, err := commRepo.ListByAccount(ctx, acct.ID)
	if err == nil && len(existing) > 0 {
		return nil
	}
	defaults := []struct {
		name, description, useCase string
	}{
		{"Demo Airdrop", "Keeps the spring airdrop away from farmers", "Airdrop Protection"},
		{"Demo Grants Round", "Sybil checks for the grants round", "Sybil Prevention"},
	}
	base := Now()
	for idx, d := range defaults {
		useCase := d.useCase
		at := base.Add(time.Duration(idx) * time.Second)
		c := repository.Community{
			ID:          uuid.NewSHA1(uuid.NameSpaceOID, []byte("community:"+d.name)).String(),
			AccountID:   acct.ID,
			Name:        d.name,
			Description: d.description,
			UseCase:     &useCase,
			ScorerType:  "WEIGHTED",
			CreatedAt:   at,
			UpdatedAt:   at,
		}
		if _, err := commRepo.CreateWithinLimit(ctx, c, len(defaults)); err != nil {
			if IsUniqueViolation(err) {
				continue
			}
			return err
		}
	}
	return nil
}
