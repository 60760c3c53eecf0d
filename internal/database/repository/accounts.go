package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// AccountRepo handles accounts.
type AccountRepo struct {
	db *sql.DB
}

func NewAccountRepo(db *sql.DB) *AccountRepo {
	return &AccountRepo{db: db}
}

// Ensure returns the account for address, creating it when missing.
func (r *AccountRepo) Ensure(ctx context.Context, address string, now time.Time) (Account, error) {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO accounts(id, address, created_at)
	VALUES (?, ?, ?)
	ON CONFLICT(address) DO NOTHING;
	`, uuid.NewString(), address, now)
	if err != nil {
		return Account{}, err
	}
	a, err := r.ByAddress(ctx, address)
	if err != nil {
		return Account{}, err
	}
	if a == nil {
		return Account{}, sql.ErrNoRows
	}
	return *a, nil
}

// ByAddress returns nil when no account matches.
func (r *AccountRepo) ByAddress(ctx context.Context, address string) (*Account, error) {
	var a Account
	err := r.db.QueryRowContext(ctx, `SELECT id, address, created_at FROM accounts WHERE address = ?`, address).
		Scan(&a.ID, &a.Address, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AccountRepo) List(ctx context.Context) ([]Account, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, address, created_at FROM accounts ORDER BY created_at, address`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Account
	for rows.Next() {
		var a Account
		if err := rows.Scan(&a.ID, &a.Address, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
