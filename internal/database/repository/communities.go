package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// CommunityRepo handles communities.
type CommunityRepo struct {
	db *sql.DB
}

func NewCommunityRepo(db *sql.DB) *CommunityRepo {
	return &CommunityRepo{db: db}
}

const communityColumns = `id, account_id, name, description, use_case, scorer_type, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCommunity(s rowScanner) (Community, error) {
	var c Community
	err := s.Scan(&c.ID, &c.AccountID, &c.Name, &c.Description, &c.UseCase, &c.ScorerType, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// CreateWithinLimit inserts c only while the owning account holds fewer than limit
// communities. The count and the insert run as one statement. It reports false when
// the limit blocked the insert.
func (r *CommunityRepo) CreateWithinLimit(ctx context.Context, c Community, limit int) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
	INSERT INTO communities(id, account_id, name, description, use_case, scorer_type, created_at, updated_at)
	SELECT ?, ?, ?, ?, ?, ?, ?, ?
	WHERE (SELECT COUNT(*) FROM communities WHERE account_id = ?) < ?;
	`, c.ID, c.AccountID, c.Name, c.Description, c.UseCase, c.ScorerType, c.CreatedAt, c.UpdatedAt, c.AccountID, limit)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// ListByAccount returns the account's communities in creation order.
func (r *CommunityRepo) ListByAccount(ctx context.Context, accountID string) ([]Community, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+communityColumns+` FROM communities WHERE account_id = ? ORDER BY created_at, rowid`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Community{}
	for rows.Next() {
		c, err := scanCommunity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Get returns the community scoped to accountID, or nil when it does not exist there.
func (r *CommunityRepo) Get(ctx context.Context, accountID, id string) (*Community, error) {
	c, err := scanCommunity(r.db.QueryRowContext(ctx, `SELECT `+communityColumns+` FROM communities WHERE id = ? AND account_id = ?`, id, accountID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// NameTaken reports whether any community, in any account, uses name.
func (r *CommunityRepo) NameTaken(ctx context.Context, name string) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM communities WHERE name = ?`, name).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *CommunityRepo) CountByAccount(ctx context.Context, accountID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM communities WHERE account_id = ?`, accountID).Scan(&n)
	return n, err
}

// Update writes name, description and use case.
func (r *CommunityRepo) Update(ctx context.Context, c Community) error {
	_, err := r.db.ExecContext(ctx, `
	UPDATE communities SET
	 name = ?,
	 description = ?,
	 use_case = ?,
	 updated_at = ?
	WHERE id = ? AND account_id = ?;
	`, c.Name, c.Description, c.UseCase, c.UpdatedAt, c.ID, c.AccountID)
	return err
}

func (r *CommunityRepo) SetScorerType(ctx context.Context, accountID, id, scorerType string, now time.Time) error {
	_, err := r.db.ExecContext(ctx, `UPDATE communities SET scorer_type = ?, updated_at = ? WHERE id = ? AND account_id = ?`, scorerType, now, id, accountID)
	return err
}

// Delete reports whether a row was removed.
func (r *CommunityRepo) Delete(ctx context.Context, accountID, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM communities WHERE id = ? AND account_id = ?`, id, accountID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
