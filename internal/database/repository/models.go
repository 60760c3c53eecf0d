package repository

import "time"

// Account represents an account row. Address is the token subject.
type Account struct {
	ID        string
	Address   string
	CreatedAt time.Time
}

// Community represents a community row.
type Community struct {
	ID          string
	AccountID   string
	Name        string
	Description string
	UseCase     *string
	ScorerType  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
