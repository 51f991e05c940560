package repository

import (
	"errors"

	"dermascan/internal/models"
)

// ErrUsernameTaken is returned by UserRepository.Create when the username is
// already registered. Other storage failures are never reported as this
// error.
var ErrUsernameTaken = errors.New("username already exists")

// UserRepository persists registered accounts.
type UserRepository interface {
	// Create inserts a new user and returns its id. A duplicate username
	// yields ErrUsernameTaken, distinguished from other storage failures.
	Create(username, passwordHash string) (int64, error)
	// GetByUsername returns nil, nil when no such user exists.
	GetByUsername(username string) (*models.User, error)
	// GetByID returns nil, nil when no such user exists.
	GetByID(id int64) (*models.User, error)
}

// PredictionRepository persists inference results. Records are immutable
// once inserted.
type PredictionRepository interface {
	// Insert stores a new prediction and returns its assigned id.
	Insert(p *models.Prediction) (int64, error)
	// GetByIDForUser returns the record only when it is owned by userID.
	// Absent and foreign records are both nil, nil.
	GetByIDForUser(id, userID int64) (*models.Prediction, error)
	// ListByUser returns the user's predictions newest first, ties broken
	// by id descending.
	ListByUser(userID int64) ([]models.Prediction, error)
	// CountsByLabel aggregates stored predictions per predicted label.
	CountsByLabel() (map[string]int, error)
}
