package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"dermascan/internal/models"
	"dermascan/internal/repository"

	"github.com/mattn/go-sqlite3"
)

// UserRepository implements repository.UserRepository for SQLite.
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new SQLite user repository.
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user record and returns its id.
func (r *UserRepository) Create(username, passwordHash string) (int64, error) {
	r.db.Lock()
	defer r.db.Unlock()

	result, err := r.db.Conn().Exec(`
		INSERT INTO users (username, password) VALUES (?, ?)
	`, username, passwordHash)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return 0, repository.ErrUsernameTaken
		}
		return 0, fmt.Errorf("failed to insert user: %w", err)
	}

	return result.LastInsertId()
}

// GetByUsername retrieves a user by username.
func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	var user models.User
	err := r.db.Conn().QueryRow(`
		SELECT id, username, password FROM users WHERE username = ?
	`, username).Scan(&user.ID, &user.Username, &user.PasswordHash)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// GetByID retrieves a user by its id.
func (r *UserRepository) GetByID(id int64) (*models.User, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	var user models.User
	err := r.db.Conn().QueryRow(`
		SELECT id, username, password FROM users WHERE id = ?
	`, id).Scan(&user.ID, &user.Username, &user.PasswordHash)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}
