package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"dermascan/internal/models"
)

// PredictionRepository implements repository.PredictionRepository for SQLite.
type PredictionRepository struct {
	db *DB
}

// NewPredictionRepository creates a new SQLite prediction repository.
func NewPredictionRepository(db *DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

// Insert adds a new prediction record and returns its assigned id.
func (r *PredictionRepository) Insert(p *models.Prediction) (int64, error) {
	r.db.Lock()
	defer r.db.Unlock()

	result, err := r.db.Conn().Exec(`
		INSERT INTO predictions (user_id, image_path, result, confidence, date)
		VALUES (?, ?, ?, ?, ?)
	`, p.UserID, p.ImagePath, p.Result, p.Confidence, p.CreatedAt.Format(models.DateFormat))
	if err != nil {
		return 0, fmt.Errorf("failed to insert prediction: %w", err)
	}

	return result.LastInsertId()
}

// GetByIDForUser retrieves a prediction only when it is owned by userID.
// Absent ids and records owned by another user both return nil, nil.
func (r *PredictionRepository) GetByIDForUser(id, userID int64) (*models.Prediction, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	row := r.db.Conn().QueryRow(`
		SELECT id, user_id, image_path, result, confidence, date
		FROM predictions WHERE id = ? AND user_id = ?
	`, id, userID)

	p, err := scanPrediction(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get prediction: %w", err)
	}
	return p, nil
}

// ListByUser retrieves the user's predictions newest first.
func (r *PredictionRepository) ListByUser(userID int64) ([]models.Prediction, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	rows, err := r.db.Conn().Query(`
		SELECT id, user_id, image_path, result, confidence, date
		FROM predictions WHERE user_id = ?
		ORDER BY date DESC, id DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query predictions: %w", err)
	}
	defer rows.Close()

	var predictions []models.Prediction
	for rows.Next() {
		p, err := scanPrediction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan prediction: %w", err)
		}
		predictions = append(predictions, *p)
	}

	return predictions, rows.Err()
}

// CountsByLabel aggregates stored predictions per predicted label.
func (r *PredictionRepository) CountsByLabel() (map[string]int, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	rows, err := r.db.Conn().Query(`
		SELECT result, COUNT(*) FROM predictions GROUP BY result
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to count predictions: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var label string
		var count int
		if err := rows.Scan(&label, &count); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[label] = count
	}

	return counts, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanPrediction reads one prediction row, parsing the fixed-format date.
func scanPrediction(row rowScanner) (*models.Prediction, error) {
	var p models.Prediction
	var date string
	err := row.Scan(&p.ID, &p.UserID, &p.ImagePath, &p.Result, &p.Confidence, &date)
	if err != nil {
		return nil, err
	}

	p.CreatedAt, err = time.Parse(models.DateFormat, date)
	if err != nil {
		return nil, fmt.Errorf("failed to parse prediction date %q: %w", date, err)
	}
	return &p, nil
}
