package models

import (
	"encoding/json"
	"time"
)

// DateFormat is the fixed storage format for prediction timestamps,
// second resolution.
const DateFormat = "2006-01-02 15:04:05"

// Prediction is the immutable record of one inference run. It is created
// exactly once by the request pipeline and never updated afterwards.
type Prediction struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	ImagePath  string    `json:"image_path"`
	Result     string    `json:"result"`
	Confidence float64   `json:"confidence"`
	CreatedAt  time.Time `json:"-"`
}

// MarshalJSON emits the timestamp in the fixed storage format so API
// responses match what the store holds.
func (p Prediction) MarshalJSON() ([]byte, error) {
	type Alias Prediction
	return json.Marshal(&struct {
		Alias
		Date string `json:"date"`
	}{
		Alias: (Alias)(p),
		Date:  p.CreatedAt.Format(DateFormat),
	})
}
