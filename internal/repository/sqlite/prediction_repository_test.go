package sqlite

import (
	"testing"
	"time"

	"dermascan/internal/models"
)

func seedUser(t *testing.T, db *DB, username string) int64 {
	t.Helper()

	id, err := NewUserRepository(db).Create(username, "hash")
	if err != nil {
		t.Fatalf("Failed to seed user %s: %v", username, err)
	}
	return id
}

func TestPredictionRepository_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := NewPredictionRepository(db)
	userID := seedUser(t, db, "alice")

	created := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	record := &models.Prediction{
		UserID:     userID,
		ImagePath:  "abc_lesion.jpg",
		Result:     "Melanoma",
		Confidence: 97.31,
		CreatedAt:  created,
	}

	id, err := repo.Insert(record)
	if err != nil {
		t.Fatalf("Failed to insert prediction: %v", err)
	}
	if id <= 0 {
		t.Fatalf("Expected positive id, got %d", id)
	}

	got, err := repo.GetByIDForUser(id, userID)
	if err != nil {
		t.Fatalf("Failed to get prediction: %v", err)
	}
	if got == nil {
		t.Fatal("Expected prediction, got nil")
	}

	if got.Result != record.Result ||
		got.Confidence != record.Confidence ||
		got.ImagePath != record.ImagePath ||
		!got.CreatedAt.Equal(created) {
		t.Errorf("Round trip mismatch: %+v", got)
	}
}

func TestPredictionRepository_OwnershipIsEnforced(t *testing.T) {
	db := newTestDB(t)
	repo := NewPredictionRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	id, err := repo.Insert(&models.Prediction{
		UserID:     alice,
		ImagePath:  "a.jpg",
		Result:     "Eczema",
		Confidence: 55.0,
		CreatedAt:  time.Now().Truncate(time.Second),
	})
	if err != nil {
		t.Fatalf("Failed to insert prediction: %v", err)
	}

	got, err := repo.GetByIDForUser(id, bob)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != nil {
		t.Error("Cross-user fetch must report not found")
	}

	missing, err := repo.GetByIDForUser(id+1000, alice)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if missing != nil {
		t.Error("Absent id must report not found")
	}
}

func TestPredictionRepository_ListNewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewPredictionRepository(db)
	userID := seedUser(t, db, "alice")

	base := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	var ids []int64
	for i := 0; i < 3; i++ {
		id, err := repo.Insert(&models.Prediction{
			UserID:     userID,
			ImagePath:  "img.jpg",
			Result:     "Psoriasis",
			Confidence: 80,
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("Failed to insert prediction %d: %v", i, err)
		}
		ids = append(ids, id)
	}

	records, err := repo.ListByUser(userID)
	if err != nil {
		t.Fatalf("Failed to list predictions: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}
	// t3, t2, t1
	for i := 0; i < 3; i++ {
		if records[i].ID != ids[2-i] {
			t.Errorf("Position %d: expected id %d, got %d", i, ids[2-i], records[i].ID)
		}
	}
}

func TestPredictionRepository_ListTiesBrokenByID(t *testing.T) {
	db := newTestDB(t)
	repo := NewPredictionRepository(db)
	userID := seedUser(t, db, "alice")

	same := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	first, _ := repo.Insert(&models.Prediction{UserID: userID, ImagePath: "a.jpg", Result: "A", Confidence: 1, CreatedAt: same})
	second, _ := repo.Insert(&models.Prediction{UserID: userID, ImagePath: "b.jpg", Result: "B", Confidence: 2, CreatedAt: same})

	records, err := repo.ListByUser(userID)
	if err != nil {
		t.Fatalf("Failed to list predictions: %v", err)
	}
	if len(records) != 2 || records[0].ID != second || records[1].ID != first {
		t.Errorf("Expected [%d %d], got %+v", second, first, records)
	}
}

func TestPredictionRepository_CountsByLabel(t *testing.T) {
	db := newTestDB(t)
	repo := NewPredictionRepository(db)
	userID := seedUser(t, db, "alice")

	for _, label := range []string{"A", "A", "B"} {
		if _, err := repo.Insert(&models.Prediction{
			UserID:     userID,
			ImagePath:  "img.jpg",
			Result:     label,
			Confidence: 50,
			CreatedAt:  time.Now().Truncate(time.Second),
		}); err != nil {
			t.Fatalf("Failed to insert prediction: %v", err)
		}
	}

	counts, err := repo.CountsByLabel()
	if err != nil {
		t.Fatalf("Failed to count predictions: %v", err)
	}
	if counts["A"] != 2 || counts["B"] != 1 || len(counts) != 2 {
		t.Errorf("Expected map[A:2 B:1], got %v", counts)
	}
}

func TestPredictionRepository_ConcurrentInserts(t *testing.T) {
	db := newTestDB(t)
	repo := NewPredictionRepository(db)
	userID := seedUser(t, db, "alice")

	const workers = 10
	idCh := make(chan int64, workers)
	for i := 0; i < workers; i++ {
		go func() {
			id, err := repo.Insert(&models.Prediction{
				UserID:     userID,
				ImagePath:  "img.jpg",
				Result:     "A",
				Confidence: 50,
				CreatedAt:  time.Now().Truncate(time.Second),
			})
			if err != nil {
				t.Errorf("Concurrent insert failed: %v", err)
			}
			idCh <- id
		}()
	}

	seen := make(map[int64]bool)
	for i := 0; i < workers; i++ {
		id := <-idCh
		if seen[id] {
			t.Errorf("Duplicate id %d assigned", id)
		}
		seen[id] = true
	}

	records, err := repo.ListByUser(userID)
	if err != nil {
		t.Fatalf("Failed to list predictions: %v", err)
	}
	if len(records) != workers {
		t.Errorf("Expected %d records, got %d (lost write)", workers, len(records))
	}
}
