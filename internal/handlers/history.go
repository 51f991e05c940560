package handlers

import (
	"net/http"

	"dermascan/internal/logger"
	"dermascan/internal/models"
	"dermascan/internal/repository"
	"dermascan/internal/session"
)

// HistoryHandler lists the caller's predictions, newest first.
func HistoryHandler(predictions repository.PredictionRepository, sessions *session.Manager, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _, ok := sessions.Current(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "not logged in")
			return
		}

		records, err := predictions.ListByUser(userID)
		if err != nil {
			logger.Error("Failed to list predictions for user %d: %v", userID, err)
			writeError(w, http.StatusInternalServerError, "failed to load history")
			return
		}
		if records == nil {
			records = []models.Prediction{}
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"history": records,
			"length":  len(records),
		})
	}
}

// DashboardHandler returns the label to count aggregation over all stored
// predictions.
func DashboardHandler(predictions repository.PredictionRepository, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counts, err := predictions.CountsByLabel()
		if err != nil {
			logger.Error("Failed to aggregate predictions: %v", err)
			writeError(w, http.StatusInternalServerError, "failed to load dashboard stats")
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"stats": counts,
		})
	}
}
