package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"dermascan/internal/logger"
	"dermascan/internal/repository"
	"dermascan/internal/services/report"
	"dermascan/internal/services/storage"
	"dermascan/internal/session"
)

// DownloadReportHandler renders a stored prediction as a PDF attachment.
// The record must belong to the caller; foreign and absent ids are both
// reported as not found.
func DownloadReportHandler(predictions repository.PredictionRepository, uploads *storage.UploadStore, sessions *session.Manager, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, username, ok := sessions.Current(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "not logged in")
			return
		}

		id, err := predictionID(r)
		if err != nil || id <= 0 {
			writeError(w, http.StatusBadRequest, "invalid prediction id")
			return
		}

		record, err := predictions.GetByIDForUser(id, userID)
		if err != nil {
			logger.Error("Failed to load prediction %d: %v", id, err)
			writeError(w, http.StatusInternalServerError, "failed to load prediction")
			return
		}
		if record == nil {
			writeError(w, http.StatusNotFound, "prediction not found")
			return
		}

		pdf, err := report.Generate(record, username, uploads.Path(record.ImagePath))
		if err != nil {
			if errors.Is(err, report.ErrImageMissing) {
				writeError(w, http.StatusNotFound, "report unavailable")
				return
			}
			logger.Error("Failed to generate report for prediction %d: %v", id, err)
			writeError(w, http.StatusInternalServerError, "failed to generate report")
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="prediction_report.pdf"`)
		w.Header().Set("Content-Length", fmt.Sprint(len(pdf)))
		w.Write(pdf)
	}
}

// predictionID reads the record id from the "id" query parameter or, for the
// /download_pdf/{id} form, from the final path segment.
func predictionID(r *http.Request) (int64, error) {
	raw := r.URL.Query().Get("id")
	if raw == "" {
		raw = r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
	}
	return strconv.ParseInt(raw, 10, 64)
}
