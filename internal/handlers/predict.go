package handlers

import (
	"errors"
	"io"
	"net/http"

	"dermascan/internal/logger"
	"dermascan/internal/models"
	"dermascan/internal/services"
	"dermascan/internal/services/preprocess"
	"dermascan/internal/session"
)

// PredictHandler accepts a multipart upload (field "image"), runs it through
// the prediction pipeline and returns the committed record as JSON.
func PredictHandler(pipeline *services.Pipeline, sessions *session.Manager, maxUploadSize int64, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		userID, _, ok := sessions.Current(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "not logged in")
			return
		}

		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			writeError(w, http.StatusBadRequest, "failed to parse upload form")
			return
		}

		file, header, err := r.FormFile("image")
		if err != nil {
			writeError(w, http.StatusBadRequest, "no image uploaded")
			return
		}
		defer file.Close()

		if header.Filename == "" {
			writeError(w, http.StatusBadRequest, "no selected file")
			return
		}

		data, err := io.ReadAll(file)
		if err != nil {
			logger.Error("Failed to read upload: %v", err)
			writeError(w, http.StatusBadRequest, "failed to read upload")
			return
		}

		record, err := pipeline.Run(userID, header.Filename, data)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrEmptyUpload):
				writeError(w, http.StatusBadRequest, "no image uploaded")
			case errors.Is(err, preprocess.ErrBadImage):
				writeError(w, http.StatusBadRequest, "unreadable image, supported formats are JPEG, PNG and GIF")
			default:
				logger.Error("Prediction pipeline failed for user %d: %v", userID, err)
				writeError(w, http.StatusInternalServerError, "prediction failed, result was not recorded")
			}
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"prediction_id": record.ID,
			"result":        record.Result,
			"confidence":    record.Confidence,
			"image":         record.ImagePath,
			"date":          record.CreatedAt.Format(models.DateFormat),
		})
	}
}
