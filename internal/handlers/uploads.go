package handlers

import (
	"net/http"

	"dermascan/internal/services/storage"
)

// ViewUploadHandler serves a stored upload specified via the "image" query
// parameter. The name is reduced to its base component before resolution.
func ViewUploadHandler(uploads *storage.UploadStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		image := r.URL.Query().Get("image")
		if image == "" {
			http.Error(w, "Image parameter is required", http.StatusBadRequest)
			return
		}
		http.ServeFile(w, r, uploads.Path(image))
	}
}
