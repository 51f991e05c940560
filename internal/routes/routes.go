package routes

import (
	"net/http"
	"os"
	"path/filepath"

	"dermascan/internal/config"
	"dermascan/internal/handlers"
	"dermascan/internal/logger"
	"dermascan/internal/middleware"
	"dermascan/internal/repository"
	"dermascan/internal/services"
	"dermascan/internal/services/storage"
	"dermascan/internal/services/websocket"
	"dermascan/internal/session"
)

// Deps collects everything the HTTP surface needs.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	Sessions    *session.Manager
	Users       repository.UserRepository
	Predictions repository.PredictionRepository
	Pipeline    *services.Pipeline
	Uploads     *storage.UploadStore
	Hub         *websocket.HubService
}

// dynamicHTMLHandler serves /path as /static/path.html if the file exists; otherwise 404.
func dynamicHTMLHandler(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	if path == "/" {
		path = "/index"
	}

	filePath := filepath.Join("static", path+".html")

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		http.NotFound(w, r)
		return
	}

	http.ServeFile(w, r, filePath)
}

// Setup registers HTTP routes, static file serving, API endpoints, and wraps
// the mux with the authentication middleware.
func Setup(d Deps) http.Handler {
	mux := http.NewServeMux()

	// Static files
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	// API endpoints
	mux.HandleFunc("/api/predict", handlers.PredictHandler(d.Pipeline, d.Sessions, d.Config.MaxUploadSize, d.Logger))
	mux.HandleFunc("/api/history", handlers.HistoryHandler(d.Predictions, d.Sessions, d.Logger))
	mux.HandleFunc("/api/dashboard", handlers.DashboardHandler(d.Predictions, d.Logger))
	mux.HandleFunc("/api/report", handlers.DownloadReportHandler(d.Predictions, d.Uploads, d.Sessions, d.Logger))
	mux.HandleFunc("/download_pdf/", handlers.DownloadReportHandler(d.Predictions, d.Uploads, d.Sessions, d.Logger))
	mux.HandleFunc("/api/uploads/view", handlers.ViewUploadHandler(d.Uploads))
	mux.HandleFunc("/api/live", handlers.LiveHandler(d.Hub, d.Logger))

	// Log endpoints
	mux.HandleFunc("/logs/info", handlers.ShowLogsHandler(d.Config.LogDirectory, "info.log"))
	mux.HandleFunc("/logs/warning", handlers.ShowLogsHandler(d.Config.LogDirectory, "warning.log"))
	mux.HandleFunc("/logs/error", handlers.ShowLogsHandler(d.Config.LogDirectory, "error.log"))

	mux.HandleFunc("/logs/info/clear", handlers.ClearLogsHandler(d.Logger, "info.log"))
	mux.HandleFunc("/logs/warning/clear", handlers.ClearLogsHandler(d.Logger, "warning.log"))
	mux.HandleFunc("/logs/error/clear", handlers.ClearLogsHandler(d.Logger, "error.log"))

	// Auth endpoints
	mux.HandleFunc("/auth/register", handlers.RegisterHandler(d.Users, d.Logger))
	mux.HandleFunc("/auth/login", handlers.LoginHandler(d.Users, d.Sessions, d.Logger))
	mux.HandleFunc("/auth/logout", handlers.LogoutHandler(d.Sessions))

	// Automatic HTML handler mapping for example: /history -> /static/history.html
	mux.HandleFunc("/", dynamicHTMLHandler)

	// Apply middleware
	return middleware.AuthMiddleware(d.Sessions, mux)
}
