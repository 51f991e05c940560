package app

import (
	"fmt"
	"net/http"

	"dermascan/internal/config"
	"dermascan/internal/logger"
	"dermascan/internal/repository/sqlite"
	"dermascan/internal/routes"
	"dermascan/internal/services"
	"dermascan/internal/services/classifier"
	"dermascan/internal/services/storage"
	"dermascan/internal/services/websocket"
	"dermascan/internal/session"
)

type App struct {
	config     *config.Config
	logger     *logger.Logger
	db         *sqlite.DB
	classifier *classifier.Classifier
	hub        *websocket.HubService
	router     http.Handler
}

// New wires the whole process: configuration, logging, the model artifact
// (fetched on first run), the SQLite store and the HTTP surface. Any error
// here means the process cannot serve requests.
func New() (*App, error) {
	cfg := config.Load()
	log := logger.New(cfg.LogDirectory)

	if err := classifier.EnsureArtifact(cfg.ModelPath, cfg.ModelURL); err != nil {
		return nil, fmt.Errorf("model artifact: %w", err)
	}

	labels, err := classifier.LoadLabels(cfg.ClassNamesPath)
	if err != nil {
		return nil, fmt.Errorf("label vocabulary: %w", err)
	}

	cls, err := classifier.New(cfg.ModelPath, labels, cfg.InferenceThreads)
	if err != nil {
		return nil, fmt.Errorf("classifier: %w", err)
	}
	log.Info("Classifier loaded with %d labels", len(labels))

	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		cls.Close()
		return nil, fmt.Errorf("database: %w", err)
	}

	uploads, err := storage.NewUploadStore(cfg.UploadDirectory)
	if err != nil {
		cls.Close()
		db.Close()
		return nil, fmt.Errorf("upload store: %w", err)
	}

	users := sqlite.NewUserRepository(db)
	predictions := sqlite.NewPredictionRepository(db)
	sessions := session.NewManager(cfg.SessionSecret, cfg.SessionName)
	hub := websocket.NewHubService(log)
	pipeline := services.NewPipeline(uploads, cls, predictions, hub, cfg.ImageSize, log)

	router := routes.Setup(routes.Deps{
		Config:      cfg,
		Logger:      log,
		Sessions:    sessions,
		Users:       users,
		Predictions: predictions,
		Pipeline:    pipeline,
		Uploads:     uploads,
		Hub:         hub,
	})

	return &App{
		config:     cfg,
		logger:     log,
		db:         db,
		classifier: cls,
		hub:        hub,
		router:     router,
	}, nil
}

// Run starts the background hub and serves HTTP until the listener fails.
func (a *App) Run() error {
	go a.hub.Run()

	a.logger.Info("Dermascan server listening on http://localhost:%d", a.config.Port)
	a.logger.Info("Uploads: %s", a.config.UploadDirectory)
	a.logger.Info("Model: %s", a.config.ModelPath)

	return http.ListenAndServe(fmt.Sprintf(":%d", a.config.Port), a.router)
}

// Close releases the classifier and database handles.
func (a *App) Close() {
	if a.classifier != nil {
		a.classifier.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
}
