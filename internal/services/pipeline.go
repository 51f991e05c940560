package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"dermascan/internal/logger"
	"dermascan/internal/models"
	"dermascan/internal/repository"
	"dermascan/internal/services/classifier"
	"dermascan/internal/services/preprocess"
	"dermascan/internal/services/storage"
	"dermascan/internal/services/websocket"
)

// ErrEmptyUpload is returned when the request carries no image data.
var ErrEmptyUpload = errors.New("no image uploaded")

// Classifier is the inference engine the pipeline runs preprocessed tensors
// through. Implemented by classifier.Classifier; faked in tests.
type Classifier interface {
	Predict(input []float32) (classifier.Result, error)
}

// Pipeline orchestrates one prediction request: persist the upload,
// preprocess, infer and commit the record. Any failure after the upload is
// written removes the stored file best-effort; the record insert is the
// single commit point, so a failed request never leaves a Prediction row.
type Pipeline struct {
	uploads     *storage.UploadStore
	classifier  Classifier
	predictions repository.PredictionRepository
	hub         *websocket.HubService
	imageSize   int
	logger      *logger.Logger
}

func NewPipeline(uploads *storage.UploadStore, cls Classifier, predictions repository.PredictionRepository, hub *websocket.HubService, imageSize int, logger *logger.Logger) *Pipeline {
	return &Pipeline{
		uploads:     uploads,
		classifier:  cls,
		predictions: predictions,
		hub:         hub,
		imageSize:   imageSize,
		logger:      logger,
	}
}

// Run executes the pipeline for one authenticated upload and returns the
// committed record. filename is the client-declared name, data the raw
// uploaded bytes.
func (p *Pipeline) Run(userID int64, filename string, data []byte) (*models.Prediction, error) {
	if len(data) == 0 {
		return nil, ErrEmptyUpload
	}

	storedName, err := p.uploads.Save(filename, data)
	if err != nil {
		return nil, fmt.Errorf("failed to persist upload: %w", err)
	}

	tensor, err := preprocess.ImageToTensor(data, p.imageSize)
	if err != nil {
		p.discard(storedName)
		return nil, err
	}

	result, err := p.classifier.Predict(tensor)
	if err != nil {
		p.discard(storedName)
		return nil, fmt.Errorf("inference failed: %w", err)
	}

	record := &models.Prediction{
		UserID:     userID,
		ImagePath:  storedName,
		Result:     result.Label,
		Confidence: result.Confidence,
		CreatedAt:  time.Now().Truncate(time.Second),
	}

	id, err := p.predictions.Insert(record)
	if err != nil {
		p.discard(storedName)
		return nil, fmt.Errorf("failed to store prediction: %w", err)
	}
	record.ID = id

	p.logger.Info("Prediction %d for user %d: %s (%.2f%%)", id, userID, record.Result, record.Confidence)
	p.announce(record)

	return record, nil
}

// discard removes an already stored upload after a later pipeline step
// failed. Best effort; an orphaned file is preferable to failing the error
// path.
func (p *Pipeline) discard(storedName string) {
	if err := p.uploads.Remove(storedName); err != nil {
		p.logger.Warning("Failed to clean up upload %s: %v", storedName, err)
	}
}

// announce broadcasts the committed record to live dashboard clients.
func (p *Pipeline) announce(record *models.Prediction) {
	if p.hub == nil || p.hub.GetClientCount() == 0 {
		return
	}
	event, err := json.Marshal(record)
	if err != nil {
		p.logger.Error("Failed to encode prediction event: %v", err)
		return
	}
	p.hub.Broadcast(event)
}
