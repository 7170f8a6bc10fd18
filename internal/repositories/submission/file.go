package submission

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"onionornot/internal/models"
)

// ErrDatasetNotFound is returned when the dataset file does not exist
var ErrDatasetNotFound = errors.New("dataset file not found")

// FileConfig holds configuration for the file submission repository
type FileConfig struct {
	// Path to the JSON dataset file
	Path string
}

// fileRepository implements the Repository interface on a single JSON
// file, mirroring the on-disk datasets the game originally shipped with.
type fileRepository struct {
	path string
}

// NewFile creates a new file-backed submission repository
func NewFile(cfg *FileConfig) (*fileRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Path == "" {
		return nil, errors.New("dataset path cannot be empty")
	}

	return &fileRepository{
		path: cfg.Path,
	}, nil
}

// SaveSubmissions merges the batch into the dataset file, replacing
// records with the same reddit id. The write goes through a temporary
// file and a rename.
func (r *fileRepository) SaveSubmissions(ctx context.Context, input *SaveSubmissionsInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}

	existing, err := r.ListSubmissions(ctx, &ListSubmissionsInput{})
	if err != nil && !errors.Is(err, ErrDatasetNotFound) {
		return err
	}

	merged := make(map[string]models.SubmissionRecord)
	if existing != nil {
		for _, record := range existing.Submissions {
			merged[record.ID] = record
		}
	}
	for _, record := range input.Submissions {
		merged[record.ID] = record
	}

	records := make([]models.SubmissionRecord, 0, len(merged))
	for _, record := range merged {
		records = append(records, record)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal dataset: %w", err)
	}

	tmpPath := filepath.Join(filepath.Dir(r.path), fmt.Sprintf(".%s.tmp", filepath.Base(r.path)))
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write dataset: %w", err)
	}

	if err := os.Rename(tmpPath, r.path); err != nil {
		return fmt.Errorf("failed to replace dataset: %w", err)
	}

	return nil
}

// ListSubmissions reads the full dataset file
func (r *fileRepository) ListSubmissions(_ context.Context, _ *ListSubmissionsInput) (*ListSubmissionsOutput, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrDatasetNotFound
		}
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}

	var records []models.SubmissionRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal dataset: %w", err)
	}

	return &ListSubmissionsOutput{Submissions: records}, nil
}
