package submission

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go onionornot/internal/repositories/submission Repository

import (
	"context"
)

// Repository defines the interface for the scraped-dataset store. The
// gatherer writes it; the server reads it once at startup to build the
// question bank.
type Repository interface {
	// SaveSubmissions persists a batch of submissions, replacing records
	// with the same reddit id
	SaveSubmissions(ctx context.Context, input *SaveSubmissionsInput) error

	// ListSubmissions retrieves the full dataset
	ListSubmissions(ctx context.Context, input *ListSubmissionsInput) (*ListSubmissionsOutput, error)
}
