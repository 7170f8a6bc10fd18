package identity

import (
	"github.com/google/uuid"

	"onionornot/internal/models"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_generator.go onionornot/internal/common/identity Generator

// Generator produces fresh player ids. One id is generated per socket
// connection and never reused.
type Generator interface {
	NewPlayerID() models.PlayerID
}

// UUIDGenerator implements the Generator interface using random UUIDs
type UUIDGenerator struct{}

func New() *UUIDGenerator {
	return &UUIDGenerator{}
}

// NewPlayerID returns a new random player id
func (g *UUIDGenerator) NewPlayerID() models.PlayerID {
	return models.PlayerID(uuid.New().String())
}
