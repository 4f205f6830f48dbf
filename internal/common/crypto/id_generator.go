package crypto

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/google/uuid"

	"github.com/AlibekovAA/ricebook/backend/internal/common/constants"
)

type IDGenerator interface {
	NewID() (string, error)
}

type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) NewID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// TokenGenerator produces opaque session identifiers from crypto/rand.
type TokenGenerator struct {
	size int
}

func NewTokenGenerator() *TokenGenerator {
	return &TokenGenerator{size: constants.SessionIDSize}
}

func (g *TokenGenerator) NewID() (string, error) {
	size := g.size
	if size <= 0 {
		size = constants.SessionIDSize
	}

	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}

// IsUUID accepts only the canonical 8-4-4-4-12 form.
func IsUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}
