package embedding

import (
	"context"
	"errors"
	"strings"
)

// ErrProviderFailure wraps transport or API failures of the embedding
// backend. Callers decide whether to degrade or surface it.
var ErrProviderFailure = errors.New("embedding provider failure")

// Provider converts free text into a fixed-length semantic vector.
type Provider interface {
	// Embed returns a vector of exactly Dimension() floats. Empty or
	// whitespace-only input yields the all-zero vector, never an error.
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimension() int
}

// EmbedSkills joins a skill-name list into one text blob and embeds it.
// An empty list maps to the all-zero vector without touching the API.
func EmbedSkills(ctx context.Context, p Provider, skillNames []string) ([]float32, error) {
	if len(skillNames) == 0 {
		return ZeroVector(p.Dimension()), nil
	}
	return p.Embed(ctx, strings.Join(skillNames, ", "))
}

// ZeroVector returns an all-zero vector of the given dimension.
func ZeroVector(dimension int) []float32 {
	return make([]float32, dimension)
}
