package app

import (
	"context"
	"hash/fnv"
	"strings"
)

// MockEmbeddingProvider is used for tests and local development. It derives
// a deterministic pseudo-vector from the input text so that equal skill
// lists embed identically and different ones diverge.
type MockEmbeddingProvider struct {
	Dim int
}

func (m *MockEmbeddingProvider) Dimension() int { return m.Dim }

func (m *MockEmbeddingProvider) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, m.Dim)
	if strings.TrimSpace(text) == "" {
		return vec, nil
	}

	h := fnv.New64a()
	_, _ = h.Write([]byte(strings.ToLower(text)))
	seed := h.Sum64()

	// xorshift over the text hash; stable across runs.
	state := seed
	for i := range vec {
		state ^= state << 13
		state ^= state >> 7
		state ^= state << 17
		vec[i] = float32(int64(state%2000)-1000) / 1000
	}
	return vec, nil
}
