package algorithms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"zero vector", []float32{0, 0}, []float32{1, 1}, 0},
		{"both zero", []float32{0, 0}, []float32{0, 0}, 0},
		{"length mismatch", []float32{1, 2}, []float32{1, 2, 3}, 0},
		{"empty", nil, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CosineSimilarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestCosineSimilarity_ScaleInvariant(t *testing.T) {
	a := []float32{0.3, 0.7, 0.1}
	scaled := []float32{3, 7, 1}
	assert.InDelta(t, 1.0, CosineSimilarity(a, scaled), 1e-6)
}

func TestRankBySimilarity_OrdersDescending(t *testing.T) {
	learner := []float32{1, 0}
	candidates := map[string][]float32{
		"far":  {0, 1},
		"near": {1, 0},
		"mid":  {1, 1},
	}

	ranked := RankBySimilarity(learner, candidates)

	require.Len(t, ranked, 3)
	assert.Equal(t, "near", ranked[0].ID)
	assert.Equal(t, "mid", ranked[1].ID)
	assert.Equal(t, "far", ranked[2].ID)
}

func TestRankBySimilarity_TieBreaksOnID(t *testing.T) {
	learner := []float32{1, 0}
	candidates := map[string][]float32{
		"b": {1, 0},
		"a": {1, 0},
		"c": {1, 0},
	}

	// Map iteration order varies; the output must not.
	for i := 0; i < 10; i++ {
		ranked := RankBySimilarity(learner, candidates)
		require.Len(t, ranked, 3)
		assert.Equal(t, "a", ranked[0].ID)
		assert.Equal(t, "b", ranked[1].ID)
		assert.Equal(t, "c", ranked[2].ID)
	}
}

func TestKeywordOverlap(t *testing.T) {
	count, matched := KeywordOverlap(
		[]string{"ReactJS", "Python", "IELTS"},
		[]string{"Python", "ReactJS", "NodeJS"},
	)

	assert.Equal(t, 2, count)
	// Matches keep the learner's goal order.
	assert.Equal(t, []string{"ReactJS", "Python"}, matched)
}

func TestKeywordOverlap_NoMatches(t *testing.T) {
	count, matched := KeywordOverlap([]string{"IELTS"}, []string{"Python"})
	assert.Equal(t, 0, count)
	assert.Nil(t, matched)
}

func TestKeywordOverlap_EmptyInputs(t *testing.T) {
	count, matched := KeywordOverlap(nil, []string{"Python"})
	assert.Equal(t, 0, count)
	assert.Nil(t, matched)

	count, _ = KeywordOverlap([]string{"Python"}, nil)
	assert.Equal(t, 0, count)
}
