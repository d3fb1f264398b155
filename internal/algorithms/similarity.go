package algorithms

import (
	"math"
	"sort"
)

// RankedCandidate is one mentor scored against a learner's goals.
type RankedCandidate struct {
	ID         string
	Similarity float64
}

// CosineSimilarity returns the cosine of the angle between a and b.
// Mismatched lengths and zero-norm vectors score 0 rather than erroring,
// so an all-zero embedding (empty skill list) never matches anything.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// RankBySimilarity scores every candidate vector against the learner vector
// and returns them ordered by descending similarity. Ties break on ascending
// id so the ordering is deterministic.
func RankBySimilarity(learner []float32, candidates map[string][]float32) []RankedCandidate {
	ranked := make([]RankedCandidate, 0, len(candidates))
	for id, vec := range candidates {
		ranked = append(ranked, RankedCandidate{
			ID:         id,
			Similarity: CosineSimilarity(vec, learner),
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Similarity != ranked[j].Similarity {
			return ranked[i].Similarity > ranked[j].Similarity
		}
		return ranked[i].ID < ranked[j].ID
	})

	return ranked
}

// KeywordOverlap counts exact name matches between a learner's WANT skills
// and a mentor's GIVE skills. The matched list preserves the order of the
// learner's goals; this is the literal overlap shown in the UI, not a
// similarity explanation.
func KeywordOverlap(wantNames, giveNames []string) (int, []string) {
	giveSet := make(map[string]struct{}, len(giveNames))
	for _, name := range giveNames {
		giveSet[name] = struct{}{}
	}

	var matched []string
	for _, goal := range wantNames {
		if _, ok := giveSet[goal]; ok {
			matched = append(matched, goal)
		}
	}

	return len(matched), matched
}
