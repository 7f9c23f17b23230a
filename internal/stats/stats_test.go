package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/localrr/rrcluster/internal/conflict"
)

func TestCompute_SingletonClusterReportsConventionValues(t *testing.T) {
	c := conflict.Cluster{{Conflict: "a.b.c", Resolution: "a.b.x"}}
	row := Compute(1, c)

	assert.Equal(t, 1.0, row.AvgSimilarity)
	assert.Equal(t, 0.0, row.LongestDistance)
	assert.Equal(t, 1.0, row.AvgSimilarityConflict)
	assert.Equal(t, 1.0, row.AvgSimilarityResol)
	assert.Equal(t, 0.0, row.LatestToAllConflict)
}

func TestCompute_EmptyClusterDoesNotPanic(t *testing.T) {
	row := Compute(1, conflict.Cluster{})
	assert.Equal(t, 0, row.ClusterSize)
	assert.Equal(t, 1.0, row.AvgSimilarity)
}

func TestCompute_PairAveragesBothSides(t *testing.T) {
	c := conflict.Cluster{
		{Conflict: "abcdef", Resolution: "abcxyz"},
		{Conflict: "abcdeg", Resolution: "abcxyz"},
	}
	row := Compute(1, c)

	assert.Equal(t, 2, row.ClusterSize)
	assert.Greater(t, row.AvgSimilarityConflict, 0.9)
	assert.Equal(t, 1.0, row.AvgSimilarityResol)
	assert.InDelta(t, 0.0, row.LongestDistResol, 1e-9)
}

func TestCompute_LatestToAllUsesLastInsertedElement(t *testing.T) {
	c := conflict.Cluster{
		{Conflict: "zzzzzz", Resolution: "zzzzzz"},
		{Conflict: "abcdef", Resolution: "abcdef"},
		{Conflict: "abcdeg", Resolution: "abcdeg"},
	}
	row := Compute(1, c)
	// The latest element ("abcdeg") is close to the second element and far
	// from the first, so its mean-to-all should sit well above either
	// individual extreme collapsing to 0 or 1.
	assert.Greater(t, row.LatestToAllConflict, 0.0)
	assert.Less(t, row.LatestToAllConflict, 1.0)
}

func TestIntraSimilarity_IgnoresSingletons(t *testing.T) {
	idx := conflict.NewIndex()
	idx.Insert(1, conflict.Pair{Conflict: "a", Resolution: "a"})
	idx.Insert(2, conflict.Pair{Conflict: "abcdef", Resolution: "abcxyz"})
	idx.Insert(2, conflict.Pair{Conflict: "abcdeg", Resolution: "abcxyz"})

	got := IntraSimilarity(idx)
	assert.Greater(t, got, 0.9)
}

func TestIntraSimilarity_EmptyIndexReturnsZero(t *testing.T) {
	assert.Equal(t, 0.0, IntraSimilarity(conflict.NewIndex()))
}

func TestSingletonFraction(t *testing.T) {
	idx := conflict.NewIndex()
	for i := 1; i <= 9; i++ {
		idx.Insert(i, conflict.Pair{Conflict: "x", Resolution: "y"})
	}
	idx.Insert(10, conflict.Pair{Conflict: "a", Resolution: "b"})
	idx.Insert(10, conflict.Pair{Conflict: "c", Resolution: "d"})

	assert.InDelta(t, 0.9, SingletonFraction(idx), 1e-9)
}
