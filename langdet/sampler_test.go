package langdet

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleIndicesRejectsContractViolations(t *testing.T) {
	src := rand.NewPCG(1, 2)

	_, err := sampleIndices(src, 10, 0)
	assert.Error(t, err, "zero sample count")

	_, err = sampleIndices(src, 10, -1)
	assert.Error(t, err, "negative sample count")

	_, err = sampleIndices(src, 3, 4)
	assert.Error(t, err, "sample larger than input")
}

func TestSampleIndicesExhaustiveWhenCountsMatch(t *testing.T) {
	got, err := sampleIndices(rand.NewPCG(1, 2), 5, 5)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, got)
}

func TestSampleIndicesDeterministicForSeed(t *testing.T) {
	a, err := sampleIndices(rand.NewPCG(7, 11), 100, 20)
	require.NoError(t, err)
	b, err := sampleIndices(rand.NewPCG(7, 11), 100, 20)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSampleIndicesFirstPartitionAbsorbsRemainder(t *testing.T) {
	// n=7, k=3: partitions are [0,3) [3,5) [5,7).
	idx, err := sampleIndices(rand.NewPCG(5, 5), 7, 3)
	require.NoError(t, err)
	require.Len(t, idx, 3)

	assert.GreaterOrEqual(t, idx[0], 0)
	assert.Less(t, idx[0], 3)
	assert.GreaterOrEqual(t, idx[1], 3)
	assert.Less(t, idx[1], 5)
	assert.GreaterOrEqual(t, idx[2], 5)
	assert.Less(t, idx[2], 7)
}
