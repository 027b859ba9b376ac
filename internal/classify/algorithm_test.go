package classify

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKMeansClusterer(t *testing.T) {
	clusterer, err := NewClusterer(KMeans, 10)
	require.NoError(t, err)

	/* 两组相距很远的点 */
	x := [][]float64{
		{0, 0}, {0.1, 0}, {0, 0.1},
		{10, 10}, {10.1, 10}, {10, 10.1},
	}
	centers, labels, err := clusterer.Cluster(x, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, len(centers))
	require.Equal(t, len(x), len(labels))
	assert.Equal(t, labels[0], labels[1])
	assert.Equal(t, labels[0], labels[2])
	assert.Equal(t, labels[3], labels[4])
	assert.Equal(t, labels[3], labels[5])
	assert.NotEqual(t, labels[0], labels[3])
	assert.InDelta(t, 10.03, centers[labels[3]][0], 0.01)
}

func TestKMeansClustererInvalidInput(t *testing.T) {
	clusterer, err := NewClusterer(KMeans, 0)
	require.NoError(t, err)
	assert.Equal(t, KMeansDefaultRound, clusterer.(*kMeansClusterer).round)

	x := [][]float64{{0, 0}, {1, 1}}
	_, _, err = clusterer.Cluster(x, 0)
	assert.Equal(t, ErrInvalidNumClass, errors.Cause(err))
	_, _, err = clusterer.Cluster(x, 3)
	assert.Equal(t, ErrInvalidNumClass, errors.Cause(err))
	_, _, err = clusterer.Cluster(nil, 1)
	assert.Equal(t, ErrInvalidNumClass, errors.Cause(err))

	_, _, err = clusterer.Cluster([][]float64{{0, 0}, {1}}, 1)
	assert.Error(t, err)
}

func TestNewClustererUnknown(t *testing.T) {
	_, err := NewClusterer(AlgorithmType("dbscan"), 10)
	assert.Equal(t, ErrUnknownAlgorithm, errors.Cause(err))
}
