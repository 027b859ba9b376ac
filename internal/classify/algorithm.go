package classify

import (
	"fmt"

	"github.com/packagewjx/kmeanspp"
	"github.com/pkg/errors"
)

var (
	ErrInvalidNumClass  = fmt.Errorf("类别数无效")
	ErrUnknownAlgorithm = fmt.Errorf("不支持的聚类算法")
)

type AlgorithmType string

const (
	KMeans = AlgorithmType("kmeans")
)

const (
	KMeansDefaultRound = 30
)

// Clusterer 将标准化后的特征分为numClass类，labels[i]为第i行所属的类
type Clusterer interface {
	Cluster(x [][]float64, numClass int) (centers [][]float64, labels []int, err error)
}

// NewClusterer round不大于0时使用算法的默认轮次
func NewClusterer(algorithmType AlgorithmType, round int) (Clusterer, error) {
	switch algorithmType {
	case KMeans:
		if round <= 0 {
			round = KMeansDefaultRound
		}
		return &kMeansClusterer{round: round}, nil
	default:
		return nil, errors.Wrap(ErrUnknownAlgorithm, string(algorithmType))
	}
}

type kMeansClusterer struct {
	round int
}

func (k *kMeansClusterer) Cluster(x [][]float64, numClass int) ([][]float64, []int, error) {
	if numClass <= 0 || numClass > len(x) {
		return nil, nil, errors.Wrapf(ErrInvalidNumClass, "类别数为%d，应在1到%d之间", numClass, len(x))
	}
	width := len(x[0])
	data := make([][]float32, len(x))
	for i, row := range x {
		if len(row) != width {
			return nil, nil, fmt.Errorf("第%d行有%d列，应为%d列", i, len(row), width)
		}
		data[i] = make([]float32, width)
		for j, v := range row {
			data[i][j] = float32(v)
		}
	}

	centers32, labels := kmeanspp.KMeansPP(numClass, k.round, data)

	centers := make([][]float64, len(centers32))
	for i, c := range centers32 {
		centers[i] = make([]float64, len(c))
		for j, v := range c {
			centers[i][j] = float64(v)
		}
	}
	return centers, labels, nil
}
