package regress

import (
	"math/rand"
	"sync"

	"github.com/pkg/errors"
)

const (
	DefaultNumTrees = 100
	DefaultSeed     = 42
)

// Forest 随机森林回归。每棵树使用独立的随机源进行有放回抽样，结果与调度顺序无关
type Forest struct {
	NumTrees int
	Seed     int64
	MaxDepth int
	Trees    []*Tree
}

func NewForest(numTrees int, seed int64) *Forest {
	return &Forest{NumTrees: numTrees, Seed: seed}
}

func Default() *Forest {
	return NewForest(DefaultNumTrees, DefaultSeed)
}

func (f *Forest) Fit(x [][]float64, y []float64) error {
	if err := checkInput(x, y); err != nil {
		return err
	}
	if f.NumTrees <= 0 {
		return errors.New("树的数量必须大于0")
	}

	trees := make([]*Tree, f.NumTrees)
	errs := make([]error, f.NumTrees)
	wg := sync.WaitGroup{}
	for i := 0; i < f.NumTrees; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rnd := rand.New(rand.NewSource(f.Seed + int64(i)))
			samples := make([]int, len(x))
			for j := range samples {
				samples[j] = rnd.Intn(len(x))
			}
			tree := NewTree(f.MaxDepth)
			errs[i] = tree.Fit(x, y, samples)
			trees[i] = tree
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return errors.Wrapf(err, "训练第%d棵树失败", i)
		}
	}
	f.Trees = trees
	return nil
}

// Predict 返回所有树预测值的平均值
func (f *Forest) Predict(x []float64) (float64, error) {
	if len(f.Trees) == 0 {
		return 0, errors.New("模型尚未训练")
	}
	sum := 0.0
	for _, tree := range f.Trees {
		sum += tree.Predict(x)
	}
	return sum / float64(len(f.Trees)), nil
}
