package regress

import (
	"fmt"
	"sort"
)

// MinSamplesSplit 节点样本数少于该值时不再分裂
const MinSamplesSplit = 2

// Node 为树中的一个节点。叶子节点的Left与Right为-1
type Node struct {
	Feature   int
	Threshold float64
	Left      int
	Right     int
	Value     float64
}

func (n *Node) IsLeaf() bool {
	return n.Left < 0
}

// Tree CART回归树，以均方误差作为分裂标准，节点按数组存放以便序列化
type Tree struct {
	Nodes []Node
	// MaxDepth 为0时不限制深度
	MaxDepth int
}

func NewTree(maxDepth int) *Tree {
	return &Tree{MaxDepth: maxDepth}
}

// Fit 使用samples指定的行训练。samples可以重复，为nil时使用所有行
func (t *Tree) Fit(x [][]float64, y []float64, samples []int) error {
	if err := checkInput(x, y); err != nil {
		return err
	}
	if samples == nil {
		samples = make([]int, len(x))
		for i := range samples {
			samples[i] = i
		}
	}
	if len(samples) == 0 {
		return fmt.Errorf("训练样本为空")
	}
	t.Nodes = make([]Node, 0)
	b := &builder{x: x, y: y, tree: t, numFeatures: len(x[0])}
	b.build(samples, 0)
	return nil
}

func (t *Tree) Predict(x []float64) float64 {
	if len(t.Nodes) == 0 {
		return 0
	}
	node := &t.Nodes[0]
	for !node.IsLeaf() {
		if x[node.Feature] <= node.Threshold {
			node = &t.Nodes[node.Left]
		} else {
			node = &t.Nodes[node.Right]
		}
	}
	return node.Value
}

func (t *Tree) Depth() int {
	if len(t.Nodes) == 0 {
		return 0
	}
	var depth func(i int) int
	depth = func(i int) int {
		n := &t.Nodes[i]
		if n.IsLeaf() {
			return 0
		}
		l, r := depth(n.Left), depth(n.Right)
		if l > r {
			return l + 1
		}
		return r + 1
	}
	return depth(0)
}

func checkInput(x [][]float64, y []float64) error {
	if len(x) == 0 {
		return fmt.Errorf("训练数据为空")
	}
	if len(x) != len(y) {
		return fmt.Errorf("特征行数%d与目标行数%d不一致", len(x), len(y))
	}
	for i, row := range x {
		if len(row) != len(x[0]) {
			return fmt.Errorf("第%d行特征数量为%d，应为%d", i, len(row), len(x[0]))
		}
	}
	return nil
}

type builder struct {
	x           [][]float64
	y           []float64
	tree        *Tree
	numFeatures int
}

type split struct {
	feature   int
	threshold float64
	sse       float64
	left      []int
	right     []int
}

// build 返回新节点的下标
func (b *builder) build(samples []int, depth int) int {
	sum := 0.0
	for _, s := range samples {
		sum += b.y[s]
	}
	idx := len(b.tree.Nodes)
	b.tree.Nodes = append(b.tree.Nodes, Node{Left: -1, Right: -1, Value: sum / float64(len(samples))})

	if len(samples) < MinSamplesSplit || b.pure(samples) {
		return idx
	}
	if b.tree.MaxDepth > 0 && depth >= b.tree.MaxDepth {
		return idx
	}
	best := b.bestSplit(samples)
	if best == nil {
		return idx
	}

	left := b.build(best.left, depth+1)
	right := b.build(best.right, depth+1)
	node := &b.tree.Nodes[idx]
	node.Feature = best.feature
	node.Threshold = best.threshold
	node.Left = left
	node.Right = right
	return idx
}

func (b *builder) pure(samples []int) bool {
	first := b.y[samples[0]]
	for _, s := range samples[1:] {
		if b.y[s] != first {
			return false
		}
	}
	return true
}

// bestSplit 遍历所有特征，找到使左右子节点平方误差之和最小的阈值。无法分裂时返回nil
func (b *builder) bestSplit(samples []int) *split {
	n := len(samples)
	sorted := make([]int, n)
	var best *split

	totalSum, totalSq := 0.0, 0.0
	for _, s := range samples {
		totalSum += b.y[s]
		totalSq += b.y[s] * b.y[s]
	}

	for f := 0; f < b.numFeatures; f++ {
		copy(sorted, samples)
		sort.SliceStable(sorted, func(i, j int) bool {
			return b.x[sorted[i]][f] < b.x[sorted[j]][f]
		})

		leftSum, leftSq := 0.0, 0.0
		for i := 0; i < n-1; i++ {
			v := b.y[sorted[i]]
			leftSum += v
			leftSq += v * v
			cur, next := b.x[sorted[i]][f], b.x[sorted[i+1]][f]
			if cur == next {
				continue
			}
			nl, nr := float64(i+1), float64(n-i-1)
			rightSum, rightSq := totalSum-leftSum, totalSq-leftSq
			sse := (leftSq - leftSum*leftSum/nl) + (rightSq - rightSum*rightSum/nr)
			if best == nil || sse < best.sse {
				if best == nil {
					best = &split{}
				}
				best.feature = f
				best.threshold = (cur + next) / 2
				best.sse = sse
			}
		}
	}
	if best == nil {
		return nil
	}

	best.left = make([]int, 0)
	best.right = make([]int, 0)
	for _, s := range samples {
		if b.x[s][best.feature] <= best.threshold {
			best.left = append(best.left, s)
		} else {
			best.right = append(best.right, s)
		}
	}
	// 中点因浮点精度与某侧取值相同时放弃分裂
	if len(best.left) == 0 || len(best.right) == 0 {
		return nil
	}
	return best
}
