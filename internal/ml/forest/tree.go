package forest

import (
	"cmp"
	"math/rand/v2"
	"slices"
)

// Node es un nodo de árbol CART en forma plana.
// Feature < 0 marca una hoja, cuyo Value es la fracción de positivos vista al entrenar.
type Node struct {
	Feature   int     `json:"f"`
	Threshold float64 `json:"t,omitempty"`
	Left      int     `json:"l,omitempty"`
	Right     int     `json:"r,omitempty"`
	Value     float64 `json:"v,omitempty"`
}

func (n Node) IsLeaf() bool { return n.Feature < 0 }

// Tree guarda los nodos en preorden: la raíz es 0 y cada hijo tiene índice mayor que su padre.
type Tree struct {
	Nodes []Node `json:"nodes"`
}

func (t *Tree) predict(x []float64) float64 {
	i := 0
	for {
		n := t.Nodes[i]
		if n.IsLeaf() {
			return n.Value
		}
		if x[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
}

// Depth devuelve la profundidad máxima (una hoja sola = 0).
func (t *Tree) Depth() int {
	var walk func(i int) int
	walk = func(i int) int {
		n := t.Nodes[i]
		if n.IsLeaf() {
			return 0
		}
		return 1 + max(walk(n.Left), walk(n.Right))
	}
	return walk(0)
}

type sample struct {
	v float64
	y int
}

type treeBuilder struct {
	x           [][]float64
	y           []int
	params      Params
	maxFeatures int
	rng         *rand.Rand
	nodes       []Node
	buf         []sample
}

func fitTree(x [][]float64, y []int, idx []int, p Params, maxFeatures int, rng *rand.Rand) Tree {
	b := &treeBuilder{
		x:           x,
		y:           y,
		params:      p,
		maxFeatures: maxFeatures,
		rng:         rng,
		buf:         make([]sample, 0, len(idx)),
	}
	b.build(idx, 0)
	return Tree{Nodes: b.nodes}
}

func (b *treeBuilder) build(idx []int, depth int) int {
	n := len(idx)
	pos := 0
	for _, i := range idx {
		pos += b.y[i]
	}

	id := len(b.nodes)
	b.nodes = append(b.nodes, Node{Feature: -1, Value: float64(pos) / float64(n)})

	if pos == 0 || pos == n {
		return id
	}
	if n < b.params.MinSamplesSplit || n < 2*b.params.MinSamplesLeaf {
		return id
	}
	if b.params.MaxDepth > 0 && depth >= b.params.MaxDepth {
		return id
	}

	feature, threshold, ok := b.bestSplit(idx)
	if !ok {
		return id
	}

	// partición in-place: <= threshold a la izquierda
	k := 0
	for j := range idx {
		if b.x[idx[j]][feature] <= threshold {
			idx[k], idx[j] = idx[j], idx[k]
			k++
		}
	}

	left := b.build(idx[:k], depth+1)
	right := b.build(idx[k:], depth+1)
	b.nodes[id] = Node{Feature: feature, Threshold: threshold, Left: left, Right: right}
	return id
}

// bestSplit evalúa hasta maxFeatures features no constantes (elegidas al azar)
// y devuelve el corte de menor impureza Gini ponderada.
func (b *treeBuilder) bestSplit(idx []int) (int, float64, bool) {
	nFeatures := len(b.x[idx[0]])
	minLeaf := b.params.MinSamplesLeaf

	bestFeature, bestThreshold := -1, 0.0
	bestScore := 0.0
	visited := 0

	for _, f := range b.rng.Perm(nFeatures) {
		if visited >= b.maxFeatures {
			break
		}

		b.buf = b.buf[:0]
		for _, i := range idx {
			b.buf = append(b.buf, sample{v: b.x[i][f], y: b.y[i]})
		}
		slices.SortFunc(b.buf, func(a, c sample) int { return cmp.Compare(a.v, c.v) })

		if b.buf[0].v == b.buf[len(b.buf)-1].v {
			continue
		}
		visited++

		n := len(b.buf)
		totalPos := 0
		for _, s := range b.buf {
			totalPos += s.y
		}

		leftPos := 0
		for j := 0; j < n-1; j++ {
			leftPos += b.buf[j].y
			if b.buf[j].v == b.buf[j+1].v {
				continue
			}
			nl, nr := j+1, n-j-1
			if nl < minLeaf || nr < minLeaf {
				continue
			}
			score := weightedGini(nl, leftPos) + weightedGini(nr, totalPos-leftPos)
			if bestFeature < 0 || score < bestScore {
				bestFeature = f
				bestThreshold = b.buf[j].v + (b.buf[j+1].v-b.buf[j].v)/2
				if bestThreshold >= b.buf[j+1].v {
					bestThreshold = b.buf[j].v
				}
				bestScore = score
			}
		}
	}

	return bestFeature, bestThreshold, bestFeature >= 0
}

// weightedGini = n * gini(p) con gini binario 2p(1-p).
func weightedGini(n, pos int) float64 {
	p := float64(pos) / float64(n)
	return float64(n) * 2 * p * (1 - p)
}
