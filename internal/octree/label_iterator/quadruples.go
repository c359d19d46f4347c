package label_iterator

import (
	"sort"
	"sync"
)

// Largest lattice distance reachable by the frustum traversal
const maximumQuadrupleRadius = 64

// Integer offset i >= j >= k >= 0 with its squared length
type quadruple struct {
	r2      int
	i, j, k int
}

var (
	quadrupleTable []quadruple
	quadrupleOnce  sync.Once
)

// All offsets up to maximumQuadrupleRadius, sorted by squared length then lexicographically
func quadruples() []quadruple {
	quadrupleOnce.Do(func() {
		maxR2 := maximumQuadrupleRadius * maximumQuadrupleRadius
		for i := 0; i <= maximumQuadrupleRadius; i++ {
			for j := 0; j <= i; j++ {
				for k := 0; k <= j; k++ {
					r2 := i*i + j*j + k*k
					if r2 > maxR2 {
						break
					}
					quadrupleTable = append(quadrupleTable, quadruple{r2: r2, i: i, j: j, k: k})
				}
			}
		}
		sort.Slice(quadrupleTable, func(a, b int) bool {
			qa, qb := quadrupleTable[a], quadrupleTable[b]
			if qa.r2 != qb.r2 {
				return qa.r2 < qb.r2
			}
			if qa.i != qb.i {
				return qa.i < qb.i
			}
			if qa.j != qb.j {
				return qa.j < qb.j
			}
			return qa.k < qb.k
		})
	})
	return quadrupleTable
}

// Orders in which the three components of a quadruple are laid on the x, y and z axes
var permutationOrders = [6][3]int{
	{0, 1, 2},
	{0, 2, 1},
	{1, 2, 0},
	{1, 0, 2},
	{2, 0, 1},
	{2, 1, 0},
}

// Distinct axis assignments of a quadruple, in permutationOrders order
func (q quadruple) permutations() [][3]int {
	v := [3]int{q.i, q.j, q.k}
	out := make([][3]int, 0, 6)
	for _, order := range permutationOrders {
		p := [3]int{v[order[0]], v[order[1]], v[order[2]]}
		duplicate := false
		for _, seen := range out {
			if seen == p {
				duplicate = true
				break
			}
		}
		if !duplicate {
			out = append(out, p)
		}
	}
	return out
}

// Applies the sign flip encoded in the low 3 bits of sign. False when a zero component
// would be flipped, since that repeats the unflipped offset.
func flipSigns(p [3]int, sign int) ([3]int, bool) {
	for axis := 0; axis < 3; axis++ {
		if sign&(1<<uint(axis)) == 0 {
			continue
		}
		if p[axis] == 0 {
			return p, false
		}
		p[axis] = -p[axis]
	}
	return p, true
}
