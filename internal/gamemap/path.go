package gamemap

import (
	"container/heap"

	"goatkeeper/internal/vecmath"
)

// cardinal neighbour offsets, in the order they are expanded.
var neighbours = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

type openNode struct {
	idx   int
	f, g  float64
	order int
}

// openSet is a min-heap on f, ties broken by insertion order so equal
// cost routes always resolve the same way.
type openSet []openNode

func (o openSet) Len() int { return len(o) }

func (o openSet) Less(i, j int) bool {
	if o[i].f != o[j].f {
		return o[i].f < o[j].f
	}
	return o[i].order < o[j].order
}

func (o openSet) Swap(i, j int) { o[i], o[j] = o[j], o[i] }

func (o *openSet) Push(x any) { *o = append(*o, x.(openNode)) }

func (o *openSet) Pop() any {
	old := *o
	n := old[len(old)-1]
	*o = old[:len(old)-1]
	return n
}

// FindPath runs A* between the cells nearest to from and to. The result
// lists cell centres from the start cell to the goal cell inclusive. It
// reports false when either end is outside the map or blocked, or when
// no route exists.
func (m *GameMap) FindPath(from, to vecmath.Vec3) ([]vecmath.Vec3, bool) {
	sx, sy, ok := m.WorldToCell(from)
	if !ok || !m.IsWalkable(sx, sy) {
		return nil, false
	}
	gx, gy, ok := m.WorldToCell(to)
	if !ok || !m.IsWalkable(gx, gy) {
		return nil, false
	}

	n := m.Width * m.Height
	start, goal := sy*m.Width+sx, gy*m.Width+gx
	parent := make([]int, n)
	cost := make([]float64, n)
	closed := make([]bool, n)
	for i := range parent {
		parent[i] = -1
		cost[i] = -1
	}

	h := func(idx int) float64 {
		x, y := idx%m.Width, idx/m.Width
		return float64(abs(x-gx)+abs(y-gy)) * m.NodeSize
	}

	open := &openSet{{idx: start, f: h(start)}}
	cost[start] = 0
	order := 1
	for open.Len() > 0 {
		cur := heap.Pop(open).(openNode)
		if closed[cur.idx] {
			continue
		}
		if cur.idx == goal {
			return m.unwind(parent, goal), true
		}
		closed[cur.idx] = true
		cx, cy := cur.idx%m.Width, cur.idx/m.Width
		for _, d := range neighbours {
			nx, ny := cx+d[0], cy+d[1]
			if !m.IsWalkable(nx, ny) {
				continue
			}
			ni := ny*m.Width + nx
			if closed[ni] {
				continue
			}
			g := cost[cur.idx] + m.NodeSize
			if cost[ni] >= 0 && g >= cost[ni] {
				continue
			}
			cost[ni] = g
			parent[ni] = cur.idx
			heap.Push(open, openNode{idx: ni, g: g, f: g + h(ni), order: order})
			order++
		}
	}
	return nil, false
}

func (m *GameMap) unwind(parent []int, goal int) []vecmath.Vec3 {
	var rev []int
	for i := goal; i >= 0; i = parent[i] {
		rev = append(rev, i)
	}
	path := make([]vecmath.Vec3, len(rev))
	for i, idx := range rev {
		path[len(rev)-1-i] = m.CellToWorld(idx%m.Width, idx/m.Width)
	}
	return path
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
