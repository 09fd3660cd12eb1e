// Package quadtree implements a growable sparse grid built from 8×8 blocks.
//
// Nodes and leaf blocks live in two arenas and refer to each other by index.
// Every node keeps its origin in global coordinates, so growing the tree only
// allocates a new root and points one of its edges at the old root; nothing
// below it moves.
package quadtree

import (
	"fmt"
	"image"
	"iter"
	"math"

	"lifesim/internal/block"
	"lifesim/internal/core"
)

// EdgeKind tags what an Edge holds.
type EdgeKind uint8

const (
	// EdgeEmpty is a quadrant with no storage yet. It reads as dead.
	EdgeEmpty EdgeKind = iota
	// EdgeLeaf points at a block in the leaf arena.
	EdgeLeaf
	// EdgeChild points at a deeper node in the node arena.
	EdgeChild
)

func (k EdgeKind) String() string {
	switch k {
	case EdgeLeaf:
		return "leaf"
	case EdgeChild:
		return "child"
	default:
		return "empty"
	}
}

// Edge is one quadrant slot of a node.
type Edge struct {
	Kind  EdgeKind
	Index int32
}

// Quadrant indexes the four edges of a node. Bit 0 selects the right half,
// bit 1 the bottom half.
type Quadrant uint8

const (
	TopLeft Quadrant = iota
	TopRight
	BottomLeft
	BottomRight
)

const (
	quadRight  Quadrant = 1
	quadBottom Quadrant = 2
)

// initialSize is the width and height of a fresh root: two blocks across.
const initialSize = 2 * block.Size

// maxSpan is the widest root that may still double. Origins never lie further
// than one root width from zero, so the doubled extent stays within int.
const maxSpan = math.MaxInt / 4

// noParent marks the root node.
const noParent int32 = -1

type node struct {
	x, y          int
	width, height int
	parent        int32
	edges         [4]Edge
}

func (n *node) contains(x, y int) bool {
	return x >= n.x && x < n.x+n.width && y >= n.y && y < n.y+n.height
}

// quadrant returns the quadrant holding (x, y) and that quadrant's origin.
func (n *node) quadrant(x, y int) (Quadrant, int, int) {
	hw, hh := n.width/2, n.height/2
	q := TopLeft
	qx, qy := n.x, n.y
	if x >= n.x+hw {
		q |= quadRight
		qx += hw
	}
	if y >= n.y+hh {
		q |= quadBottom
		qy += hh
	}
	return q, qx, qy
}

// QuadTree is a sparse cell store that grows in any direction on demand.
// Get is safe for concurrent use with other Gets; Set is not.
type QuadTree struct {
	nodes  []node
	leaves []block.Block
	root   int32
}

// New returns an empty 16×16 tree anchored at the origin.
func New() *QuadTree {
	t := &QuadTree{}
	t.reset()
	return t
}

func (t *QuadTree) reset() {
	t.nodes = t.nodes[:0]
	t.leaves = t.leaves[:0]
	t.root = t.newNode(noParent, 0, 0, initialSize, initialSize)
}

func (t *QuadTree) newNode(parent int32, x, y, w, h int) int32 {
	t.nodes = append(t.nodes, node{x: x, y: y, width: w, height: h, parent: parent})
	return int32(len(t.nodes) - 1)
}

// Extent returns the region currently covered by the tree.
func (t *QuadTree) Extent() image.Rectangle {
	r := &t.nodes[t.root]
	return image.Rect(r.x, r.y, r.x+r.width, r.y+r.height)
}

// Nodes returns the number of allocated nodes, root included.
func (t *QuadTree) Nodes() int { return len(t.nodes) }

// Leaves returns the number of materialized blocks.
func (t *QuadTree) Leaves() int { return len(t.leaves) }

// Get reports whether (x, y) is alive. Points outside the extent are dead.
func (t *QuadTree) Get(x, y int) bool {
	n := &t.nodes[t.root]
	if !n.contains(x, y) {
		return false
	}
	for {
		q, qx, qy := n.quadrant(x, y)
		e := n.edges[q]
		switch e.Kind {
		case EdgeLeaf:
			return t.leaves[e.Index].Get(x-qx, y-qy)
		case EdgeChild:
			n = &t.nodes[e.Index]
		default:
			return false
		}
	}
}

// Set stores alive at (x, y), growing the tree until it covers the point.
func (t *QuadTree) Set(x, y int, alive bool) {
	for !t.nodes[t.root].contains(x, y) {
		t.grow(x, y)
	}
	idx := t.root
	for {
		q, qx, qy := t.nodes[idx].quadrant(x, y)
		e := t.nodes[idx].edges[q]
		if e.Kind == EdgeEmpty {
			if !alive {
				return
			}
			e = t.materialize(idx, q, qx, qy)
		}
		if e.Kind == EdgeChild {
			idx = e.Index
			continue
		}
		t.setLeaf(e, x-qx, y-qy, alive)
		return
	}
}

func (t *QuadTree) setLeaf(e Edge, x, y int, alive bool) {
	if e.Kind != EdgeLeaf {
		panic(fmt.Sprintf("quadtree: write through %s edge", e.Kind))
	}
	t.leaves[e.Index].Set(x, y, alive)
}

// materialize replaces the empty quadrant q of node idx with storage: a block
// when the quadrant is one block across, a child node otherwise.
func (t *QuadTree) materialize(idx int32, q Quadrant, qx, qy int) Edge {
	hw, hh := t.nodes[idx].width/2, t.nodes[idx].height/2
	var e Edge
	if hw <= block.Size && hh <= block.Size {
		t.leaves = append(t.leaves, 0)
		e = Edge{Kind: EdgeLeaf, Index: int32(len(t.leaves) - 1)}
	} else {
		e = Edge{Kind: EdgeChild, Index: t.newNode(idx, qx, qy, hw, hh)}
	}
	t.nodes[idx].edges[q] = e
	return e
}

// grow doubles the tree toward (x, y). The old root becomes the quadrant of
// the new root facing away from the point: top-left when the point lies past
// the positive extent, right and/or bottom when it lies before the origin.
// Points beyond the addressable range panic.
func (t *QuadTree) grow(x, y int) {
	old := t.nodes[t.root]
	if old.width > maxSpan || old.height > maxSpan {
		panic(fmt.Sprintf("quadtree: (%d,%d) is beyond the addressable range", x, y))
	}
	nx, ny := old.x, old.y
	q := TopLeft
	if x < old.x {
		nx -= old.width
		q |= quadRight
	}
	if y < old.y {
		ny -= old.height
		q |= quadBottom
	}
	r := t.newNode(noParent, nx, ny, old.width*2, old.height*2)
	t.nodes[r].edges[q] = Edge{Kind: EdgeChild, Index: t.root}
	t.nodes[t.root].parent = r
	t.root = r
}

// Reserve grows the tree until it covers [0,size.W)×[0,size.H).
func (t *QuadTree) Reserve(size core.Size) {
	if size.W <= 0 || size.H <= 0 {
		return
	}
	for !t.nodes[t.root].contains(size.W-1, size.H-1) {
		t.grow(size.W-1, size.H-1)
	}
}

// All yields the cells of [0,size.W)×[0,size.H) in row-major order.
func (t *QuadTree) All(size core.Size) iter.Seq[bool] {
	return core.Cells(t, size)
}

// Population returns the number of live cells in the tree.
func (t *QuadTree) Population() int {
	n := 0
	for _, b := range t.leaves {
		n += b.Count()
	}
	return n
}

// Clear drops all storage and returns the tree to its initial extent.
func (t *QuadTree) Clear() { t.reset() }

func init() {
	core.Register("quadtree", func(size core.Size) core.Store {
		t := New()
		t.Reserve(size)
		return t
	})
}
