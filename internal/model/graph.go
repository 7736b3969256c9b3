package model

import "github.com/ethereum/go-ethereum/common"

// ConflictKind distinguishes a serializing write-write hazard from a
// potentially speculation-resolvable read-write hazard.
type ConflictKind uint8

const (
	WriteWrite ConflictKind = iota
	ReadWrite
)

func (k ConflictKind) String() string {
	if k == WriteWrite {
		return "write-write"
	}
	return "read-write"
}

// Conflict is an edge connecting two transactions through a shared storage
// location.
type Conflict struct {
	TxA      common.Hash
	TxB      common.Hash
	Location StorageLocation
	Kind     ConflictKind
}

// ConflictGraph holds every detected conflict for a batch of transactions.
// Conflicts is the flat edge list; Adjacency gives O(1) neighbor lookup by
// transaction hash.
type ConflictGraph struct {
	Conflicts []Conflict
	Adjacency map[common.Hash][]common.Hash
}

// NewConflictGraph returns an empty graph.
func NewConflictGraph() ConflictGraph {
	return ConflictGraph{Adjacency: make(map[common.Hash][]common.Hash)}
}

// AddConflict records a conflict edge in both the flat list and the
// adjacency index.
func (g *ConflictGraph) AddConflict(c Conflict) {
	g.Adjacency[c.TxA] = append(g.Adjacency[c.TxA], c.TxB)
	g.Adjacency[c.TxB] = append(g.Adjacency[c.TxB], c.TxA)
	g.Conflicts = append(g.Conflicts, c)
}

// HasConflict reports whether txA and txB share a conflict edge.
func (g *ConflictGraph) HasConflict(txA, txB common.Hash) bool {
	for _, n := range g.Adjacency[txA] {
		if n == txB {
			return true
		}
	}
	return false
}

// Len returns the number of conflict edges.
func (g *ConflictGraph) Len() int { return len(g.Conflicts) }

// IsEmpty reports whether the graph has no conflicts.
func (g *ConflictGraph) IsEmpty() bool { return len(g.Conflicts) == 0 }
