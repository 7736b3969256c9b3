// Package conflict is the Conflict Analyzer: it builds a ConflictGraph from
// a batch's access lists, then aggregates the graph's edges into
// ContentionEvents scored by conflict density.
package conflict

import (
	"github.com/ethereum/go-ethereum/common"

	"github.com/selcukyildirim/argus-core/internal/model"
)

type accessor struct {
	tx   common.Hash
	mode model.AccessMode
}

// BuildGraph builds a ConflictGraph from a batch of access lists.
//
// Two phases: first a reverse index of every (location -> accessors),
// built in one pass over the input; then, for each location touched by two
// or more transactions, a pairwise scan emitting one conflict edge per pair
// where at least one side is a write. Two reads of the same location never
// conflict -- they can always run in either order.
func BuildGraph(lists []model.AccessList) model.ConflictGraph {
	graph := model.NewConflictGraph()

	index := make(map[model.StorageLocation][]accessor)
	for _, al := range lists {
		for _, e := range al.Entries {
			index[e.Location] = append(index[e.Location], accessor{tx: al.TxHash, mode: e.Mode})
		}
	}

	for location, accessors := range index {
		if len(accessors) < 2 {
			continue
		}
		for i := 0; i < len(accessors); i++ {
			for j := i + 1; j < len(accessors); j++ {
				kind, ok := classify(accessors[i].mode, accessors[j].mode)
				if !ok {
					continue
				}
				graph.AddConflict(model.Conflict{
					TxA:      accessors[i].tx,
					TxB:      accessors[j].tx,
					Location: location,
					Kind:     kind,
				})
			}
		}
	}

	return graph
}

func classify(a, b model.AccessMode) (model.ConflictKind, bool) {
	switch {
	case a == model.Write && b == model.Write:
		return model.WriteWrite, true
	case a == model.Write || b == model.Write:
		return model.ReadWrite, true
	default:
		return 0, false
	}
}
