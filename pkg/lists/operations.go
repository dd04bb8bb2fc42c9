package lists

import (
	"slices"

	"github.com/matst80/learn-finder/pkg/types"
)

type OpKind int

const (
	OpAdd OpKind = iota
	OpMove
	OpRemove
)

func (k OpKind) String() string {
	switch k {
	case OpAdd:
		return "add"
	case OpMove:
		return "move"
	case OpRemove:
		return "remove"
	}
	return "unknown"
}

// Operation is a local change to a list waiting for the server.
type Operation struct {
	id       uint64
	Kind     OpKind
	Item     types.ListItem
	ItemId   int
	Position int
}

// apply returns the items with the operation applied, leaving the input
// untouched. Positions are renumbered to follow slice order.
func (op Operation) apply(items []types.ListItem) []types.ListItem {
	result := slices.Clone(items)
	switch op.Kind {
	case OpAdd:
		exists := slices.ContainsFunc(result, func(i types.ListItem) bool {
			return i.ContentType == op.Item.ContentType && i.ObjectId == op.Item.ObjectId
		})
		if !exists {
			result = append(result, op.Item)
		}
	case OpMove:
		idx := indexOf(result, op.ItemId)
		if idx == -1 {
			break
		}
		item := result[idx]
		result = slices.Delete(result, idx, idx+1)
		pos := max(0, min(op.Position, len(result)))
		result = slices.Insert(result, pos, item)
	case OpRemove:
		if idx := indexOf(result, op.ItemId); idx != -1 {
			result = slices.Delete(result, idx, idx+1)
		}
	}
	for i := range result {
		result[i].Position = i
	}
	return result
}

func indexOf(items []types.ListItem, id int) int {
	return slices.IndexFunc(items, func(i types.ListItem) bool {
		return i.Id == id
	})
}
