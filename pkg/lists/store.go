package lists

import (
	"context"
	"slices"
	"sync"

	"github.com/matst80/learn-finder/pkg/types"
	"go.uber.org/zap"
)

// ListClient is the list mutation transport. Every mutation answers with the
// list as the server sees it after the change.
type ListClient interface {
	GetList(ctx context.Context, listId int) (*types.UserList, error)
	AddItem(ctx context.Context, listId int, item types.ListItem) (*types.UserList, error)
	MoveItem(ctx context.Context, listId, itemId, position int) (*types.UserList, error)
	RemoveItem(ctx context.Context, listId, itemId int) (*types.UserList, error)
}

type listState struct {
	confirmed *types.UserList
	pending   []Operation
}

func (s *listState) view() *types.UserList {
	list := *s.confirmed
	items := s.confirmed.Items
	for _, op := range s.pending {
		items = op.apply(items)
	}
	list.Items = slices.Clone(items)
	list.ItemCount = len(list.Items)
	return &list
}

// Store keeps user lists with local changes applied before the server
// confirms them. The view of a list is the last server state with every
// pending operation replayed on top. A confirmed response replaces the
// server state, whichever response arrives last wins; a failed one just
// drops its operation.
type Store struct {
	mu     sync.Mutex
	client ListClient
	lists  map[int]*listState
	seq    uint64
	logger *zap.Logger
	// OnChange is called outside the lock with the new view of a list.
	OnChange func(listId int, view *types.UserList)
}

func NewStore(client ListClient, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		client: client,
		lists:  make(map[int]*listState),
		logger: logger,
	}
}

// Load fetches the list from the server and keeps pending operations.
func (s *Store) Load(ctx context.Context, listId int) (*types.UserList, error) {
	list, err := s.client.GetList(ctx, listId)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	state := s.stateLocked(listId)
	state.confirmed = list
	view := state.view()
	s.mu.Unlock()
	s.notify(listId, view)
	return view, nil
}

func (s *Store) View(listId int) (*types.UserList, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.lists[listId]
	if !ok {
		return nil, false
	}
	return state.view(), true
}

func (s *Store) Pending(listId int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state, ok := s.lists[listId]; ok {
		return len(state.pending)
	}
	return 0
}

func (s *Store) AddItem(ctx context.Context, listId int, contentType types.ObjectType, objectId int) (*types.UserList, error) {
	if !contentType.IsKnown() {
		return nil, types.NewValidationError("unknown content type %q", contentType)
	}
	op := Operation{Kind: OpAdd, Item: types.ListItem{ContentType: contentType, ObjectId: objectId}}
	return s.run(ctx, listId, op, func(ctx context.Context, op Operation) (*types.UserList, error) {
		item := op.Item
		item.Id = 0
		return s.client.AddItem(ctx, listId, item)
	})
}

func (s *Store) MoveItem(ctx context.Context, listId, itemId, position int) (*types.UserList, error) {
	if position < 0 {
		return nil, types.NewValidationError("position must not be negative, got %d", position)
	}
	op := Operation{Kind: OpMove, ItemId: itemId, Position: position}
	return s.run(ctx, listId, op, func(ctx context.Context, op Operation) (*types.UserList, error) {
		return s.client.MoveItem(ctx, listId, op.ItemId, op.Position)
	})
}

func (s *Store) RemoveItem(ctx context.Context, listId, itemId int) (*types.UserList, error) {
	op := Operation{Kind: OpRemove, ItemId: itemId}
	return s.run(ctx, listId, op, func(ctx context.Context, op Operation) (*types.UserList, error) {
		return s.client.RemoveItem(ctx, listId, op.ItemId)
	})
}

func (s *Store) run(ctx context.Context, listId int, op Operation, send func(context.Context, Operation) (*types.UserList, error)) (*types.UserList, error) {
	s.mu.Lock()
	s.seq++
	op.id = s.seq
	if op.Kind == OpAdd {
		// placeholder until the server assigns an id
		op.Item.Id = -int(op.id)
	}
	state := s.stateLocked(listId)
	state.pending = append(state.pending, op)
	speculative := state.view()
	s.mu.Unlock()
	s.notify(listId, speculative)

	server, err := send(ctx, op)

	s.mu.Lock()
	state = s.stateLocked(listId)
	state.pending = slices.DeleteFunc(state.pending, func(p Operation) bool {
		return p.id == op.id
	})
	if err == nil && server != nil {
		state.confirmed = server
	}
	view := state.view()
	s.mu.Unlock()
	s.notify(listId, view)

	if err != nil {
		s.logger.Warn("list mutation rolled back",
			zap.Int("list", listId),
			zap.Stringer("op", op.Kind),
			zap.Error(err))
		return view, err
	}
	return view, nil
}

func (s *Store) stateLocked(listId int) *listState {
	state, ok := s.lists[listId]
	if !ok {
		state = &listState{confirmed: &types.UserList{Id: listId, ListType: types.UserListType}}
		s.lists[listId] = state
	}
	return state
}

func (s *Store) notify(listId int, view *types.UserList) {
	if s.OnChange != nil {
		s.OnChange(listId, view)
	}
}

// Reset forgets every list, pending operations included.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists = make(map[int]*listState)
}
