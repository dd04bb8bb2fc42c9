package lists

import (
	"context"
	"slices"
	"sync"
	"testing"

	"github.com/matst80/learn-finder/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryClient behaves like the list API, optionally holding a call until
// released or failing it.
type memoryClient struct {
	mu     sync.Mutex
	list   types.UserList
	nextId int
	gate   chan struct{}
	fail   error
}

func newMemoryClient(items ...types.ListItem) *memoryClient {
	c := &memoryClient{list: types.UserList{Id: 1, Title: "favorites", ListType: types.UserListType}, nextId: 100}
	c.list.Items = items
	c.list.ItemCount = len(items)
	return c
}

func (c *memoryClient) wait(ctx context.Context) error {
	c.mu.Lock()
	gate, fail := c.gate, c.fail
	c.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return fail
}

func (c *memoryClient) snapshot() *types.UserList {
	list := c.list
	list.Items = slices.Clone(c.list.Items)
	list.ItemCount = len(list.Items)
	return &list
}

func (c *memoryClient) GetList(ctx context.Context, listId int) (*types.UserList, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot(), nil
}

func (c *memoryClient) AddItem(ctx context.Context, listId int, item types.ListItem) (*types.UserList, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextId++
	item.Id = c.nextId
	c.list.Items = Operation{Kind: OpAdd, Item: item}.apply(c.list.Items)
	return c.snapshot(), nil
}

func (c *memoryClient) MoveItem(ctx context.Context, listId, itemId, position int) (*types.UserList, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.list.Items = Operation{Kind: OpMove, ItemId: itemId, Position: position}.apply(c.list.Items)
	return c.snapshot(), nil
}

func (c *memoryClient) RemoveItem(ctx context.Context, listId, itemId int) (*types.UserList, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.list.Items = Operation{Kind: OpRemove, ItemId: itemId}.apply(c.list.Items)
	return c.snapshot(), nil
}

func itemIds(list *types.UserList) []int {
	result := make([]int, len(list.Items))
	for i, item := range list.Items {
		result[i] = item.Id
	}
	return result
}

func seedItems() []types.ListItem {
	return []types.ListItem{
		{Id: 1, Position: 0, ContentType: types.CourseType, ObjectId: 10},
		{Id: 2, Position: 1, ContentType: types.VideoType, ObjectId: 20},
		{Id: 3, Position: 2, ContentType: types.ProgramType, ObjectId: 30},
	}
}

func TestAddItemIsVisibleBeforeServerConfirms(t *testing.T) {
	client := newMemoryClient(seedItems()...)
	store := NewStore(client, nil)
	_, err := store.Load(context.Background(), 1)
	require.NoError(t, err)

	client.gate = make(chan struct{})
	done := make(chan error, 1)
	go func() {
		_, err := store.AddItem(context.Background(), 1, types.PodcastType, 40)
		done <- err
	}()

	require.Eventually(t, func() bool { return store.Pending(1) == 1 }, timeout, tick)
	view, ok := store.View(1)
	require.True(t, ok)
	assert.Len(t, view.Items, 4)
	assert.Less(t, view.Items[3].Id, 0, "speculative items carry a placeholder id")

	close(client.gate)
	require.NoError(t, <-done)

	view, _ = store.View(1)
	assert.Equal(t, []int{1, 2, 3, 101}, itemIds(view))
	assert.Equal(t, 4, view.ItemCount)
	assert.Equal(t, 0, store.Pending(1))
}

func TestFailedMutationRollsBack(t *testing.T) {
	client := newMemoryClient(seedItems()...)
	store := NewStore(client, nil)
	_, err := store.Load(context.Background(), 1)
	require.NoError(t, err)

	client.fail = types.ErrNotAuthorized
	view, err := store.RemoveItem(context.Background(), 1, 2)
	assert.ErrorIs(t, err, types.ErrNotAuthorized)
	assert.Equal(t, []int{1, 2, 3}, itemIds(view))
}

func TestMoveItem(t *testing.T) {
	client := newMemoryClient(seedItems()...)
	store := NewStore(client, nil)
	_, err := store.Load(context.Background(), 1)
	require.NoError(t, err)

	view, err := store.MoveItem(context.Background(), 1, 3, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1, 2}, itemIds(view))
	for i, item := range view.Items {
		assert.Equal(t, i, item.Position)
	}

	_, err = store.MoveItem(context.Background(), 1, 3, -1)
	assert.ErrorIs(t, err, types.ErrValidation)
}

func TestServerStateWins(t *testing.T) {
	client := newMemoryClient(seedItems()...)
	store := NewStore(client, nil)
	_, err := store.Load(context.Background(), 1)
	require.NoError(t, err)

	// another device removed an item behind our back
	client.mu.Lock()
	client.list.Items = client.list.Items[:1]
	client.mu.Unlock()

	view, err := store.AddItem(context.Background(), 1, types.VideoType, 99)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 101}, itemIds(view))
}

func TestOnChangeSeesBothPhases(t *testing.T) {
	client := newMemoryClient(seedItems()...)
	store := NewStore(client, nil)
	var views []*types.UserList
	store.OnChange = func(_ int, view *types.UserList) {
		views = append(views, view)
	}
	_, err := store.RemoveItem(context.Background(), 1, 1)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Empty(t, views[0].Items, "unloaded lists start empty")
	assert.Equal(t, []int{2, 3}, itemIds(views[1]))
}

func TestAddUnknownType(t *testing.T) {
	store := NewStore(newMemoryClient(), nil)
	_, err := store.AddItem(context.Background(), 1, types.ObjectType("spaceship"), 1)
	assert.Equal(t, types.KindValidation, types.KindOf(err))
}
