package app

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/matst80/learn-finder/pkg/drawer"
	"github.com/matst80/learn-finder/pkg/search"
	"github.com/matst80/learn-finder/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSearcher struct {
	mu    sync.Mutex
	calls int
}

func (s *stubSearcher) Search(ctx context.Context, req types.SearchRequest) (*types.SearchResultPage, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return &types.SearchResultPage{
		Items: []types.Resource{&types.Course{Id: 1, Title: "Intro"}},
		Total: 1,
	}, nil
}

type stubLists struct{}

func (stubLists) GetList(ctx context.Context, listId int) (*types.UserList, error) {
	return &types.UserList{Id: listId}, nil
}

func (stubLists) AddItem(ctx context.Context, listId int, item types.ListItem) (*types.UserList, error) {
	item.Id = 1
	return &types.UserList{Id: listId, Items: []types.ListItem{item}, ItemCount: 1}, nil
}

func (stubLists) MoveItem(ctx context.Context, listId, itemId, position int) (*types.UserList, error) {
	return &types.UserList{Id: listId}, nil
}

func (stubLists) RemoveItem(ctx context.Context, listId, itemId int) (*types.UserList, error) {
	return &types.UserList{Id: listId}, nil
}

func newApp() *App {
	return New(Deps{
		Searcher: &stubSearcher{},
		Lists:    stubLists{},
		Options:  search.Options{Delay: time.Millisecond},
	})
}

func TestResetReplacesEverything(t *testing.T) {
	a := newApp()
	defer a.Close()

	a.Search().SetText("physics")
	a.Search().Flush()
	a.Search().Wait()
	a.Drawer().Push(drawer.Frame{ObjectId: "1", ObjectType: types.CourseType})
	_, err := a.Lists().AddItem(context.Background(), 3, types.CourseType, 1)
	require.NoError(t, err)

	before := a.Search()
	a.Reset()

	assert.NotSame(t, before, a.Search())
	snap := a.Search().Snapshot()
	assert.Equal(t, search.StateIdle, snap.State)
	assert.Empty(t, snap.Text)
	assert.Empty(t, snap.Results)
	assert.Equal(t, 0, a.Drawer().Len())
	_, ok := a.Lists().View(3)
	assert.False(t, ok)
}

func TestSearchThroughApp(t *testing.T) {
	a := newApp()
	defer a.Close()

	a.Search().SetText("intro")
	a.Search().Flush()
	a.Search().Wait()

	snap := a.Search().Snapshot()
	assert.Equal(t, search.StateSuccess, snap.State)
	assert.Len(t, snap.Results, 1)
}
