package app

import (
	"sync"

	"github.com/matst80/learn-finder/pkg/drawer"
	"github.com/matst80/learn-finder/pkg/lists"
	"github.com/matst80/learn-finder/pkg/search"
	"go.uber.org/zap"
)

type Deps struct {
	Searcher search.Searcher
	Lists    lists.ListClient
	Options  search.Options
	Logger   *zap.Logger
}

// App is the state behind one page session: the search controller, the
// drawer history and the user lists.
type App struct {
	mu     sync.RWMutex
	deps   Deps
	search *search.Dispatcher
	drawer *drawer.History
	lists  *lists.Store
}

func New(deps Deps) *App {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	a := &App{deps: deps}
	a.search, a.drawer, a.lists = a.build()
	return a
}

func (a *App) build() (*search.Dispatcher, *drawer.History, *lists.Store) {
	opts := a.deps.Options
	opts.Logger = a.deps.Logger
	return search.NewDispatcher(a.deps.Searcher, opts),
		drawer.NewHistory(),
		lists.NewStore(a.deps.Lists, a.deps.Logger)
}

func (a *App) Search() *search.Dispatcher {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.search
}

func (a *App) Drawer() *drawer.History {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.drawer
}

func (a *App) Lists() *lists.Store {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.lists
}

// Reset replaces every part of the state at once. Responses still in flight
// for the old search controller are discarded with it.
func (a *App) Reset() {
	s, d, l := a.build()
	a.mu.Lock()
	old := a.search
	a.search, a.drawer, a.lists = s, d, l
	a.mu.Unlock()
	old.Close()
}

func (a *App) Close() {
	a.Search().Close()
}
