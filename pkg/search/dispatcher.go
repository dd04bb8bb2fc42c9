package search

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/matst80/learn-finder/pkg/facet"
	"github.com/matst80/learn-finder/pkg/types"
	"go.uber.org/zap"
)

const (
	DefaultDelay   = 500 * time.Millisecond
	DefaultTimeout = 30 * time.Second
)

// State is the search phase. Success and Error are idle phases that keep
// the outcome of the last search; a new edit or LoadMore leaves them the same
// way it leaves Idle.
type State int

const (
	StateIdle State = iota
	StateSearching
	StateSuccess
	StateError
)

func (s State) String() string {
	switch s {
	case StateSearching:
		return "searching"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	}
	return "idle"
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Settled reports whether no search is in flight.
func (s State) Settled() bool {
	return s != StateSearching
}

// Searcher is the search transport.
type Searcher interface {
	Search(ctx context.Context, req types.SearchRequest) (*types.SearchResultPage, error)
}

type Timer interface {
	Stop() bool
}

type AfterFunc func(d time.Duration, f func()) Timer

func timeAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

type Options struct {
	Delay    time.Duration
	Timeout  time.Duration
	PageSize int
	Scope    Scope
	Channel  string
	// AfterFunc schedules the debounce timer, time.AfterFunc when nil.
	AfterFunc AfterFunc
	Logger    *zap.Logger
	// OnSettled is called outside the lock after every accepted response.
	OnSettled func(Snapshot)
}

// Snapshot is a copy of the dispatcher state safe to hand to other
// goroutines.
type Snapshot struct {
	Generation      uint64                      `json:"generation"`
	State           State                       `json:"state"`
	Text            string                      `json:"text"`
	ActiveFacets    types.ActiveFacets          `json:"activeFacets"`
	Params          string                      `json:"params"`
	Query           *types.SearchQuery          `json:"query,omitempty"`
	Results         []types.Resource            `json:"-"`
	Total           int                         `json:"total"`
	Offset          int                         `json:"offset"`
	HasMore         bool                        `json:"hasMore"`
	Facets          map[string]types.FacetGroup `json:"facets"`
	Suggestions     []string                    `json:"suggest,omitempty"`
	ErrorKind       types.ErrorKind             `json:"-"`
	Error           string                      `json:"error,omitempty"`
	ValidationError string                      `json:"validationError,omitempty"`
}

// Dispatcher owns the state of one search page: what the user has selected,
// what was last sent upstream, and the results accumulated for it.
//
// Edits are debounced. Every request carries a generation and only the
// response for the current generation is applied.
type Dispatcher struct {
	mu       sync.Mutex
	searcher Searcher
	opts     Options
	logger   *zap.Logger
	ctx      context.Context
	cancel   context.CancelFunc
	inflight sync.WaitGroup

	text   string
	facets types.ActiveFacets
	sort   *types.SortOrder

	timer    Timer
	timerSeq uint64

	generation    uint64
	state         State
	dispatched    *types.SearchQuery
	offset        int
	results       []types.Resource
	total         int
	page          *types.SearchResultPage
	err           error
	validationErr error

	settleMu    sync.Mutex
	lastSettled uint64
}

func NewDispatcher(searcher Searcher, opts Options) *Dispatcher {
	if opts.Delay <= 0 {
		opts.Delay = DefaultDelay
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.PageSize <= 0 {
		opts.PageSize = types.DefaultPageSize
	}
	if opts.AfterFunc == nil {
		opts.AfterFunc = timeAfterFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Dispatcher{
		searcher: searcher,
		opts:     opts,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
		facets:   types.ActiveFacets{},
		state:    StateIdle,
	}
}

func (d *Dispatcher) SetText(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.text = text
	d.scheduleLocked()
}

// ToggleFacet ignores groups outside types.KnownFacetGroups, they cannot be
// searched on or restored from the address bar.
func (d *Dispatcher) ToggleFacet(group, value string, enabled bool) {
	if !types.IsKnownFacetGroup(group) {
		d.logger.Debug("ignoring unknown facet group", zap.String("group", group))
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.facets = facet.Toggle(d.facets, group, value, enabled)
	d.scheduleLocked()
}

func (d *Dispatcher) SetFacets(active types.ActiveFacets) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.facets = active.Known().Canonical()
	d.scheduleLocked()
}

// SetParams restores text and facets at once, e.g. from the address bar.
func (d *Dispatcher) SetParams(text string, active types.ActiveFacets) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.text = text
	d.facets = active.Known().Canonical()
	d.scheduleLocked()
}

func (d *Dispatcher) SetSort(sort *types.SortOrder) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sort = sort
	d.scheduleLocked()
}

// ClearAll empties every facet group and the free text.
func (d *Dispatcher) ClearAll() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.text = ""
	d.facets = facet.Clear()
	d.scheduleLocked()
}

// Flush fires a pending debounce timer right away.
func (d *Dispatcher) Flush() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer == nil {
		return
	}
	d.timer.Stop()
	d.timer = nil
	// a timer that already fired must not dispatch again
	d.timerSeq++
	d.dispatchLocked()
}

func (d *Dispatcher) scheduleLocked() {
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timerSeq++
	seq := d.timerSeq
	d.timer = d.opts.AfterFunc(d.opts.Delay, func() {
		d.fire(seq)
	})
}

func (d *Dispatcher) pendingQueryLocked() types.SearchQuery {
	q := types.NewSearchQuery(d.text, d.facets)
	q.Size = d.opts.PageSize
	q.ChannelName = d.opts.Channel
	if d.sort != nil {
		sort := *d.sort
		q.Sort = &sort
	}
	return q
}

func (d *Dispatcher) fire(seq uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if seq != d.timerSeq {
		// superseded by a later edit
		return
	}
	d.timer = nil
	d.dispatchLocked()
}

func (d *Dispatcher) dispatchLocked() {
	q := d.pendingQueryLocked()
	req, err := BuildQuery(q, d.opts.Scope)
	if err != nil {
		d.validationErr = err
		d.logger.Debug("search not issued", zap.Error(err))
		return
	}
	d.validationErr = nil

	if d.dispatched != nil && d.dispatched.SameSearch(q) && d.state != StateError {
		skippedSearches.Inc()
		return
	}

	d.offset = 0
	d.results = nil
	d.total = 0
	d.page = nil
	d.err = nil
	d.dispatched = &q
	d.startLocked(req, 0, false)
}

// hasMoreLocked reports whether another page exists and lies within
// types.MaxOffset.
func (d *Dispatcher) hasMoreLocked() bool {
	return d.dispatched != nil && len(d.results) < d.total && len(d.results) <= types.MaxOffset
}

// LoadMore requests the next page. It only runs once the previous search
// has settled and there are results left, and reports whether a request was
// issued.
func (d *Dispatcher) LoadMore() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.dispatched == nil || !d.state.Settled() || !d.hasMoreLocked() {
		return false
	}
	next := len(d.results)
	q := d.dispatched.WithOffset(next)
	req, err := BuildQuery(q, d.opts.Scope)
	if err != nil {
		d.validationErr = err
		return false
	}
	d.startLocked(req, next, true)
	return true
}

func (d *Dispatcher) startLocked(req types.SearchRequest, offset int, incremental bool) {
	d.generation++
	gen := d.generation
	d.state = StateSearching
	searchesDispatched.WithLabelValues(strconv.FormatBool(incremental)).Inc()

	d.inflight.Add(1)
	go func() {
		defer d.inflight.Done()
		ctx, cancel := context.WithTimeout(d.ctx, d.opts.Timeout)
		defer cancel()
		page, err := d.searcher.Search(ctx, req)
		d.complete(gen, page, err, offset, incremental)
	}()
}

func (d *Dispatcher) complete(gen uint64, page *types.SearchResultPage, err error, offset int, incremental bool) {
	d.mu.Lock()
	if gen != d.generation {
		d.mu.Unlock()
		staleResponses.Inc()
		d.logger.Debug("dropping stale search response", zap.Uint64("generation", gen))
		return
	}
	if err != nil {
		d.state = StateError
		d.err = err
		searchErrors.WithLabelValues(types.KindOf(err).String()).Inc()
		d.logger.Warn("search failed", zap.Error(err), zap.Bool("incremental", incremental))
	} else {
		d.results = Accumulate(d.results, page, offset, incremental)
		d.offset = offset
		d.total = page.Total
		d.page = page
		d.err = nil
		d.state = StateSuccess
	}
	snapshot := d.snapshotLocked()
	d.mu.Unlock()

	d.notifySettled(snapshot)
}

// notifySettled hands snapshots to OnSettled in generation order. A snapshot
// that lost the race against a newer one is dropped.
func (d *Dispatcher) notifySettled(s Snapshot) {
	if d.opts.OnSettled == nil {
		return
	}
	d.settleMu.Lock()
	defer d.settleMu.Unlock()
	if s.Generation <= d.lastSettled {
		return
	}
	d.lastSettled = s.Generation
	d.opts.OnSettled(s)
}

func (d *Dispatcher) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snapshotLocked()
}

func (d *Dispatcher) snapshotLocked() Snapshot {
	s := Snapshot{
		Generation:   d.generation,
		State:        d.state,
		Text:         d.text,
		ActiveFacets: d.facets.Clone(),
		Results:      append([]types.Resource(nil), d.results...),
		Total:        d.total,
		Offset:       d.offset,
		HasMore:      d.hasMoreLocked(),
		Facets:       facet.MergeAll(d.page, d.facets),
	}
	if params, err := SerializeParams(d.text, d.facets); err == nil {
		s.Params = params
	}
	if d.dispatched != nil {
		q := d.dispatched.WithOffset(d.dispatched.From)
		s.Query = &q
	}
	if d.page != nil {
		s.Suggestions = append([]string(nil), d.page.Suggestions...)
	}
	if d.err != nil {
		s.ErrorKind = types.KindOf(d.err)
		s.Error = d.err.Error()
	}
	if d.validationErr != nil {
		s.ValidationError = d.validationErr.Error()
	}
	return s
}

// Wait blocks until every issued request has completed.
func (d *Dispatcher) Wait() {
	d.inflight.Wait()
}

// Close stops the debounce timer and cancels requests in flight.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.timerSeq++
	d.generation++
	d.mu.Unlock()
	d.cancel()
	d.inflight.Wait()
}
