package listing

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"sync"

	"github.com/rs/zerolog"
)

// QueryState is the full search request derived from one URL state. It is
// rebuilt wholesale on every URL change, never mutated in place.
type QueryState struct {
	PageIndex int
	PageSize  int
	Filter    Filter
}

// ResultMeta mirrors the pagination metadata of a search response.
type ResultMeta struct {
	TotalCount int `json:"totalCount"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}

// ResultSet holds one page of fetched items. It is replaced on every
// successful search and reset to the empty shape on failure, never
// partially updated.
type ResultSet[T Sortable] struct {
	Items []T
	Meta  ResultMeta
}

// Searcher performs the backend search for one listing type. The context
// is cancelled when a newer search supersedes this one.
type Searcher[T Sortable] interface {
	Search(ctx context.Context, query QueryState) ([]T, ResultMeta, error)
}

// Notifier surfaces user-facing failure messages (toast layer, log sink).
type Notifier interface {
	Notify(message string)
}

// LogNotifier routes notifications to a structured logger. It is the
// default when a host has no toast surface.
type LogNotifier struct {
	Logger zerolog.Logger
}

func (n LogNotifier) Notify(message string) {
	n.Logger.Warn().Msg(message)
}

// Controller reconciles URL state, search dispatch, client-side sort, and
// pagination for one listing page. The URL (via the QueryStateStore) is the
// single source of truth: filter, page, and sort handlers only write the
// URL, and the store subscription drives everything else.
type Controller[T Sortable] struct {
	typ             Type
	store           QueryStateStore
	searcher        Searcher[T]
	notifier        Notifier
	defaultPageSize int
	logger          zerolog.Logger

	mu              sync.Mutex
	baseCtx         context.Context
	internalFilters Filter
	queryParams     QueryState
	sortOption      SortOption
	resultSet       ResultSet[T]
	loading         bool
	seq             uint64
	cancel          context.CancelFunc
	lastSignature   string
	unsubscribe     func()
	inflight        sync.WaitGroup
}

// NewController wires a controller to its store and searcher. Call Start to
// begin reconciliation.
func NewController[T Sortable](
	typ Type,
	store QueryStateStore,
	searcher Searcher[T],
	notifier Notifier,
	defaultPageSize int,
	logger zerolog.Logger,
) *Controller[T] {
	if defaultPageSize < 1 {
		defaultPageSize = 12
	}
	c := &Controller[T]{
		typ:             typ,
		store:           store,
		searcher:        searcher,
		notifier:        notifier,
		defaultPageSize: defaultPageSize,
		logger:          logger.With().Str("listing_type", string(typ)).Logger(),
	}
	c.resultSet = c.emptyResultSet()
	c.internalFilters = NewEmptyFilter(typ)
	return c
}

// Start subscribes to the store and processes the current URL state once,
// matching the first-mount behavior of a listing page.
func (c *Controller[T]) Start(ctx context.Context) {
	c.mu.Lock()
	c.baseCtx = ctx
	c.mu.Unlock()

	c.unsubscribe = c.store.Subscribe(c.handleURLChange)
	c.handleURLChange(c.store.Current())
}

// Close tears the controller down: unsubscribes from the store and cancels
// any in-flight search.
func (c *Controller[T]) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.mu.Unlock()
	c.inflight.Wait()
}

// handleURLChange is the reactive entry point: every URL state flows
// through here, whether it came from a handler on this controller or from
// the host's own navigation.
func (c *Controller[T]) handleURLChange(values url.Values) {
	page := parsePositiveInt(values, ParamPage, 1)
	pageSize := parsePositiveInt(values, ParamPageSize, c.defaultPageSize)
	sortOption := ParseSortOption(values.Get(ParamSort))
	merged := MergeWithDefaults(c.typ, ParseURLParams(values))

	query := QueryState{PageIndex: page, PageSize: pageSize, Filter: merged}
	signature := searchSignature(query)

	c.mu.Lock()
	c.internalFilters = merged
	c.queryParams = query
	previousSort := c.sortOption
	c.sortOption = sortOption

	if signature == c.lastSignature {
		// Same search, different presentation: re-sort what we already
		// hold instead of going back to the network.
		if sortOption != previousSort {
			SortItems(c.resultSet.Items, sortOption)
		}
		c.mu.Unlock()
		return
	}

	c.lastSignature = signature
	c.seq++
	seq := c.seq
	if c.cancel != nil {
		c.cancel()
	}
	base := c.baseCtx
	if base == nil {
		base = context.Background()
	}
	ctx, cancel := context.WithCancel(base)
	c.cancel = cancel
	c.loading = true
	c.inflight.Add(1)
	c.mu.Unlock()

	go c.dispatch(ctx, seq, query)
}

// dispatch runs one search. Only the most recently initiated request may
// publish its outcome: anything superseded is discarded, loading flag
// included, because the newer request owns that flag now.
func (c *Controller[T]) dispatch(ctx context.Context, seq uint64, query QueryState) {
	defer c.inflight.Done()

	items, meta, err := c.searcher.Search(ctx, query)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		return
	}
	c.loading = false

	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		c.resultSet = c.emptyResultSet()
		c.logger.Error().Err(err).Int("page", query.PageIndex).Msg("listing search failed")
		if c.notifier != nil {
			c.notifier.Notify("search failed, please try again")
		}
		return
	}

	if items == nil {
		items = []T{}
	}
	SortItems(items, c.sortOption)
	c.resultSet = ResultSet[T]{Items: items, Meta: meta}
}

// ChangeFilter merges a partial filter over the current one and pushes the
// result to the URL. Page always restarts at 1; sort and page size carry
// over. The search itself is triggered by the store subscription, keeping
// the URL authoritative.
func (c *Controller[T]) ChangeFilter(partial Filter) {
	c.mu.Lock()
	merged := c.internalFilters.Merge(partial)
	sortOption := c.sortOption
	pageSize := c.queryParams.PageSize
	c.mu.Unlock()

	values := BuildURLParams(merged)
	if sortOption != SortNone {
		values.Set(ParamSort, string(sortOption))
	}
	if pageSize != 0 && pageSize != c.defaultPageSize {
		values.Set(ParamPageSize, strconv.Itoa(pageSize))
	}
	c.store.Replace(values)
}

// ChangePagination writes page and pageSize to the URL, omitting them at
// their defaults to keep URLs canonical. Pass pageSize 0 to leave it as is.
func (c *Controller[T]) ChangePagination(page, pageSize int) {
	values := c.store.Current()
	if page <= 1 {
		values.Del(ParamPage)
	} else {
		values.Set(ParamPage, strconv.Itoa(page))
	}
	if pageSize != 0 {
		if pageSize == c.defaultPageSize {
			values.Del(ParamPageSize)
		} else {
			values.Set(ParamPageSize, strconv.Itoa(pageSize))
		}
	}
	c.store.Replace(values)
}

// ChangeSort writes the sort option to the URL. The store round trip lands
// back in handleURLChange, which recognizes the unchanged search signature
// and re-sorts in memory without a network call.
func (c *Controller[T]) ChangeSort(option SortOption) {
	values := c.store.Current()
	if option == SortNone {
		values.Del(ParamSort)
	} else {
		values.Set(ParamSort, string(option))
	}
	c.store.Replace(values)
}

// Results returns a snapshot of the current result set.
func (c *Controller[T]) Results() ResultSet[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]T, len(c.resultSet.Items))
	copy(items, c.resultSet.Items)
	return ResultSet[T]{Items: items, Meta: c.resultSet.Meta}
}

// Loading reports whether a search is in flight.
func (c *Controller[T]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Filters returns the current complete filter record.
func (c *Controller[T]) Filters() Filter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.internalFilters.Clone()
}

// Query returns the last query state derived from the URL.
func (c *Controller[T]) Query() QueryState {
	c.mu.Lock()
	defer c.mu.Unlock()
	q := c.queryParams
	q.Filter = q.Filter.Clone()
	return q
}

// Sort returns the current sort option.
func (c *Controller[T]) Sort() SortOption {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sortOption
}

func (c *Controller[T]) emptyResultSet() ResultSet[T] {
	return ResultSet[T]{
		Items: []T{},
		Meta:  ResultMeta{TotalCount: 0, Page: 1, PageSize: c.defaultPageSize, TotalPages: 1},
	}
}

// searchSignature canonically encodes the search-relevant portion of a
// query state. Sort is deliberately excluded: two states with the same
// signature need no new network call.
func searchSignature(query QueryState) string {
	values := BuildURLParams(query.Filter)
	values.Set(ParamPage, strconv.Itoa(query.PageIndex))
	values.Set(ParamPageSize, strconv.Itoa(query.PageSize))
	return values.Encode()
}
