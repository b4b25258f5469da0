package listing_test

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/wanderlane/travelbook/backend/internal/listing"
)

const testPageSize = 12

type fakeSearcher struct {
	mu      sync.Mutex
	calls   int
	queries []listing.QueryState
	fn      func(ctx context.Context, query listing.QueryState) ([]cardItem, listing.ResultMeta, error)
}

func (f *fakeSearcher) Search(ctx context.Context, query listing.QueryState) ([]cardItem, listing.ResultMeta, error) {
	f.mu.Lock()
	f.calls++
	f.queries = append(f.queries, query)
	fn := f.fn
	f.mu.Unlock()
	if fn == nil {
		return []cardItem{}, listing.ResultMeta{Page: query.PageIndex, PageSize: query.PageSize, TotalPages: 1}, nil
	}
	return fn(ctx, query)
}

func (f *fakeSearcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeSearcher) lastQuery() listing.QueryState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queries[len(f.queries)-1]
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) Notify(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.messages)
}

func newTestController(t *testing.T, initial url.Values, searcher *fakeSearcher, notifier listing.Notifier) (*listing.Controller[cardItem], *listing.MemoryStore) {
	t.Helper()
	store := listing.NewMemoryStore(initial)
	ctrl := listing.NewController(listing.TypeAccommodation, store, searcher, notifier, testPageSize, zerolog.Nop())
	ctrl.Start(context.Background())
	t.Cleanup(ctrl.Close)
	return ctrl, store
}

func waitForIdle(t *testing.T, ctrl *listing.Controller[cardItem]) {
	t.Helper()
	assert.Eventually(t, func() bool { return !ctrl.Loading() }, time.Second, 2*time.Millisecond)
}

func TestController_FilterChangeResetsPage(t *testing.T) {
	initial, _ := url.ParseQuery("cityId=9&page=5")
	searcher := &fakeSearcher{}
	ctrl, store := newTestController(t, initial, searcher, nil)
	waitForIdle(t, ctrl)

	ctrl.ChangeFilter(listing.Filter{"starRating": float64(5)})
	waitForIdle(t, ctrl)

	values := store.Current()
	assert.False(t, values.Has("page"), "filter change must restart pagination")
	assert.Equal(t, "5", values.Get("starRating"))
	assert.Equal(t, "9", values.Get("cityId"))
	assert.Equal(t, 1, ctrl.Query().PageIndex)
}

func TestController_SortChangeIssuesNoSearch(t *testing.T) {
	searcher := &fakeSearcher{
		fn: func(ctx context.Context, query listing.QueryState) ([]cardItem, listing.ResultMeta, error) {
			items := []cardItem{
				{Name: "B", Price: 10},
				{Name: "A", Price: 10},
				{Name: "A", Price: 5},
			}
			return items, listing.ResultMeta{TotalCount: 3, Page: 1, PageSize: testPageSize, TotalPages: 1}, nil
		},
	}
	ctrl, store := newTestController(t, nil, searcher, nil)
	waitForIdle(t, ctrl)
	assert.Equal(t, 1, searcher.callCount())

	ctrl.ChangeSort(listing.SortPriceAsc)
	waitForIdle(t, ctrl)

	assert.Equal(t, 1, searcher.callCount(), "sorting must be a pure client transform")
	assert.Equal(t, "priceAsc", store.Current().Get("sort"))

	items := ctrl.Results().Items
	assert.Equal(t, []cardItem{
		{Name: "A", Price: 5},
		{Name: "B", Price: 10},
		{Name: "A", Price: 10},
	}, items)
}

func TestController_FailureResetsToCanonicalEmptyShape(t *testing.T) {
	searcher := &fakeSearcher{
		fn: func(ctx context.Context, query listing.QueryState) ([]cardItem, listing.ResultMeta, error) {
			return nil, listing.ResultMeta{}, errors.New("upstream rejected the search")
		},
	}
	notifier := &recordingNotifier{}
	ctrl, _ := newTestController(t, nil, searcher, notifier)
	waitForIdle(t, ctrl)

	results := ctrl.Results()
	assert.Equal(t, []cardItem{}, results.Items)
	assert.Equal(t, listing.ResultMeta{TotalCount: 0, Page: 1, PageSize: testPageSize, TotalPages: 1}, results.Meta)
	assert.Equal(t, 1, notifier.count())
}

func TestController_EndToEndURLScenario(t *testing.T) {
	initial, _ := url.ParseQuery("cityId=3&starRating=4&page=2&sort=priceDesc")
	searcher := &fakeSearcher{
		fn: func(ctx context.Context, query listing.QueryState) ([]cardItem, listing.ResultMeta, error) {
			items := []cardItem{
				{Name: "budget", Price: 80},
				{Name: "luxury", Price: 600},
				{Name: "mid", Price: 200},
			}
			return items, listing.ResultMeta{TotalCount: 27, Page: 2, PageSize: testPageSize, TotalPages: 3}, nil
		},
	}
	ctrl, _ := newTestController(t, initial, searcher, nil)
	waitForIdle(t, ctrl)

	assert.Equal(t, 1, searcher.callCount())
	query := searcher.lastQuery()
	assert.Equal(t, 2, query.PageIndex)
	assert.Equal(t, testPageSize, query.PageSize)
	assert.Equal(t, float64(3), query.Filter["cityId"])
	assert.Equal(t, float64(4), query.Filter["starRating"])
	assert.Equal(t, float64(1), query.Filter["numOfAdult"])
	assert.Nil(t, query.Filter["priceFrom"])

	items := ctrl.Results().Items
	assert.Equal(t, []string{"luxury", "mid", "budget"}, []string{items[0].Name, items[1].Name, items[2].Name})
}

func TestController_LastInitiatedRequestWins(t *testing.T) {
	firstStarted := make(chan struct{})
	release := make(chan struct{})
	searcher := &fakeSearcher{}
	searcher.fn = func(ctx context.Context, query listing.QueryState) ([]cardItem, listing.ResultMeta, error) {
		if query.Filter["cityId"] == float64(1) {
			close(firstStarted)
			select {
			case <-release:
			case <-ctx.Done():
				return nil, listing.ResultMeta{}, ctx.Err()
			}
			return []cardItem{{Name: "stale", Price: 1}}, listing.ResultMeta{TotalCount: 1, Page: 1, PageSize: testPageSize, TotalPages: 1}, nil
		}
		return []cardItem{{Name: "fresh", Price: 2}}, listing.ResultMeta{TotalCount: 1, Page: 1, PageSize: testPageSize, TotalPages: 1}, nil
	}

	initial, _ := url.ParseQuery("cityId=1")
	ctrl, store := newTestController(t, initial, searcher, nil)
	<-firstStarted

	next, _ := url.ParseQuery("cityId=2")
	store.Replace(next)
	waitForIdle(t, ctrl)
	close(release)

	assert.Eventually(t, func() bool {
		items := ctrl.Results().Items
		return len(items) == 1 && items[0].Name == "fresh"
	}, time.Second, 2*time.Millisecond)

	// The superseded response must never overwrite the newer one.
	time.Sleep(20 * time.Millisecond)
	items := ctrl.Results().Items
	assert.Equal(t, "fresh", items[0].Name)
}

func TestController_PaginationChangeKeepsFilterAndSort(t *testing.T) {
	initial, _ := url.ParseQuery("cityId=3&sort=name")
	searcher := &fakeSearcher{}
	ctrl, store := newTestController(t, initial, searcher, nil)
	waitForIdle(t, ctrl)

	ctrl.ChangePagination(3, 0)
	waitForIdle(t, ctrl)

	values := store.Current()
	assert.Equal(t, "3", values.Get("page"))
	assert.Equal(t, "3", values.Get("cityId"))
	assert.Equal(t, "name", values.Get("sort"))
	assert.Equal(t, 3, ctrl.Query().PageIndex)
}

func TestController_PaginationOmitsDefaults(t *testing.T) {
	searcher := &fakeSearcher{}
	ctrl, store := newTestController(t, nil, searcher, nil)
	waitForIdle(t, ctrl)

	ctrl.ChangePagination(1, testPageSize)
	waitForIdle(t, ctrl)

	values := store.Current()
	assert.False(t, values.Has("page"))
	assert.False(t, values.Has("pageSize"))
}
