package controller

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"coderr-web/api"
	"coderr-web/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource records every call and answers from its fields.
type fakeSource struct {
	mu       sync.Mutex
	calls    []string
	filters  []models.OfferListFilter
	tokens   []string
	user     *models.CurrentUser
	userErr  error
	offers   []models.Offer
	count    int
	fetchErr error
	info     *models.BaseInfo

	// fetchHook runs inside FetchOffers when set.
	fetchHook func()
}

func (f *fakeSource) FetchOffers(ctx context.Context, filter models.OfferListFilter) (*models.OfferListResponse, error) {
	if f.fetchHook != nil {
		f.fetchHook()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "offers")
	f.filters = append(f.filters, filter)
	f.tokens = append(f.tokens, api.TokenFromContext(ctx))
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return &models.OfferListResponse{Count: f.count, Results: f.offers}, nil
}

func (f *fakeSource) LoadCurrentUser(_ context.Context, _ models.Credentials) (*models.CurrentUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "user")
	return f.user, f.userErr
}

func (f *fakeSource) BaseInfo(context.Context) (*models.BaseInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "base_info")
	return f.info, nil
}

func (f *fakeSource) lastFilter(t *testing.T) models.OfferListFilter {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.filters, "expected at least one fetch")
	return f.filters[len(f.filters)-1]
}

func newTestController(src *fakeSource) *OfferListController {
	return NewOfferListController(src, models.Credentials{Token: "tok", UserID: 1}, nil)
}

func TestInitialize_RunsInOrder(t *testing.T) {
	src := &fakeSource{
		user:   &models.CurrentUser{User: 1, Username: "kevin", Type: models.UserTypeBusiness},
		offers: []models.Offer{{ID: 1, User: 1}},
		count:  1,
		info:   &models.BaseInfo{OfferCount: 1},
	}
	c := newTestController(src)

	err := c.Initialize(context.Background(), "logo")

	require.NoError(t, err)
	assert.Equal(t, []string{"user", "offers", "base_info"}, src.calls)
	assert.Equal(t, "logo", src.lastFilter(t).Search)
	assert.Equal(t, "tok", src.tokens[0])

	s := c.Snapshot()
	assert.Equal(t, "logo", s.Filter.Search)
	assert.Equal(t, "kevin", s.CurrentUser.Username)
	assert.Len(t, s.Offers, 1)
	assert.Equal(t, 1, s.BaseInfo.OfferCount)
}

func TestInitialize_EmptySearchKeepsFilter(t *testing.T) {
	src := &fakeSource{}
	c := newTestController(src)

	require.NoError(t, c.Initialize(context.Background(), ""))

	assert.Equal(t, "", c.Snapshot().Filter.Search)
}

func TestInitialize_UserLoadFailureIsStored(t *testing.T) {
	src := &fakeSource{userErr: &api.RequestError{Kind: api.KindNetwork, Err: errors.New("refused")}}
	c := newTestController(src)

	err := c.Initialize(context.Background(), "")

	assert.Error(t, err)
	assert.Equal(t, []string{"user"}, src.calls)
	assert.Equal(t, api.KindNetwork, api.KindOf(c.Snapshot().Err))
}

func TestGoToPage_SetsPageBeforeRefresh(t *testing.T) {
	src := &fakeSource{}
	c := newTestController(src)

	require.NoError(t, c.GoToPage(context.Background(), 3))

	assert.Equal(t, 3, src.lastFilter(t).Page)
	assert.Equal(t, 3, c.Snapshot().Filter.Page)
	assert.False(t, c.navigating.Load(), "claimer must release the guard")
}

func TestGoToPage_ZeroRefreshesCurrentPage(t *testing.T) {
	src := &fakeSource{}
	c := newTestController(src)
	require.NoError(t, c.GoToPage(context.Background(), 2))

	require.NoError(t, c.GoToPage(context.Background(), 0))

	assert.Len(t, src.filters, 2)
	assert.Equal(t, 2, src.lastFilter(t).Page)
}

func TestGoToPage_BlockedByNavigationInFlight(t *testing.T) {
	src := &fakeSource{}
	c := newTestController(src)
	c.navigating.Store(true)

	require.NoError(t, c.GoToPage(context.Background(), 5))

	assert.Equal(t, 1, src.lastFilter(t).Page, "page must not change while another navigation holds the guard")
	assert.True(t, c.navigating.Load(), "only the claimer releases the guard")
}

func TestRefresh_Serialized(t *testing.T) {
	var (
		mu       sync.Mutex
		inFlight int
		maxSeen  int
	)
	src := &fakeSource{}
	src.fetchHook = func() {
		mu.Lock()
		inFlight++
		if inFlight > maxSeen {
			maxSeen = inFlight
		}
		mu.Unlock()
		time.Sleep(2 * time.Millisecond)
		mu.Lock()
		inFlight--
		mu.Unlock()
	}
	c := newTestController(src)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = c.Refresh(context.Background())
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
	assert.Len(t, src.filters, 10)
}

func TestRefresh_FailureKeepsPreviousOffers(t *testing.T) {
	src := &fakeSource{offers: []models.Offer{{ID: 1}, {ID: 2}}, count: 2}
	c := newTestController(src)
	require.NoError(t, c.Refresh(context.Background()))

	src.fetchErr = &api.RequestError{Kind: api.KindMalformed, Err: errors.New("bad json")}
	err := c.Refresh(context.Background())

	assert.Error(t, err)
	s := c.Snapshot()
	assert.Len(t, s.Offers, 2)
	assert.Equal(t, 2, s.TotalCount)
	assert.Equal(t, api.KindMalformed, api.KindOf(s.Err))

	src.fetchErr = nil
	require.NoError(t, c.Refresh(context.Background()))
	assert.NoError(t, c.Snapshot().Err)
}

func TestSetSearch_ResetsToFirstPage(t *testing.T) {
	src := &fakeSource{}
	c := newTestController(src)
	require.NoError(t, c.GoToPage(context.Background(), 3))

	require.NoError(t, c.SetSearch(context.Background(), "website"))

	f := src.lastFilter(t)
	assert.Equal(t, "website", f.Search)
	assert.Equal(t, 1, f.Page)
}

func TestSetSearch_ResetsPageWhileNavigationInFlight(t *testing.T) {
	var (
		once    sync.Once
		started = make(chan struct{})
		release = make(chan struct{})
	)
	src := &fakeSource{}
	src.fetchHook = func() {
		first := false
		once.Do(func() { first = true })
		if first {
			close(started)
			<-release
		}
	}
	c := newTestController(src)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_ = c.GoToPage(context.Background(), 3)
	}()
	<-started
	go func() {
		defer wg.Done()
		_ = c.SetSearch(context.Background(), "logo")
	}()
	close(release)
	wg.Wait()

	require.Len(t, src.filters, 2)
	assert.Equal(t, 3, src.filters[0].Page)
	f := src.lastFilter(t)
	assert.Equal(t, "logo", f.Search)
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 1, c.Snapshot().Filter.Page)
}

func TestSetMaxDeliveryTime_ResetsPageWhileNavigationHeld(t *testing.T) {
	src := &fakeSource{}
	c := newTestController(src)
	require.NoError(t, c.GoToPage(context.Background(), 2))
	c.navigating.Store(true)

	require.NoError(t, c.SetPendingMaxDeliveryTime("3"))
	require.NoError(t, c.SetMaxDeliveryTime(context.Background()))

	f := src.lastFilter(t)
	assert.Equal(t, "3", f.MaxDeliveryTime)
	assert.Equal(t, 1, f.Page)
}

func TestSetOrdering_CommittedOnRefresh(t *testing.T) {
	src := &fakeSource{}
	c := newTestController(src)

	require.NoError(t, c.SetOrdering(context.Background(), models.OrderingPriceAsc))

	assert.Equal(t, models.OrderingPriceAsc, src.lastFilter(t).Ordering)
	assert.Equal(t, models.OrderingPriceAsc, c.Snapshot().PendingOrdering)
}

func TestClearOrdering(t *testing.T) {
	src := &fakeSource{}
	c := newTestController(src)
	require.NoError(t, c.SetOrdering(context.Background(), models.OrderingNewest))
	c.ToggleOrderingPanel()

	require.NoError(t, c.ClearOrdering(context.Background()))

	assert.Equal(t, models.OrderingNone, src.lastFilter(t).Ordering)
	s := c.Snapshot()
	assert.Equal(t, models.OrderingNone, s.PendingOrdering)
	assert.False(t, s.OrderingPanelOpen)
}

func TestMaxDeliveryTime(t *testing.T) {
	src := &fakeSource{}
	c := newTestController(src)
	ctx := context.Background()

	t.Run("invalid value rejected", func(t *testing.T) {
		assert.Error(t, c.SetPendingMaxDeliveryTime("soon"))
		assert.Error(t, c.SetPendingMaxDeliveryTime("0"))
		assert.Equal(t, "", c.Snapshot().PendingMaxDeliveryTime)
	})

	t.Run("pending is not applied until committed", func(t *testing.T) {
		require.NoError(t, c.GoToPage(ctx, 2))
		require.NoError(t, c.SetPendingMaxDeliveryTime("3"))
		assert.Equal(t, "", c.Snapshot().Filter.MaxDeliveryTime)

		require.NoError(t, c.SetMaxDeliveryTime(ctx))
		f := src.lastFilter(t)
		assert.Equal(t, "3", f.MaxDeliveryTime)
		assert.Equal(t, 1, f.Page)
	})

	t.Run("apply toggles the panel", func(t *testing.T) {
		require.NoError(t, c.SetPendingMaxDeliveryTime("7"))
		require.NoError(t, c.ApplyMaxDeliveryTime(ctx))
		s := c.Snapshot()
		assert.Equal(t, "7", s.Filter.MaxDeliveryTime)
		assert.True(t, s.DeliveryTimePanelOpen)
	})

	t.Run("clear deselects and toggles the panel", func(t *testing.T) {
		require.NoError(t, c.ClearMaxDeliveryTime(ctx))
		s := c.Snapshot()
		assert.Equal(t, "", s.PendingMaxDeliveryTime)
		assert.Equal(t, "", s.Filter.MaxDeliveryTime)
		assert.False(t, s.DeliveryTimePanelOpen)
		assert.Equal(t, "", src.lastFilter(t).MaxDeliveryTime)
	})
}

func TestSnapshot_IsACopy(t *testing.T) {
	src := &fakeSource{offers: []models.Offer{{ID: 1, Title: "Logo"}}, user: &models.CurrentUser{User: 1, Username: "kevin"}}
	c := newTestController(src)
	require.NoError(t, c.Initialize(context.Background(), ""))

	s := c.Snapshot()
	s.Offers[0].Title = "changed"
	s.CurrentUser.Username = "changed"

	again := c.Snapshot()
	assert.Equal(t, "Logo", again.Offers[0].Title)
	assert.Equal(t, "kevin", again.CurrentUser.Username)
}
