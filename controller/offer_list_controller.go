// Package controller holds the offer list filter state of one browser session
// and the operations the page triggers on it.
package controller

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"coderr-web/api"
	"coderr-web/logger"
	"coderr-web/metrics"
	"coderr-web/models"
)

// OfferSource is the data access the controller needs.
// services.OfferService satisfies it.
type OfferSource interface {
	FetchOffers(ctx context.Context, filter models.OfferListFilter) (*models.OfferListResponse, error)
	LoadCurrentUser(ctx context.Context, creds models.Credentials) (*models.CurrentUser, error)
	BaseInfo(ctx context.Context) (*models.BaseInfo, error)
}

// State is everything the offer list page renders from.
type State struct {
	Filter                 models.OfferListFilter
	PendingOrdering        models.Ordering
	PendingMaxDeliveryTime string

	CurrentUser *models.CurrentUser
	Offers      []models.Offer
	TotalCount  int
	BaseInfo    *models.BaseInfo

	// Err is the failure of the last refresh or user load, nil after a successful refresh.
	Err error

	OrderingPanelOpen     bool
	DeliveryTimePanelOpen bool
}

// OfferListController owns the filter state of one session.
//
// Refreshes are serialized by refreshMu; a refresh waiting on the lock reads the
// filter only once it holds it, so queued refreshes run against the newest filter.
// navigating is the page-claim flag of GoToPage.
type OfferListController struct {
	source  OfferSource
	creds   models.Credentials
	metrics metrics.MetricsCollector
	log     *slog.Logger

	mu    sync.Mutex
	state State

	refreshMu  sync.Mutex
	navigating atomic.Bool
}

// NewOfferListController returns a controller on the unfiltered first page.
func NewOfferListController(source OfferSource, creds models.Credentials, collector metrics.MetricsCollector) *OfferListController {
	if collector == nil {
		collector = metrics.Noop{}
	}
	return &OfferListController{
		source:  source,
		creds:   creds,
		metrics: collector,
		log:     logger.Component("OfferListController"),
		state:   State{Filter: models.NewOfferListFilter()},
	}
}

// Credentials returns the credentials the controller was created with.
func (c *OfferListController) Credentials() models.Credentials {
	return c.creds
}

// Initialize seeds the search text, loads the current user and fetches the
// first result set, in that order.
func (c *OfferListController) Initialize(ctx context.Context, search string) error {
	if search != "" {
		c.mu.Lock()
		c.state.Filter.Search = search
		c.mu.Unlock()
	}

	user, err := c.source.LoadCurrentUser(ctx, c.creds)
	c.mu.Lock()
	c.state.CurrentUser = user
	if err != nil {
		c.state.Err = err
	}
	c.mu.Unlock()
	if err != nil {
		c.metrics.RecordRefreshFailure()
		c.log.Error("failed to load current user", slog.Int("user_id", c.creds.UserID), slog.String("error", err.Error()))
		return err
	}

	if err := c.Refresh(ctx); err != nil {
		return err
	}

	info, err := c.source.BaseInfo(ctx)
	if err != nil {
		c.log.Warn("failed to load base info", slog.String("error", err.Error()))
		return nil
	}
	c.mu.Lock()
	c.state.BaseInfo = info
	c.mu.Unlock()
	return nil
}

// GoToPage moves to pageNum and refreshes. The page only changes when pageNum is
// positive and no other page navigation is in flight; the refresh happens regardless,
// so GoToPage(0) re-fetches the current page.
func (c *OfferListController) GoToPage(ctx context.Context, pageNum int) error {
	if pageNum > 0 && c.navigating.CompareAndSwap(false, true) {
		defer c.navigating.Store(false)
		c.mu.Lock()
		c.state.Filter.Page = pageNum
		c.mu.Unlock()
	}
	return c.Refresh(ctx)
}

// Refresh commits the pending ordering and re-fetches with the current filter.
// On failure the previous offers stay and the error is kept for the view.
func (c *OfferListController) Refresh(ctx context.Context) error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	c.mu.Lock()
	c.state.Filter.Ordering = c.state.PendingOrdering
	filter := c.state.Filter
	c.mu.Unlock()

	resp, err := c.source.FetchOffers(api.WithToken(ctx, c.creds.Token), filter)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state.Err = err
		c.metrics.RecordRefreshFailure()
		c.log.Error("offer list refresh failed",
			slog.Int("page", filter.Page),
			slog.String("kind", api.KindOf(err).String()),
			slog.String("error", err.Error()),
		)
		return err
	}
	c.state.Offers = resp.Results
	c.state.TotalCount = resp.Count
	c.state.Err = nil
	return nil
}

// SetSearch replaces the search text and goes back to the first page. The page
// reset bypasses the navigation guard so a page change in flight cannot keep it.
func (c *OfferListController) SetSearch(ctx context.Context, text string) error {
	c.mu.Lock()
	c.state.Filter.Search = text
	c.state.Filter.Page = 1
	c.mu.Unlock()
	return c.Refresh(ctx)
}

// SetOrdering selects a sort key and refreshes.
func (c *OfferListController) SetOrdering(ctx context.Context, o models.Ordering) error {
	c.mu.Lock()
	c.state.PendingOrdering = o
	c.mu.Unlock()
	return c.Refresh(ctx)
}

// SetPendingMaxDeliveryTime records the selected delivery-time radio without applying it.
func (c *OfferListController) SetPendingMaxDeliveryTime(v string) error {
	v, err := models.ParseMaxDeliveryTime(v)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.state.PendingMaxDeliveryTime = v
	c.mu.Unlock()
	return nil
}

// SetMaxDeliveryTime commits the pending delivery time and goes to the first page.
func (c *OfferListController) SetMaxDeliveryTime(ctx context.Context) error {
	c.mu.Lock()
	c.state.Filter.MaxDeliveryTime = c.state.PendingMaxDeliveryTime
	c.state.Filter.Page = 1
	c.mu.Unlock()
	return c.Refresh(ctx)
}

// ClearOrdering drops the sort key, refreshes and closes the ordering panel.
func (c *OfferListController) ClearOrdering(ctx context.Context) error {
	c.mu.Lock()
	c.state.PendingOrdering = models.OrderingNone
	c.mu.Unlock()

	err := c.Refresh(ctx)

	c.mu.Lock()
	c.state.OrderingPanelOpen = false
	c.mu.Unlock()
	return err
}

// ClearMaxDeliveryTime drops the delivery-time bound and toggles its panel.
func (c *OfferListController) ClearMaxDeliveryTime(ctx context.Context) error {
	c.mu.Lock()
	c.state.PendingMaxDeliveryTime = ""
	c.mu.Unlock()
	return c.ApplyMaxDeliveryTime(ctx)
}

// ApplyMaxDeliveryTime commits the pending delivery time and toggles its panel.
func (c *OfferListController) ApplyMaxDeliveryTime(ctx context.Context) error {
	err := c.SetMaxDeliveryTime(ctx)
	c.ToggleDeliveryTimePanel()
	return err
}

func (c *OfferListController) ToggleOrderingPanel() {
	c.mu.Lock()
	c.state.OrderingPanelOpen = !c.state.OrderingPanelOpen
	c.mu.Unlock()
}

func (c *OfferListController) ToggleDeliveryTimePanel() {
	c.mu.Lock()
	c.state.DeliveryTimePanelOpen = !c.state.DeliveryTimePanelOpen
	c.mu.Unlock()
}

// Snapshot returns a copy of the current state.
func (c *OfferListController) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	s.Offers = append([]models.Offer(nil), c.state.Offers...)
	if c.state.CurrentUser != nil {
		u := *c.state.CurrentUser
		s.CurrentUser = &u
	}
	return s
}
