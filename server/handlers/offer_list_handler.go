package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"coderr-web/controller"
	"coderr-web/logger"
	"coderr-web/middleware"
	"coderr-web/models"
	"coderr-web/util"
	"coderr-web/view"

	"github.com/gorilla/mux"
)

const (
	OFFER_LIST_PAGE = "/offer_list.html"

	SEARCH_QUERY_ARG           = "search"
	ORDERING_FORM_ARG          = "ordering"
	MAX_DELIVERY_TIME_FORM_ARG = "max_delivery_time"
	PAGE_PATH_VAR              = "page"
)

type OfferListHandler struct {
	registry *controller.Registry
	renderer *view.HTMLRenderer
	pageSize int
	log      *slog.Logger
}

func NewOfferListHandler(registry *controller.Registry, renderer *view.HTMLRenderer, pageSize int) *OfferListHandler {
	return &OfferListHandler{
		registry: registry,
		renderer: renderer,
		pageSize: pageSize,
		log:      logger.Component("OfferListHandler"),
	}
}

// ShowOfferList handles GET /offer_list.html. A search query argument, a new
// session or changed login cookies start the session's controller over.
func (h *OfferListHandler) ShowOfferList(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionIDFromContext(r.Context())
	creds := CredentialsFromRequest(r)
	query := r.URL.Query()
	_, hasSearch := query[SEARCH_QUERY_ARG]

	ctrl, ok := h.registry.Get(sessionID)
	if !ok || hasSearch || ctrl.Credentials() != creds {
		ctrl = h.registry.Create(sessionID, creds)
		// Failures are kept in the controller state and rendered below.
		_ = ctrl.Initialize(r.Context(), query.Get(SEARCH_QUERY_ARG))
	}

	v := view.BuildOfferListView(ctrl.Snapshot(), h.pageSize)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.Render(w, v); err != nil {
		h.log.Error("failed to render offer list", slog.String("error", err.Error()))
	}
}

// Search handles POST /offer_list/search.
func (h *OfferListHandler) Search(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(ctx context.Context, c *controller.OfferListController) error {
		return c.SetSearch(ctx, r.PostFormValue(SEARCH_QUERY_ARG))
	})
}

// GoToPage handles POST /offer_list/page/{page}.
func (h *OfferListHandler) GoToPage(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(mux.Vars(r)[PAGE_PATH_VAR])
	if err != nil {
		http.Error(w, "Invalid argument "+PAGE_PATH_VAR, http.StatusBadRequest)
		return
	}
	h.act(w, r, func(ctx context.Context, c *controller.OfferListController) error {
		return c.GoToPage(ctx, page)
	})
}

// SetOrdering handles POST /offer_list/ordering.
func (h *OfferListHandler) SetOrdering(w http.ResponseWriter, r *http.Request) {
	ordering, err := models.ParseOrdering(r.PostFormValue(ORDERING_FORM_ARG))
	if err != nil {
		http.Error(w, "Invalid argument "+ORDERING_FORM_ARG, http.StatusBadRequest)
		return
	}
	h.act(w, r, func(ctx context.Context, c *controller.OfferListController) error {
		return c.SetOrdering(ctx, ordering)
	})
}

// ClearOrdering handles POST /offer_list/ordering/clear.
func (h *OfferListHandler) ClearOrdering(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(ctx context.Context, c *controller.OfferListController) error {
		return c.ClearOrdering(ctx)
	})
}

// ToggleOrderingPanel handles POST /offer_list/ordering/toggle.
func (h *OfferListHandler) ToggleOrderingPanel(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(_ context.Context, c *controller.OfferListController) error {
		c.ToggleOrderingPanel()
		return nil
	})
}

// SetMaxDeliveryTime handles POST /offer_list/delivery_time: selects and commits
// a delivery-time bound without touching the panel.
func (h *OfferListHandler) SetMaxDeliveryTime(w http.ResponseWriter, r *http.Request) {
	value := r.PostFormValue(MAX_DELIVERY_TIME_FORM_ARG)
	if _, err := models.ParseMaxDeliveryTime(value); err != nil {
		http.Error(w, "Invalid argument "+MAX_DELIVERY_TIME_FORM_ARG, http.StatusBadRequest)
		return
	}
	h.act(w, r, func(ctx context.Context, c *controller.OfferListController) error {
		if err := c.SetPendingMaxDeliveryTime(value); err != nil {
			return err
		}
		return c.SetMaxDeliveryTime(ctx)
	})
}

// ApplyMaxDeliveryTime handles POST /offer_list/delivery_time/apply. A submitted
// radio value becomes the pending bound first.
func (h *OfferListHandler) ApplyMaxDeliveryTime(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	_, submitted := r.PostForm[MAX_DELIVERY_TIME_FORM_ARG]
	value := r.PostForm.Get(MAX_DELIVERY_TIME_FORM_ARG)
	if _, err := models.ParseMaxDeliveryTime(value); submitted && err != nil {
		http.Error(w, "Invalid argument "+MAX_DELIVERY_TIME_FORM_ARG, http.StatusBadRequest)
		return
	}
	h.act(w, r, func(ctx context.Context, c *controller.OfferListController) error {
		if submitted {
			if err := c.SetPendingMaxDeliveryTime(value); err != nil {
				return err
			}
		}
		return c.ApplyMaxDeliveryTime(ctx)
	})
}

// ClearMaxDeliveryTime handles POST /offer_list/delivery_time/clear.
func (h *OfferListHandler) ClearMaxDeliveryTime(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(ctx context.Context, c *controller.OfferListController) error {
		return c.ClearMaxDeliveryTime(ctx)
	})
}

// ToggleDeliveryTimePanel handles POST /offer_list/delivery_time/toggle.
func (h *OfferListHandler) ToggleDeliveryTimePanel(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(_ context.Context, c *controller.OfferListController) error {
		c.ToggleDeliveryTimePanel()
		return nil
	})
}

// Chart handles GET /offer_list/chart: a bar chart of the offers currently shown.
func (h *OfferListHandler) Chart(w http.ResponseWriter, r *http.Request) {
	ctrl := h.controller(r)
	v := view.BuildOfferListView(ctrl.Snapshot(), h.pageSize)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := util.PlotOffers(v.Offers, w); err != nil {
		h.log.Error("failed to render chart", slog.String("error", err.Error()))
	}
}

// act runs op on the session's controller and sends the browser back to the list.
// Fetch failures stay in the controller state, so they only get logged here.
func (h *OfferListHandler) act(w http.ResponseWriter, r *http.Request, op func(context.Context, *controller.OfferListController) error) {
	ctrl := h.controller(r)
	if err := op(r.Context(), ctrl); err != nil {
		h.log.Warn("offer list action failed",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
	}
	http.Redirect(w, r, OFFER_LIST_PAGE, http.StatusSeeOther)
}

// controller returns the session's controller, initializing one when the
// session has none yet or its login cookies changed.
func (h *OfferListHandler) controller(r *http.Request) *controller.OfferListController {
	sessionID := middleware.SessionIDFromContext(r.Context())
	creds := CredentialsFromRequest(r)
	if ctrl, ok := h.registry.Get(sessionID); ok && ctrl.Credentials() == creds {
		return ctrl
	}
	ctrl := h.registry.Create(sessionID, creds)
	_ = ctrl.Initialize(r.Context(), "")
	return ctrl
}
