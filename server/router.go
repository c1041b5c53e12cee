package server

import (
	"net/http"

	"coderr-web/server/handlers"

	"github.com/gorilla/mux"
)

type Router struct {
	offerListHandler *handlers.OfferListHandler
	redirectHandler  *handlers.RedirectHandler
	healthHandler    *handlers.HealthHandler
	metricsHandler   http.Handler
	middlewares      []mux.MiddlewareFunc
	router           *mux.Router
}

// NewRouter creates a router with the app’s routes. Middlewares run in the
// order given, the first one outermost.
func NewRouter(
	offerListHandler *handlers.OfferListHandler,
	redirectHandler *handlers.RedirectHandler,
	healthHandler *handlers.HealthHandler,
	metricsHandler http.Handler,
	router *mux.Router,
	middlewares ...mux.MiddlewareFunc) *Router {
	return &Router{
		offerListHandler: offerListHandler,
		redirectHandler:  redirectHandler,
		healthHandler:    healthHandler,
		metricsHandler:   metricsHandler,
		middlewares:      middlewares,
		router:           router,
	}
}

func (r *Router) RegisterRoutes() {
	r.router.Use(r.middlewares...)

	r.router.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, handlers.OFFER_LIST_PAGE, http.StatusFound)
	}).Methods(http.MethodGet)

	// accepts ?search={text}; its presence starts the session's filter over
	r.router.HandleFunc(handlers.OFFER_LIST_PAGE, r.offerListHandler.ShowOfferList).Methods(http.MethodGet)
	r.router.HandleFunc("/offer_list/chart", r.offerListHandler.Chart).Methods(http.MethodGet)

	// actions answer 303 back to the offer list page
	actions := r.router.PathPrefix("/offer_list").Methods(http.MethodPost).Subrouter()
	actions.HandleFunc("/search", r.offerListHandler.Search)
	actions.HandleFunc("/page/{page}", r.offerListHandler.GoToPage)
	actions.HandleFunc("/ordering", r.offerListHandler.SetOrdering)
	actions.HandleFunc("/ordering/clear", r.offerListHandler.ClearOrdering)
	actions.HandleFunc("/ordering/toggle", r.offerListHandler.ToggleOrderingPanel)
	actions.HandleFunc("/delivery_time", r.offerListHandler.SetMaxDeliveryTime)
	actions.HandleFunc("/delivery_time/apply", r.offerListHandler.ApplyMaxDeliveryTime)
	actions.HandleFunc("/delivery_time/clear", r.offerListHandler.ClearMaxDeliveryTime)
	actions.HandleFunc("/delivery_time/toggle", r.offerListHandler.ToggleDeliveryTimePanel)

	redirects := r.router.PathPrefix("/redirect").Methods(http.MethodGet).Subrouter()
	redirects.HandleFunc("/offer/{id}", r.redirectHandler.Offer)
	redirects.HandleFunc("/offer_list", r.redirectHandler.OfferList)
	redirects.HandleFunc("/own_profile", r.redirectHandler.OwnProfile)
	redirects.HandleFunc("/business_profile/{id}", r.redirectHandler.BusinessProfile)
	redirects.HandleFunc("/customer_profile/{id}", r.redirectHandler.CustomerProfile)

	r.router.HandleFunc("/ping", r.healthHandler.Ping).Methods(http.MethodGet)
	r.router.HandleFunc("/health", r.healthHandler.Health).Methods(http.MethodGet)
	r.router.Handle("/metrics", r.metricsHandler).Methods(http.MethodGet)
}
