package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"coderr-web/logger"
	"coderr-web/models"
	"coderr-web/navigation"

	"github.com/gorilla/mux"
)

const ID_PATH_VAR = "id"

// UserLoader resolves the logged-in user. services.OfferService satisfies it.
type UserLoader interface {
	LoadCurrentUser(ctx context.Context, creds models.Credentials) (*models.CurrentUser, error)
}

// RedirectHandler binds the navigation helpers to HTTP: a navigation becomes a
// 302 into the front end, a hint becomes a 401 with a JSON body.
type RedirectHandler struct {
	users           UserLoader
	frontendBaseURL string
	log             *slog.Logger
}

func NewRedirectHandler(users UserLoader, frontendBaseURL string) *RedirectHandler {
	return &RedirectHandler{
		users:           users,
		frontendBaseURL: frontendBaseURL,
		log:             logger.Component("RedirectHandler"),
	}
}

// Offer handles GET /redirect/offer/{id}.
func (h *RedirectHandler) Offer(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	h.write(w, r, navigation.RedirectToOffer(user, id))
}

// OfferList handles GET /redirect/offer_list?search=...
func (h *RedirectHandler) OfferList(w http.ResponseWriter, r *http.Request) {
	user, ok := h.currentUser(w, r)
	if !ok {
		return
	}
	h.write(w, r, navigation.RedirectToOfferList(user, r.URL.Query().Get(SEARCH_QUERY_ARG)))
}

// OwnProfile handles GET /redirect/own_profile.
func (h *RedirectHandler) OwnProfile(w http.ResponseWriter, r *http.Request) {
	h.write(w, r, navigation.RedirectToOwnProfile())
}

// BusinessProfile handles GET /redirect/business_profile/{id}.
func (h *RedirectHandler) BusinessProfile(w http.ResponseWriter, r *http.Request) {
	if id, ok := pathID(w, r); ok {
		h.write(w, r, navigation.RedirectToBusinessProfile(id))
	}
}

// CustomerProfile handles GET /redirect/customer_profile/{id}.
func (h *RedirectHandler) CustomerProfile(w http.ResponseWriter, r *http.Request) {
	if id, ok := pathID(w, r); ok {
		h.write(w, r, navigation.RedirectToCustomerProfile(id))
	}
}

func (h *RedirectHandler) currentUser(w http.ResponseWriter, r *http.Request) (*models.CurrentUser, bool) {
	user, err := h.users.LoadCurrentUser(r.Context(), CredentialsFromRequest(r))
	if err != nil {
		h.log.Error("failed to load current user", slog.String("error", err.Error()))
		http.Error(w, "Bad gateway", http.StatusBadGateway)
		return nil, false
	}
	return user, true
}

func (h *RedirectHandler) write(w http.ResponseWriter, r *http.Request, nav navigation.Navigation) {
	if nav.Navigates() {
		http.Redirect(w, r, navigation.Resolve(h.frontendBaseURL, nav.Location), http.StatusFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	if err := json.NewEncoder(w).Encode(map[string]string{"hint": nav.Hint}); err != nil {
		h.log.Error("failed to encode hint", slog.String("error", err.Error()))
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)[ID_PATH_VAR])
	if err != nil || id <= 0 {
		http.Error(w, "Invalid argument "+ID_PATH_VAR, http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
