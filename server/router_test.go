package server

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"coderr-web/api/coderr"
	"coderr-web/config"
	"coderr-web/controller"
	"coderr-web/dao/redis"
	"coderr-web/db"
	"coderr-web/metrics"
	"coderr-web/middleware"
	services "coderr-web/service"
	"coderr-web/server/handlers"
	"coderr-web/view"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testResourceDir = "../resources"

func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()

	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)
	redisClient := db.NewMockRedisClient()
	offerDao := redis.NewRedisOfferDAO(redisClient, time.Minute)
	offerService := services.NewOfferService(offerDao, coderr.NewCoderrApiClientMock(testResourceDir), config.PAGE_SIZE, collector)
	registry := controller.NewRegistry(offerService, collector, time.Hour)

	renderer, err := view.NewHTMLRenderer(config.STATIC_BASE_URL)
	require.NoError(t, err)

	muxRouter := mux.NewRouter()
	appRouter := NewRouter(
		handlers.NewOfferListHandler(registry, renderer, config.PAGE_SIZE),
		handlers.NewRedirectHandler(offerService, "/"),
		handlers.NewHealthHandler(redisClient),
		metrics.Handler(reg),
		muxRouter,
		middleware.NewRecoveryMiddleware(nil),
		middleware.NewSessionMiddleware(config.SESSION_COOKIE),
	)
	appRouter.RegisterRoutes()
	return muxRouter
}

// browser replays one session's cookies across requests.
type browser struct {
	t       *testing.T
	router  http.Handler
	cookies []*http.Cookie
}

func newBrowser(t *testing.T, router http.Handler, userID string) *browser {
	b := &browser{
		t:       t,
		router:  router,
		cookies: []*http.Cookie{{Name: config.SESSION_COOKIE, Value: uuid.NewString()}},
	}
	if userID != "" {
		b.cookies = append(b.cookies,
			&http.Cookie{Name: config.TOKEN_COOKIE, Value: "token-" + userID},
			&http.Cookie{Name: config.USER_ID_COOKIE, Value: userID},
		)
	}
	return b
}

func (b *browser) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, c := range b.cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	b.router.ServeHTTP(rr, req)
	return rr
}

func (b *browser) page(path string) *goquery.Document {
	b.t.Helper()
	rr := b.do(http.MethodGet, path, nil)
	require.Equal(b.t, http.StatusOK, rr.Code)
	doc, err := goquery.NewDocumentFromReader(rr.Body)
	require.NoError(b.t, err)
	return doc
}

func (b *browser) post(path string, form url.Values) {
	b.t.Helper()
	rr := b.do(http.MethodPost, path, form)
	require.Equal(b.t, http.StatusSeeOther, rr.Code, rr.Body.String())
	require.Equal(b.t, handlers.OFFER_LIST_PAGE, rr.Header().Get("Location"))
}

func TestRouter_RegisterRoutes(t *testing.T) {
	// Setup
	router := newTestRouter(t)

	// Test Cases
	tests := []struct {
		name       string
		method     string
		path       string
		statusCode int
		response   string
	}{
		{
			name:       "Ping Route",
			method:     "GET",
			path:       "/ping",
			statusCode: http.StatusOK,
			response:   "{\"status\":\"pong\"}\n",
		},
		{
			name:       "Health Route",
			method:     "GET",
			path:       "/health",
			statusCode: http.StatusOK,
			response:   "{\"status\":\"ok\"}\n",
		},
		{
			name:       "Metrics Route",
			method:     "GET",
			path:       "/metrics",
			statusCode: http.StatusOK,
		},
		{
			name:       "Root Redirects To Offer List",
			method:     "GET",
			path:       "/",
			statusCode: http.StatusFound,
		},
		{
			name:       "Offer List Page",
			method:     "GET",
			path:       "/offer_list.html",
			statusCode: http.StatusOK,
		},
		{
			name:       "Offer Chart",
			method:     "GET",
			path:       "/offer_list/chart",
			statusCode: http.StatusOK,
		},
		{
			name:       "Search Action",
			method:     "POST",
			path:       "/offer_list/search",
			statusCode: http.StatusSeeOther,
		},
		{
			name:       "Toggle Ordering Panel",
			method:     "POST",
			path:       "/offer_list/ordering/toggle",
			statusCode: http.StatusSeeOther,
		},
		{
			name:       "Malformed Page Number",
			method:     "POST",
			path:       "/offer_list/page/abc",
			statusCode: http.StatusBadRequest,
		},
		{
			name:       "Action Requires POST",
			method:     "GET",
			path:       "/offer_list/search",
			statusCode: http.StatusMethodNotAllowed,
		},
		{
			name:       "Own Profile Redirect",
			method:     "GET",
			path:       "/redirect/own_profile",
			statusCode: http.StatusFound,
		},
		{
			name:       "Offer Redirect Needs Login",
			method:     "GET",
			path:       "/redirect/offer/1",
			statusCode: http.StatusUnauthorized,
			response:   "{\"hint\":\"Loggen Sie sich bitte ein, um Details zu sehen.\"}\n",
		},
		{
			name:       "Invalid Route",
			method:     "GET",
			path:       "/invalid",
			statusCode: http.StatusNotFound,
		},
	}

	// Run tests
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			req := httptest.NewRequest(test.method, test.path, nil)
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			// Assert status code
			if rr.Code != test.statusCode {
				t.Errorf("Expected status %d, got %d", test.statusCode, rr.Code)
			}

			// Assert response body, if applicable
			if test.response != "" && rr.Body.String() != test.response {
				t.Errorf("Expected response %s, got %s", test.response, rr.Body.String())
			}
		})
	}
}

func TestOfferList_NotLoggedIn(t *testing.T) {
	b := newBrowser(t, newTestRouter(t), "")

	doc := b.page("/offer_list.html")

	assert.Equal(t, "Du bist nicht eingeloggt.", doc.Find("#offer_list_content .empty_offer_list p").Text())
	assert.Equal(t, 0, doc.Find(".offer_card").Length())
}

func TestOfferList_CustomerPaging(t *testing.T) {
	b := newBrowser(t, newTestRouter(t), "3")

	doc := b.page("/offer_list.html")
	assert.Equal(t, "Hallo Andrey!", doc.Find("#offer_list_greeting_section h2").Text())
	assert.Equal(t, 6, doc.Find(".offer_card").Length())
	assert.Equal(t, 3, doc.Find(".pagination form").Length()-1, "pages 1..3 plus next")

	b.post("/offer_list/page/3", nil)

	doc = b.page("/offer_list.html")
	assert.Equal(t, 1, doc.Find(".offer_card").Length())
	assert.Equal(t, "13", doc.Find(".offer_card").AttrOr("data-offer-id", ""))
	assert.Equal(t, "3", doc.Find(".pagination button.current").Text())
}

func TestOfferList_BusinessSeesOwnOffersOnly(t *testing.T) {
	b := newBrowser(t, newTestRouter(t), "1")

	doc := b.page("/offer_list.html")

	var ids []string
	doc.Find(".offer_card").Each(func(_ int, s *goquery.Selection) {
		ids = append(ids, s.AttrOr("data-offer-id", ""))
	})
	assert.Equal(t, []string{"1", "2", "5"}, ids)
}

func TestOfferList_SearchAndFilters(t *testing.T) {
	b := newBrowser(t, newTestRouter(t), "3")

	doc := b.page("/offer_list.html?search=logo")
	assert.Equal(t, "logo", doc.Find("#offer_list_searchbar").AttrOr("value", ""))
	assert.Equal(t, 2, doc.Find(".offer_card").Length())

	b.post("/offer_list/search", url.Values{"search": {""}})
	b.post("/offer_list/delivery_time/toggle", nil)
	b.post("/offer_list/delivery_time/apply", url.Values{"max_delivery_time": {"1"}})

	doc = b.page("/offer_list.html")
	assert.Equal(t, 3, doc.Find(".offer_card").Length())
	assert.True(t, doc.Find("#offer_list_delivery_time_box").HasClass("d_none"), "apply closes the panel")

	b.post("/offer_list/ordering/toggle", nil)
	b.post("/offer_list/ordering", url.Values{"ordering": {"-min_price"}})
	doc = b.page("/offer_list.html")
	assert.Equal(t, "-min_price", doc.Find("#offer_list_filter_ordering input[checked]").AttrOr("value", ""))

	b.post("/offer_list/ordering/clear", nil)
	doc = b.page("/offer_list.html")
	assert.True(t, doc.Find("#offer_list_filter_ordering").HasClass("d_none"), "clear closes the panel")
}

func TestOfferList_InvalidFormValues(t *testing.T) {
	b := newBrowser(t, newTestRouter(t), "3")

	assert.Equal(t, http.StatusBadRequest, b.do(http.MethodPost, "/offer_list/ordering", url.Values{"ordering": {"price"}}).Code)
	assert.Equal(t, http.StatusBadRequest, b.do(http.MethodPost, "/offer_list/delivery_time", url.Values{"max_delivery_time": {"-2"}}).Code)
}

func TestRedirects_LoggedIn(t *testing.T) {
	b := newBrowser(t, newTestRouter(t), "3")

	rr := b.do(http.MethodGet, "/redirect/offer/4", nil)
	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/offer.html?id=4", rr.Header().Get("Location"))

	rr = b.do(http.MethodGet, "/redirect/offer_list?search=%20%20", nil)
	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/offer_list.html?search=", rr.Header().Get("Location"))

	rr = b.do(http.MethodGet, "/redirect/business_profile/2", nil)
	assert.Equal(t, "/business_profile.html?id=2", rr.Header().Get("Location"))

	rr = b.do(http.MethodGet, "/redirect/customer_profile/0", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestChart_PlotsShownOffers(t *testing.T) {
	b := newBrowser(t, newTestRouter(t), "1")
	b.page("/offer_list.html")

	rr := b.do(http.MethodGet, "/offer_list/chart", nil)

	assert.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "Logo Design")
	assert.NotContains(t, body, "Flyer Gestaltung")
}
