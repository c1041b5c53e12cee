package coderr

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"coderr-web/api"
	"coderr-web/config"
	"coderr-web/models"
	"coderr-web/util"
)

// CoderrApiClientMock serves fixture data from a resources directory and applies
// the offer filters in memory, so the front end behaves as it would against the API.
type CoderrApiClientMock struct {
	resourceDir string
}

// NewCoderrApiClientMock creates a new instance of CoderrApiClientMock
func NewCoderrApiClientMock(resourceDir string) *CoderrApiClientMock {
	return &CoderrApiClientMock{resourceDir: resourceDir}
}

func (c *CoderrApiClientMock) ListOffers(ctx context.Context, filter models.OfferListFilter, pageSize int) (*models.OfferListResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, &api.RequestError{Kind: api.KindNetwork, Method: http.MethodGet, URL: config.OFFER_URL, Err: err}
	}
	all, err := util.ReadOfferListResponseFromJSON(filepath.Join(c.resourceDir, config.OFFER_LIST_RESPONSE_RESOURCE))
	if err != nil {
		return nil, &api.RequestError{Kind: api.KindMalformed, Method: http.MethodGet, URL: config.OFFER_URL, Err: err}
	}

	offers := filterOffers(all.Results, filter)
	sortOffers(offers, filter.Ordering)

	filter = filter.Normalized()
	if pageSize <= 0 {
		pageSize = config.PAGE_SIZE
	}
	start := (filter.Page - 1) * pageSize
	if start > 0 && start >= len(offers) {
		return nil, notFound(config.OFFER_URL)
	}
	end := start + pageSize
	if end > len(offers) {
		end = len(offers)
	}

	response := &models.OfferListResponse{
		Count:   len(offers),
		Results: offers[start:end],
	}
	if end < len(offers) {
		next := pageLink(filter, filter.Page+1, pageSize)
		response.Next = &next
	}
	if filter.Page > 1 {
		prev := pageLink(filter, filter.Page-1, pageSize)
		response.Previous = &prev
	}
	return response, nil
}

func (c *CoderrApiClientMock) GetProfile(ctx context.Context, userID int) (*models.CurrentUser, error) {
	profiles, err := util.ReadProfilesFromJSON(filepath.Join(c.resourceDir, config.PROFILES_RESOURCE))
	if err != nil {
		return nil, &api.RequestError{Kind: api.KindMalformed, Method: http.MethodGet, URL: config.PROFILE_URL, Err: err}
	}
	for _, p := range profiles {
		if p.User == userID {
			profile := p
			return &profile, nil
		}
	}
	return nil, notFound(fmt.Sprintf("%s%d/", config.PROFILE_URL, userID))
}

func (c *CoderrApiClientMock) GetBaseInfo(ctx context.Context) (*models.BaseInfo, error) {
	info, err := util.ReadBaseInfoFromJSON(filepath.Join(c.resourceDir, config.BASE_INFO_RESOURCE))
	if err != nil {
		return nil, &api.RequestError{Kind: api.KindMalformed, Method: http.MethodGet, URL: config.BASE_INFO_URL, Err: err}
	}
	return info, nil
}

func filterOffers(offers []models.Offer, filter models.OfferListFilter) []models.Offer {
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	maxDays, _ := strconv.Atoi(filter.MaxDeliveryTime)

	out := make([]models.Offer, 0, len(offers))
	for _, o := range offers {
		if search != "" &&
			!strings.Contains(strings.ToLower(o.Title), search) &&
			!strings.Contains(strings.ToLower(o.Description), search) {
			continue
		}
		if maxDays > 0 && o.MinDeliveryTime > maxDays {
			continue
		}
		out = append(out, o)
	}
	return out
}

func sortOffers(offers []models.Offer, ordering models.Ordering) {
	var less func(a, b models.Offer) bool
	switch ordering {
	case models.OrderingNewest:
		less = func(a, b models.Offer) bool { return a.UpdatedAt.After(b.UpdatedAt) }
	case models.OrderingOldest:
		less = func(a, b models.Offer) bool { return a.UpdatedAt.Before(b.UpdatedAt) }
	case models.OrderingPriceAsc:
		less = func(a, b models.Offer) bool { return a.MinPrice < b.MinPrice }
	case models.OrderingPriceDesc:
		less = func(a, b models.Offer) bool { return a.MinPrice > b.MinPrice }
	default:
		return
	}
	sort.SliceStable(offers, func(i, j int) bool { return less(offers[i], offers[j]) })
}

func pageLink(filter models.OfferListFilter, page, pageSize int) string {
	filter.Page = page
	return config.OFFER_URL + "?" + filter.ToValues(pageSize).Encode()
}

func notFound(endpoint string) error {
	return &api.RequestError{
		Kind:       api.KindStatus,
		Method:     http.MethodGet,
		URL:        endpoint,
		StatusCode: http.StatusNotFound,
		Status:     "404 Not Found",
	}
}
