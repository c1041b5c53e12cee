package coderr

import (
	"context"
	"fmt"
	"net/http"

	"coderr-web/api"
	"coderr-web/config"
	"coderr-web/models"

	"github.com/pkg/errors"
)

// CoderrApiClient embeds the common HTTPClient
type CoderrApiClient struct {
	*api.HTTPClient
}

// NewCoderrApiClient creates a new instance of CoderrApiClient
func NewCoderrApiClient(httpClient *api.HTTPClient) *CoderrApiClient {
	return &CoderrApiClient{
		HTTPClient: httpClient,
	}
}

// ListOffers fetches one page of offers matching filter.
func (c *CoderrApiClient) ListOffers(ctx context.Context, filter models.OfferListFilter, pageSize int) (*models.OfferListResponse, error) {
	var response models.OfferListResponse
	err := c.Request(ctx, http.MethodGet, config.OFFER_URL, filter.ToValues(pageSize), nil, nil, &response)
	if err != nil {
		return nil, errors.Wrap(err, "list offers")
	}
	return &response, nil
}

// GetProfile retrieves the profile of userID.
func (c *CoderrApiClient) GetProfile(ctx context.Context, userID int) (*models.CurrentUser, error) {
	var response models.CurrentUser
	endpoint := fmt.Sprintf("%s%d/", config.PROFILE_URL, userID)
	if err := c.Request(ctx, http.MethodGet, endpoint, nil, nil, nil, &response); err != nil {
		return nil, errors.Wrapf(err, "get profile %d", userID)
	}
	return &response, nil
}

// GetBaseInfo retrieves the marketplace statistics.
func (c *CoderrApiClient) GetBaseInfo(ctx context.Context) (*models.BaseInfo, error) {
	var response models.BaseInfo
	if err := c.Request(ctx, http.MethodGet, config.BASE_INFO_URL, nil, nil, nil, &response); err != nil {
		return nil, errors.Wrap(err, "get base info")
	}
	return &response, nil
}
