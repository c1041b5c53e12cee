package coderr

import (
	"context"

	"coderr-web/models"
)

// CoderrAPI defines the interface for interacting with the Coderr marketplace API.
// The caller's token travels in ctx (see api.WithToken).
type CoderrAPI interface {
	ListOffers(ctx context.Context, filter models.OfferListFilter, pageSize int) (*models.OfferListResponse, error)
	GetProfile(ctx context.Context, userID int) (*models.CurrentUser, error)
	GetBaseInfo(ctx context.Context) (*models.BaseInfo, error)
}
