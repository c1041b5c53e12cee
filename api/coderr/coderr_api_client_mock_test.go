package coderr

import (
	"context"
	"strings"
	"testing"

	"coderr-web/api"
	"coderr-web/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testResourceDir = "../../resources"

func TestMockListOffers_FirstPage(t *testing.T) {
	client := NewCoderrApiClientMock(testResourceDir)

	got, err := client.ListOffers(context.Background(), models.NewOfferListFilter(), 6)

	require.NoError(t, err)
	assert.Equal(t, 13, got.Count)
	assert.Len(t, got.Results, 6)
	assert.NotNil(t, got.Next)
	assert.Nil(t, got.Previous)
}

func TestMockListOffers_LastPage(t *testing.T) {
	client := NewCoderrApiClientMock(testResourceDir)

	got, err := client.ListOffers(context.Background(), models.OfferListFilter{Page: 3}, 6)

	require.NoError(t, err)
	assert.Len(t, got.Results, 1)
	assert.Nil(t, got.Next)
	assert.NotNil(t, got.Previous)
}

func TestMockListOffers_PageOutOfRange(t *testing.T) {
	client := NewCoderrApiClientMock(testResourceDir)

	_, err := client.ListOffers(context.Background(), models.OfferListFilter{Page: 9}, 6)

	require.Error(t, err)
	assert.Equal(t, api.KindStatus, api.KindOf(err))
}

func TestMockListOffers_SearchAndDeliveryTime(t *testing.T) {
	client := NewCoderrApiClientMock(testResourceDir)

	got, err := client.ListOffers(context.Background(), models.OfferListFilter{Search: "LOGO", Page: 1}, 6)
	require.NoError(t, err)
	require.NotEmpty(t, got.Results)
	for _, o := range got.Results {
		assert.Contains(t, strings.ToLower(o.Title+o.Description), "logo")
	}

	got, err = client.ListOffers(context.Background(), models.OfferListFilter{MaxDeliveryTime: "1", Page: 1}, 6)
	require.NoError(t, err)
	for _, o := range got.Results {
		assert.LessOrEqual(t, o.MinDeliveryTime, 1)
	}
}

func TestMockListOffers_OrderingByPrice(t *testing.T) {
	client := NewCoderrApiClientMock(testResourceDir)

	got, err := client.ListOffers(context.Background(), models.OfferListFilter{Ordering: models.OrderingPriceAsc, Page: 1}, 13)

	require.NoError(t, err)
	for i := 1; i < len(got.Results); i++ {
		assert.LessOrEqual(t, float64(got.Results[i-1].MinPrice), float64(got.Results[i].MinPrice))
	}
}

func TestMockListOffers_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCoderrApiClientMock(testResourceDir).ListOffers(ctx, models.NewOfferListFilter(), 6)

	assert.Equal(t, api.KindNetwork, api.KindOf(err))
}

func TestMockGetProfile(t *testing.T) {
	client := NewCoderrApiClientMock(testResourceDir)

	got, err := client.GetProfile(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, models.UserTypeBusiness, got.Type)

	_, err = client.GetProfile(context.Background(), 999)
	assert.Equal(t, api.KindStatus, api.KindOf(err))
}

func TestMockGetBaseInfo(t *testing.T) {
	got, err := NewCoderrApiClientMock(testResourceDir).GetBaseInfo(context.Background())

	require.NoError(t, err)
	assert.Positive(t, got.OfferCount)
}
