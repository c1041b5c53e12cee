package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"coderr-web/db"
	"coderr-web/models"
)

// OFFER_LIST_KEY_FORMAT caches one offer-list page per encoded API query.
const OFFER_LIST_KEY_FORMAT = "offer_list_v1:%s"

// RedisOfferDAO caches offer-list pages in Redis.
type RedisOfferDAO struct {
	client db.RedisClient
	ttl    time.Duration
}

// NewRedisOfferDAO initializes a RedisOfferDAO. Entries expire after ttl.
func NewRedisOfferDAO(client db.RedisClient, ttl time.Duration) *RedisOfferDAO {
	return &RedisOfferDAO{client: client, ttl: ttl}
}

// OfferListKey is the cache key of one filtered page.
func OfferListKey(filter models.OfferListFilter, pageSize int) string {
	return fmt.Sprintf(OFFER_LIST_KEY_FORMAT, filter.ToValues(pageSize).Encode())
}

// SetOfferList caches resp for filter.
func (dao *RedisOfferDAO) SetOfferList(ctx context.Context, filter models.OfferListFilter, pageSize int, resp *models.OfferListResponse) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to marshal offer list: %w", err)
	}
	if err := dao.client.Set(ctx, OfferListKey(filter, pageSize), string(data), dao.ttl); err != nil {
		return fmt.Errorf("failed to set offer list in redis: %w", err)
	}
	return nil
}

// GetOfferList returns the cached page for filter, or nil, nil on a miss.
func (dao *RedisOfferDAO) GetOfferList(ctx context.Context, filter models.OfferListFilter, pageSize int) (*models.OfferListResponse, error) {
	str, err := dao.client.Get(ctx, OfferListKey(filter, pageSize))
	if errors.Is(err, db.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get offer list from redis: %w", err)
	}
	var resp models.OfferListResponse
	if err := json.Unmarshal([]byte(str), &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal offer list JSON: %w", err)
	}
	return &resp, nil
}

// InvalidateOfferLists drops every cached page and returns how many were removed.
func (dao *RedisOfferDAO) InvalidateOfferLists(ctx context.Context) (int, error) {
	keys, err := dao.client.Keys(ctx, fmt.Sprintf(OFFER_LIST_KEY_FORMAT, "*"))
	if err != nil {
		return 0, fmt.Errorf("failed to list offer list keys: %w", err)
	}
	if err := dao.client.Del(ctx, keys...); err != nil {
		return 0, fmt.Errorf("failed to delete offer list keys: %w", err)
	}
	return len(keys), nil
}
