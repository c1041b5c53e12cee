package models

import (
	"fmt"
	"net/url"
	"strconv"
)

// Ordering is a sort key understood by the offers endpoint. The zero value means "no ordering".
type Ordering string

const (
	OrderingNone      Ordering = ""
	OrderingNewest    Ordering = "-updated_at"
	OrderingOldest    Ordering = "updated_at"
	OrderingPriceAsc  Ordering = "min_price"
	OrderingPriceDesc Ordering = "-min_price"
)

// Orderings lists the selectable sort keys in display order.
var Orderings = []Ordering{OrderingNewest, OrderingOldest, OrderingPriceAsc, OrderingPriceDesc}

// DeliveryTimeOptions lists the selectable maximum delivery times in days.
var DeliveryTimeOptions = []string{"1", "3", "7"}

// ParseOrdering validates a sort key coming from a form or flag.
func ParseOrdering(s string) (Ordering, error) {
	if s == "" {
		return OrderingNone, nil
	}
	for _, o := range Orderings {
		if string(o) == s {
			return o, nil
		}
	}
	return OrderingNone, fmt.Errorf("invalid ordering %q", s)
}

// ParseMaxDeliveryTime validates a delivery-time bound: empty or a positive integer string.
func ParseMaxDeliveryTime(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return "", fmt.Errorf("invalid max delivery time %q", s)
	}
	return strconv.Itoa(n), nil
}

// OfferListFilter is the query applied to the offer list.
type OfferListFilter struct {
	Search          string
	Page            int
	Ordering        Ordering
	MaxDeliveryTime string
}

// NewOfferListFilter returns the unfiltered first page.
func NewOfferListFilter() OfferListFilter {
	return OfferListFilter{Page: 1}
}

// Normalized returns a copy with Page clamped to 1 or more.
func (f OfferListFilter) Normalized() OfferListFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	return f
}

// ToValues mirrors the API's query args. Empty fields are omitted.
func (f OfferListFilter) ToValues(pageSize int) url.Values {
	f = f.Normalized()
	q := url.Values{}
	q.Set("page", strconv.Itoa(f.Page))
	q.Set("page_size", strconv.Itoa(pageSize))
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Ordering != OrderingNone {
		q.Set("ordering", string(f.Ordering))
	}
	if f.MaxDeliveryTime != "" {
		q.Set("max_delivery_time", f.MaxDeliveryTime)
	}
	return q
}
