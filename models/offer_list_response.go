package models

// OfferListResponse is one server-side page of offers.
// Count is the total number of offers matching the filter, not the page length.
type OfferListResponse struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []Offer `json:"results"`
}
