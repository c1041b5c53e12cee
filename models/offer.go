package models

import (
	"encoding/json"
	"strconv"
	"time"
)

// Offer is a listing created by a business user, as returned by the offers endpoint.
type Offer struct {
	ID              int               `json:"id"`
	User            int               `json:"user"`
	Title           string            `json:"title"`
	Image           *string           `json:"image"`
	Description     string            `json:"description"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
	Details         []OfferDetailLink `json:"details"`
	MinPrice        Price             `json:"min_price"`
	MinDeliveryTime int               `json:"min_delivery_time"`
	UserDetails     *OfferUserDetails `json:"user_details,omitempty"`
}

// OfferDetailLink points at one of the offer's packages (basic, standard, premium).
type OfferDetailLink struct {
	ID  int    `json:"id"`
	URL string `json:"url"`
}

// OfferUserDetails is the owner summary embedded in list responses.
type OfferUserDetails struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
}

// Price accepts both JSON numbers and decimal strings ("49.90").
type Price float64

func (p *Price) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*p = 0
		return nil
	}
	var n json.Number
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		n = json.Number(s)
	} else if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	f, err := strconv.ParseFloat(string(n), 64)
	if err != nil {
		return err
	}
	*p = Price(f)
	return nil
}
