// Package view turns a controller snapshot into the offer list view model and
// renders that model as HTML or terminal output.
package view

import (
	"coderr-web/api"
	"coderr-web/controller"
	"coderr-web/models"
)

// Kind selects what the offer list area shows.
type Kind int

const (
	KindError Kind = iota + 1
	KindNotLoggedIn
	KindOffers
	KindEmpty
)

func (k Kind) String() string {
	switch k {
	case KindError:
		return "error"
	case KindNotLoggedIn:
		return "not_logged_in"
	case KindOffers:
		return "offers"
	case KindEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// User-facing messages.
const (
	MessageNotLoggedIn = "Du bist nicht eingeloggt."
	MessageNoOffers    = "Es wurden keine Angebote gefunden."
	MessageLoadFailed  = "Die Angebote konnten nicht geladen werden."
	MessageMalformed   = "Ungültige Antwort vom Server."
)

var orderingLabels = map[models.Ordering]string{
	models.OrderingNewest:    "Neueste zuerst",
	models.OrderingOldest:    "Älteste zuerst",
	models.OrderingPriceAsc:  "Preis aufsteigend",
	models.OrderingPriceDesc: "Preis absteigend",
}

// RadioOption is one radio button of a filter panel.
type RadioOption struct {
	Value   string
	Label   string
	Checked bool
}

// PageLink is one entry of the pagination bar.
type PageLink struct {
	Number  int
	Current bool
}

// Pagination describes the pagination bar. Prev and Next are 0 when absent.
type Pagination struct {
	CurrentPage int
	NumPages    int
	Pages       []PageLink
	Prev        int
	Next        int
}

// OfferListView is everything a renderer needs for the offer list page.
type OfferListView struct {
	Kind    Kind
	Message string

	Search   string
	Greeting string

	Offers     []models.Offer
	TotalCount int
	Pagination Pagination

	OrderingOptions       []RadioOption
	DeliveryTimeOptions   []RadioOption
	OrderingPanelOpen     bool
	DeliveryTimePanelOpen bool

	BaseInfo *models.BaseInfo
}

// HasOffers reports whether offer cards are shown.
func (v OfferListView) HasOffers() bool {
	return v.Kind == KindOffers
}

// LoggedIn reports whether a greeting is shown.
func (v OfferListView) LoggedIn() bool {
	return v.Greeting != ""
}

// BuildOfferListView derives the view model from a controller snapshot.
func BuildOfferListView(s controller.State, pageSize int) OfferListView {
	v := OfferListView{
		Search:                s.Filter.Search,
		Greeting:              Greeting(s.CurrentUser),
		TotalCount:            s.TotalCount,
		OrderingOptions:       OrderingOptions(s.PendingOrdering),
		DeliveryTimeOptions:   DeliveryTimeOptions(s.PendingMaxDeliveryTime),
		OrderingPanelOpen:     s.OrderingPanelOpen,
		DeliveryTimePanelOpen: s.DeliveryTimePanelOpen,
		BaseInfo:              s.BaseInfo,
	}

	if s.Err != nil {
		v.Kind = KindError
		v.Message = ErrorMessage(s.Err)
		return v
	}

	user := s.CurrentUser
	if user == nil {
		v.Kind = KindNotLoggedIn
		v.Message = MessageNotLoggedIn
		return v
	}

	switch user.Type {
	case models.UserTypeBusiness:
		own := make([]models.Offer, 0, len(s.Offers))
		for _, o := range s.Offers {
			if o.User == user.User {
				own = append(own, o)
			}
		}
		if len(own) == 0 {
			v.Kind = KindEmpty
			v.Message = MessageNoOffers
			return v
		}
		v.Kind = KindOffers
		v.Offers = own
	case models.UserTypeCustomer:
		v.Kind = KindOffers
		v.Offers = s.Offers
	default:
		v.Kind = KindNotLoggedIn
		v.Message = MessageNotLoggedIn
		v.Greeting = ""
		return v
	}

	v.Pagination = BuildPagination(CalculateNumPages(s.TotalCount, pageSize), s.Filter.Page)
	return v
}

// CalculateNumPages returns ceil(total/pageSize).
func CalculateNumPages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// BuildPagination lists pages 1..numPages and marks current.
func BuildPagination(numPages, current int) Pagination {
	p := Pagination{CurrentPage: current, NumPages: numPages}
	for i := 1; i <= numPages; i++ {
		p.Pages = append(p.Pages, PageLink{Number: i, Current: i == current})
	}
	if current > 1 {
		p.Prev = current - 1
	}
	if current < numPages {
		p.Next = current + 1
	}
	return p
}

// Greeting is the user's first name, or "@username" without one. Empty when logged out.
func Greeting(user *models.CurrentUser) string {
	if user == nil {
		return ""
	}
	if user.FirstName != "" {
		return user.FirstName
	}
	return "@" + user.Username
}

// OrderingOptions returns the ordering radios with pending checked.
func OrderingOptions(pending models.Ordering) []RadioOption {
	opts := make([]RadioOption, 0, len(models.Orderings))
	for _, o := range models.Orderings {
		opts = append(opts, RadioOption{
			Value:   string(o),
			Label:   orderingLabels[o],
			Checked: pending != models.OrderingNone && o == pending,
		})
	}
	return opts
}

// DeliveryTimeOptions returns the delivery-time radios with pending checked.
func DeliveryTimeOptions(pending string) []RadioOption {
	opts := make([]RadioOption, 0, len(models.DeliveryTimeOptions))
	for _, d := range models.DeliveryTimeOptions {
		label := d + " Tage"
		if d == "1" {
			label = "1 Tag"
		}
		opts = append(opts, RadioOption{
			Value:   d,
			Label:   label,
			Checked: pending != "" && d == pending,
		})
	}
	return opts
}

// ErrorMessage maps a refresh error to the message shown in its place.
func ErrorMessage(err error) string {
	if api.KindOf(err) == api.KindMalformed {
		return MessageMalformed
	}
	return MessageLoadFailed
}

// CreatorName is the display name of an offer's owner.
func CreatorName(o models.Offer) string {
	if o.UserDetails == nil {
		return ""
	}
	d := o.UserDetails
	switch {
	case d.FirstName != "" && d.LastName != "":
		return d.FirstName + " " + d.LastName
	case d.FirstName != "":
		return d.FirstName
	default:
		return "@" + d.Username
	}
}
