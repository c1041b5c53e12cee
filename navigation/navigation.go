// Package navigation decides where the offer list links lead, given who is logged in.
package navigation

import (
	"net/url"
	"strconv"
	"strings"

	"coderr-web/models"
)

// HintLoginRequired is shown instead of navigating when a page needs a login.
const HintLoginRequired = "Loggen Sie sich bitte ein, um Details zu sehen."

// Navigation is the outcome of a redirect helper: either a Location to go to
// or a Hint to show in place.
type Navigation struct {
	Location string
	Hint     string
}

// Navigates reports whether n leads somewhere.
func (n Navigation) Navigates() bool {
	return n.Location != ""
}

func to(location string) Navigation {
	return Navigation{Location: location}
}

func loginRequired() Navigation {
	return Navigation{Hint: HintLoginRequired}
}

// RedirectToOffer opens the offer detail page, for logged-in users only.
func RedirectToOffer(user *models.CurrentUser, id int) Navigation {
	if user == nil {
		return loginRequired()
	}
	return to("./offer.html?id=" + strconv.Itoa(id))
}

// RedirectToOfferList opens the offer list with search, for logged-in users only.
// A blank search leads to the unfiltered list.
func RedirectToOfferList(user *models.CurrentUser, search string) Navigation {
	if user == nil {
		return loginRequired()
	}
	search = strings.TrimSpace(search)
	if search == "" {
		return to("./offer_list.html?search=")
	}
	return to("./offer_list.html?search=" + url.QueryEscape(search))
}

func RedirectToOwnProfile() Navigation {
	return to("./own_profile.html")
}

func RedirectToBusinessProfile(id int) Navigation {
	return to("./business_profile.html?id=" + strconv.Itoa(id))
}

func RedirectToCustomerProfile(id int) Navigation {
	return to("./customer_profile.html?id=" + strconv.Itoa(id))
}

// Resolve joins a relative location onto baseURL.
func Resolve(baseURL, location string) string {
	if baseURL == "" {
		baseURL = "/"
	}
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimPrefix(location, "./")
}
