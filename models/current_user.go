package models

type UserType string

const (
	UserTypeBusiness UserType = "business"
	UserTypeCustomer UserType = "customer"
)

// CurrentUser is the profile of the logged-in account.
type CurrentUser struct {
	User      int      `json:"user"`
	Username  string   `json:"username"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Type      UserType `json:"type"`
}

// Credentials identify the caller against the API. Empty credentials mean "not logged in".
type Credentials struct {
	Token  string
	UserID int
}

func (c Credentials) Empty() bool {
	return c.Token == "" || c.UserID <= 0
}
