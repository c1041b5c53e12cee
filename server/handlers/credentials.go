package handlers

import (
	"net/http"
	"strconv"

	"coderr-web/config"
	"coderr-web/models"
)

// CredentialsFromRequest reads the token and user id cookies set by the login page.
// Missing or unparsable cookies yield empty credentials.
func CredentialsFromRequest(r *http.Request) models.Credentials {
	var creds models.Credentials
	if c, err := r.Cookie(config.TOKEN_COOKIE); err == nil {
		creds.Token = c.Value
	}
	if c, err := r.Cookie(config.USER_ID_COOKIE); err == nil {
		if id, err := strconv.Atoi(c.Value); err == nil {
			creds.UserID = id
		}
	}
	if creds.Empty() {
		return models.Credentials{}
	}
	return creds
}
