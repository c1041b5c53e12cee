package middleware

import (
	"fmt"
	"net/http"
	"net/url"
)

// NewSecurityHeadersMiddleware sets the hardening headers of the front end. The
// content policy admits offer images from the origin of staticBaseURL.
func NewSecurityHeadersMiddleware(staticBaseURL string) func(next http.Handler) http.Handler {
	policy := contentSecurityPolicy(staticBaseURL)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
			h.Set("Content-Security-Policy", policy)
			next.ServeHTTP(w, r)
		})
	}
}

func contentSecurityPolicy(staticBaseURL string) string {
	imgSrc := "'self' data:"
	if u, err := url.Parse(staticBaseURL); err == nil && u.Scheme != "" && u.Host != "" {
		imgSrc += " " + u.Scheme + "://" + u.Host
	}
	return fmt.Sprintf("img-src %s; form-action 'self'; frame-ancestors 'none'", imgSrc)
}
