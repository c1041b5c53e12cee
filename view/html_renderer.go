package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"coderr-web/models"

	"github.com/dustin/go-humanize"
	"github.com/microcosm-cc/bluemonday"
)

//go:embed templates/*.html
var templateFS embed.FS

// HTMLRenderer renders the offer list page.
type HTMLRenderer struct {
	tmpl          *template.Template
	policy        *bluemonday.Policy
	staticBaseURL string
}

// NewHTMLRenderer parses the embedded page template. Relative offer image paths
// are resolved against staticBaseURL.
func NewHTMLRenderer(staticBaseURL string) (*HTMLRenderer, error) {
	r := &HTMLRenderer{
		policy:        bluemonday.UGCPolicy(),
		staticBaseURL: staticBaseURL,
	}

	tmpl, err := template.New("offer_list.html").Funcs(template.FuncMap{
		"sanitize": r.sanitize,
		"price":    FormatPrice,
		"count":    FormatCount,
		"rating":   FormatRating,
		"image":    r.imageURL,
		"creator":  CreatorName,
	}).ParseFS(templateFS, "templates/offer_list.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse offer list template: %w", err)
	}
	r.tmpl = tmpl
	return r, nil
}

// Render writes the page for v to w.
func (r *HTMLRenderer) Render(w io.Writer, v OfferListView) error {
	if err := r.tmpl.Execute(w, v); err != nil {
		return fmt.Errorf("failed to render offer list: %w", err)
	}
	return nil
}

// sanitize strips everything but basic formatting from user-written descriptions.
func (r *HTMLRenderer) sanitize(s string) template.HTML {
	return template.HTML(r.policy.Sanitize(s))
}

func (r *HTMLRenderer) imageURL(image *string) string {
	if image == nil || *image == "" {
		return ""
	}
	if strings.HasPrefix(*image, "http://") || strings.HasPrefix(*image, "https://") {
		return *image
	}
	return strings.TrimRight(r.staticBaseURL, "/") + "/" + strings.TrimLeft(*image, "/")
}

// FormatPrice formats p the German way, e.g. 1.250,00.
func FormatPrice(p models.Price) string {
	return humanize.FormatFloat("#.###,##", float64(p))
}

// FormatCount formats n with German thousands separators.
func FormatCount(n int) string {
	return humanize.FormatInteger("#.###,", n)
}

// FormatRating formats an average rating with one decimal.
func FormatRating(r float64) string {
	return humanize.FormatFloat("#.###,#", r)
}
