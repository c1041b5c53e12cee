package util

import (
	"fmt"
	"io"

	"coderr-web/models"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// PlotOffers renders a bar chart comparing starting price and minimum delivery
// time of the given offers as a standalone HTML page.
func PlotOffers(offers []models.Offer, w io.Writer) error {
	titles := make([]string, 0, len(offers))
	prices := make([]opts.BarData, 0, len(offers))
	days := make([]opts.BarData, 0, len(offers))
	for _, o := range offers {
		titles = append(titles, o.Title)
		prices = append(prices, opts.BarData{Value: float64(o.MinPrice)})
		days = append(days, opts.BarData{Value: o.MinDeliveryTime})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Angebote",
			Width:     "900px",
			Height:    "500px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Preis und Lieferzeit",
			Subtitle: fmt.Sprintf("%d Angebote", len(offers)),
		}),
	)

	bar.SetXAxis(titles).
		AddSeries("Preis ab (EUR)", prices,
			charts.WithLabelOpts(opts.Label{
				Show: opts.Bool(true),
			}),
		).
		AddSeries("Lieferzeit (Tage)", days)

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}
