package util

import (
	"bytes"
	"strings"
	"testing"

	"coderr-web/models"
)

func TestPlotOffers(t *testing.T) {
	offers := []models.Offer{
		{ID: 1, Title: "Logo Design", MinPrice: 150, MinDeliveryTime: 7},
		{ID: 2, Title: "Flyer Gestaltung", MinPrice: 80, MinDeliveryTime: 3},
	}
	var buf bytes.Buffer

	if err := PlotOffers(offers, &buf); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	html := buf.String()
	for _, want := range []string{"<html", "Preis und Lieferzeit", "Logo Design", "Flyer Gestaltung"} {
		if !strings.Contains(html, want) {
			t.Errorf("Expected chart HTML to contain %q", want)
		}
	}
}

func TestPlotOffers_Empty(t *testing.T) {
	var buf bytes.Buffer

	if err := PlotOffers(nil, &buf); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if buf.Len() == 0 {
		t.Error("Expected an HTML page even without offers")
	}
}
