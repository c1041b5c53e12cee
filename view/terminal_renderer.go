package view

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pterm/pterm"
)

// TerminalRenderer prints the offer list for the browse command.
type TerminalRenderer struct{}

func NewTerminalRenderer() *TerminalRenderer {
	return &TerminalRenderer{}
}

// Render writes v to w as a table with a pagination footer.
func (r *TerminalRenderer) Render(w io.Writer, v OfferListView) error {
	if v.LoggedIn() {
		fmt.Fprint(w, pterm.DefaultSection.Sprint("Hallo "+v.Greeting+"!"))
	}
	if v.Search != "" {
		fmt.Fprintln(w, "Suche: "+pterm.Cyan(v.Search))
	}

	switch v.Kind {
	case KindError:
		fmt.Fprint(w, pterm.Error.Sprintln(v.Message))
		return nil
	case KindNotLoggedIn, KindEmpty:
		fmt.Fprint(w, pterm.Warning.Sprintln(v.Message))
		return nil
	}

	data := [][]string{{"ID", "Titel", "Anbieter", "Preis ab", "Lieferzeit"}}
	for _, o := range v.Offers {
		data = append(data, []string{
			strconv.Itoa(o.ID),
			o.Title,
			CreatorName(o),
			pterm.Green(FormatPrice(o.MinPrice) + " €"),
			fmt.Sprintf("%d Tage", o.MinDeliveryTime),
		})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return fmt.Errorf("failed to render offer table: %w", err)
	}
	fmt.Fprintln(w, table)

	p := v.Pagination
	fmt.Fprintf(w, "Seite %d von %d (%s Angebote)\n", p.CurrentPage, p.NumPages, FormatCount(v.TotalCount))
	return nil
}
