package core

import (
	"fmt"
	"strings"
	"testing"
)

func oddsRow(cells ...string) string {
	var b strings.Builder
	b.WriteString(`<div class="ui-table__row">`)
	for _, c := range cells {
		fmt.Fprintf(&b, `<div class="ui-table__cell">%s</div>`, c)
	}
	b.WriteString(`</div>`)
	return b.String()
}

func oddsPage(rows ...string) string {
	return `<html><body><div class="ui-table">` + strings.Join(rows, "") + `</div></body></html>`
}

func deref(v *float64) string {
	if v == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%.2f", *v)
}

func TestExtractOdds(t *testing.T) {
	tests := []struct {
		name     string
		markup   string
		wantHome string
		wantAway string
	}{
		{
			name:     "both sides",
			markup:   oddsPage(oddsRow("1", "1.85", ""), oddsRow("2", "2.05", "")),
			wantHome: "1.85",
			wantAway: "2.05",
		},
		{
			name:     "first occurrence wins",
			markup:   oddsPage(oddsRow("1", "1.50", "x"), oddsRow("1", "9.99", "x"), oddsRow("2", "2.60", "x"), oddsRow("2", "8.88", "x")),
			wantHome: "1.50",
			wantAway: "2.60",
		},
		{
			name:     "short rows ignored",
			markup:   oddsPage(oddsRow("1", "3.30"), oddsRow("2", "1.30", "")),
			wantHome: "<nil>",
			wantAway: "1.30",
		},
		{
			name:     "unparsable value leaves side open",
			markup:   oddsPage(oddsRow("1", "-", ""), oddsRow("1", "1.72", ""), oddsRow("2", "0", ""), oddsRow("2", "2.10", "")),
			wantHome: "1.72",
			wantAway: "2.10",
		},
		{
			name:     "labels are trimmed",
			markup:   oddsPage(oddsRow(" 1 ", " 1.40 ", ""), oddsRow("X", "3.10", ""), oddsRow("2 ", "2.90", "")),
			wantHome: "1.40",
			wantAway: "2.90",
		},
		{
			name:     "no table",
			markup:   `<html><body><p>Kurzy nejsou k dispozici</p></body></html>`,
			wantHome: "<nil>",
			wantAway: "<nil>",
		},
	}
	for _, tt := range tests {
		odds := ExtractOdds(parse(t, tt.markup), LivesportSelector)
		if got := deref(odds.Home); got != tt.wantHome {
			t.Errorf("%s: home = %s, want %s", tt.name, got, tt.wantHome)
		}
		if got := deref(odds.Away); got != tt.wantAway {
			t.Errorf("%s: away = %s, want %s", tt.name, got, tt.wantAway)
		}
	}
}
