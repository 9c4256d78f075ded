package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/vulnverified/sweep/internal/catalog"
	"github.com/vulnverified/sweep/internal/detector"
)

var riskColor = map[catalog.RiskLevel]lipgloss.Color{
	catalog.RiskCritical: lipgloss.Color("196"),
	catalog.RiskHigh:     lipgloss.Color("208"),
	catalog.RiskMedium:   lipgloss.Color("220"),
	catalog.RiskLow:      lipgloss.Color("245"),
	catalog.RiskInfo:     lipgloss.Color("240"),
}

// WriteTable renders findings as a styled terminal table, one row per
// non-SAFE finding, sorted by descending confidence.
func WriteTable(w io.Writer, findings []*detector.Finding, noColor bool) {
	rows := buildRows(findings)
	if len(rows) == 0 {
		fmt.Fprintln(w, "\nNo takeover-relevant findings.")
		return
	}

	fmt.Fprintln(w)

	if noColor {
		writeSimpleTable(w, rows)
		return
	}

	headers := []string{"Subdomain", "Verdict", "Risk", "Confidence", "Provider"}

	t := table.New().
		Headers(headers...).
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
			}
			return lipgloss.NewStyle().Foreground(riskColor[catalog.RiskLevel(rows[row][2])])
		})

	for _, row := range rows {
		t.Row(row...)
	}

	fmt.Fprintln(w, t.Render())
}

func buildRows(findings []*detector.Finding) [][]string {
	var shown []*detector.Finding
	for _, f := range findings {
		if f.Verdict != detector.VerdictSafe {
			shown = append(shown, f)
		}
	}
	sort.SliceStable(shown, func(i, j int) bool {
		return shown[i].Confidence > shown[j].Confidence
	})

	var rows [][]string
	for _, f := range shown {
		provider := f.Provider
		if provider == "" {
			provider = "-"
		}
		rows = append(rows, []string{
			f.Subdomain,
			string(f.Verdict),
			string(f.RiskLevel),
			fmt.Sprintf("%d", f.Confidence),
			provider,
		})
	}
	return rows
}

func writeSimpleTable(w io.Writer, rows [][]string) {
	headers := []string{"Subdomain", "Verdict", "Risk", "Confidence", "Provider"}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	for i, h := range headers {
		if i > 0 {
			fmt.Fprint(w, " | ")
		}
		fmt.Fprintf(w, "%-*s", widths[i], h)
	}
	fmt.Fprintln(w)

	for i, width := range widths {
		if i > 0 {
			fmt.Fprint(w, "-+-")
		}
		fmt.Fprint(w, strings.Repeat("-", width))
	}
	fmt.Fprintln(w)

	for _, row := range rows {
		for i, cell := range row {
			if i > 0 {
				fmt.Fprint(w, " | ")
			}
			fmt.Fprintf(w, "%-*s", widths[i], cell)
		}
		fmt.Fprintln(w)
	}
}
