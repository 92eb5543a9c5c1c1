package parsers

import (
	"fmt"
	"io"
	"strings"

	"github.com/Nydauron/elo2bracket/bracket"
	"golang.org/x/net/html"
)

// ParseHTML extracts a team field from an HTML page. The first table whose
// header row contains the team, elo, seed, and region columns is used;
// earlier tables are skipped. Cell text is trimmed, so markup inside cells
// is tolerated as long as each cell yields one value.
func ParseHTML(r io.Reader) ([]bracket.Team, error) {
	z := html.NewTokenizer(r)

	isTable := false
	isCell := false
	var cell strings.Builder
	var row []string
	var rows [][]string

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return nil, err
			}
			return nil, fmt.Errorf("no table with %s columns found", strings.Join(requiredColumns, ", "))
		case html.StartTagToken:
			t := z.Token()
			switch t.Data {
			case "table":
				isTable = true
				rows = rows[:0]
			case "tr":
				row = row[:0]
			case "th", "td":
				if isTable {
					isCell = true
					cell.Reset()
				}
			}
		case html.TextToken:
			if isCell {
				cell.WriteString(z.Token().Data)
			}
		case html.EndTagToken:
			t := z.Token()
			switch t.Data {
			case "th", "td":
				if isCell {
					row = append(row, strings.TrimSpace(cell.String()))
					isCell = false
				}
			case "tr":
				if isTable && len(row) > 0 {
					rows = append(rows, append([]string(nil), row...))
					row = row[:0]
				}
			case "table":
				isTable = false
				teams, ok, err := tableField(rows)
				if err != nil {
					return nil, err
				}
				if ok {
					return teams, nil
				}
			}
		}
	}
}

// tableField tries to interpret collected table rows as a team field. The
// boolean reports whether the table's headers matched; a false return with
// no error means keep scanning for another table.
func tableField(rows [][]string) ([]bracket.Team, bool, error) {
	if len(rows) < 2 {
		return nil, false, nil
	}
	colIdx, err := columnIndex(rows[0])
	if err != nil {
		return nil, false, nil
	}
	teams := make([]bracket.Team, 0, len(rows)-1)
	for i, cells := range rows[1:] {
		if len(cells) != len(rows[0]) {
			return nil, false, fmt.Errorf("table row %d has %d cells, expected %d", i+2, len(cells), len(rows[0]))
		}
		team, rowErr := parseTeamRow(func(col string) string {
			return cells[colIdx[col]]
		})
		if rowErr != nil {
			return nil, false, fmt.Errorf("table row %d: %w", i+2, rowErr)
		}
		teams = append(teams, team)
	}
	return teams, true, nil
}
