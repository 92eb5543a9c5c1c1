package parsers

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/Nydauron/elo2bracket/bracket"
)

// ParseCSV reads a team field from CSV. The first row must name the team,
// elo, seed, and region columns; column order is free and extra columns
// are ignored. Region names are normalized while parsing. The result is
// not validated as a complete field; run ValidateField before simulating.
func ParseCSV(r io.Reader) ([]bracket.Team, error) {
	buf := bufio.NewReader(r)
	headerStr, err := buf.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, err
	}
	headers := strings.Split(strings.TrimRight(headerStr, "\r\n"), ",")
	colIdx, err := columnIndex(headers)
	if err != nil {
		return nil, err
	}

	teams := []bracket.Team{}
	line := 1
	for {
		row, err := buf.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, err
		}
		line++
		if trimmed := strings.TrimRight(row, "\r\n"); trimmed != "" {
			cells := strings.Split(trimmed, ",")
			if len(cells) != len(headers) {
				return nil, fmt.Errorf("line %d has %d cells, expected %d", line, len(cells), len(headers))
			}
			team, rowErr := parseTeamRow(func(col string) string {
				return strings.TrimSpace(cells[colIdx[col]])
			})
			if rowErr != nil {
				return nil, fmt.Errorf("line %d: %w", line, rowErr)
			}
			teams = append(teams, team)
		}
		if err == io.EOF {
			break
		}
	}

	return teams, nil
}
