package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gridiron/internal/services"
	"gridiron/internal/textutil"
)

// Column headers accepted in cheatsheet CSV exports. Headers are matched by
// normalized name, not by position, since export tools disagree on order.
var (
	playerHeaders = []string{"PLAYER NAME", "PLAYER", "NAME"}
	teamHeaders   = []string{"TEAM", "TM"}
	posHeaders    = []string{"POS", "POSITION"}
	byeHeaders    = []string{"BYE WEEK", "BYE"}
)

// Load reads a ranked cheatsheet CSV into a Catalog. Rank follows row
// order. Defense rows carry the franchise name in the player column and get
// the DST sentinel as their team abbreviation; rows with a free-agent team
// marker get their position code instead.
func Load(path string) (*Catalog, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, services.Wrap(services.ErrNotFound, "catalog", "load", fmt.Sprintf("cannot open %s", path), err)
	}
	defer file.Close()

	entries, err := parseEntries(file)
	if err != nil {
		return nil, err
	}
	return New(entries)
}

func parseEntries(r io.Reader) ([]Entry, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "catalog", "parse", "missing header row", err)
	}
	playerCol := findColumn(header, playerHeaders)
	teamCol := findColumn(header, teamHeaders)
	posCol := findColumn(header, posHeaders)
	byeCol := findColumn(header, byeHeaders)
	if playerCol < 0 || posCol < 0 {
		return nil, services.Wrap(services.ErrValidation, "catalog", "parse",
			fmt.Sprintf("header %v lacks player and position columns", header), nil)
	}

	var entries []Entry
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, services.Wrap(services.ErrValidation, "catalog", "parse", fmt.Sprintf("line %d", line), err)
		}
		name := textutil.CollapseWhitespace(field(record, playerCol))
		if name == "" {
			continue
		}
		position, ok := ParsePosition(field(record, posCol))
		if !ok {
			return nil, services.Wrap(services.ErrValidation, "catalog", "parse",
				fmt.Sprintf("line %d (%s): unknown position %q", line, name, field(record, posCol)), nil)
		}
		bye, err := parseBye(field(record, byeCol))
		if err != nil {
			return nil, services.Wrap(services.ErrValidation, "catalog", "parse",
				fmt.Sprintf("line %d (%s): bad bye week %q", line, name, field(record, byeCol)), nil)
		}
		entries = append(entries, buildEntry(name, field(record, teamCol), position, bye))
	}
	if len(entries) == 0 {
		return nil, services.Wrap(services.ErrValidation, "catalog", "parse", "no player rows", nil)
	}
	return entries, nil
}

func buildEntry(name, teamText string, position Position, bye int) Entry {
	team := strings.ToUpper(strings.TrimSpace(teamText))
	if team == "" || team == "-" {
		team = string(position)
	}
	if position == PositionDST {
		// The player column holds the franchise name; there is no first name
		// to split off, and the sentinel team equals the position code.
		return Entry{
			LastName:  name,
			Team:      string(PositionDST),
			Position:  position,
			ByeWeek:   bye,
			IsDefense: true,
		}
	}
	first, last := splitName(name)
	return Entry{
		FirstName: first,
		LastName:  last,
		Team:      team,
		Position:  position,
		ByeWeek:   bye,
	}
}

// splitName divides a display name at the first space. Single-token names
// are treated as last names.
func splitName(name string) (first, last string) {
	parts := strings.SplitN(name, " ", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return "", parts[0]
}

// parseBye handles the free-agent marker and blank cells as bye week zero.
func parseBye(value string) (int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || trimmed == "-" {
		return 0, nil
	}
	bye, err := strconv.Atoi(trimmed)
	if err != nil || bye < 0 {
		return 0, fmt.Errorf("invalid bye week %q", value)
	}
	return bye, nil
}

func findColumn(header []string, names []string) int {
	for i, cell := range header {
		normalized := strings.ToUpper(textutil.CollapseWhitespace(cell))
		for _, name := range names {
			if normalized == name {
				return i
			}
		}
	}
	return -1
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return record[idx]
}
