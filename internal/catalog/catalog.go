package catalog

import (
	"fmt"
	"strings"

	"gridiron/internal/services"
)

// Key is the normalized identity tuple for one catalog entry. Two entries
// with equal keys describe the same real-world player, so a loaded catalog
// never contains two of them.
type Key struct {
	First    string
	Last     string
	Team     string
	Position Position
	Bye      int
}

// IsZero reports whether the key carries no identity at all.
func (k Key) IsZero() bool {
	return k == Key{}
}

// Entry is one ranked catalog row. Entries are immutable after load; rank
// is 1-based and follows file order.
type Entry struct {
	Rank      int
	FirstName string
	LastName  string
	Team      string
	Position  Position
	ByeWeek   int
	IsDefense bool
}

// Key builds the entry's normalized identity tuple.
func (e Entry) Key() Key {
	return Key{
		First:    NormalizeName(e.FirstName),
		Last:     NormalizeName(e.LastName),
		Team:     strings.ToUpper(strings.TrimSpace(e.Team)),
		Position: e.Position,
		Bye:      e.ByeWeek,
	}
}

// DisplayName renders the entry for humans. Defense entries carry the
// franchise name in the last-name field with no first name.
func (e Entry) DisplayName() string {
	return strings.TrimSpace(strings.TrimSpace(e.FirstName) + " " + strings.TrimSpace(e.LastName))
}

// Catalog is the immutable ranked reference set for one reconciliation run.
type Catalog struct {
	entries []Entry
	byKey   map[Key]int
	byLast  map[string][]int
}

// New validates entries and builds the catalog indexes. Ranks are assigned
// from slice order. Duplicate identity keys abort construction; the board
// uniqueness guarantee needs every key to name one player.
func New(entries []Entry) (*Catalog, error) {
	c := &Catalog{
		entries: make([]Entry, 0, len(entries)),
		byKey:   make(map[Key]int, len(entries)),
		byLast:  make(map[string][]int, len(entries)),
	}
	for i, entry := range entries {
		entry.Rank = i + 1
		if _, ok := ParsePosition(string(entry.Position)); !ok {
			return nil, services.Wrap(services.ErrValidation, "catalog", "validate",
				fmt.Sprintf("entry %d (%s): invalid position %q", entry.Rank, entry.DisplayName(), entry.Position), nil)
		}
		if entry.ByeWeek < 0 {
			return nil, services.Wrap(services.ErrValidation, "catalog", "validate",
				fmt.Sprintf("entry %d (%s): negative bye week %d", entry.Rank, entry.DisplayName(), entry.ByeWeek), nil)
		}
		key := entry.Key()
		if prior, ok := c.byKey[key]; ok {
			return nil, services.Wrap(services.ErrValidation, "catalog", "validate",
				fmt.Sprintf("duplicate identity: entry %d (%s) repeats entry %d (%s)",
					entry.Rank, entry.DisplayName(), c.entries[prior].Rank, c.entries[prior].DisplayName()), nil)
		}
		idx := len(c.entries)
		c.entries = append(c.entries, entry)
		c.byKey[key] = idx
		c.byLast[key.Last] = append(c.byLast[key.Last], idx)
	}
	return c, nil
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Entries returns the ranked entries. Callers must treat the slice as
// read-only.
func (c *Catalog) Entries() []Entry {
	if c == nil {
		return nil
	}
	return c.entries
}

// ByKey looks up the entry holding the given identity.
func (c *Catalog) ByKey(key Key) (Entry, bool) {
	if c == nil {
		return Entry{}, false
	}
	idx, ok := c.byKey[key]
	if !ok {
		return Entry{}, false
	}
	return c.entries[idx], true
}

// ExactLast returns all entries whose normalized last name equals the
// provided normalized text, in rank order. An empty input matches nothing.
func (c *Catalog) ExactLast(normalizedLast string) []Entry {
	if c == nil || normalizedLast == "" {
		return nil
	}
	idxs := c.byLast[normalizedLast]
	if len(idxs) == 0 {
		return nil
	}
	matches := make([]Entry, 0, len(idxs))
	for _, idx := range idxs {
		matches = append(matches, c.entries[idx])
	}
	return matches
}

// FindByName resolves a human-entered player name to catalog entries:
// exact normalized full-name matches first, falling back to a unique
// last-name match. Used by the manual-correction flow.
func (c *Catalog) FindByName(name string) []Entry {
	if c == nil {
		return nil
	}
	normalized := NormalizeName(name)
	if normalized == "" {
		return nil
	}
	var full []Entry
	for _, entry := range c.entries {
		candidate := NormalizeName(entry.DisplayName())
		if candidate == normalized {
			full = append(full, entry)
		}
	}
	if len(full) > 0 {
		return full
	}
	return c.ExactLast(normalized)
}
