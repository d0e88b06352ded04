package morceus

import (
	"fmt"
	"maps"
	"slices"
)

// IndexMode selects the tables included in an ending index.
type IndexMode string

const (
	IndexAll   IndexMode = "all"
	IndexVerbs IndexMode = "verbs"
	IndexNouns IndexMode = "nouns"
)

// verbTables are the tables only verb stems inflect with. pp4 serves both
// verbs and nouns.
var verbTables = map[string]bool{
	"conj1":    true,
	"conj2":    true,
	"conj3":    true,
	"conj4":    true,
	"conj3_io": true,
	"perfstem": true,
	"ivperf":   true,
	"avperf":   true,
	"evperf":   true,
}

func (m IndexMode) includes(table string) bool {
	switch m {
	case IndexVerbs:
		return table == "pp4" || verbTables[table]
	case IndexNouns:
		return !verbTables[table]
	default:
		return true
	}
}

// EndIndexRow lists the tables that can produce an ending. The ending is
// stored without vowel-length marks.
type EndIndexRow struct {
	Ending     string
	TableNames []string
}

// InflectionLookup maps a table name and an unmarked ending to every ending
// of that table with this spelling.
type InflectionLookup map[string]map[string][]InflectionEnding

// Endings returns the endings of table whose unmarked spelling is ending.
func (l InflectionLookup) Endings(table, ending string) []InflectionEnding {
	return l[table][ending]
}

// EndsResult is the reverse ending index together with the forward lookup.
type EndsResult struct {
	Rows   []EndIndexRow
	Lookup InflectionLookup
}

// MakeEndIndex indexes the endings of the tables selected by mode. Rows are
// sorted by ending and list their tables in name order.
func MakeEndIndex(tables []InflectionTable, mode IndexMode) (*EndsResult, error) {
	switch mode {
	case "", IndexAll, IndexVerbs, IndexNouns:
	default:
		return nil, fmt.Errorf("index mode %q: %w", mode, ErrInvalidConfig)
	}

	index := make(map[string]map[string]bool)
	lookup := make(InflectionLookup)
	for _, table := range tables {
		if !mode.includes(table.Name) {
			continue
		}
		if _, dup := lookup[table.Name]; dup {
			return nil, fmt.Errorf("table %s: %w", table.Name, ErrDuplicateTemplate)
		}
		endings := make(map[string][]InflectionEnding)
		for _, end := range table.Endings {
			clean := StripLengthMarks(end.Ending)
			if index[clean] == nil {
				index[clean] = make(map[string]bool)
			}
			index[clean][table.Name] = true
			endings[clean] = append(endings[clean], end)
		}
		lookup[table.Name] = endings
	}

	rows := make([]EndIndexRow, 0, len(index))
	for _, ending := range slices.Sorted(maps.Keys(index)) {
		rows = append(rows, EndIndexRow{
			Ending:     ending,
			TableNames: slices.Sorted(maps.Keys(index[ending])),
		})
	}
	return &EndsResult{Rows: rows, Lookup: lookup}, nil
}
