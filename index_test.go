package morceus

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func indexTables(t *testing.T) []InflectionTable {
	t.Helper()
	ending := func(text, tokens string) InflectionEnding {
		return InflectionEnding{Ending: text, InflectionContext: ParseInflectionContext(strings.Fields(tokens))}
	}
	return []InflectionTable{
		{Name: "a_ae", Endings: []InflectionEnding{
			ending("a", "nom/voc sg"),
			ending("ae", "gen sg"),
			ending("ae", "dat sg"),
			ending("a_", "abl sg"),
		}},
		{Name: "conj1", Endings: []InflectionEnding{
			ending("o_", "pres ind act 1st sg"),
			ending("a_s", "pres ind act 2nd sg"),
		}},
		{Name: "pp4", Endings: []InflectionEnding{
			ending("a", "nom sg fem"),
		}},
	}
}

func TestMakeEndIndex(t *testing.T) {
	t.Parallel()

	ends, err := MakeEndIndex(indexTables(t), IndexAll)
	require.NoError(t, err)

	assert.Equal(t, []EndIndexRow{
		{Ending: "a", TableNames: []string{"a_ae", "pp4"}},
		{Ending: "ae", TableNames: []string{"a_ae"}},
		{Ending: "as", TableNames: []string{"conj1"}},
		{Ending: "o", TableNames: []string{"conj1"}},
	}, ends.Rows)

	// "a" and "a_" share the unmarked key; both variants are kept.
	aEndings := ends.Lookup.Endings("a_ae", "a")
	require.Len(t, aEndings, 2)
	assert.Equal(t, "a", aEndings[0].Ending)
	assert.Equal(t, "a_", aEndings[1].Ending)
	assert.Len(t, ends.Lookup.Endings("a_ae", "ae"), 2)
	assert.Empty(t, ends.Lookup.Endings("missing", "a"))
}

func TestMakeEndIndex_Modes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mode IndexMode
		want []string
	}{
		{IndexAll, []string{"a_ae", "conj1", "pp4"}},
		{IndexVerbs, []string{"conj1", "pp4"}},
		{IndexNouns, []string{"a_ae", "pp4"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			t.Parallel()
			ends, err := MakeEndIndex(indexTables(t), tt.mode)
			require.NoError(t, err)
			var got []string
			for name := range ends.Lookup {
				got = append(got, name)
			}
			assert.ElementsMatch(t, tt.want, got)
		})
	}
}

func TestMakeEndIndex_Errors(t *testing.T) {
	t.Parallel()

	_, err := MakeEndIndex(indexTables(t), IndexMode("adverbs"))
	require.ErrorIs(t, err, ErrInvalidConfig)

	tables := indexTables(t)
	_, err = MakeEndIndex(append(tables, tables[0]), IndexAll)
	require.ErrorIs(t, err, ErrDuplicateTemplate)
}
