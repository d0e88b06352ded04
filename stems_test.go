package morceus

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStems(t *testing.T) {
	t.Parallel()

	src := `:le:puella
:no:pu^ell	a_ae	fem

:le:bonus
:aj:bon	us_a_um	no_comp
:le:caveo
:vs:ca^v conj2
:vb:ca^ve^ pres imperat act 2nd sg


`
	lemmata, err := ParseStems(strings.NewReader(src), "nom.01", false)
	require.NoError(t, err)
	require.Len(t, lemmata, 3)

	assert.Equal(t, "puella", lemmata[0].Lemma)
	require.Len(t, lemmata[0].Stems, 1)
	assert.Equal(t, CodeNoun, lemmata[0].Stems[0].Code)
	assert.Equal(t, "pu^ell", lemmata[0].Stems[0].Stem)
	assert.Equal(t, "a_ae", lemmata[0].Stems[0].Inflection)
	assert.Equal(t, SetOf(Feminine), lemmata[0].Stems[0].GrammaticalData.Gender)

	assert.Equal(t, "bonus", lemmata[1].Lemma)
	assert.Equal(t, []string{"no_comp"}, lemmata[1].Stems[0].InternalTags)

	caveo := lemmata[2]
	assert.Equal(t, "caveo", caveo.Lemma)
	require.Len(t, caveo.Stems, 1)
	require.Len(t, caveo.IrregularForms, 1)
	assert.Equal(t, CodeVerbForm, caveo.IrregularForms[0].Code)
	assert.Equal(t, "ca^ve^", caveo.IrregularForms[0].Form)
	assert.Equal(t, "pres imperat act 2nd sg", caveo.IrregularForms[0].GrammaticalData.String())
}

func TestParseStems_VerbFile(t *testing.T) {
	t.Parallel()

	src := "# comment before\n:le:amo\n# comment inside\n:vs:am\tconj1"
	lemmata, err := ParseStems(strings.NewReader(src), "vbs", true)
	require.NoError(t, err)
	require.Len(t, lemmata, 1)
	assert.True(t, lemmata[0].IsVerb)
	assert.Equal(t, "conj1", lemmata[0].Stems[0].Inflection)
}

func TestParseStems_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
	}{
		{"unknown code", ":le:x\n:zz:foo bar\n"},
		{"code without table", ":le:x\n:no:foo\n"},
		{"empty stem", ":le:x\n:no: a_ae\n"},
		{"bare form in stem file", ":le:x\nfoo nom sg\n"},
		{"line outside block", ":no:foo a_ae\n"},
		{"lemma without declarations", ":le:x\n\n"},
		{"empty lemma name", ":le:\n:no:foo a_ae\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseStems(strings.NewReader(tt.src), "bad", false)
			require.ErrorIs(t, err, ErrMalformedStem)
			assert.Contains(t, err.Error(), "bad:")
		})
	}
}

func TestParseIrregularStems(t *testing.T) {
	t.Parallel()

	src := `:le:mos
mo_s	irreg_nom3 masc nom voc sg
#Really hoc_ine
mo_r@decl3	irreg_nom3 masc
:le:eo#2
:wd:eo	adverb
`
	lemmata, err := ParseIrregularStems(strings.NewReader(src), "irreg.nom", false)
	require.NoError(t, err)
	require.Len(t, lemmata, 2)

	mos := lemmata[0]
	assert.Equal(t, "mos", mos.Lemma)
	require.Len(t, mos.IrregularForms, 1)
	assert.Equal(t, CodeWord, mos.IrregularForms[0].Code)
	assert.Equal(t, "mo_s", mos.IrregularForms[0].Form)
	assert.Equal(t, SetOf(Nominative, Vocative), mos.IrregularForms[0].GrammaticalData.Case)

	require.Len(t, mos.Stems, 1)
	assert.Equal(t, CodeNone, mos.Stems[0].Code)
	assert.Equal(t, "mo_r", mos.Stems[0].Stem)
	assert.Equal(t, "decl3", mos.Stems[0].Inflection)
	assert.Equal(t, SetOf(Masculine), mos.Stems[0].GrammaticalData.Gender)
	assert.Equal(t, []string{"irreg_nom3"}, mos.Stems[0].InternalTags)

	eo := lemmata[1]
	assert.Equal(t, "eo#2", eo.Lemma)
	assert.Equal(t, "eo", eo.Headword())
	require.Len(t, eo.IrregularForms, 1)
	assert.Equal(t, "eo", eo.IrregularForms[0].Form)
}

func TestParseIrregularStems_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
	}{
		{"bare form without tokens", ":le:x\nfoo\n"},
		{"empty table", ":le:x\nfoo@ masc\n"},
		{"two tables", ":le:x\nfoo@a@b masc\n"},
		{"orphan after blank line", ":le:x\nfoo nom sg\n\nbar nom sg\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseIrregularStems(strings.NewReader(tt.src), "irreg", false)
			require.ErrorIs(t, err, ErrMalformedStem)
		})
	}
}

func TestParseStemFile(t *testing.T) {
	t.Parallel()

	lemmata, err := ParseStemFile(filepath.Join("testdata", "stemlib", "vbs", "vbs.latin"), true)
	require.NoError(t, err)

	var names []string
	for _, l := range lemmata {
		names = append(names, l.Lemma)
		assert.True(t, l.IsVerb)
	}
	assert.Equal(t, []string{"caveo", "amo", "acclamo"}, names)
	assert.Equal(t, CodeDerived, lemmata[2].Stems[0].Code)
	assert.Equal(t, "ac-cla_m", lemmata[2].Stems[0].Stem)

	_, err = ParseStemFile(filepath.Join("testdata", "missing"), false)
	require.Error(t, err)
}
