package morceus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParadigm(t *testing.T) {
	t.Parallel()

	tables := loadTestdata(t)

	t.Run("regular verb", func(t *testing.T) {
		forms, ok := tables.Paradigm("amo")
		require.True(t, ok)
		assert.Len(t, forms, 15)
		assert.Contains(t, ParadigmForms(forms), "amo_")
		assert.Contains(t, ParadigmForms(forms), "ama_bat")
		assert.NotContains(t, ParadigmForms(forms), "ama_bar")
	})

	t.Run("homographic endings", func(t *testing.T) {
		forms, ok := tables.Paradigm("puella")
		require.True(t, ok)
		assert.Len(t, forms, 10)
		assert.Len(t, ParadigmForms(forms), 8)
		for _, f := range forms {
			assert.True(t, Has(f.GrammaticalData.Gender, Feminine), f.Form)
		}
	})

	t.Run("irregular forms first", func(t *testing.T) {
		forms, ok := tables.Paradigm("caveo")
		require.True(t, ok)
		require.NotEmpty(t, forms)
		assert.Equal(t, "ca^ve^", forms[0].Form)
		assert.Nil(t, forms[0].Stem)
	})

	t.Run("unknown lemma", func(t *testing.T) {
		_, ok := tables.Paradigm("nemo")
		assert.False(t, ok)
	})
}

// Every generated form must crunch back to the reading it was built from.
func TestParadigm_CrunchesBack(t *testing.T) {
	t.Parallel()

	tables := loadTestdata(t)
	for _, lemma := range tables.Lemmata() {
		t.Run(lemma.Lemma, func(t *testing.T) {
			t.Parallel()
			forms, ok := tables.Paradigm(lemma.Lemma)
			require.True(t, ok)
			require.NotEmpty(t, forms)

			for _, f := range forms {
				results, err := CrunchWord(f.Form, tables, Options{})
				require.NoError(t, err)
				assert.True(t, containsReading(results, f), "%s %s", f.Form, f.InflectionContext)
			}
		})
	}
}

func containsReading(results []CrunchResult, want CrunchResult) bool {
	for _, r := range results {
		if r.Lemma == want.Lemma && r.Form == want.Form && r.GrammaticalData == want.GrammaticalData {
			return true
		}
	}
	return false
}

func TestParadigmForms(t *testing.T) {
	t.Parallel()

	forms := ParadigmForms([]CrunchResult{{Form: "a"}, {Form: "b"}, {Form: "a"}})
	assert.Equal(t, []string{"a", "b"}, forms)
	assert.Nil(t, ParadigmForms(nil))
}
