package morceus

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTemplates(t *testing.T, sources map[string]string) map[string]*InflectionTemplate {
	t.Helper()
	out := make(map[string]*InflectionTemplate, len(sources))
	for name, src := range sources {
		tmpl, err := ParseTemplate(name, strings.NewReader(src))
		require.NoError(t, err, name)
		out[name] = tmpl
	}
	return out
}

func endingTexts(table InflectionTable) []string {
	var out []string
	for _, e := range table.Endings {
		out = append(out, e.Ending)
	}
	return out
}

func findTable(t *testing.T, tables []InflectionTable, name string) InflectionTable {
	t.Helper()
	for _, table := range tables {
		if table.Name == name {
			return table
		}
	}
	require.FailNow(t, "table not found", name)
	return InflectionTable{}
}

var imperfSource = `bam imperf ind act 1st sg
ba_s imperf ind act 2nd sg
bar imperf ind pass 1st sg
ba_ris imperf ind pass 2nd sg
`

func TestExpandTemplates(t *testing.T) {
	t.Parallel()

	deps := mustTemplates(t, map[string]string{
		"imperf_ind": imperfSource,
		"imperf_act": "*@imperf_ind act\n",
		"decl3":      "is gen sg\ne abl sg\ne_s nom/voc/acc pl\num gen pl\n",
	})
	targets := mustTemplates(t, map[string]string{
		"conj1":     "o_ pres ind act 1st sg\na_@imperf_act\n",
		"tas_tatis": "ta_s nom/voc sg\nta_t@decl3 pl\n",
	})

	expanded, err := ExpandTemplates(targets, deps)
	require.NoError(t, err)

	require.Len(t, expanded.Targets, 2)
	require.Len(t, expanded.Dependencies, 3)
	assert.Equal(t, "conj1", expanded.Targets[0].Name)
	assert.Equal(t, "decl3", expanded.Dependencies[0].Name)

	t.Run("dependency on a dependency", func(t *testing.T) {
		imperfAct := findTable(t, expanded.Dependencies, "imperf_act")
		assert.Equal(t, []string{"bam", "ba_s"}, endingTexts(imperfAct))
	})

	t.Run("prefix and own endings", func(t *testing.T) {
		conj1 := findTable(t, expanded.Targets, "conj1")
		assert.Equal(t, []string{"o_", "a_bam", "a_ba_s"}, endingTexts(conj1))
		assert.Equal(t, "imperf ind act 1st sg", conj1.Endings[1].GrammaticalData.String())
	})

	t.Run("conflicting arguments drop endings", func(t *testing.T) {
		tas := findTable(t, expanded.Targets, "tas_tatis")
		assert.Equal(t, []string{"ta_s", "ta_te_s", "ta_tum"}, endingTexts(tas))
		assert.Equal(t, "nom/acc/voc pl", tas.Endings[1].GrammaticalData.String())
	})
}

func TestExpandTemplates_EmptyEnding(t *testing.T) {
	t.Parallel()

	deps := mustTemplates(t, map[string]string{
		"adv": "* adverbial\n",
	})
	targets := mustTemplates(t, map[string]string{
		"plain":    "@adv\n",
		"prefixed": "iter@adv\n",
	})

	expanded, err := ExpandTemplates(targets, deps)
	require.NoError(t, err)
	assert.Equal(t, []string{"*"}, endingTexts(findTable(t, expanded.Targets, "plain")))
	assert.Equal(t, []string{"iter"}, endingTexts(findTable(t, expanded.Targets, "prefixed")))
}

func TestExpandTemplates_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		deps    map[string]string
		targets map[string]string
		want    error
	}{
		{
			name: "cycle",
			deps: map[string]string{
				"a": "x@b\n",
				"b": "y@c\n",
				"c": "z@a\n",
			},
			want: ErrTemplateCycle,
		},
		{
			name: "self cycle",
			deps: map[string]string{"a": "us nom sg\nx@a\n"},
			want: ErrTemplateCycle,
		},
		{
			name: "unknown dependency",
			deps: map[string]string{"a": "@missing\n"},
			want: ErrUnknownTemplate,
		},
		{
			name:    "target depends on target",
			deps:    map[string]string{"d": "us nom sg\n"},
			targets: map[string]string{"t1": "@d\n", "t2": "@t1\n"},
			want:    ErrUnknownTemplate,
		},
		{
			name:    "same name in both sets",
			deps:    map[string]string{"d": "us nom sg\n"},
			targets: map[string]string{"d": "a nom sg\n"},
			want:    ErrDuplicateTemplate,
		},
		{
			name:    "every ending filtered out",
			deps:    map[string]string{"pass": "bar imperf ind pass 1st sg\n"},
			targets: map[string]string{"t": "@pass act\n"},
			want:    ErrEmptyTable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ExpandTemplates(mustTemplates(t, tt.targets), mustTemplates(t, tt.deps))
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestExpandTemplates_Testdata(t *testing.T) {
	t.Parallel()

	targets, err := LoadTemplates(filepath.Join("testdata", "ends", "target"))
	require.NoError(t, err)
	deps, err := LoadTemplates(filepath.Join("testdata", "ends", "dependency"))
	require.NoError(t, err)

	expanded, err := ExpandTemplates(targets, deps)
	require.NoError(t, err)

	usAUm := findTable(t, expanded.Targets, "us_a_um")
	assert.Len(t, usAUm.Endings, 19)
	for _, e := range usAUm.Endings {
		assert.False(t, e.GrammaticalData.Gender.IsEmpty(), e.Ending)
	}

	conj2 := findTable(t, expanded.Targets, "conj2")
	assert.Contains(t, endingTexts(conj2), "e_te")
	assert.Contains(t, endingTexts(conj2), "e_bam")
	assert.NotContains(t, endingTexts(conj2), "e_bar")
}
