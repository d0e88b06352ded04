package morceus

import (
	"maps"
	"slices"
)

// Paradigm returns every form of the named lemma: its irregular forms, then
// each stem joined with each compatible ending of its table. It returns
// false if the lemma is unknown.
func (t *Tables) Paradigm(lemma string) ([]CrunchResult, bool) {
	l, ok := t.byName[lemma]
	if !ok {
		return nil, false
	}

	var forms []CrunchResult
	for _, f := range l.IrregularForms {
		forms = append(forms, CrunchResult{
			Lemma:             l.Lemma,
			Form:              f.Form,
			IsVerb:            l.IsVerb,
			InflectionContext: f.InflectionContext.clone(),
		})
	}
	for i := range l.Stems {
		base := &l.Stems[i]
		byEnding := t.ends.Lookup[base.Inflection]
		for _, key := range slices.Sorted(maps.Keys(byEnding)) {
			for _, end := range byEnding[key] {
				ctx, ok := mergeStemAndEnding(base, &end)
				if !ok {
					continue
				}
				stem := *base
				stem.InflectionContext = stem.InflectionContext.clone()
				end.InflectionContext = end.InflectionContext.clone()
				forms = append(forms, CrunchResult{
					Lemma:             l.Lemma,
					Form:              joinForm(stem.Stem, end.Ending),
					IsVerb:            l.IsVerb,
					InflectionContext: ctx,
					Stem:              &stem,
					End:               &end,
				})
			}
		}
	}
	return forms, true
}

// ParadigmForms returns the distinct forms of a paradigm in order.
func ParadigmForms(results []CrunchResult) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range results {
		if !seen[r.Form] {
			seen[r.Form] = true
			out = append(out, r.Form)
		}
	}
	return out
}
