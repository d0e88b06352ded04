package morceus

// CrunchResult is one analysis of a word.
type CrunchResult struct {
	Lemma string
	// Form is the canonical, length-marked form. It never includes the
	// enclitic.
	Form   string
	IsVerb bool
	InflectionContext
	// Stem and End are the stem and ending the form was built from. Both are
	// nil for irregular forms.
	Stem *Stem
	End  *InflectionEnding
	// Enclitic is the enclitic stripped from the word, if any.
	Enclitic string
	// RelaxedCase is set when the match required flipping the case of the
	// first letter.
	RelaxedCase bool
}

// InflectedForm is a distinct surface form of a lemma with all of its
// readings.
type InflectedForm struct {
	Form           string
	Enclitic       string
	InflectionData []CrunchResult
}

// LatinWordAnalysis groups the analyses of a word belonging to one lemma.
type LatinWordAnalysis struct {
	Lemma          string
	InflectedForms []InflectedForm
}

// GroupResults groups results by lemma, then by form and enclitic. Groups
// keep the order in which they first appear in results.
func GroupResults(results []CrunchResult) []LatinWordAnalysis {
	type formKey struct{ form, enclitic string }

	var analyses []LatinWordAnalysis
	lemmaIndex := make(map[string]int)
	formIndex := make(map[string]map[formKey]int)
	for _, r := range results {
		li, ok := lemmaIndex[r.Lemma]
		if !ok {
			li = len(analyses)
			lemmaIndex[r.Lemma] = li
			formIndex[r.Lemma] = make(map[formKey]int)
			analyses = append(analyses, LatinWordAnalysis{Lemma: r.Lemma})
		}
		a := &analyses[li]
		key := formKey{r.Form, r.Enclitic}
		fi, ok := formIndex[r.Lemma][key]
		if !ok {
			fi = len(a.InflectedForms)
			formIndex[r.Lemma][key] = fi
			a.InflectedForms = append(a.InflectedForms, InflectedForm{Form: r.Form, Enclitic: r.Enclitic})
		}
		a.InflectedForms[fi].InflectionData = append(a.InflectedForms[fi].InflectionData, r)
	}
	return analyses
}

// Cruncher analyzes words against a fixed set of Tables.
type Cruncher struct {
	tables *Tables
}

// NewCruncher returns a Cruncher over tables.
func NewCruncher(tables *Tables) *Cruncher {
	return &Cruncher{tables: tables}
}

// Crunch returns every analysis of word. See CrunchWord.
func (c *Cruncher) Crunch(word string, opts Options) ([]CrunchResult, error) {
	return CrunchWord(word, c.tables, opts)
}

// Analyze crunches word and groups the results by lemma and form.
func (c *Cruncher) Analyze(word string, opts Options) ([]LatinWordAnalysis, error) {
	results, err := c.Crunch(word, opts)
	if err != nil {
		return nil, err
	}
	return GroupResults(results), nil
}

// Tables returns the tables c works on.
func (c *Cruncher) Tables() *Tables {
	return c.tables
}
