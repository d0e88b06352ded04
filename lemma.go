package morceus

import "strings"

// StemCode is the Morpheus part-of-speech code introducing a stem or form
// declaration, e.g. ":no:" for a noun stem.
type StemCode string

const (
	// CodeNone marks a stem declared with the "stem@table" syntax.
	CodeNone StemCode = ""
	// CodeNoun introduces a noun stem.
	CodeNoun StemCode = "no"
	// CodeAdjective introduces an adjective stem.
	CodeAdjective StemCode = "aj"
	// CodeWord introduces a complete indeclinable or irregular form.
	CodeWord StemCode = "wd"
	// CodeVerbStem introduces a verb stem.
	CodeVerbStem StemCode = "vs"
	// CodeVerbForm introduces a complete irregular verb form.
	CodeVerbForm StemCode = "vb"
	// CodeDerived introduces a derived (compound) verb stem.
	CodeDerived StemCode = "de"
)

// parseStemCode reads the ":xx:" prefix of a declaration.
func parseStemCode(decl string) (StemCode, string, bool) {
	if len(decl) < 4 || decl[0] != ':' || decl[3] != ':' {
		return CodeNone, decl, false
	}
	switch code := StemCode(decl[1:3]); code {
	case CodeNoun, CodeAdjective, CodeWord, CodeVerbStem, CodeVerbForm, CodeDerived:
		return code, decl[4:], true
	}
	return CodeNone, decl, false
}

// IsCompleteForm reports whether declarations with this code are full word
// forms rather than stems.
func (c StemCode) IsCompleteForm() bool {
	return c == CodeWord || c == CodeVerbForm
}

// Stem is a partial form completed by an ending from table Inflection.
type Stem struct {
	Code       StemCode
	Stem       string
	Inflection string
	InflectionContext
}

// IrregularForm is a complete surface form requiring no ending lookup.
type IrregularForm struct {
	Code StemCode
	Form string
	InflectionContext
}

// Lemma is a dictionary headword with its stems and irregular forms.
// Homographs are disambiguated with a "#N" suffix, e.g. "eo#1".
type Lemma struct {
	Lemma          string
	Stems          []Stem
	IrregularForms []IrregularForm
	IsVerb         bool
}

// Headword returns the lemma name without its homograph number.
func (l *Lemma) Headword() string {
	if i := strings.IndexByte(l.Lemma, '#'); i >= 0 {
		return l.Lemma[:i]
	}
	return l.Lemma
}
