package morceus

import (
	"slices"
	"strings"
)

// Case is a Latin grammatical case.
type Case uint8

const (
	Nominative Case = iota + 1
	Accusative
	Dative
	Genitive
	Ablative
	Vocative
	Locative
)

// Number is a Latin grammatical number.
type Number uint8

const (
	Singular Number = iota + 1
	Plural
)

// Gender is a Latin grammatical gender.
type Gender uint8

const (
	Masculine Gender = iota + 1
	Feminine
	Neuter
	Adverbial
)

// Person is a verbal person.
type Person uint8

const (
	First Person = iota + 1
	Second
	Third
)

// Mood is a verbal mood. Non-finite forms (participles, infinitives,
// gerundives, supines) are treated as moods.
type Mood uint8

const (
	Indicative Mood = iota + 1
	Imperative
	Subjunctive
	Participle
	Gerundive
	Infinitive
	Supine
)

// Voice is a verbal voice.
type Voice uint8

const (
	Active Voice = iota + 1
	Passive
)

// Tense is a verbal tense.
type Tense uint8

const (
	Present Tense = iota + 1
	Imperfect
	Perfect
	FuturePerfect
	Future
	Pluperfect
)

// Degree is an adjectival degree.
type Degree uint8

const (
	Positive Degree = iota + 1
	Comparative
	Superlative
)

// Category identifies one grammatical category. The declaration order is
// the order in which categories are rendered.
type Category int

const (
	CategoryTense Category = iota
	CategoryMood
	CategoryVoice
	CategoryPerson
	CategoryGender
	CategoryCase
	CategoryNumber
	CategoryDegree
	numCategories
)

// categoryTokens lists the Morpheus token for every value of every category,
// indexed by the value. Index 0 is unused.
var categoryTokens = [numCategories][]string{
	CategoryTense:  {"", "pres", "imperf", "perf", "futperf", "fut", "plupf"},
	CategoryMood:   {"", "ind", "imperat", "subj", "part", "gerundive", "inf", "supine"},
	CategoryVoice:  {"", "act", "pass"},
	CategoryPerson: {"", "1st", "2nd", "3rd"},
	CategoryGender: {"", "masc", "fem", "neut", "adverbial"},
	CategoryCase:   {"", "nom", "acc", "dat", "gen", "abl", "voc", "loc"},
	CategoryNumber: {"", "sg", "pl"},
	CategoryDegree: {"", "pos", "comp", "superl"},
}

type grammaticalToken struct {
	category Category
	value    uint8
}

var grammaticalTokens = func() map[string]grammaticalToken {
	index := make(map[string]grammaticalToken)
	for c, tokens := range categoryTokens {
		for v, tok := range tokens {
			if tok != "" {
				index[tok] = grammaticalToken{Category(c), uint8(v)}
			}
		}
	}
	return index
}()

// usageNotes are the tags meant for display. Any other non-grammatical
// token is kept as an internal tag.
var usageNotes = map[string]bool{
	"archaic": true,
	"early":   true,
	"late":    true,
	"later":   true,
	"old":     true,
	"poetic":  true,
	"rare":    true,
	"contr":   true,
	"syncope": true,
	"dialect": true,
	"Greek":   true,
	"ionic":   true,
	"doric":   true,
}

// ValueSet is a set of values of one category. Bit n is set when value n is
// present. The empty set means the category is absent.
type ValueSet uint16

// SetOf returns the set holding the given values.
func SetOf[T ~uint8](values ...T) ValueSet {
	var s ValueSet
	for _, v := range values {
		s |= 1 << v
	}
	return s
}

// Has reports whether v is in s.
func Has[T ~uint8](s ValueSet, v T) bool {
	return s&(1<<v) != 0
}

// Values returns the members of s in ascending order.
func Values[T ~uint8](s ValueSet) []T {
	var out []T
	for v := 1; v < 16; v++ {
		if s&(1<<v) != 0 {
			out = append(out, T(v))
		}
	}
	return out
}

// IsEmpty reports whether the category is absent.
func (s ValueSet) IsEmpty() bool {
	return s == 0
}

// IsSubsetOf reports whether every value of s is in o.
func (s ValueSet) IsSubsetOf(o ValueSet) bool {
	return s&o == s
}

// GrammaticalData holds the categorical attributes of a form.
type GrammaticalData struct {
	Tense  ValueSet
	Mood   ValueSet
	Voice  ValueSet
	Person ValueSet
	Gender ValueSet
	Case   ValueSet
	Number ValueSet
	Degree ValueSet
}

func (g *GrammaticalData) fields() [numCategories]*ValueSet {
	return [numCategories]*ValueSet{
		CategoryTense:  &g.Tense,
		CategoryMood:   &g.Mood,
		CategoryVoice:  &g.Voice,
		CategoryPerson: &g.Person,
		CategoryGender: &g.Gender,
		CategoryCase:   &g.Case,
		CategoryNumber: &g.Number,
		CategoryDegree: &g.Degree,
	}
}

// Get returns the value set of category c.
func (g GrammaticalData) Get(c Category) ValueSet {
	if c < 0 || c >= numCategories {
		return 0
	}
	return *g.fields()[c]
}

// IsEmpty reports whether no category is present.
func (g GrammaticalData) IsEmpty() bool {
	return g == GrammaticalData{}
}

// Merge combines g with other category by category. A category present on
// only one side is taken from that side; a category present on both sides is
// narrowed to the common values. It returns false if some category would be
// left with no common value.
func (g GrammaticalData) Merge(other GrammaticalData) (GrammaticalData, bool) {
	result := g
	dst, src := result.fields(), other.fields()
	for c := range dst {
		a, b := *dst[c], *src[c]
		switch {
		case a == 0:
			*dst[c] = b
		case b == 0:
		case a&b == 0:
			return GrammaticalData{}, false
		default:
			*dst[c] = a & b
		}
	}
	return result, true
}

// Tokens renders g as Morpheus tokens, one per category, with several values
// of the same category joined by "/".
func (g GrammaticalData) Tokens() []string {
	var out []string
	for c, s := range g.fields() {
		if s.IsEmpty() {
			continue
		}
		var names []string
		for _, v := range Values[uint8](*s) {
			if int(v) < len(categoryTokens[c]) {
				names = append(names, categoryTokens[c][v])
			}
		}
		out = append(out, strings.Join(names, "/"))
	}
	return out
}

// String renders g in canonical order, e.g. "pres imperat act 2nd pl".
func (g GrammaticalData) String() string {
	return strings.Join(g.Tokens(), " ")
}

// parseGrammaticalToken parses tokens like "abl" or "nom/voc". Every part of
// a slashed token must be a grammatical value.
func parseGrammaticalToken(tok string) ([]grammaticalToken, bool) {
	parts := strings.Split(tok, "/")
	out := make([]grammaticalToken, 0, len(parts))
	for _, p := range parts {
		gt, ok := grammaticalTokens[p]
		if !ok {
			return nil, false
		}
		out = append(out, gt)
	}
	return out, true
}

// InflectionContext is the grammatical data of a stem, form or ending
// together with its tags.
type InflectionContext struct {
	GrammaticalData GrammaticalData
	// Tags are usage notes meant for display, e.g. "archaic".
	Tags []string
	// InternalTags are annotations used only while matching.
	InternalTags []string
}

// ParseInflectionContext parses whitespace-split Morpheus tokens. Repeated
// values of the same category accumulate.
func ParseInflectionContext(tokens []string) InflectionContext {
	var ctx InflectionContext
	fields := ctx.GrammaticalData.fields()
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		if gts, ok := parseGrammaticalToken(tok); ok {
			for _, gt := range gts {
				*fields[gt.category] |= 1 << gt.value
			}
			continue
		}
		if usageNotes[tok] {
			ctx.Tags = appendUnique(ctx.Tags, tok)
		} else {
			ctx.InternalTags = appendUnique(ctx.InternalTags, tok)
		}
	}
	return ctx
}

// Tokens renders the context as grammatical tokens followed by tags and
// internal tags.
func (c InflectionContext) Tokens() []string {
	out := c.GrammaticalData.Tokens()
	out = append(out, c.Tags...)
	return append(out, c.InternalTags...)
}

func (c InflectionContext) String() string {
	return strings.Join(c.Tokens(), " ")
}

// mergeContexts merges two contexts with Merge and unions their tags.
func mergeContexts(first, second InflectionContext) (InflectionContext, bool) {
	data, ok := first.GrammaticalData.Merge(second.GrammaticalData)
	if !ok {
		return InflectionContext{}, false
	}
	return InflectionContext{
		GrammaticalData: data,
		Tags:            mergeTags(first.Tags, second.Tags),
		InternalTags:    mergeTags(first.InternalTags, second.InternalTags),
	}, true
}

// mergeTags returns the union of a and b in first-seen order, or nil.
func mergeTags(a, b []string) []string {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make([]string, 0, len(a)+len(b))
	for _, t := range a {
		out = appendUnique(out, t)
	}
	for _, t := range b {
		out = appendUnique(out, t)
	}
	return out
}

func appendUnique(list []string, s string) []string {
	if slices.Contains(list, s) {
		return list
	}
	return append(list, s)
}

// clone returns a copy of c that shares no slices with it.
func (c InflectionContext) clone() InflectionContext {
	c.Tags = slices.Clone(c.Tags)
	c.InternalTags = slices.Clone(c.InternalTags)
	return c
}
