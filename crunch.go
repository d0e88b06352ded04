package morceus

import (
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// VowelLength selects how vowel-length marks in the input are matched.
type VowelLength string

const (
	// VowelStrict requires the input marks to equal the marks of the data.
	VowelStrict VowelLength = "strict"
	// VowelRelaxed ignores marks in the input. Results still carry the
	// marks of the data.
	VowelRelaxed VowelLength = "relaxed"
)

// Options tunes matching. The zero value is strict matching with no
// relaxation at all.
type Options struct {
	// VowelLength defaults to VowelStrict when empty.
	VowelLength VowelLength
	// RelaxIandJ treats i and j as the same letter.
	RelaxIandJ bool
	// RelaxUandV treats u and v as the same letter.
	RelaxUandV bool
	// HandleEnclitics also analyzes the word with a trailing enclitic
	// removed.
	HandleEnclitics bool
	// RelaxCase also analyzes the word with the case of its first letter
	// flipped.
	RelaxCase bool
}

// PermissiveOptions relaxes every comparison and handles enclitics. It suits
// free text input; the zero Options is strict.
func PermissiveOptions() Options {
	return Options{
		VowelLength:     VowelRelaxed,
		RelaxIandJ:      true,
		RelaxUandV:      true,
		HandleEnclitics: true,
		RelaxCase:       true,
	}
}

// Validate reports unknown option values.
func (o Options) Validate() error {
	switch o.VowelLength {
	case "", VowelStrict, VowelRelaxed:
		return nil
	default:
		return fmt.Errorf("vowel length %q: %w", o.VowelLength, ErrInvalidOptions)
	}
}

var enclitics = []string{"que", "ne", "ve"}

// Internal tags restricting how a regular stem combines with an ending.
const (
	tagCompoundOnly     = "comp_only"
	tagNoFuture         = "no_fut"
	tagNoFutureParticle = "no_fut_part"
)

// CrunchWord returns every analysis of word: matching irregular forms
// first, then every stem and ending split from the shortest stem to the
// longest. A word with no analysis yields an empty result and no error.
func CrunchWord(word string, tables *Tables, opts Options) ([]CrunchResult, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if tables == nil {
		return nil, fmt.Errorf("nil tables: %w", ErrInvalidConfig)
	}

	word = lowerTail(strings.TrimSpace(word))
	if opts.VowelLength == VowelRelaxed {
		word = StripLengthMarks(word)
	}
	if word == "" {
		return nil, nil
	}

	results := crunchWithCase(word, tables, opts)
	if opts.HandleEnclitics {
		for _, enc := range enclitics {
			base, ok := strings.CutSuffix(word, enc)
			if !ok || base == "" {
				continue
			}
			for _, r := range crunchWithCase(base, tables, opts) {
				r.Enclitic = enc
				results = append(results, r)
			}
		}
	}
	return results, nil
}

func crunchWithCase(word string, t *Tables, opts Options) []CrunchResult {
	results := crunchExact(word, t, opts)
	// A capital V may stand for U. With RelaxUandV the folding already covers it.
	first, rest := splitFirst(word)
	capitalV := first == 'V' && !opts.RelaxUandV
	if capitalV {
		results = appendRelaxedCase(results, crunchExact("U"+rest, t, opts))
	}
	if !opts.RelaxCase {
		return results
	}
	if flipped := flipFirstCase(word); flipped != word {
		results = appendRelaxedCase(results, crunchExact(flipped, t, opts))
	}
	if capitalV {
		results = appendRelaxedCase(results, crunchExact("u"+rest, t, opts))
	}
	return results
}

func appendRelaxedCase(results, relaxed []CrunchResult) []CrunchResult {
	for _, r := range relaxed {
		r.RelaxedCase = true
		results = append(results, r)
	}
	return results
}

func crunchExact(word string, t *Tables, opts Options) []CrunchResult {
	var results []CrunchResult

	target := matchText(word, opts)
	for _, ref := range t.forms[lookupKey(word)] {
		if matchText(ref.form.Form, opts) != target {
			continue
		}
		results = append(results, CrunchResult{
			Lemma:             ref.lemma.Lemma,
			Form:              ref.form.Form,
			IsVerb:            ref.lemma.IsVerb,
			InflectionContext: ref.form.InflectionContext.clone(),
		})
	}

	for i := 1; i <= len(word); i++ {
		if i < len(word) && !utf8.RuneStart(word[i]) {
			continue
		}
		stemPart := word[:i]
		refs := t.stems[lookupKey(stemPart)]
		if len(refs) == 0 {
			continue
		}
		rest := word[i:]
		endKey := EmptyEnding
		if rest != "" {
			endKey = lookupKey(rest)
		}
		stemText, endText := matchText(stemPart, opts), matchText(rest, opts)

		for _, ref := range refs {
			candidates := t.endings[ref.stem.Inflection][endKey]
			if len(candidates) == 0 || matchText(ref.stem.Stem, opts) != stemText {
				continue
			}
			for _, end := range candidates {
				if !endingMatches(end.Ending, rest, endText, opts) {
					continue
				}
				ctx, ok := mergeStemAndEnding(ref.stem, &end)
				if !ok {
					continue
				}
				stem := *ref.stem
				stem.InflectionContext = stem.InflectionContext.clone()
				end.InflectionContext = end.InflectionContext.clone()
				results = append(results, CrunchResult{
					Lemma:             ref.lemma.Lemma,
					Form:              joinForm(stem.Stem, end.Ending),
					IsVerb:            ref.lemma.IsVerb,
					InflectionContext: ctx,
					Stem:              &stem,
					End:               &end,
				})
			}
		}
	}
	return results
}

// endingMatches reports whether a table ending matches the remainder of the
// word. The empty ending matches only an empty remainder, so a literal "*"
// in the input never does.
func endingMatches(ending, rest, restText string, opts Options) bool {
	if ending == EmptyEnding {
		return rest == ""
	}
	return rest != "" && matchText(ending, opts) == restText
}

// mergeStemAndEnding combines the data of a stem and one of its endings.
//
// Stems declared with "stem@table" merge like template arguments. Regular
// stems must be a subset of the ending in every category, except that an
// ending without gender takes any stem gender and a positive stem takes an
// ending without degree. The result is the ending data narrowed by the
// stem's case and gender.
func mergeStemAndEnding(stem *Stem, end *InflectionEnding) (InflectionContext, bool) {
	if stem.Code == CodeNone {
		return mergeContexts(stem.InflectionContext, end.InflectionContext)
	}

	internal := mergeTags(stem.InternalTags, end.InternalTags)
	if slices.Contains(internal, tagCompoundOnly) {
		return InflectionContext{}, false
	}

	s, e := stem.GrammaticalData, end.GrammaticalData
	if !s.Case.IsSubsetOf(e.Case) {
		return InflectionContext{}, false
	}
	if !e.Gender.IsEmpty() && !s.Gender.IsSubsetOf(e.Gender) {
		return InflectionContext{}, false
	}
	for _, c := range []Category{CategoryMood, CategoryNumber, CategoryPerson, CategoryTense, CategoryVoice} {
		if sv := s.Get(c); !sv.IsEmpty() && sv != e.Get(c) {
			return InflectionContext{}, false
		}
	}
	if !s.Degree.IsEmpty() && s.Degree != e.Degree &&
		!(s.Degree == SetOf(Positive) && e.Degree.IsEmpty()) {
		return InflectionContext{}, false
	}

	future := Has(e.Tense, Future)
	if future && slices.Contains(internal, tagNoFuture) {
		return InflectionContext{}, false
	}
	if future && Has(e.Mood, Participle) && slices.Contains(internal, tagNoFutureParticle) {
		return InflectionContext{}, false
	}

	data := e
	if !s.Case.IsEmpty() {
		data.Case = s.Case
	}
	if !s.Gender.IsEmpty() {
		data.Gender = s.Gender
	}
	return InflectionContext{
		GrammaticalData: data,
		Tags:            mergeTags(stem.Tags, end.Tags),
		InternalTags:    internal,
	}, true
}

// joinForm appends an ending to a stem. The empty ending adds nothing.
func joinForm(stem, ending string) string {
	if ending == EmptyEnding {
		return stem
	}
	return stem + ending
}

// lowerTail lower-cases everything after the first letter.
func lowerTail(word string) string {
	r, size := utf8.DecodeRuneInString(word)
	if size == 0 {
		return word
	}
	return string(r) + strings.ToLower(word[size:])
}

func splitFirst(word string) (rune, string) {
	r, size := utf8.DecodeRuneInString(word)
	return r, word[size:]
}

func flipFirstCase(word string) string {
	r, size := utf8.DecodeRuneInString(word)
	switch {
	case unicode.IsUpper(r):
		r = unicode.ToLower(r)
	case unicode.IsLower(r):
		r = unicode.ToUpper(r)
	default:
		return word
	}
	return string(r) + word[size:]
}
