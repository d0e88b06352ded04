package morceus

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Transliteration marks. A length mark follows the vowel it applies to.
const (
	LongMark       = "_"
	ShortMark      = "^"
	Diaeresis      = "+"
	CompoundJoiner = "-"
	// EmptyEnding is the template notation of a zero-length ending.
	EmptyEnding = "*"
)

// lengthReplacer removes vowel-length marks.
var lengthReplacer = strings.NewReplacer(LongMark, "", ShortMark, "")

// joinerReplacer removes compound and diaeresis joiners.
var joinerReplacer = strings.NewReplacer(CompoundJoiner, "", Diaeresis, "")

// keyReplacer produces lookup keys: no marks, no joiners, i for j, u for v.
var keyReplacer = strings.NewReplacer(
	LongMark, "",
	ShortMark, "",
	CompoundJoiner, "",
	Diaeresis, "",
	"j", "i",
	"J", "I",
	"v", "u",
	"V", "U",
)

var ijReplacer = strings.NewReplacer("j", "i", "J", "I")

var uvReplacer = strings.NewReplacer("v", "u", "V", "U")

// StripLengthMarks removes every "_" and "^" from s.
func StripLengthMarks(s string) string {
	return lengthReplacer.Replace(s)
}

// lookupKey folds s into the key under which stems, forms and endings are
// indexed. Any two strings that can match under some option set share a key.
func lookupKey(s string) string {
	return keyReplacer.Replace(s)
}

// matchText folds s according to the relaxations enabled in opts.
func matchText(s string, opts Options) string {
	s = joinerReplacer.Replace(s)
	if opts.VowelLength == VowelRelaxed {
		s = lengthReplacer.Replace(s)
	}
	if opts.RelaxIandJ {
		s = ijReplacer.Replace(s)
	}
	if opts.RelaxUandV {
		s = uvReplacer.Replace(s)
	}
	return s
}

// unicodeMarks maps combining characters to transliteration marks.
var unicodeMarks = map[rune]string{
	'\u0304': LongMark,  // combining macron
	'\u0306': ShortMark, // combining breve
	'\u0308': Diaeresis, // combining diaeresis
}

var ligatures = strings.NewReplacer("æ", "ae", "Æ", "Ae", "œ", "oe", "Œ", "Oe")

// FromUnicode converts text with macrons, breves and diaereses into the
// ASCII transliteration, e.g. "cavēte" to "cave_te". Other combining marks
// are dropped.
func FromUnicode(s string) string {
	s = norm.NFD.String(ligatures.Replace(s))
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if mark, ok := unicodeMarks[r]; ok {
			b.WriteString(mark)
			continue
		}
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ToUnicode converts the ASCII transliteration back into composed Unicode
// text. Joiners other than the diaeresis are removed.
func ToUnicode(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 2)
	for _, r := range s {
		switch string(r) {
		case LongMark:
			b.WriteRune('\u0304')
		case ShortMark:
			b.WriteRune('\u0306')
		case Diaeresis:
			b.WriteRune('\u0308')
		case CompoundJoiner:
		default:
			b.WriteRune(r)
		}
	}
	return norm.NFC.String(b.String())
}
