package morceus

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// sourceLine is a line of a data file with its 1-based line number.
type sourceLine struct {
	num  int
	text string
}

// lemmaBlock is the ":le:" line of a lemma followed by its declarations.
type lemmaBlock struct {
	head  sourceLine
	lines []sourceLine
}

// ParseStemFile reads a Morpheus stem file. Verb files produce lemmata
// marked IsVerb.
func ParseStemFile(path string, isVerb bool) ([]Lemma, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open stem file: %w", err)
	}
	defer f.Close()
	return ParseStems(f, path, isVerb)
}

// ParseStems reads stem declarations from r. name is used in error messages.
//
// A ":le:" line opens a lemma block, each following line declares one stem
// or form, and a blank line closes the block. Lines starting with '#' are
// ignored.
func ParseStems(r io.Reader, name string, isVerb bool) ([]Lemma, error) {
	blocks, err := scanLemmaBlocks(r, name)
	if err != nil {
		return nil, err
	}
	lemmata := make([]Lemma, 0, len(blocks))
	for _, b := range blocks {
		l, err := processStem(name, b, isVerb, false)
		if err != nil {
			return nil, err
		}
		lemmata = append(lemmata, l)
	}
	return lemmata, nil
}

// scanLemmaBlocks splits r into lemma blocks. A new ":le:" line also closes
// the previous block, so blocks may abut.
func scanLemmaBlocks(r io.Reader, name string) ([]lemmaBlock, error) {
	var (
		blocks  []lemmaBlock
		current *lemmaBlock
		num     int
	)
	flush := func() {
		if current != nil {
			blocks = append(blocks, *current)
			current = nil
		}
	}

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		num++
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "":
			flush()
		case strings.HasPrefix(line, "#"):
		case strings.HasPrefix(line, ":le:"):
			flush()
			if strings.TrimSpace(line[4:]) == "" {
				return nil, fmt.Errorf("%s:%d: empty lemma name: %w", name, num, ErrMalformedStem)
			}
			current = &lemmaBlock{head: sourceLine{num, line}}
		case current == nil:
			return nil, fmt.Errorf("%s:%d: %q outside of a lemma block: %w", name, num, line, ErrMalformedStem)
		default:
			current.lines = append(current.lines, sourceLine{num, line})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	flush()
	return blocks, nil
}

// processStem turns a lemma block into a Lemma, sorting each declaration into
// its stems or irregular forms.
func processStem(name string, b lemmaBlock, isVerb, allowBare bool) (Lemma, error) {
	l := Lemma{
		Lemma:  strings.TrimSpace(b.head.text[4:]),
		IsVerb: isVerb,
	}
	if len(b.lines) == 0 {
		return Lemma{}, fmt.Errorf("%s:%d: lemma %s has no declarations: %w", name, b.head.num, l.Lemma, ErrMalformedStem)
	}
	for _, line := range b.lines {
		stem, form, err := parseDeclaration(line.text, allowBare)
		if err != nil {
			return Lemma{}, fmt.Errorf("%s:%d: %q: %w", name, line.num, line.text, err)
		}
		if stem != nil {
			l.Stems = append(l.Stems, *stem)
		} else {
			l.IrregularForms = append(l.IrregularForms, *form)
		}
	}
	return l, nil
}

// parseDeclaration decomposes one declaration line. Exactly one of the
// returned stem and form is non-nil on success.
//
//	:no:pu^ell a_ae fem      stem, table, grammatical tokens
//	:wd:eo adverb            complete form, grammatical tokens
//	mo_r@decl3 masc          stem@table, grammatical tokens
//	mo_s masc nom sg         bare complete form (irregular files only)
func parseDeclaration(line string, allowBare bool) (*Stem, *IrregularForm, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, nil, ErrMalformedStem
	}
	first, rest := fields[0], fields[1:]

	if code, text, ok := parseStemCode(first); ok {
		if text == "" || len(rest) == 0 {
			return nil, nil, ErrMalformedStem
		}
		if code.IsCompleteForm() {
			return nil, &IrregularForm{Code: code, Form: text, InflectionContext: ParseInflectionContext(rest)}, nil
		}
		return &Stem{
			Code:              code,
			Stem:              text,
			Inflection:        rest[0],
			InflectionContext: ParseInflectionContext(rest[1:]),
		}, nil, nil
	}

	if strings.HasPrefix(first, ":") {
		return nil, nil, fmt.Errorf("unknown stem code: %w", ErrMalformedStem)
	}
	if stem, table, ok := strings.Cut(first, "@"); ok {
		if stem == "" || table == "" || strings.Contains(table, "@") {
			return nil, nil, ErrMalformedStem
		}
		return &Stem{
			Code:              CodeNone,
			Stem:              stem,
			Inflection:        table,
			InflectionContext: ParseInflectionContext(rest),
		}, nil, nil
	}
	if allowBare && len(rest) > 0 {
		return nil, &IrregularForm{Code: CodeWord, Form: first, InflectionContext: ParseInflectionContext(rest)}, nil
	}
	return nil, nil, ErrMalformedStem
}
