// Package morceus is a table-driven Latin morphological analyzer in the
// tradition of Morpheus. It reads Morpheus stem and inflection-template
// files, expands the templates into inflection tables, and decomposes
// words into stem and ending to find every admissible analysis.
//
// Words and data use the Morpheus ASCII transliteration, where "_" marks a
// long vowel and "^" a short one, each written after its vowel.
package morceus

import (
	"fmt"
	"log/slog"
	"maps"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// Config selects how Tables are built. Exactly one of Existing and Generate
// must be set.
type Config struct {
	// Existing injects pre-built pieces.
	Existing *ExistingTables
	// Generate reads Morpheus data files.
	Generate *GenerateTables
	// Logger receives build statistics. Defaults to slog.Default().
	Logger *slog.Logger
}

// ExistingTables are pre-built lemmata and ending indices.
type ExistingTables struct {
	Lemmata []Lemma
	Ends    *EndsResult
}

// GenerateTables locates Morpheus data under Root:
//
//	stemlib/nom/        noun and adjective stem files
//	stemlib/vbs/        verb stem files
//	ends/target/        target templates
//	ends/dependency/    dependency templates
//
// Files named irreg.* in a stem directory are read as irregular-stem files.
type GenerateTables struct {
	Root string
	// NomStemFiles and VerbStemFiles replace discovery of the regular stem
	// files. Relative paths are resolved against the stem directory.
	NomStemFiles  []string
	VerbStemFiles []string
}

const (
	nomStemDir    = "stemlib/nom"
	verbStemDir   = "stemlib/vbs"
	targetDir     = "ends/target"
	dependencyDir = "ends/dependency"

	irregularPrefix = "irreg."
)

// Tables is the immutable data a cruncher works on. It is safe for
// concurrent use.
type Tables struct {
	lemmata []Lemma
	ends    *EndsResult

	byName map[string]*Lemma
	// stems and forms are keyed by lookupKey.
	stems map[string][]stemRef
	forms map[string][]formRef
	// endings maps a table name and lookupKey of an ending to its endings.
	endings map[string]map[string][]InflectionEnding
}

type stemRef struct {
	lemma *Lemma
	stem  *Stem
}

type formRef struct {
	lemma *Lemma
	form  *IrregularForm
}

// TablesOnce returns a function that builds Tables from cfg on its first
// call and returns the same result, error included, on every later call.
// Concurrent first callers wait for the single build.
func TablesOnce(cfg Config) func() (*Tables, error) {
	return sync.OnceValues(func() (*Tables, error) {
		return MakeTables(cfg)
	})
}

// MakeTables builds Tables from cfg.
func MakeTables(cfg Config) (*Tables, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	switch {
	case cfg.Existing != nil && cfg.Generate != nil:
		return nil, fmt.Errorf("both existing and generate set: %w", ErrInvalidConfig)
	case cfg.Existing != nil:
		return NewTables(cfg.Existing.Lemmata, cfg.Existing.Ends)
	case cfg.Generate != nil:
		return generateTables(cfg.Generate, logger)
	default:
		return nil, fmt.Errorf("neither existing nor generate set: %w", ErrInvalidConfig)
	}
}

func generateTables(gen *GenerateTables, logger *slog.Logger) (*Tables, error) {
	if gen.Root == "" {
		return nil, fmt.Errorf("empty data root: %w", ErrInvalidConfig)
	}

	nom, err := loadStemDir(filepath.Join(gen.Root, nomStemDir), gen.NomStemFiles, false, logger)
	if err != nil {
		return nil, err
	}
	verbs, err := loadStemDir(filepath.Join(gen.Root, verbStemDir), gen.VerbStemFiles, true, logger)
	if err != nil {
		return nil, err
	}

	targets, err := LoadTemplates(filepath.Join(gen.Root, targetDir))
	if err != nil {
		return nil, err
	}
	deps, err := LoadTemplates(filepath.Join(gen.Root, dependencyDir))
	if err != nil {
		return nil, err
	}
	expanded, err := ExpandTemplates(targets, deps)
	if err != nil {
		return nil, err
	}
	ends, err := MakeEndIndex(expanded.All(), IndexAll)
	if err != nil {
		return nil, err
	}

	t, err := NewTables(slices.Concat(nom, verbs), ends)
	if err != nil {
		return nil, err
	}
	logger.Info("morceus tables built",
		slog.String("root", gen.Root),
		slog.Int("lemmata", len(t.lemmata)),
		slog.Int("stems", t.stemCount()),
		slog.Int("irregular_forms", t.formCount()),
		slog.Int("templates", len(targets)+len(deps)),
		slog.Int("tables", len(ends.Lookup)),
		slog.Int("endings", len(ends.Rows)),
	)
	return t, nil
}

// loadStemDir reads the irregular-stem files of dir and either the given
// regular stem files or every other file of dir.
func loadStemDir(dir string, files []string, isVerb bool, logger *slog.Logger) ([]Lemma, error) {
	paths, err := dataFiles(dir)
	if err != nil {
		return nil, err
	}

	var regular, irregular []string
	for _, p := range paths {
		if strings.HasPrefix(filepath.Base(p), irregularPrefix) {
			irregular = append(irregular, p)
		} else {
			regular = append(regular, p)
		}
	}
	if files != nil {
		regular = nil
		for _, f := range files {
			if !filepath.IsAbs(f) {
				f = filepath.Join(dir, f)
			}
			regular = append(regular, f)
		}
	}

	var lemmata []Lemma
	for _, p := range regular {
		ls, err := ParseStemFile(p, isVerb)
		if err != nil {
			return nil, err
		}
		logger.Debug("stem file loaded", slog.String("path", p), slog.Int("lemmata", len(ls)))
		lemmata = append(lemmata, ls...)
	}
	for _, p := range irregular {
		ls, err := ParseIrregularStemFile(p, isVerb)
		if err != nil {
			return nil, err
		}
		logger.Debug("irregular stem file loaded", slog.String("path", p), slog.Int("lemmata", len(ls)))
		lemmata = append(lemmata, ls...)
	}
	return lemmata, nil
}

// NewTables assembles Tables from lemmata and an ending index, checking
// that every stem inflects with a known table. Both arguments are copied.
func NewTables(lemmata []Lemma, ends *EndsResult) (*Tables, error) {
	if ends == nil {
		return nil, fmt.Errorf("missing ending index: %w", ErrInvalidConfig)
	}
	ends = cloneEnds(ends)
	t := &Tables{
		lemmata: cloneLemmata(lemmata),
		ends:    ends,
		byName:  make(map[string]*Lemma, len(lemmata)),
		stems:   make(map[string][]stemRef),
		forms:   make(map[string][]formRef),
		endings: make(map[string]map[string][]InflectionEnding, len(ends.Lookup)),
	}

	for name, byEnding := range ends.Lookup {
		folded := make(map[string][]InflectionEnding, len(byEnding))
		for _, key := range slices.Sorted(maps.Keys(byEnding)) {
			for _, end := range byEnding[key] {
				k := lookupKey(end.Ending)
				folded[k] = append(folded[k], end)
			}
		}
		t.endings[name] = folded
	}

	for i := range t.lemmata {
		l := &t.lemmata[i]
		if _, dup := t.byName[l.Lemma]; !dup {
			t.byName[l.Lemma] = l
		}
		for j := range l.Stems {
			s := &l.Stems[j]
			if _, ok := t.endings[s.Inflection]; !ok {
				return nil, fmt.Errorf("lemma %s stem %s: table %s: %w", l.Lemma, s.Stem, s.Inflection, ErrUnknownTable)
			}
			k := lookupKey(s.Stem)
			t.stems[k] = append(t.stems[k], stemRef{lemma: l, stem: s})
		}
		for j := range l.IrregularForms {
			f := &l.IrregularForms[j]
			k := lookupKey(f.Form)
			t.forms[k] = append(t.forms[k], formRef{lemma: l, form: f})
		}
	}
	return t, nil
}

func cloneLemmata(lemmata []Lemma) []Lemma {
	out := make([]Lemma, len(lemmata))
	for i, l := range lemmata {
		out[i] = Lemma{
			Lemma:          l.Lemma,
			Stems:          slices.Clone(l.Stems),
			IrregularForms: slices.Clone(l.IrregularForms),
			IsVerb:         l.IsVerb,
		}
		for j := range out[i].Stems {
			s := &out[i].Stems[j]
			s.InflectionContext = s.InflectionContext.clone()
		}
		for j := range out[i].IrregularForms {
			f := &out[i].IrregularForms[j]
			f.InflectionContext = f.InflectionContext.clone()
		}
	}
	return out
}

func cloneEnds(ends *EndsResult) *EndsResult {
	out := &EndsResult{
		Rows:   make([]EndIndexRow, len(ends.Rows)),
		Lookup: make(InflectionLookup, len(ends.Lookup)),
	}
	for i, row := range ends.Rows {
		out.Rows[i] = EndIndexRow{Ending: row.Ending, TableNames: slices.Clone(row.TableNames)}
	}
	for name, byEnding := range ends.Lookup {
		copied := make(map[string][]InflectionEnding, len(byEnding))
		for key, endings := range byEnding {
			c := make([]InflectionEnding, len(endings))
			for i, end := range endings {
				c[i] = InflectionEnding{Ending: end.Ending, InflectionContext: end.InflectionContext.clone()}
			}
			copied[key] = c
		}
		out.Lookup[name] = copied
	}
	return out
}

// Lemmata returns every lemma in load order. The result must not be modified.
func (t *Tables) Lemmata() []Lemma {
	return t.lemmata
}

// Lemma returns the first lemma named name. The result must not be modified.
func (t *Tables) Lemma(name string) (*Lemma, bool) {
	l, ok := t.byName[name]
	return l, ok
}

// Ends returns the ending index. The result must not be modified.
func (t *Tables) Ends() *EndsResult {
	return t.ends
}

// TableNames returns the names of all indexed tables in order.
func (t *Tables) TableNames() []string {
	return slices.Sorted(maps.Keys(t.ends.Lookup))
}

// Table reconstructs an indexed table, its endings ordered by unmarked
// spelling.
func (t *Tables) Table(name string) (InflectionTable, bool) {
	byEnding, ok := t.ends.Lookup[name]
	if !ok {
		return InflectionTable{}, false
	}
	table := InflectionTable{Name: name}
	for _, key := range slices.Sorted(maps.Keys(byEnding)) {
		for _, end := range byEnding[key] {
			end.InflectionContext = end.InflectionContext.clone()
			table.Endings = append(table.Endings, end)
		}
	}
	return table, true
}

func (t *Tables) stemCount() int {
	n := 0
	for _, refs := range t.stems {
		n += len(refs)
	}
	return n
}

func (t *Tables) formCount() int {
	n := 0
	for _, refs := range t.forms {
		n += len(refs)
	}
	return n
}
