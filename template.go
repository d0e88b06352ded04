package morceus

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// InflectionEnding is an ending with the grammatical data it signals.
// The ending "*" stands for the empty ending.
type InflectionEnding struct {
	Ending string
	InflectionContext
}

// TemplateDependency invokes another template from a template line
// "prefix@name args...".
type TemplateDependency struct {
	Name string
	// Prefix is prepended to every inherited ending. "*" means none.
	Prefix string
	// Args is merged into the grammatical data of every inherited ending.
	Args []string
}

// InflectionTemplate is an inflection table before expansion.
type InflectionTemplate struct {
	Name         string
	Endings      []InflectionEnding
	Dependencies []TemplateDependency
}

// InflectionTable is a fully expanded inflection table.
type InflectionTable struct {
	Name    string
	Endings []InflectionEnding
}

// LoadTemplate reads one template file. The template is named after the
// file, without its extension.
func LoadTemplate(path string) (*InflectionTemplate, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open template: %w", err)
	}
	defer f.Close()
	return parseTemplateSource(templateName(path), path, f)
}

// ParseTemplate reads a template named name from r.
func ParseTemplate(name string, r io.Reader) (*InflectionTemplate, error) {
	return parseTemplateSource(name, name, r)
}

func parseTemplateSource(name, source string, r io.Reader) (*InflectionTemplate, error) {
	t := &InflectionTemplate{Name: name}
	sc := bufio.NewScanner(r)
	num := 0
	for sc.Scan() {
		num++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Fields(line)
		first := parts[0]

		if prefix, dep, ok := strings.Cut(first, "@"); ok {
			if dep == "" || strings.Contains(dep, "@") {
				return nil, fmt.Errorf("%s:%d: %q: %w", source, num, line, ErrMalformedTemplate)
			}
			d := TemplateDependency{Name: dep, Prefix: prefix}
			if len(parts) > 1 {
				d.Args = parts[1:]
			}
			t.Dependencies = append(t.Dependencies, d)
			continue
		}

		ctx := ParseInflectionContext(parts[1:])
		if ctx.GrammaticalData.IsEmpty() {
			return nil, fmt.Errorf("%s:%d: %q: %w", source, num, line, ErrEmptyGrammaticalData)
		}
		t.Endings = append(t.Endings, InflectionEnding{Ending: first, InflectionContext: ctx})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", source, err)
	}
	if len(t.Endings) == 0 && len(t.Dependencies) == 0 {
		return nil, fmt.Errorf("%s: %w", source, ErrEmptyTemplate)
	}
	return t, nil
}

// LoadTemplates loads every template file found directly in dirs.
// Template names must be unique across all of them.
func LoadTemplates(dirs ...string) (map[string]*InflectionTemplate, error) {
	templates := make(map[string]*InflectionTemplate)
	for _, dir := range dirs {
		paths, err := dataFiles(dir)
		if err != nil {
			return nil, err
		}
		for _, path := range paths {
			t, err := LoadTemplate(path)
			if err != nil {
				return nil, err
			}
			if _, dup := templates[t.Name]; dup {
				return nil, fmt.Errorf("%s: %s: %w", path, t.Name, ErrDuplicateTemplate)
			}
			templates[t.Name] = t
		}
	}
	return templates, nil
}

func templateName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// dataFiles lists the regular, non-hidden files of dir in name order.
func dataFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return paths, nil
}
