package morceus

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// ExpandedTables holds the result of template expansion, each list sorted by
// table name.
type ExpandedTables struct {
	Targets      []InflectionTable
	Dependencies []InflectionTable
}

// All returns the target tables followed by the dependency tables.
func (e *ExpandedTables) All() []InflectionTable {
	return slices.Concat(e.Targets, e.Dependencies)
}

// ExpandTemplates expands the dependency templates, which may depend on each
// other, and then the target templates, which may depend only on dependency
// templates.
func ExpandTemplates(targets, dependencies map[string]*InflectionTemplate) (*ExpandedTables, error) {
	for name := range targets {
		if _, dup := dependencies[name]; dup {
			return nil, fmt.Errorf("%s: %w", name, ErrDuplicateTemplate)
		}
	}

	expanded, err := expandDependencies(dependencies)
	if err != nil {
		return nil, err
	}

	result := &ExpandedTables{}
	for _, name := range slices.Sorted(maps.Keys(targets)) {
		t := targets[name]
		for _, dep := range t.Dependencies {
			if _, ok := targets[dep.Name]; ok {
				return nil, fmt.Errorf("target %s depends on target %s: %w", name, dep.Name, ErrUnknownTemplate)
			}
			if _, ok := expanded[dep.Name]; !ok {
				return nil, fmt.Errorf("template %s depends on %s: %w", name, dep.Name, ErrUnknownTemplate)
			}
		}
		table, err := expandTemplate(t, expanded)
		if err != nil {
			return nil, err
		}
		result.Targets = append(result.Targets, *table)
	}
	for _, name := range slices.Sorted(maps.Keys(expanded)) {
		result.Dependencies = append(result.Dependencies, *expanded[name])
	}
	return result, nil
}

// expandDependencies expands templates in dependency order. Each pass
// expands every template whose dependencies are all expanded; a pass that
// expands nothing means the remaining templates form a cycle.
func expandDependencies(templates map[string]*InflectionTemplate) (map[string]*InflectionTable, error) {
	pending := slices.Sorted(maps.Keys(templates))
	for _, name := range pending {
		for _, dep := range templates[name].Dependencies {
			if _, ok := templates[dep.Name]; !ok {
				return nil, fmt.Errorf("template %s depends on %s: %w", name, dep.Name, ErrUnknownTemplate)
			}
		}
	}

	expanded := make(map[string]*InflectionTable, len(templates))
	for len(pending) > 0 {
		var blocked []string
		for _, name := range pending {
			t := templates[name]
			if !dependenciesExpanded(t, expanded) {
				blocked = append(blocked, name)
				continue
			}
			table, err := expandTemplate(t, expanded)
			if err != nil {
				return nil, err
			}
			expanded[name] = table
		}
		if len(blocked) == len(pending) {
			return nil, fmt.Errorf("%s: %w", strings.Join(blocked, ", "), ErrTemplateCycle)
		}
		pending = blocked
	}
	return expanded, nil
}

func dependenciesExpanded(t *InflectionTemplate, expanded map[string]*InflectionTable) bool {
	for _, dep := range t.Dependencies {
		if _, ok := expanded[dep.Name]; !ok {
			return false
		}
	}
	return true
}

// expandTemplate builds the table of t from its own endings and the
// endings inherited from its expanded dependencies. Inherited endings whose
// data contradicts the invocation arguments are dropped.
func expandTemplate(t *InflectionTemplate, expanded map[string]*InflectionTable) (*InflectionTable, error) {
	endings := slices.Clone(t.Endings)
	for _, dep := range t.Dependencies {
		table := expanded[dep.Name]
		prefix := dep.Prefix
		if prefix == "*" {
			prefix = ""
		}
		args := ParseInflectionContext(dep.Args)
		for _, end := range table.Endings {
			ctx, ok := mergeContexts(end.InflectionContext, args)
			if !ok {
				continue
			}
			endings = append(endings, InflectionEnding{
				Ending:            prefixEnding(prefix, end.Ending),
				InflectionContext: ctx,
			})
		}
	}
	if len(endings) == 0 {
		return nil, fmt.Errorf("%s: %w", t.Name, ErrEmptyTable)
	}
	return &InflectionTable{Name: t.Name, Endings: endings}, nil
}

func prefixEnding(prefix, ending string) string {
	if ending == EmptyEnding {
		if prefix == "" {
			return EmptyEnding
		}
		return prefix
	}
	return prefix + ending
}
