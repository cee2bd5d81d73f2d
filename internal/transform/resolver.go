package transform

import (
	"fmt"
	"strings"

	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/diag"
	"github.com/PhantasticUniverse/EtherDAW-sub000/internal/models"
)

// Resolver turns transform patterns into concrete note patterns by resolving
// their sources depth first. A Resolver is not safe for concurrent use.
type Resolver struct {
	patterns map[string]models.Pattern
	diag     *diag.Diagnostics
	stack    []string
}

// NewResolver creates a resolver over a pattern mapping
func NewResolver(patterns map[string]models.Pattern, d *diag.Diagnostics) *Resolver {
	return &Resolver{patterns: patterns, diag: d}
}

// Resolve looks up a pattern by name and resolves it
func (r *Resolver) Resolve(name string) (models.Pattern, error) {
	p, ok := r.patterns[name]
	if !ok {
		return models.Pattern{}, diag.Missing("pattern", name)
	}
	return r.ResolvePattern(name, p)
}

// ResolvePattern returns p with its transform applied. Patterns that are not
// transforms come back unchanged. A missing source, or a source without
// notes, is recorded as a warning and p is returned as is. A cycle of
// transforms fails with a CyclicTransform error.
func (r *Resolver) ResolvePattern(name string, p models.Pattern) (models.Pattern, error) {
	if p.Kind() != models.KindTransform {
		return p, nil
	}

	for _, active := range r.stack {
		if active == name {
			chain := append(append([]string{}, r.stack...), name)
			return models.Pattern{}, &diag.Error{
				Kind:    diag.CyclicTransform,
				Literal: name,
				Msg:     fmt.Sprintf("transform cycle %s at", strings.Join(chain, " -> ")),
			}
		}
	}
	r.stack = append(r.stack, name)
	defer func() { r.stack = r.stack[:len(r.stack)-1] }()

	t := *p.Transform
	src, ok := r.patterns[t.Source]
	if !ok {
		r.diag.Warn("pattern %q: transform source %q not found", name, t.Source)
		return p, nil
	}

	resolved, err := r.ResolvePattern(t.Source, src)
	if err != nil {
		return models.Pattern{}, err
	}
	if len(resolved.Notes) == 0 {
		r.diag.Warn("pattern %q: transform source %q has no notes", name, t.Source)
		return p, nil
	}

	notes, err := Apply(resolved.Notes, t)
	if err != nil {
		return models.Pattern{}, fmt.Errorf("pattern %q: %w", name, err)
	}

	out := p
	out.Transform = nil
	out.Notes = notes
	return out, nil
}
