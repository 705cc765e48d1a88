package metadata

import (
	"fmt"
	"sort"
	"strings"
)

// ScopeFilter decides whether label generation applies to a container type.
// It is immutable after construction and safe for concurrent use.
type ScopeFilter struct {
	targets        map[string]struct{}
	includeDerived bool
}

// NewScopeFilter builds a filter over the supplied type names. A nil slice is
// rejected with ErrInvalidArgument; an empty slice yields a filter that
// matches nothing.
func NewScopeFilter(targets []string, includeDerived bool) (*ScopeFilter, error) {
	if targets == nil {
		return nil, fmt.Errorf("metadata: scope targets are required: %w", ErrInvalidArgument)
	}
	set := make(map[string]struct{}, len(targets))
	for _, target := range targets {
		trimmed := strings.TrimSpace(target)
		if trimmed == "" {
			continue
		}
		set[trimmed] = struct{}{}
	}
	return &ScopeFilter{targets: set, includeDerived: includeDerived}, nil
}

// NewScopeFilterFromRule builds a filter from a ScopeRule.
func NewScopeFilterFromRule(rule ScopeRule) (*ScopeFilter, error) {
	return NewScopeFilter(rule.Targets, rule.IncludeDerived)
}

// Matches reports whether container is a configured target or, when derived
// types are included, descends from one.
func (f *ScopeFilter) Matches(container ContainerType) bool {
	if f == nil || len(f.targets) == 0 || container.Name == "" {
		return false
	}
	if _, ok := f.targets[container.Name]; ok {
		return true
	}
	if !f.includeDerived {
		return false
	}
	for _, base := range container.Bases {
		if _, ok := f.targets[base]; ok {
			return true
		}
	}
	return false
}

// Rule returns the configuration the filter was built from, with targets
// sorted.
func (f *ScopeFilter) Rule() ScopeRule {
	if f == nil {
		return ScopeRule{}
	}
	targets := make([]string, 0, len(f.targets))
	for target := range f.targets {
		targets = append(targets, target)
	}
	sort.Strings(targets)
	return ScopeRule{Targets: targets, IncludeDerived: f.includeDerived}
}
