package metadata

import (
	"fmt"
	"strings"
)

// Rule inspects a property and may record a hint or label on the decision.
// Returning true stops the remaining rules.
type Rule func(desc PropertyDescriptor, decision *DisplayDecision) bool

// Option configures a Resolver.
type Option func(*config)

type config struct {
	scope     *ScopeFilter
	scopeRule *ScopeRule
	labeler   func(string) string
	extra     []Rule
}

// WithScope limits label generation to containers matched by filter.
func WithScope(filter *ScopeFilter) Option {
	return func(cfg *config) {
		cfg.scope = filter
		cfg.scopeRule = nil
	}
}

// WithScopeRule limits label generation using a ScopeRule. NewResolver
// returns ErrInvalidArgument when the rule has nil targets.
func WithScopeRule(rule ScopeRule) Option {
	return func(cfg *config) {
		cfg.scopeRule = &rule
		cfg.scope = nil
	}
}

// WithLabeler overrides SplitPascalCase as the label generator.
func WithLabeler(labeler func(string) string) Option {
	return func(cfg *config) {
		if labeler != nil {
			cfg.labeler = labeler
		}
	}
}

// WithRules appends rules evaluated after the built-in conventions. They
// only run when no built-in rule stopped the pipeline.
func WithRules(rules ...Rule) Option {
	return func(cfg *config) {
		for _, rule := range rules {
			if rule != nil {
				cfg.extra = append(cfg.extra, rule)
			}
		}
	}
}

// Resolver evaluates the presentation pipeline for properties. A Resolver
// holds only read-only configuration and is safe for concurrent use.
type Resolver struct {
	scope *ScopeFilter
	rules []Rule
}

// NewResolver constructs a Resolver. Without a scope option labels are
// generated for every container type.
func NewResolver(options ...Option) (*Resolver, error) {
	cfg := config{labeler: SplitPascalCase}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	scope := cfg.scope
	if cfg.scopeRule != nil {
		filter, err := NewScopeFilterFromRule(*cfg.scopeRule)
		if err != nil {
			return nil, fmt.Errorf("metadata: configure scope: %w", err)
		}
		scope = filter
	}

	r := &Resolver{scope: scope}
	r.rules = append(r.rules, hiddenKeyRule, emailRule, r.labelRule(cfg.labeler))
	r.rules = append(r.rules, cfg.extra...)
	return r, nil
}

// MustResolver is NewResolver that panics on error. Useful for init-time
// wiring.
func MustResolver(options ...Option) *Resolver {
	r, err := NewResolver(options...)
	if err != nil {
		panic(err)
	}
	return r
}

// Scope returns the configured scope filter, or nil when labels are
// unscoped.
func (r *Resolver) Scope() *ScopeFilter {
	if r == nil {
		return nil
	}
	return r.scope
}

// Resolve computes the decision for desc. Type formats are applied first and
// independently of the hint and label rules.
func (r *Resolver) Resolve(desc PropertyDescriptor) DisplayDecision {
	var decision DisplayDecision
	applyFormats(desc.DeclaredType, &decision)
	if r == nil {
		return decision
	}
	for _, rule := range r.rules {
		if rule(desc, &decision) {
			break
		}
	}
	return decision
}

func (r *Resolver) labelRule(labeler func(string) string) Rule {
	return func(desc PropertyDescriptor, decision *DisplayDecision) bool {
		if desc.HasExplicitLabel() {
			return false
		}
		if r.scope != nil && !r.scope.Matches(desc.Container) {
			return false
		}
		label := labeler(desc.Name)
		if strings.TrimSpace(label) == "" {
			return false
		}
		decision.Label = label
		decision.HasLabel = true
		return true
	}
}
