package model

import (
	"fmt"
	"reflect"

	lru "github.com/hashicorp/golang-lru/v2"

	internalmodel "github.com/goliatone/go-displaymeta/internal/model"
	"github.com/goliatone/go-displaymeta/pkg/metadata"
)

// Builder converts Go struct types into display models.
type Builder interface {
	Build(v any) (FormModel, error)
	BuildType(t reflect.Type) (FormModel, error)
	BuildProperties(name string, container metadata.ContainerType, props []Property) (FormModel, error)
}

// BuilderOption configures the builder behaviour.
type BuilderOption func(*builderOptions)

type builderOptions struct {
	resolver   *metadata.Resolver
	labeler    func(string) string
	cacheSize  int
	decorators []Decorator
}

// WithResolver supplies a configured resolver. It takes precedence over
// WithLabeler.
func WithResolver(resolver *metadata.Resolver) BuilderOption {
	return func(opts *builderOptions) {
		opts.resolver = resolver
	}
}

// WithLabeler overrides the default label generation function.
func WithLabeler(labeler func(string) string) BuilderOption {
	return func(opts *builderOptions) {
		opts.labeler = labeler
	}
}

// WithCache memoises built models per type in an LRU of the given size.
func WithCache(size int) BuilderOption {
	return func(opts *builderOptions) {
		opts.cacheSize = size
	}
}

// WithDecorators registers decorators applied to every built model.
func WithDecorators(decorators ...Decorator) BuilderOption {
	return func(opts *builderOptions) {
		for _, d := range decorators {
			if d != nil {
				opts.decorators = append(opts.decorators, d)
			}
		}
	}
}

type builder struct {
	inner      *internalmodel.Builder
	decorators []Decorator
	cache      *lru.Cache[reflect.Type, FormModel]
}

// NewBuilder returns a Builder backed by the internal implementation.
func NewBuilder(options ...BuilderOption) (Builder, error) {
	cfg := builderOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	resolver := cfg.resolver
	if resolver == nil {
		var resolverOpts []metadata.Option
		if cfg.labeler != nil {
			resolverOpts = append(resolverOpts, metadata.WithLabeler(cfg.labeler))
		}
		r, err := metadata.NewResolver(resolverOpts...)
		if err != nil {
			return nil, fmt.Errorf("model: configure resolver: %w", err)
		}
		resolver = r
	}

	b := &builder{
		inner:      internalmodel.New(internalmodel.Options{Resolver: resolver}),
		decorators: cfg.decorators,
	}
	if cfg.cacheSize > 0 {
		cache, err := lru.New[reflect.Type, FormModel](cfg.cacheSize)
		if err != nil {
			return nil, fmt.Errorf("model: configure cache: %w", err)
		}
		b.cache = cache
	}
	return b, nil
}

// MustBuilder is NewBuilder that panics on error.
func MustBuilder(options ...BuilderOption) Builder {
	b, err := NewBuilder(options...)
	if err != nil {
		panic(err)
	}
	return b
}

func (b *builder) Build(v any) (FormModel, error) {
	if v == nil {
		return FormModel{}, fmt.Errorf("model: value is required")
	}
	if t, ok := v.(reflect.Type); ok {
		return b.BuildType(t)
	}
	return b.BuildType(reflect.TypeOf(v))
}

func (b *builder) BuildType(t reflect.Type) (FormModel, error) {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if b.cache != nil && t != nil {
		if form, ok := b.cache.Get(t); ok {
			return form.Clone(), nil
		}
	}

	form, err := b.inner.BuildType(t)
	if err != nil {
		return FormModel{}, err
	}
	if err := b.decorate(&form); err != nil {
		return FormModel{}, err
	}

	if b.cache != nil {
		b.cache.Add(t, form.Clone())
	}
	return form, nil
}

func (b *builder) BuildProperties(name string, container metadata.ContainerType, props []Property) (FormModel, error) {
	form := b.inner.BuildProperties(name, container, props)
	if err := b.decorate(&form); err != nil {
		return FormModel{}, err
	}
	return form, nil
}

func (b *builder) decorate(form *FormModel) error {
	for _, d := range b.decorators {
		if err := d.Decorate(form); err != nil {
			return fmt.Errorf("model: decorate %s: %w", form.Name, err)
		}
	}
	return nil
}
