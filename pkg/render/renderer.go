package render

import (
	"context"

	"github.com/goliatone/go-displaymeta/pkg/model"
)

// Renderer converts a FormModel into a byte representation.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form model.FormModel, options RenderOptions) ([]byte, error)
}

// ListRenderer is implemented by renderers that can present many records of
// the same model, e.g. as a table.
type ListRenderer interface {
	Renderer
	RenderList(ctx context.Context, form model.FormModel, rows []map[string]any, options RenderOptions) ([]byte, error)
}
