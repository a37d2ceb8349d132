package render

import (
	"context"

	"github.com/goliatone/go-xcmgen/pkg/model"
)

// Renderer converts a FormModel into a byte representation such as an HTML
// page.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form model.FormModel, options RenderOptions) ([]byte, error)
}
