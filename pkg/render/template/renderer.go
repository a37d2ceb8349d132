package template

import (
	"io"
)

// TemplateRenderer is the seam between renderers and a template engine.
// Render dispatches to RenderString when name looks like inline template
// content and to RenderTemplate otherwise. Every render returns the output and
// additionally copies it to each supplied writer.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
