package wizard

import (
	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-xcmgen/pkg/contract"
	"github.com/goliatone/go-xcmgen/pkg/model"
	"github.com/goliatone/go-xcmgen/pkg/output"
	"github.com/goliatone/go-xcmgen/pkg/params"
	"github.com/goliatone/go-xcmgen/pkg/style"
)

// Option configures a Session.
type Option func(*Session)

// WithPromptDriver overrides the prompt driver used by the session.
func WithPromptDriver(driver PromptDriver) Option {
	return func(s *Session) {
		if driver != nil {
			s.driver = driver
		}
	}
}

// WithForm uses form instead of loading the embedded schema.
func WithForm(form model.FormModel) Option {
	return func(s *Session) {
		s.form = &form
	}
}

// WithDefaults sets the values offered when the user presses Enter and used
// as fallbacks for empty text.
func WithDefaults(p params.GenerationParameters) Option {
	return func(s *Session) {
		s.defaults = p
	}
}

// WithRenderer overrides the contract renderer.
func WithRenderer(r *contract.Renderer) Option {
	return func(s *Session) {
		if r != nil {
			s.renderer = r
		}
	}
}

// WithOutput configures where the contract is written.
func WithOutput(w output.Writer) Option {
	return func(s *Session) {
		s.writer = w
	}
}

// WithPalette applies console styling to session messages.
func WithPalette(p style.Palette) Option {
	return func(s *Session) {
		s.palette = p
	}
}

// WithLogger routes diagnostic logging to logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}
