// Package template defines the engine-agnostic template contract used by the
// contract renderer and the web form. Concrete engines live in subpackages.
package template
