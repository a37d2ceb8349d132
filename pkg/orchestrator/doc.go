// Package orchestrator wires the values → parameters → contract → file
// pipeline behind a single entry point shared by the CLI and the facade.
package orchestrator
