// Package model defines the typed field model both front ends consume. A
// FormModel is derived from the embedded OpenAPI parameter schema (see
// pkg/schema) so the wizard prompts and the web form inputs share labels,
// defaults, enum options and validation rules. Validation rules keep their
// thresholds as strings so snapshots stay deterministic.
package model
