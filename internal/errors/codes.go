// Package errors provides centralized error code definitions and the
// structured Report type for the Tidal term core.
package errors

// Error code constants organized by layer.
const (
	// ============================================================================
	// ABT kernel invariant violations (ABT###)
	// ============================================================================

	// ABT001 indicates a shape outside the registered shape family
	ABT001 = "ABT001"

	// ABT002 indicates a childless shape produced children during mapping
	ABT002 = "ABT002"

	// ============================================================================
	// Term layer invariant violations (TRM###)
	// ============================================================================

	// TRM001 indicates a match case whose binder count differs from its
	// pattern arity
	TRM001 = "TRM001"

	// TRM002 indicates an application with no arguments
	TRM002 = "TRM002"

	// TRM003 indicates a lambda or let with no binders
	TRM003 = "TRM003"

	// TRM004 indicates a compiled value that cannot be decompiled
	TRM004 = "TRM004"

	// ============================================================================
	// Graph codec errors (GRF###)
	// ============================================================================

	// GRF001 indicates an unknown marker byte in the stream
	GRF001 = "GRF001"

	// GRF002 indicates a truncated stream
	GRF002 = "GRF002"

	// GRF003 indicates a back-reference to a position never decoded
	GRF003 = "GRF003"

	// GRF004 indicates a child iterator used after its frame was closed
	GRF004 = "GRF004"

	// GRF005 indicates an unknown reference-metadata sub-tag
	GRF005 = "GRF005"
)
