// Package model defines the domain types and value objects for the
// outfitctl CLI.
//
// This package contains pure data structures with no external
// dependencies. The registry state (outfits, managed models, active
// outfit index) is persisted inside the scene document's
// "outfit_manager" block, so the types here carry YAML tags but no
// I/O logic of their own.
//
// The package also defines the typed registry error kinds
// (invalid-selection, out-of-range, no-shape-keys, invalid-reference,
// stale-reference), exit codes (ExitCode), and a custom error type
// (CLIError) that carries exit codes for proper OS process exit
// handling.
package model
