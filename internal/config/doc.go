// Package config handles the optional outfitctl.jsonc tool
// configuration.
//
// The file is JSONC (JSON with Comments), so this package uses
// github.com/tidwall/jsonc to strip comments before parsing with the
// standard encoding/json library. A missing file is not an error; the
// tool runs on defaults.
package config
