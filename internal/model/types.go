package model

import (
	"fmt"
	"strings"
)

// BasisKey is the name of the basis shape key on a scene object.
// The basis key defines the rest shape and is never overridable;
// only deformation keys layered on top of it can be managed.
const BasisKey = "Basis"

// OverrideMin and OverrideMax bound the stored value of a shape-key
// override. They mirror the authoring UI's slider range; individual
// keys may declare a narrower range, which the scene layer enforces
// again when the value is written.
const (
	OverrideMin = 0.0
	OverrideMax = 1.0
)

// ClampOverrideValue clamps v into the storable override range.
func ClampOverrideValue(v float64) float64 {
	if v < OverrideMin {
		return OverrideMin
	}
	if v > OverrideMax {
		return OverrideMax
	}
	return v
}

// ShapeKeyOverride is a (model, shape-key name, value) triple owned by
// exactly one Outfit. Applying the owning outfit sets the named key on
// the referenced model to Value; applying any other outfit resets it
// to 0.0.
type ShapeKeyOverride struct {
	// Model is the name of the managed scene object carrying the key.
	Model string `yaml:"model" json:"model"`

	// Key is the shape-key name on the model. Never the basis key.
	Key string `yaml:"shape_key" json:"shapeKey"`

	// Value is the target value applied when the owning outfit is
	// activated. Clamped to [OverrideMin, OverrideMax] at creation.
	Value float64 `yaml:"value" json:"value"`
}

// String returns a compact human-readable form used in list output,
// e.g. "Body.arm_key=1.00".
func (o ShapeKeyOverride) String() string {
	return fmt.Sprintf("%s.%s=%.2f", o.Model, o.Key, o.Value)
}

// NestedGroupState records the enabled flag of one nested visibility
// group under an outfit's group. The snapshot is captured when the
// outfit is deactivated and restored the next time it is activated,
// so toggling sub-groups inside an outfit survives outfit switches.
type NestedGroupState struct {
	Group   string `yaml:"group" json:"group"`
	Enabled bool   `yaml:"enabled" json:"enabled"`
}

// Outfit is a named bundle of one visibility group plus an ordered
// list of shape-key overrides. Activeness is applied state, not a
// stored attribute; the registry tracks only the last applied index.
type Outfit struct {
	// ID is a stable identifier assigned at creation. Unlike the list
	// index, it survives reordering and removal of other outfits, so
	// scripts can target an outfit reliably.
	ID string `yaml:"id" json:"id"`

	// Name is the display name. Defaults to the group's name.
	Name string `yaml:"name" json:"name"`

	// Group is the name of the visibility group this outfit shows.
	// The group itself lives in the scene and is never owned here.
	Group string `yaml:"group" json:"group"`

	// Overrides is the ordered list of shape-key overrides applied
	// when this outfit is activated.
	Overrides []ShapeKeyOverride `yaml:"overrides,omitempty" json:"overrides,omitempty"`

	// NestedStates is the saved visibility snapshot of the group's
	// nested sub-groups, maintained by apply. Not user-edited.
	NestedStates []NestedGroupState `yaml:"nested_states,omitempty" json:"nestedStates,omitempty"`
}

// ManagedModel is a reference to one scene object tracked for its
// shape keys. Managed models are shared across all outfits.
type ManagedModel struct {
	// Object is the scene object name. The object may be deleted from
	// the scene after being managed; such stale references are
	// tolerated at apply time and reported as warnings.
	Object string `yaml:"object" json:"object"`
}

// NoActiveOutfit is the State.ActiveOutfit value meaning no outfit
// has been applied in this scene.
const NoActiveOutfit = -1

// State is the complete registry state owned by the outfit manager.
// It is embedded in the scene document under the "outfit_manager" key
// and persisted by the document's native save, the same way a host
// application persists addon-owned data inside its scene file.
type State struct {
	// ActiveOutfit is the index of the last applied outfit, or
	// NoActiveOutfit. It is bookkeeping for the nested-visibility
	// snapshot, not a stored "active" attribute on the outfit.
	ActiveOutfit int `yaml:"active_outfit" json:"activeOutfit"`

	// Outfits is the ordered outfit list.
	Outfits []Outfit `yaml:"outfits,omitempty" json:"outfits,omitempty"`

	// Models is the ordered managed-model list, shared across outfits.
	Models []ManagedModel `yaml:"managed_models,omitempty" json:"managedModels,omitempty"`
}

// Normalize repairs the active index after loading or mutating state.
// Any index that does not refer to an existing outfit collapses to
// NoActiveOutfit. A freshly unmarshalled empty block therefore reads
// as "nothing active" rather than "outfit 0 active".
func (s *State) Normalize() {
	if s.ActiveOutfit < 0 || s.ActiveOutfit >= len(s.Outfits) {
		s.ActiveOutfit = NoActiveOutfit
	}
}

// GroupBound reports whether the named visibility group is already
// referenced by an outfit. One group backs at most one outfit.
func (s *State) GroupBound(group string) bool {
	for i := range s.Outfits {
		if s.Outfits[i].Group == group {
			return true
		}
	}
	return false
}

// ModelManaged reports whether the named object is already in the
// managed-model list.
func (s *State) ModelManaged(object string) bool {
	for i := range s.Models {
		if s.Models[i].Object == object {
			return true
		}
	}
	return false
}

// OutfitByID returns the index of the outfit with the given stable ID,
// or -1 if no outfit carries it.
func (s *State) OutfitByID(id string) int {
	for i := range s.Outfits {
		if s.Outfits[i].ID == id {
			return i
		}
	}
	return -1
}

// Warning describes a non-fatal problem encountered while applying an
// outfit, typically a reference that no longer resolves in the scene.
type Warning struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

// String returns the warning formatted for text output.
func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Kind, w.Message)
}

// ApplyReport summarises one Apply operation: what was touched and
// which references were skipped. Warnings never abort the apply; they
// exist so the CLI can surface stale references to the user.
type ApplyReport struct {
	// OutfitIndex and OutfitName identify the applied outfit.
	OutfitIndex int    `json:"outfitIndex"`
	OutfitName  string `json:"outfitName"`
	OutfitID    string `json:"outfitId"`

	// GroupsDisabled counts visibility groups of other outfits that
	// were successfully disabled.
	GroupsDisabled int `json:"groupsDisabled"`

	// KeysReset counts distinct shape keys reset to the 0.0 baseline.
	KeysReset int `json:"keysReset"`

	// KeysApplied counts override values written for the target outfit.
	KeysApplied int `json:"keysApplied"`

	// Warnings lists stale references skipped during the apply.
	Warnings []Warning `json:"warnings,omitempty"`
}

// Warn records a stale-reference warning on the report.
func (r *ApplyReport) Warn(format string, args ...interface{}) {
	r.Warnings = append(r.Warnings, Warning{
		Kind:    KindStaleReference,
		Message: fmt.Sprintf(format, args...),
	})
}

// Summary returns a one-line human-readable account of the apply,
// e.g. `applied outfit "Formal": 1 group disabled, 3 keys reset, 2 keys set`.
func (r *ApplyReport) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "applied outfit %q: ", r.OutfitName)
	fmt.Fprintf(&b, "%d %s disabled, ", r.GroupsDisabled, plural(r.GroupsDisabled, "group", "groups"))
	fmt.Fprintf(&b, "%d %s reset, ", r.KeysReset, plural(r.KeysReset, "key", "keys"))
	fmt.Fprintf(&b, "%d %s set", r.KeysApplied, plural(r.KeysApplied, "key", "keys"))
	if n := len(r.Warnings); n > 0 {
		fmt.Fprintf(&b, " (%d %s)", n, plural(n, "warning", "warnings"))
	}
	return b.String()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
