package registry

import (
	"github.com/google/uuid"

	"github.com/AmarilloArts/outfit-manager/internal/model"
)

// Host is the capability set the registry needs from the scene graph.
// It mirrors what a host application exposes to a plugin: group lookup
// and enable/disable, and shape-key enumeration and value access.
// scene.Document is the production implementation.
//
// Mutating methods report resolution with a bool instead of an error:
// an unresolved reference during Apply is a warning, not a failure,
// and the caller decides which.
type Host interface {
	// GroupExists reports whether the named visibility group resolves.
	GroupExists(name string) bool

	// GroupNames enumerates all group names in the scene. Used only
	// for suggestions in error messages.
	GroupNames() []string

	// GroupEnabled returns a group's enabled flag; the second result
	// is false when the group does not resolve.
	GroupEnabled(name string) (enabled, ok bool)

	// SetGroupEnabled writes a group's enabled flag. Returns false
	// when the group does not resolve.
	SetGroupEnabled(name string, enabled bool) bool

	// NestedGroups returns the names of all groups nested under the
	// named group, recursively.
	NestedGroups(name string) []string

	// ObjectExists reports whether the named object resolves.
	ObjectExists(name string) bool

	// ShapeKeyNames enumerates an object's shape keys, basis included;
	// ok is false when the object does not resolve.
	ShapeKeyNames(object string) (names []string, ok bool)

	// HasShapeKey reports whether the object carries the named key.
	HasShapeKey(object, key string) bool

	// ShapeKeyValue reads a key's current value; ok is false when the
	// object or key does not resolve.
	ShapeKeyValue(object, key string) (value float64, ok bool)

	// SetShapeKeyValue writes a key's value (clamped by the scene to
	// the key's range). Returns false when the reference does not
	// resolve.
	SetShapeKeyValue(object, key string, value float64) bool
}

// Registry owns the outfit and managed-model lists and performs all
// mutations and the apply pass. It operates directly on a *model.State
// so the caller controls where the state lives and how it persists
// (in the scene document, for the CLI).
type Registry struct {
	state *model.State
	host  Host
}

// New creates a registry over the given state and scene host.
func New(state *model.State, host Host) *Registry {
	state.Normalize()
	return &Registry{state: state, host: host}
}

// Outfits returns the ordered outfit list. Callers must not mutate it.
func (r *Registry) Outfits() []model.Outfit {
	return r.state.Outfits
}

// Models returns the ordered managed-model list. Callers must not
// mutate it.
func (r *Registry) Models() []model.ManagedModel {
	return r.state.Models
}

// ActiveIndex returns the index of the last applied outfit, or
// model.NoActiveOutfit.
func (r *Registry) ActiveIndex() int {
	return r.state.ActiveOutfit
}

// AddOutfit appends a new outfit bound to the named visibility group.
// The name defaults to the group name when empty.
//
// Fails with invalid-selection when no group is named, the group does
// not resolve in the scene, or the group is already bound to an
// existing outfit (one group backs at most one outfit).
func (r *Registry) AddOutfit(group, name string) (*model.Outfit, error) {
	if group == "" {
		return nil, model.NewError(model.KindInvalidSelection,
			"no visibility group selected")
	}
	if !r.host.GroupExists(group) {
		msg := "visibility group %q not found in scene"
		if s := suggest(group, r.host.GroupNames()); s != "" {
			return nil, model.NewError(model.KindInvalidSelection,
				msg+" (did you mean %q?)", group, s)
		}
		return nil, model.NewError(model.KindInvalidSelection, msg, group)
	}
	if r.state.GroupBound(group) {
		return nil, model.NewError(model.KindInvalidSelection,
			"visibility group %q is already bound to an outfit", group)
	}

	if name == "" {
		name = group
	}

	r.state.Outfits = append(r.state.Outfits, model.Outfit{
		ID:    uuid.NewString(),
		Name:  name,
		Group: group,
	})
	return &r.state.Outfits[len(r.state.Outfits)-1], nil
}

// RemoveOutfit deletes the outfit at index together with all of its
// overrides. Fails with out-of-range on a bad index.
func (r *Registry) RemoveOutfit(index int) error {
	if err := r.checkOutfitIndex(index); err != nil {
		return err
	}

	r.state.Outfits = append(r.state.Outfits[:index], r.state.Outfits[index+1:]...)

	// Keep the active index pointing at the same outfit, or at nothing
	// if the active outfit itself was removed.
	switch {
	case r.state.ActiveOutfit == index:
		r.state.ActiveOutfit = model.NoActiveOutfit
	case r.state.ActiveOutfit > index:
		r.state.ActiveOutfit--
	}
	return nil
}

// MoveOutfit moves the outfit at index one position up (toward the
// front) or down. Moving past either end is a silent no-op, matching
// list-widget reordering behavior. Fails with out-of-range on a bad
// index.
func (r *Registry) MoveOutfit(index int, up bool) error {
	if err := r.checkOutfitIndex(index); err != nil {
		return err
	}

	target := index + 1
	if up {
		target = index - 1
	}
	if target < 0 || target >= len(r.state.Outfits) {
		return nil
	}

	outfits := r.state.Outfits
	outfits[index], outfits[target] = outfits[target], outfits[index]

	// The active marker follows the outfit it points at.
	switch r.state.ActiveOutfit {
	case index:
		r.state.ActiveOutfit = target
	case target:
		r.state.ActiveOutfit = index
	}
	return nil
}

// AddManagedModel appends the named object to the shared managed-model
// list.
//
// Fails with invalid-selection when no object is named, the object
// does not resolve, or it is already managed (deduplicated by
// reference). Fails with no-shape-keys when the object carries no
// shape keys beyond the basis key, since there would be nothing to
// override.
func (r *Registry) AddManagedModel(object string) (*model.ManagedModel, error) {
	if object == "" {
		return nil, model.NewError(model.KindInvalidSelection,
			"no object selected")
	}
	if !r.host.ObjectExists(object) {
		return nil, model.NewError(model.KindInvalidSelection,
			"object %q not found in scene", object)
	}
	if r.state.ModelManaged(object) {
		return nil, model.NewError(model.KindInvalidSelection,
			"object %q is already managed", object)
	}
	if len(overridableKeys(r.host, object)) == 0 {
		return nil, model.NewError(model.KindNoShapeKeys,
			"object %q has no shape keys to manage", object)
	}

	r.state.Models = append(r.state.Models, model.ManagedModel{Object: object})
	return &r.state.Models[len(r.state.Models)-1], nil
}

// RemoveManagedModel deletes the managed model at index. Fails with
// out-of-range on a bad index.
//
// By default overrides referencing the model are left in place and
// tolerated as stale at apply time. With cascade set, every override
// referencing the model is deleted from every outfit first.
func (r *Registry) RemoveManagedModel(index int, cascade bool) error {
	if index < 0 || index >= len(r.state.Models) {
		return model.NewError(model.KindOutOfRange,
			"managed model index %d out of range (have %d)", index, len(r.state.Models))
	}

	if cascade {
		object := r.state.Models[index].Object
		for i := range r.state.Outfits {
			o := &r.state.Outfits[i]
			kept := o.Overrides[:0]
			for _, ov := range o.Overrides {
				if ov.Model != object {
					kept = append(kept, ov)
				}
			}
			o.Overrides = kept
		}
	}

	r.state.Models = append(r.state.Models[:index], r.state.Models[index+1:]...)
	return nil
}

// AddOverride appends a shape-key override to the outfit at
// outfitIndex, referencing the managed model at modelIndex. The value
// is clamped to the storable range.
//
// Fails with out-of-range on a bad outfit index, and with
// invalid-reference on a bad model index, a model that no longer
// resolves, the basis key, or a key name not present on the model. On
// failure the outfit's override list is unchanged.
func (r *Registry) AddOverride(outfitIndex, modelIndex int, key string, value float64) (*model.ShapeKeyOverride, error) {
	if err := r.checkOutfitIndex(outfitIndex); err != nil {
		return nil, err
	}
	if modelIndex < 0 || modelIndex >= len(r.state.Models) {
		return nil, model.NewError(model.KindInvalidReference,
			"managed model index %d out of range (have %d)", modelIndex, len(r.state.Models))
	}

	object := r.state.Models[modelIndex].Object
	names, ok := r.host.ShapeKeyNames(object)
	if !ok {
		return nil, model.NewError(model.KindInvalidReference,
			"managed model %q no longer exists in scene", object)
	}
	if key == model.BasisKey {
		return nil, model.NewError(model.KindInvalidReference,
			"cannot override the basis shape key")
	}
	if !contains(names, key) {
		msg := "shape key %q not found on object %q"
		if s := suggest(key, names); s != "" && s != model.BasisKey {
			return nil, model.NewError(model.KindInvalidReference,
				msg+" (did you mean %q?)", key, object, s)
		}
		return nil, model.NewError(model.KindInvalidReference, msg, key, object)
	}

	o := &r.state.Outfits[outfitIndex]
	o.Overrides = append(o.Overrides, model.ShapeKeyOverride{
		Model: object,
		Key:   key,
		Value: model.ClampOverrideValue(value),
	})
	return &o.Overrides[len(o.Overrides)-1], nil
}

// RemoveOverride deletes one override from the outfit at outfitIndex.
// Fails with out-of-range when either index is bad.
func (r *Registry) RemoveOverride(outfitIndex, overrideIndex int) error {
	if err := r.checkOutfitIndex(outfitIndex); err != nil {
		return err
	}

	o := &r.state.Outfits[outfitIndex]
	if overrideIndex < 0 || overrideIndex >= len(o.Overrides) {
		return model.NewError(model.KindOutOfRange,
			"override index %d out of range (have %d)", overrideIndex, len(o.Overrides))
	}

	o.Overrides = append(o.Overrides[:overrideIndex], o.Overrides[overrideIndex+1:]...)
	return nil
}

// Apply activates the outfit at index:
//
//  1. Disable every other outfit's visibility group.
//  2. Reset to 0.0 every shape key named by any override anywhere in
//     the registry, establishing a clean baseline.
//  3. Enable the target outfit's group and restore its saved
//     nested-group visibility snapshot.
//  4. Set each of the target's override values.
//
// Before switching, the nested-group visibility of the previously
// active outfit is snapshotted so it can be restored the next time
// that outfit is applied.
//
// References that no longer resolve (groups, models, or keys deleted
// from the scene) are skipped and recorded as warnings on the report;
// the rest of the apply proceeds. Only a bad index is an error.
func (r *Registry) Apply(index int) (*model.ApplyReport, error) {
	if err := r.checkOutfitIndex(index); err != nil {
		return nil, err
	}

	target := &r.state.Outfits[index]
	report := &model.ApplyReport{
		OutfitIndex: index,
		OutfitName:  target.Name,
		OutfitID:    target.ID,
	}

	// Remember how the outgoing outfit's sub-groups were configured.
	if prev := r.state.ActiveOutfit; prev != model.NoActiveOutfit {
		r.snapshotNestedStates(&r.state.Outfits[prev])
	}

	// Step 1: hide everything that is not the target.
	for i := range r.state.Outfits {
		if i == index {
			continue
		}
		group := r.state.Outfits[i].Group
		if !r.host.SetGroupEnabled(group, false) {
			report.Warn("visibility group %q of outfit %q not found in scene",
				group, r.state.Outfits[i].Name)
			continue
		}
		report.GroupsDisabled++
	}

	// Step 2: clean baseline. Every key referenced by any override in
	// the registry goes back to 0.0, so values applied by a previous
	// outfit cannot leak through.
	type keyRef struct{ object, key string }
	seen := make(map[keyRef]bool)
	for i := range r.state.Outfits {
		for _, ov := range r.state.Outfits[i].Overrides {
			ref := keyRef{ov.Model, ov.Key}
			if seen[ref] {
				continue
			}
			seen[ref] = true

			if !r.host.SetShapeKeyValue(ov.Model, ov.Key, 0) {
				report.Warn("shape key %q on model %q not found in scene, skipping reset",
					ov.Key, ov.Model)
				continue
			}
			report.KeysReset++
		}
	}

	// Step 3: show the target and bring its sub-group layout back.
	if !r.host.SetGroupEnabled(target.Group, true) {
		report.Warn("visibility group %q of outfit %q not found in scene",
			target.Group, target.Name)
	} else {
		r.restoreNestedStates(target)
	}

	// Step 4: write the target's override values on top of the baseline.
	for _, ov := range target.Overrides {
		if !r.host.SetShapeKeyValue(ov.Model, ov.Key, ov.Value) {
			// Already warned during the baseline pass for this key.
			continue
		}
		report.KeysApplied++
	}

	r.state.ActiveOutfit = index
	return report, nil
}

// snapshotNestedStates records the enabled flag of every group nested
// under the outfit's group. Unresolvable groups are simply absent from
// the snapshot.
func (r *Registry) snapshotNestedStates(o *model.Outfit) {
	o.NestedStates = nil
	for _, name := range r.host.NestedGroups(o.Group) {
		if enabled, ok := r.host.GroupEnabled(name); ok {
			o.NestedStates = append(o.NestedStates, model.NestedGroupState{
				Group:   name,
				Enabled: enabled,
			})
		}
	}
}

// restoreNestedStates replays a previously captured snapshot. Groups
// deleted since the snapshot was taken no longer resolve and are
// skipped.
func (r *Registry) restoreNestedStates(o *model.Outfit) {
	for _, st := range o.NestedStates {
		r.host.SetGroupEnabled(st.Group, st.Enabled)
	}
}

// checkOutfitIndex validates an index into the outfit list.
func (r *Registry) checkOutfitIndex(index int) error {
	if index < 0 || index >= len(r.state.Outfits) {
		return model.NewError(model.KindOutOfRange,
			"outfit index %d out of range (have %d)", index, len(r.state.Outfits))
	}
	return nil
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
