package scene

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/AmarilloArts/outfit-manager/internal/model"
)

// ShapeKey is one shape key on a scene object: a named deformation
// with a current value and a declared value range.
type ShapeKey struct {
	Name  string  `yaml:"name"`
	Value float64 `yaml:"value"`

	// Min and Max bound the key's value. When both are zero (the
	// common case in hand-written scene files) the conventional
	// [0, 1] range applies.
	Min float64 `yaml:"min,omitempty"`
	Max float64 `yaml:"max,omitempty"`
}

// Range returns the effective value range of the key.
func (k *ShapeKey) Range() (lo, hi float64) {
	if k.Max <= k.Min {
		return 0, 1
	}
	return k.Min, k.Max
}

// Clamp limits v to the key's effective range.
func (k *ShapeKey) Clamp(v float64) float64 {
	lo, hi := k.Range()
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Object is a scene object that may carry shape keys.
type Object struct {
	Name      string     `yaml:"name"`
	ShapeKeys []ShapeKey `yaml:"shape_keys,omitempty"`
}

// Key returns the shape key with the given name, or nil.
func (o *Object) Key(name string) *ShapeKey {
	for i := range o.ShapeKeys {
		if o.ShapeKeys[i].Name == name {
			return &o.ShapeKeys[i]
		}
	}
	return nil
}

// Group is a named visibility group. Groups nest: disabling a parent
// hides everything under it, while the nested flags remember how the
// sub-groups were configured.
type Group struct {
	Name    string  `yaml:"name"`
	Enabled bool    `yaml:"enabled"`
	Groups  []Group `yaml:"groups,omitempty"`
}

// Document is the full scene file: the externally-owned scene graph
// (groups, objects) plus the outfit-manager state block that this tool
// owns and the host save mechanism persists alongside everything else.
type Document struct {
	Groups  []Group  `yaml:"groups,omitempty"`
	Objects []Object `yaml:"objects,omitempty"`

	// Manager is the addon-owned registry state.
	Manager model.State `yaml:"outfit_manager"`

	// path is where the document was loaded from; Save writes back here.
	path string
}

// Load reads and parses a scene document from disk.
//
// Returns a CLIError with ExitSceneNotFound if the file does not
// exist, since every command needs the scene to do anything useful.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, model.WrapCLIError(
				model.ExitSceneNotFound,
				fmt.Sprintf("scene file not found: %s", path),
				err,
			)
		}
		return nil, fmt.Errorf("failed to read scene file %s: %w", path, err)
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse scene file %s: %w", path, err)
	}
	doc.path = path
	return doc, nil
}

// Parse decodes a scene document from raw YAML bytes. Exposed
// separately from Load so tests can build documents from literals.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	// A scene written before this tool ran, or with an empty
	// outfit_manager block, must read as "no outfit active".
	doc.Manager.Normalize()
	return &doc, nil
}

// Path returns the file path the document was loaded from. Empty for
// documents built in memory.
func (d *Document) Path() string {
	return d.path
}

// Save writes the whole document back to the file it was loaded from.
// This is the host-native persistence path: outfit-manager state rides
// along with the rest of the scene.
func (d *Document) Save() error {
	if d.path == "" {
		return fmt.Errorf("scene document has no file path to save to")
	}
	return d.SaveTo(d.path)
}

// SaveTo writes the document to the given path.
func (d *Document) SaveTo(path string) error {
	data, err := yaml.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to encode scene document: %w", err)
	}

	// 0644: owner read/write, group/other read. Scene files are plain
	// project assets, not secrets.
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write scene file %s: %w", path, err)
	}
	return nil
}

// findGroup resolves a group name anywhere in the nested group tree.
// Depth-first, first match wins, mirroring how a host outliner
// resolves a collection by walking its layer tree.
func findGroup(groups []Group, name string) *Group {
	for i := range groups {
		if groups[i].Name == name {
			return &groups[i]
		}
		if g := findGroup(groups[i].Groups, name); g != nil {
			return g
		}
	}
	return nil
}

// GroupExists reports whether a visibility group with the given name
// is present anywhere in the scene.
func (d *Document) GroupExists(name string) bool {
	return findGroup(d.Groups, name) != nil
}

// GroupNames returns the names of all groups in the scene, nested
// ones included, in depth-first order.
func (d *Document) GroupNames() []string {
	var names []string
	var walk func(groups []Group)
	walk = func(groups []Group) {
		for i := range groups {
			names = append(names, groups[i].Name)
			walk(groups[i].Groups)
		}
	}
	walk(d.Groups)
	return names
}

// GroupEnabled returns the enabled flag of the named group. The second
// return value reports whether the group resolved.
func (d *Document) GroupEnabled(name string) (bool, bool) {
	g := findGroup(d.Groups, name)
	if g == nil {
		return false, false
	}
	return g.Enabled, true
}

// SetGroupEnabled sets the enabled flag of the named group. Returns
// false when the group does not resolve, leaving the scene untouched.
func (d *Document) SetGroupEnabled(name string, enabled bool) bool {
	g := findGroup(d.Groups, name)
	if g == nil {
		return false
	}
	g.Enabled = enabled
	return true
}

// NestedGroups returns the names of all groups nested under the named
// group, recursively, in depth-first order. Returns nil when the group
// does not resolve or has no children.
func (d *Document) NestedGroups(name string) []string {
	g := findGroup(d.Groups, name)
	if g == nil {
		return nil
	}

	var names []string
	var walk func(groups []Group)
	walk = func(groups []Group) {
		for i := range groups {
			names = append(names, groups[i].Name)
			walk(groups[i].Groups)
		}
	}
	walk(g.Groups)
	return names
}

// findObject resolves an object by name.
func (d *Document) findObject(name string) *Object {
	for i := range d.Objects {
		if d.Objects[i].Name == name {
			return &d.Objects[i]
		}
	}
	return nil
}

// ObjectExists reports whether the named object is in the scene.
func (d *Document) ObjectExists(name string) bool {
	return d.findObject(name) != nil
}

// ShapeKeyNames returns the names of all shape keys on the named
// object, basis key included, in declaration order. The second return
// value reports whether the object resolved.
func (d *Document) ShapeKeyNames(object string) ([]string, bool) {
	o := d.findObject(object)
	if o == nil {
		return nil, false
	}
	names := make([]string, 0, len(o.ShapeKeys))
	for i := range o.ShapeKeys {
		names = append(names, o.ShapeKeys[i].Name)
	}
	return names, true
}

// HasShapeKey reports whether the named object carries the given key.
func (d *Document) HasShapeKey(object, key string) bool {
	o := d.findObject(object)
	return o != nil && o.Key(key) != nil
}

// ShapeKeyValue returns the current value of a shape key. The second
// return value reports whether both the object and the key resolved.
func (d *Document) ShapeKeyValue(object, key string) (float64, bool) {
	o := d.findObject(object)
	if o == nil {
		return 0, false
	}
	k := o.Key(key)
	if k == nil {
		return 0, false
	}
	return k.Value, true
}

// SetShapeKeyValue writes a shape key's value, clamped to the key's
// declared range. Returns false when the object or key does not
// resolve, leaving the scene untouched.
func (d *Document) SetShapeKeyValue(object, key string, value float64) bool {
	o := d.findObject(object)
	if o == nil {
		return false
	}
	k := o.Key(key)
	if k == nil {
		return false
	}
	k.Value = k.Clamp(value)
	return true
}
