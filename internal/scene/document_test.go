package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AmarilloArts/outfit-manager/internal/model"
)

// testSceneYAML is a small scene with nested groups and one object
// carrying shape keys, used across the tests in this file.
const testSceneYAML = `
groups:
  - name: Casual
    enabled: true
    groups:
      - name: CasualShoes
        enabled: true
      - name: CasualAccessories
        enabled: false
        groups:
          - name: CasualHat
            enabled: true
  - name: Formal
    enabled: false
objects:
  - name: Body
    shape_keys:
      - name: Basis
        value: 0.0
      - name: arm_key
        value: 0.3
      - name: collar_key
        value: 0.0
        min: 0.0
        max: 2.0
`

func parseTestScene(t *testing.T) *Document {
	t.Helper()
	doc, err := Parse([]byte(testSceneYAML))
	require.NoError(t, err)
	return doc
}

// TestParse verifies basic decoding of groups, objects, and the
// normalization of a missing outfit_manager block to "nothing active".
func TestParse(t *testing.T) {
	doc := parseTestScene(t)

	assert.Len(t, doc.Groups, 2)
	assert.Len(t, doc.Objects, 1)
	assert.Equal(t, model.NoActiveOutfit, doc.Manager.ActiveOutfit)
}

// TestGroupResolution verifies recursive lookup over the nested group
// tree, including deeply nested groups.
func TestGroupResolution(t *testing.T) {
	doc := parseTestScene(t)

	assert.True(t, doc.GroupExists("Casual"))
	assert.True(t, doc.GroupExists("CasualShoes"))
	assert.True(t, doc.GroupExists("CasualHat")) // two levels down
	assert.False(t, doc.GroupExists("Beachwear"))

	enabled, ok := doc.GroupEnabled("CasualAccessories")
	require.True(t, ok)
	assert.False(t, enabled)

	_, ok = doc.GroupEnabled("Beachwear")
	assert.False(t, ok)
}

// TestGroupNames verifies the depth-first enumeration used for
// suggestion lookups.
func TestGroupNames(t *testing.T) {
	doc := parseTestScene(t)

	assert.Equal(t,
		[]string{"Casual", "CasualShoes", "CasualAccessories", "CasualHat", "Formal"},
		doc.GroupNames())
}

// TestSetGroupEnabled verifies flag mutation and the unresolved case.
func TestSetGroupEnabled(t *testing.T) {
	doc := parseTestScene(t)

	require.True(t, doc.SetGroupEnabled("Formal", true))
	enabled, ok := doc.GroupEnabled("Formal")
	require.True(t, ok)
	assert.True(t, enabled)

	// Nested groups are reachable for mutation too.
	require.True(t, doc.SetGroupEnabled("CasualHat", false))
	enabled, _ = doc.GroupEnabled("CasualHat")
	assert.False(t, enabled)

	assert.False(t, doc.SetGroupEnabled("Beachwear", true))
}

// TestNestedGroups verifies the recursive descendant enumeration used
// by the nested-visibility snapshot.
func TestNestedGroups(t *testing.T) {
	doc := parseTestScene(t)

	assert.Equal(t,
		[]string{"CasualShoes", "CasualAccessories", "CasualHat"},
		doc.NestedGroups("Casual"))
	assert.Empty(t, doc.NestedGroups("Formal"))
	assert.Nil(t, doc.NestedGroups("Beachwear"))
}

// TestShapeKeyAccess verifies enumeration and value lookup on objects.
func TestShapeKeyAccess(t *testing.T) {
	doc := parseTestScene(t)

	names, ok := doc.ShapeKeyNames("Body")
	require.True(t, ok)
	assert.Equal(t, []string{"Basis", "arm_key", "collar_key"}, names)

	_, ok = doc.ShapeKeyNames("Hair")
	assert.False(t, ok)

	assert.True(t, doc.HasShapeKey("Body", "arm_key"))
	assert.False(t, doc.HasShapeKey("Body", "leg_key"))
	assert.False(t, doc.HasShapeKey("Hair", "arm_key"))

	v, ok := doc.ShapeKeyValue("Body", "arm_key")
	require.True(t, ok)
	assert.InDelta(t, 0.3, v, 1e-9)
}

// TestSetShapeKeyValue verifies clamped writes, including a key with
// a declared range wider than the default [0, 1].
func TestSetShapeKeyValue(t *testing.T) {
	doc := parseTestScene(t)

	// Default range clamps to [0, 1].
	require.True(t, doc.SetShapeKeyValue("Body", "arm_key", 1.5))
	v, _ := doc.ShapeKeyValue("Body", "arm_key")
	assert.Equal(t, 1.0, v)

	require.True(t, doc.SetShapeKeyValue("Body", "arm_key", -0.5))
	v, _ = doc.ShapeKeyValue("Body", "arm_key")
	assert.Equal(t, 0.0, v)

	// Declared [0, 2] range permits values above 1.
	require.True(t, doc.SetShapeKeyValue("Body", "collar_key", 1.5))
	v, _ = doc.ShapeKeyValue("Body", "collar_key")
	assert.Equal(t, 1.5, v)

	// Unresolved references leave the scene untouched.
	assert.False(t, doc.SetShapeKeyValue("Hair", "arm_key", 1))
	assert.False(t, doc.SetShapeKeyValue("Body", "leg_key", 1))
}

// TestShapeKey_Range verifies the zero-range fallback to [0, 1].
func TestShapeKey_Range(t *testing.T) {
	k := ShapeKey{Name: "k"}
	lo, hi := k.Range()
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 1.0, hi)

	k = ShapeKey{Name: "k", Min: -1, Max: 1}
	lo, hi = k.Range()
	assert.Equal(t, -1.0, lo)
	assert.Equal(t, 1.0, hi)
}

// TestLoadSaveRoundTrip verifies that manager state written by Save is
// read back by Load, which is the persistence path every CLI command
// relies on.
func TestLoadSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testSceneYAML), 0o644))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, doc.Path())

	// Mutate scene state and manager state, then save.
	require.True(t, doc.SetGroupEnabled("Formal", true))
	doc.Manager.Outfits = append(doc.Manager.Outfits, model.Outfit{
		ID:    "id-1",
		Name:  "Casual",
		Group: "Casual",
		Overrides: []model.ShapeKeyOverride{
			{Model: "Body", Key: "arm_key", Value: 1},
		},
	})
	doc.Manager.ActiveOutfit = 0
	require.NoError(t, doc.Save())

	reloaded, err := Load(path)
	require.NoError(t, err)

	enabled, ok := reloaded.GroupEnabled("Formal")
	require.True(t, ok)
	assert.True(t, enabled)

	require.Len(t, reloaded.Manager.Outfits, 1)
	assert.Equal(t, "id-1", reloaded.Manager.Outfits[0].ID)
	assert.Equal(t, "Casual", reloaded.Manager.Outfits[0].Group)
	require.Len(t, reloaded.Manager.Outfits[0].Overrides, 1)
	assert.Equal(t, 1.0, reloaded.Manager.Outfits[0].Overrides[0].Value)
	assert.Equal(t, 0, reloaded.Manager.ActiveOutfit)
}

// TestLoad_NotFound verifies the dedicated exit code for a missing
// scene file.
func TestLoad_NotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, model.ExitSceneNotFound, model.ExitCodeFor(err))
}

// TestLoad_Malformed verifies that broken YAML surfaces as a parse
// error rather than a not-found error.
func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte("groups: [::"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Equal(t, model.ExitGeneralError, model.ExitCodeFor(err))
}
