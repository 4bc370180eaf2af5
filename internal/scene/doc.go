// Package scene implements the scene document that outfitctl operates
// on. The document is the standalone rendition of a host application's
// scene graph: a YAML file holding nested visibility groups, objects
// with shape keys, and the outfit-manager block owned by this tool.
//
// This package handles:
//   - Loading and saving the document (gopkg.in/yaml.v3)
//   - Recursive group resolution over the nested group tree
//   - Enable/disable flag mutation on groups
//   - Shape-key enumeration and clamped value get/set on objects
//
// Document satisfies the registry.Host capability interface, so the
// registry core stays independent of file formats and can be tested
// against an in-memory document.
package scene
