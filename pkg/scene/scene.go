// Package scene provides the object and evaluation layer: named
// objects carrying mesh, curve or solid payloads, a modifier stack,
// and a dependency graph that resolves objects to evaluated mesh
// snapshots.
package scene

import (
	"fmt"

	"github.com/aurifex/aurifex/pkg/bmesh"
	"github.com/aurifex/aurifex/pkg/gem"
	"github.com/aurifex/aurifex/pkg/kernel"
	"github.com/aurifex/aurifex/pkg/vmath"
)

// Scene is the registry of objects for one design session.
type Scene struct {
	objects []*Object
	names   map[string]*Object
	inMode  []*Object
	kernel  kernel.Kernel
}

// New creates an empty scene backed by the given solid kernel.
func New(k kernel.Kernel) *Scene {
	return &Scene{
		names:  make(map[string]*Object),
		kernel: k,
	}
}

// Add registers an object. Object names are unique within a scene.
func (s *Scene) Add(ob *Object) error {
	if ob.Name == "" {
		return fmt.Errorf("scene: object needs a name")
	}
	if _, exists := s.names[ob.Name]; exists {
		return fmt.Errorf("scene: object named %q already exists", ob.Name)
	}
	s.objects = append(s.objects, ob)
	s.names[ob.Name] = ob
	return nil
}

// Objects returns all objects in insertion order.
func (s *Scene) Objects() []*Object {
	return s.objects
}

// Lookup returns the object with the given name, or nil.
func (s *Scene) Lookup(name string) *Object {
	return s.names[name]
}

// EnterEditMode puts a mesh object into the interactive edit session.
func (s *Scene) EnterEditMode(ob *Object) error {
	if s.names[ob.Name] != ob {
		return fmt.Errorf("scene: object %q is not part of this scene", ob.Name)
	}
	if _, ok := ob.Data.(MeshData); !ok {
		return fmt.Errorf("scene: only mesh objects can enter edit mode")
	}
	for _, o := range s.inMode {
		if o == ob {
			return nil
		}
	}
	s.inMode = append(s.inMode, ob)
	return nil
}

// ExitEditMode removes an object from the edit session.
func (s *Scene) ExitEditMode(ob *Object) {
	for i, o := range s.inMode {
		if o == ob {
			s.inMode = append(s.inMode[:i], s.inMode[i+1:]...)
			return
		}
	}
}

// ObjectsInMode returns the objects currently being edited, in the
// order they entered edit mode.
func (s *Scene) ObjectsInMode() []*Object {
	return s.inMode
}

// EvaluatedDepsgraphGet returns a dependency graph for resolving
// evaluated geometry of this scene's objects.
func (s *Scene) EvaluatedDepsgraphGet() *Depsgraph {
	return &Depsgraph{
		scene: s,
		cache: make(map[*Object]*cachedEval),
	}
}

// Object is one named scene element.
type Object struct {
	Name        string
	MatrixWorld vmath.Mat4
	Data        ObjectData
	Modifiers   []Modifier

	editVersion uint64
}

// NewObject creates an object with an identity world transform.
func NewObject(name string, data ObjectData) *Object {
	return &Object{
		Name:        name,
		MatrixWorld: vmath.Identity(),
		Data:        data,
	}
}

// UpdateFromEditMode commits pending edit-session changes so the next
// evaluation sees the current mesh contents.
func (ob *Object) UpdateFromEditMode() {
	ob.editVersion++
}

// ObjectData is the interface for kind-specific object payloads.
type ObjectData interface {
	objectData() // marker method restricting implementations to this package
}

// MeshData wraps an editable mesh.
type MeshData struct {
	BM *bmesh.Mesh
}

func (MeshData) objectData() {}

// GemData describes a parametric gemstone.
type GemData struct {
	Spec gem.Spec
}

func (GemData) objectData() {}

// ProngData describes a single prong post.
type ProngData struct {
	Diameter float64
	Length   float64
}

func (ProngData) objectData() {}

// CutterData describes a gem seat cutter.
type CutterData struct {
	Spec      gem.Spec
	HoleDepth float64
}

func (CutterData) objectData() {}
