package scene

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/midgard-bbox/pkg/math"
)

// Errors returned by LoadScene.
var (
	ErrUnknownPrimitive = errors.New("scene: unknown mesh primitive")
	ErrUnknownNode      = errors.New("scene: unknown node")
	ErrDuplicateNode    = errors.New("scene: duplicate node name")
)

// Scene is a loaded object tree plus its animations.
type Scene struct {
	Roots     []*Node
	Animators []*Animator

	byName map[string]*Node
}

// Find returns the node with the given name, or nil.
func (s *Scene) Find(name string) *Node {
	return s.byName[name]
}

// Objects returns the tracked-object list: the named nodes in the given
// order, or every root when no names are given.
func (s *Scene) Objects(names ...string) ([]Object, error) {
	if len(names) == 0 {
		out := make([]Object, len(s.Roots))
		for i, r := range s.Roots {
			out[i] = r
		}
		return out, nil
	}
	out := make([]Object, 0, len(names))
	for _, name := range names {
		n := s.Find(name)
		if n == nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownNode, name)
		}
		out = append(out, n)
	}
	return out, nil
}

// Update advances every animator; the scene can be registered directly as
// an update phase.
func (s *Scene) Update(dt float64) {
	for _, a := range s.Animators {
		a.Update(dt)
	}
}

// sceneFile is the YAML layout of a scene description.
type sceneFile struct {
	Objects []nodeFile `yaml:"objects"`
}

type nodeFile struct {
	Name      string         `yaml:"name"`
	Position  []float32      `yaml:"position"`
	Rotation  []float32      `yaml:"rotation"` // Euler degrees
	Scale     []float32      `yaml:"scale"`
	Mesh      *meshFile      `yaml:"mesh"`
	Skin      *skinFile      `yaml:"skin"`
	Animation *animationFile `yaml:"animation"`
	Children  []nodeFile     `yaml:"children"`
}

type meshFile struct {
	Primitive string      `yaml:"primitive"` // cube, quad, points
	Size      []float32   `yaml:"size"`
	Vertices  [][]float32 `yaml:"vertices"`
}

type skinFile struct {
	Vertices [][]float32     `yaml:"vertices"`
	Bones    []string        `yaml:"bones"`
	Weights  []boneWeightRow `yaml:"weights"`
}

type boneWeightRow struct {
	Bones   []int     `yaml:"bones"`
	Weights []float32 `yaml:"weights"`
}

type animationFile struct {
	Length   float32   `yaml:"length"`
	Loop     bool      `yaml:"loop"`
	Speed    float32   `yaml:"speed"`
	Position []keyFile `yaml:"position"`
	Rotation []keyFile `yaml:"rotation"` // Euler degrees
	Scale    []keyFile `yaml:"scale"`
}

type keyFile struct {
	Time  float32   `yaml:"t"`
	Value []float32 `yaml:"v"`
}

// pendingSkin defers bone lookup until every node exists.
type pendingSkin struct {
	node *Node
	file *skinFile
}

// LoadScene parses a YAML scene description.
func LoadScene(data []byte) (*Scene, error) {
	var f sceneFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing scene: %w", err)
	}

	s := &Scene{byName: make(map[string]*Node)}
	var skins []pendingSkin
	for i := range f.Objects {
		n, err := s.build(&f.Objects[i], &skins)
		if err != nil {
			return nil, err
		}
		s.Roots = append(s.Roots, n)
	}

	for _, p := range skins {
		if err := s.attachSkin(p.node, p.file); err != nil {
			return nil, fmt.Errorf("node %q: %w", p.node.Name, err)
		}
	}
	for _, a := range s.Animators {
		a.Apply()
	}
	return s, nil
}

func (s *Scene) build(nf *nodeFile, skins *[]pendingSkin) (*Node, error) {
	if nf.Name == "" {
		nf.Name = fmt.Sprintf("node%d", len(s.byName))
	}
	if _, dup := s.byName[nf.Name]; dup {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateNode, nf.Name)
	}

	n := NewNode(nf.Name)
	s.byName[nf.Name] = n

	var err error
	if n.Transform.Position, err = vec3(nf.Position, math.Vec3{}); err != nil {
		return nil, fmt.Errorf("node %q position: %w", nf.Name, err)
	}
	euler, err := vec3(nf.Rotation, math.Vec3{})
	if err != nil {
		return nil, fmt.Errorf("node %q rotation: %w", nf.Name, err)
	}
	n.Transform.Rotation = math.QuatFromEuler(euler)
	if n.Transform.Scale, err = vec3(nf.Scale, math.One); err != nil {
		return nil, fmt.Errorf("node %q scale: %w", nf.Name, err)
	}

	if nf.Mesh != nil {
		verts, err := meshVertices(nf.Mesh)
		if err != nil {
			return nil, fmt.Errorf("node %q mesh: %w", nf.Name, err)
		}
		n.AddMesh(verts)
	}
	if nf.Skin != nil {
		*skins = append(*skins, pendingSkin{node: n, file: nf.Skin})
	}
	if nf.Animation != nil {
		a, err := buildAnimator(n, nf.Animation)
		if err != nil {
			return nil, fmt.Errorf("node %q animation: %w", nf.Name, err)
		}
		s.Animators = append(s.Animators, a)
	}

	for i := range nf.Children {
		c, err := s.build(&nf.Children[i], skins)
		if err != nil {
			return nil, err
		}
		if err := n.AddChild(c); err != nil {
			return nil, fmt.Errorf("node %q: %w", nf.Name, err)
		}
	}
	return n, nil
}

func (s *Scene) attachSkin(n *Node, sf *skinFile) error {
	verts, err := vec3List(sf.Vertices)
	if err != nil {
		return fmt.Errorf("skin vertices: %w", err)
	}
	skin := &SkinnedSurface{Transform: n.Transform, Vertices: verts}
	for _, name := range sf.Bones {
		b := s.Find(name)
		if b == nil {
			return fmt.Errorf("skin bone: %w: %q", ErrUnknownNode, name)
		}
		skin.Bones = append(skin.Bones, b.Transform)
	}
	for i, row := range sf.Weights {
		if len(row.Bones) != len(row.Weights) || len(row.Bones) > 4 {
			return fmt.Errorf("skin weight %d: want up to 4 matching bones/weights, got %d/%d",
				i, len(row.Bones), len(row.Weights))
		}
		var w BoneWeight
		for k := range row.Bones {
			w.Index[k] = row.Bones[k]
			w.Weight[k] = row.Weights[k]
		}
		skin.Weights = append(skin.Weights, w)
	}
	// Animations have not run yet, so this is the authored pose.
	skin.ResetBindPoses()
	n.AddSkin(skin)
	return nil
}

func meshVertices(mf *meshFile) ([]math.Vec3, error) {
	switch mf.Primitive {
	case "cube":
		size, err := vec3(mf.Size, math.One)
		if err != nil {
			return nil, err
		}
		return Cube(size), nil
	case "quad":
		size, err := vec3(mf.Size, math.One)
		if err != nil {
			return nil, err
		}
		return Quad(size.X, size.Y), nil
	case "points", "":
		return vec3List(mf.Vertices)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPrimitive, mf.Primitive)
	}
}

func buildAnimator(n *Node, af *animationFile) (*Animator, error) {
	tr := Track{Target: n.Transform}
	for _, k := range af.Position {
		v, err := vec3(k.Value, math.Vec3{})
		if err != nil {
			return nil, fmt.Errorf("position key at %v: %w", k.Time, err)
		}
		tr.Position = append(tr.Position, VecKey{Time: k.Time, Value: v})
	}
	for _, k := range af.Rotation {
		v, err := vec3(k.Value, math.Vec3{})
		if err != nil {
			return nil, fmt.Errorf("rotation key at %v: %w", k.Time, err)
		}
		tr.Rotation = append(tr.Rotation, RotKey{Time: k.Time, Value: math.QuatFromEuler(v)})
	}
	for _, k := range af.Scale {
		v, err := vec3(k.Value, math.One)
		if err != nil {
			return nil, fmt.Errorf("scale key at %v: %w", k.Time, err)
		}
		tr.Scale = append(tr.Scale, VecKey{Time: k.Time, Value: v})
	}
	return &Animator{
		Name:   n.Name,
		Tracks: []Track{tr},
		Length: af.Length,
		Loop:   af.Loop,
		Speed:  af.Speed,
	}, nil
}

func vec3(v []float32, def math.Vec3) (math.Vec3, error) {
	switch len(v) {
	case 0:
		return def, nil
	case 1:
		return math.Vec3{X: v[0], Y: v[0], Z: v[0]}, nil
	case 3:
		return math.Vec3{X: v[0], Y: v[1], Z: v[2]}, nil
	default:
		return math.Vec3{}, fmt.Errorf("want 1 or 3 components, got %d", len(v))
	}
}

func vec3List(rows [][]float32) ([]math.Vec3, error) {
	out := make([]math.Vec3, 0, len(rows))
	for i, r := range rows {
		if len(r) != 3 {
			return nil, fmt.Errorf("vertex %d: want 3 components, got %d", i, len(r))
		}
		out = append(out, math.Vec3{X: r[0], Y: r[1], Z: r[2]})
	}
	return out, nil
}
