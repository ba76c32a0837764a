package scenery

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/taigrr/gravel3d/pkg/math3d"
	"github.com/taigrr/gravel3d/pkg/models"
	"github.com/taigrr/gravel3d/pkg/render"
	"github.com/taigrr/gravel3d/pkg/shading"
)

var (
	// ErrUnknownKind is returned for scene objects of an unsupported kind.
	ErrUnknownKind = errors.New("unknown object kind")
	// ErrUnknownColor is returned for color names not in the palette.
	ErrUnknownColor = errors.New("unknown color")
	// ErrPlanePosition is returned for planes given a position; a plane is
	// placed by its height alone.
	ErrPlanePosition = errors.New("plane takes height, not position")
)

// Palette maps the color names accepted in scene files.
var Palette = map[string]color.RGBA{
	"black":       render.ColorBlack,
	"white":       render.ColorWhite,
	"red":         render.ColorRed,
	"green":       render.ColorGreen,
	"blue":        render.ColorBlue,
	"yellow":      render.ColorYellow,
	"orange":      render.ColorOrange,
	"purple":      render.ColorPurple,
	"gray":        render.ColorGray,
	"skyblue":     render.ColorSkyBlue,
	"yellowgreen": render.ColorYellowGreen,
}

// File is the YAML layout of a scene file.
type File struct {
	Sky     *Color       `yaml:"sky"`
	Camera  CameraSpec   `yaml:"camera"`
	Objects []ObjectSpec `yaml:"objects"`
}

// CameraSpec places the camera.
type CameraSpec struct {
	Position Vector `yaml:"position"`
	Rotation Vector `yaml:"rotation"`
}

// ShaderSpec selects a shader. Weight defaults to 1.
type ShaderSpec struct {
	Weight *float64 `yaml:"weight"`
}

// FaceSpec is one polygon of a solid or sun.
type FaceSpec struct {
	Indices []int       `yaml:"indices"`
	Color   *Color      `yaml:"color"`
	Shader  *ShaderSpec `yaml:"shader"`
}

// ObjectSpec describes one scene member. Which fields apply depends on Kind.
type ObjectSpec struct {
	Kind     string      `yaml:"kind"`
	Name     string      `yaml:"name"`
	Position Vector      `yaml:"position"`
	Rotation Vector      `yaml:"rotation"`
	Color    *Color      `yaml:"color"`
	Shader   *ShaderSpec `yaml:"shader"`

	// cube
	Size   float64          `yaml:"size"`
	Colors map[string]Color `yaml:"colors"`

	// plane
	Normal *Vector `yaml:"normal"`
	Height float64 `yaml:"height"`

	// solid, sun
	Vertices []Vector   `yaml:"vertices"`
	Faces    []FaceSpec `yaml:"faces"`

	// sun
	Depth          float64       `yaml:"depth"`
	DayLength      time.Duration `yaml:"day_length"`
	LightDirection *Vector       `yaml:"light_direction"`
	LightColor     *Color        `yaml:"light_color"`

	// mesh
	Path    string   `yaml:"path"`
	FitSize *float64 `yaml:"fit_size"`
}

// Vector is an [x, y, z] triple in a scene file.
type Vector [3]float64

// Vec3 converts v.
func (v Vector) Vec3() math3d.Vec3 {
	return math3d.V3(v[0], v[1], v[2])
}

func vertices(vs []Vector) []math3d.Vec3 {
	out := make([]math3d.Vec3, len(vs))
	for i, v := range vs {
		out[i] = v.Vec3()
	}
	return out
}

// Color is a color in a scene file: either a palette name or an
// [r, g, b] or [r, g, b, a] sequence.
type Color color.RGBA

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		rgba, ok := Palette[strings.ToLower(node.Value)]
		if !ok {
			return fmt.Errorf("line %d: %w: %q", node.Line, ErrUnknownColor, node.Value)
		}
		*c = Color(rgba)
		return nil
	case yaml.SequenceNode:
		var ch []uint8
		if err := node.Decode(&ch); err != nil {
			return err
		}
		if len(ch) != 3 && len(ch) != 4 {
			return fmt.Errorf("line %d: color needs 3 or 4 channels, got %d", node.Line, len(ch))
		}
		rgba := render.RGB(ch[0], ch[1], ch[2])
		if len(ch) == 4 {
			rgba.A = ch[3]
		}
		*c = Color(rgba)
		return nil
	default:
		return fmt.Errorf("line %d: color must be a name or a sequence", node.Line)
	}
}

func (c *Color) or(def color.RGBA) color.RGBA {
	if c == nil {
		return def
	}
	return color.RGBA(*c)
}

func (s *ShaderSpec) weight() float64 {
	if s == nil || s.Weight == nil {
		return 1
	}
	return *s.Weight
}

// LoadFile reads a scene file. Mesh paths are resolved relative to the
// file's directory. A nil log discards messages.
func LoadFile(path string, log *zap.Logger) (*Content, error) {
	if log == nil {
		log = zap.NewNop()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}

	content, err := Parse(data, filepath.Dir(path), log)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}

	log.Info("scene loaded",
		zap.String("path", path),
		zap.Int("members", len(content.Members)),
	)
	return content, nil
}

// Parse builds content from scene YAML. dir is the base for relative mesh
// paths.
func Parse(data []byte, dir string, log *zap.Logger) (*Content, error) {
	if log == nil {
		log = zap.NewNop()
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}

	content := &Content{
		Sky:    f.Sky.or(render.ColorSkyBlue),
		Camera: models.NewFrame(f.Camera.Position.Vec3(), f.Camera.Rotation.Vec3()),
	}
	for i, obj := range f.Objects {
		member, err := obj.build(dir)
		if err != nil {
			return nil, fmt.Errorf("object %d (%s): %w", i, obj.Kind, err)
		}
		log.Debug("scene object",
			zap.Int("index", i),
			zap.String("kind", obj.Kind),
			zap.String("name", obj.Name),
			zap.Int("triangles", len(member.Triangles())),
		)
		content.Members = append(content.Members, member)
	}
	return content, nil
}

func (o ObjectSpec) build(dir string) (models.Transform, error) {
	albedo := o.Color.or(render.ColorGray)

	switch strings.ToLower(o.Kind) {
	case "cube":
		return o.cube(albedo)

	case "plane":
		if o.Position != (Vector{}) {
			return nil, ErrPlanePosition
		}
		normal := math3d.Up()
		if o.Normal != nil {
			normal = o.Normal.Vec3().Normalize()
		}
		shader := shading.NewFixedNormalShader(o.Shader.weight(), normal)
		plane := models.NewPlane(normal, o.Height, albedo, shader)
		plane.Rotation = o.Rotation.Vec3()
		return plane, nil

	case "solid":
		faces := o.faces(albedo, o.Shader.weight())
		solid, err := models.NewSolid(o.Position.Vec3(), o.Rotation.Vec3(), vertices(o.Vertices), faces)
		if err != nil {
			return nil, err
		}
		solid.Name = o.Name
		return solid, nil

	case "sun", "celestial":
		return o.sun()

	case "mesh":
		return o.mesh(dir, albedo)

	case "point":
		return models.NewPoint(o.Position.Vec3(), o.Rotation.Vec3()), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, o.Kind)
	}
}

func (o ObjectSpec) faces(albedo color.RGBA, weight float64) []models.Face {
	faces := make([]models.Face, len(o.Faces))
	for i, fs := range o.Faces {
		w := weight
		if fs.Shader != nil {
			w = fs.Shader.weight()
		}
		faces[i] = models.NewFace(fs.Indices, fs.Color.or(albedo), shading.NewNormalShader(w))
	}
	return faces
}

func (o ObjectSpec) cube(albedo color.RGBA) (models.Transform, error) {
	colors := Uniform(albedo)
	sides := map[string]*color.RGBA{
		"front":  &colors.Front,
		"back":   &colors.Back,
		"top":    &colors.Top,
		"bottom": &colors.Bottom,
		"left":   &colors.Left,
		"right":  &colors.Right,
	}
	for side, c := range o.Colors {
		dst, ok := sides[strings.ToLower(side)]
		if !ok {
			return nil, fmt.Errorf("unknown cube side %q", side)
		}
		*dst = color.RGBA(c)
	}

	size := o.Size
	if size == 0 {
		size = 1
	}
	cube := NewCube(colors, shading.NewNormalShader(o.Shader.weight()), o.Position.Vec3(), size)
	cube.Rotation = o.Rotation.Vec3()
	if o.Name != "" {
		cube.Name = o.Name
	}
	return cube, nil
}

func (o ObjectSpec) sun() (models.Transform, error) {
	albedo := o.Color.or(render.ColorYellow)
	weight := 0.0
	if o.Shader != nil {
		weight = o.Shader.weight()
	}

	var (
		verts []math3d.Vec3
		faces []models.Face
	)
	if len(o.Vertices) == 0 {
		depth := o.Depth
		if depth == 0 {
			depth = SunDepth
		}
		verts, faces = Hexagram(depth, albedo, shading.NewNormalShader(weight))
	} else {
		verts, faces = vertices(o.Vertices), o.faces(albedo, weight)
	}

	dayLength := o.DayLength
	if dayLength == 0 {
		dayLength = DayLength
	}
	direction := math3d.V3(0, 0, -1)
	if o.LightDirection != nil {
		direction = o.LightDirection.Vec3().Normalize()
	}

	return NewCelestialBody(verts, faces, o.Rotation.Vec3(), dayLength, direction, o.LightColor.or(render.ColorWhite))
}

func (o ObjectSpec) mesh(dir string, albedo color.RGBA) (models.Transform, error) {
	if o.Path == "" {
		return nil, errors.New("mesh needs a path")
	}
	path := o.Path
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}

	loader := models.NewGLTFLoader()
	if o.Color != nil {
		loader.Albedo = albedo
	}
	loader.Shader = shading.NewNormalShader(o.Shader.weight())
	if o.FitSize != nil {
		loader.FitSize = *o.FitSize
	}

	solid, err := loader.Load(path)
	if err != nil {
		return nil, err
	}
	solid.Position = o.Position.Vec3()
	solid.Rotation = o.Rotation.Vec3()
	if o.Name != "" {
		solid.Name = o.Name
	}
	return solid, nil
}
