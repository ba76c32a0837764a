package models

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/qmuntal/gltf"
	"github.com/taigrr/gravel3d/pkg/math3d"
	"github.com/taigrr/gravel3d/pkg/shading"
)

// ErrNoGeometry is returned when a glTF document holds no triangles.
var ErrNoGeometry = errors.New("no triangle geometry")

// GLTFLoader loads GLTF/GLB files into a Solid.
type GLTFLoader struct {
	// Albedo is used for primitives without a material base color.
	Albedo color.RGBA
	// Shader is assigned to every face.
	Shader shading.Shader
	// FitSize, when positive, recenters the mesh on its bounding box and
	// scales it so its largest dimension equals FitSize.
	FitSize float64
}

// NewGLTFLoader creates a new GLTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{
		Albedo:  color.RGBA{R: 200, G: 200, B: 200, A: 255},
		Shader:  shading.NewNormalShader(1),
		FitSize: 2,
	}
}

// LoadGLB loads a GLTF or GLB file with the default loader.
func LoadGLB(path string) (*Solid, error) {
	return NewGLTFLoader().Load(path)
}

// Load loads a GLTF or GLB file and returns a Solid at the origin.
func (l *GLTFLoader) Load(path string) (*Solid, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	solid := &Solid{
		Frame: NewFrame(math3d.Zero3(), math3d.Zero3()),
		Name:  filepath.Base(path),
	}

	if roots := sceneRoots(doc); len(roots) > 0 {
		for _, n := range roots {
			if err := l.processNode(doc, n, mgl64.Ident4(), solid); err != nil {
				return nil, err
			}
		}
	} else {
		// No scene graph: take every mesh as-is.
		for _, m := range doc.Meshes {
			if err := l.processMesh(doc, m, mgl64.Ident4(), solid); err != nil {
				return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
			}
		}
	}

	if len(solid.Faces) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoGeometry)
	}
	if err := ValidateFaces(len(solid.Vertices), solid.Faces); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if l.FitSize > 0 {
		fit(solid, l.FitSize)
	}

	return solid, nil
}

func sceneRoots(doc *gltf.Document) []int {
	if len(doc.Scenes) == 0 {
		return nil
	}
	idx := 0
	if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
		idx = *doc.Scene
	}
	return doc.Scenes[idx].Nodes
}

// processNode walks a node and its children, accumulating transforms.
func (l *GLTFLoader) processNode(doc *gltf.Document, idx int, parent mgl64.Mat4, solid *Solid) error {
	if idx < 0 || idx >= len(doc.Nodes) {
		return fmt.Errorf("node %d out of range", idx)
	}
	node := doc.Nodes[idx]
	world := parent.Mul4(nodeMatrix(node))

	if node.Mesh != nil {
		if *node.Mesh >= len(doc.Meshes) {
			return fmt.Errorf("node %q: mesh %d out of range", node.Name, *node.Mesh)
		}
		m := doc.Meshes[*node.Mesh]
		if err := l.processMesh(doc, m, world, solid); err != nil {
			return fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}

	for _, child := range node.Children {
		if err := l.processNode(doc, child, world, solid); err != nil {
			return err
		}
	}
	return nil
}

// nodeMatrix returns the local matrix of a node, from its explicit matrix
// or from its translation, rotation and scale.
func nodeMatrix(node *gltf.Node) mgl64.Mat4 {
	m := mgl64.Mat4(node.MatrixOrDefault())
	if m != mgl64.Ident4() {
		return m
	}

	t := node.TranslationOrDefault()
	r := node.RotationOrDefault()
	s := node.ScaleOrDefault()

	q := mgl64.Quat{W: r[3], V: mgl64.Vec3{r[0], r[1], r[2]}}
	return mgl64.Translate3D(t[0], t[1], t[2]).
		Mul4(q.Mat4()).
		Mul4(mgl64.Scale3D(s[0], s[1], s[2]))
}

// processMesh appends the triangle primitives of a glTF mesh to solid.
func (l *GLTFLoader) processMesh(doc *gltf.Document, m *gltf.Mesh, world mgl64.Mat4, solid *Solid) error {
	for pi, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			// Skip non-triangle primitives (lines, points, etc)
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}

		positions, err := readVec3Accessor(doc, posIdx)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		albedo := l.materialColor(doc, prim.Material)
		baseVertex := len(solid.Vertices)

		// glTF is right-handed while the engine looks down +Z, so Z is
		// mirrored. The mirror also turns glTF's counter-clockwise front
		// faces into the order the back-face test expects.
		for _, p := range positions {
			w := mgl64.TransformCoordinate(mgl64.Vec3{p.X, p.Y, p.Z}, world)
			solid.Vertices = append(solid.Vertices, math3d.V3(w[0], w[1], -w[2]))
		}

		var indices []int
		if prim.Indices != nil {
			indices, err = readIndices(doc, *prim.Indices)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			indices = make([]int, len(positions))
			for i := range indices {
				indices[i] = i
			}
		}

		// Indices are local to the primitive and must not reach into the
		// vertices of the next one once rebased.
		for _, idx := range indices {
			if idx < 0 || idx >= len(positions) {
				return fmt.Errorf("primitive %d: index %d of %d vertices: %w", pi, idx, len(positions), ErrFaceIndex)
			}
		}

		for i := 0; i+2 < len(indices); i += 3 {
			solid.Faces = append(solid.Faces, NewFace(
				[]int{baseVertex + indices[i], baseVertex + indices[i+1], baseVertex + indices[i+2]},
				albedo,
				l.Shader,
			))
		}
	}

	return nil
}

// materialColor returns the base color factor of a material, or the
// loader's albedo.
func (l *GLTFLoader) materialColor(doc *gltf.Document, idx *int) color.RGBA {
	if idx == nil || *idx >= len(doc.Materials) {
		return l.Albedo
	}
	pbr := doc.Materials[*idx].PBRMetallicRoughness
	if pbr == nil || pbr.BaseColorFactor == nil {
		return l.Albedo
	}
	f := *pbr.BaseColorFactor
	return color.RGBA{R: unit8(f[0]), G: unit8(f[1]), B: unit8(f[2]), A: 255}
}

func unit8(v float64) uint8 {
	return uint8(math.Round(shading.Clamp01(v) * 255))
}

// fit recenters solid on its bounding box and scales it to size.
func fit(solid *Solid, size float64) {
	lo, hi := solid.Bounds()
	center := lo.Add(hi).Scale(0.5)
	extent := hi.Sub(lo)
	maxDim := math.Max(extent.X, math.Max(extent.Y, extent.Z))
	if maxDim <= 0 {
		return
	}
	scale := size / maxDim
	for i, v := range solid.Vertices {
		solid.Vertices[i] = v.Sub(center).Scale(scale)
	}
}

// readVec3Accessor reads Vec3 data from a GLTF accessor.
func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec3, error) {
	if accessorIdx < 0 || accessorIdx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", accessorIdx)
	}
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 || accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float VEC3, got %v / %v", accessor.Type, accessor.ComponentType)
	}

	data, start, stride, err := accessorBytes(doc, accessor, 12)
	if err != nil {
		return nil, err
	}

	result := make([]math3d.Vec3, accessor.Count)
	for i := range accessor.Count {
		offset := start + i*stride
		if offset+12 > len(data) {
			return nil, fmt.Errorf("accessor %d overruns its buffer", accessorIdx)
		}
		result[i] = math3d.V3(
			float64(readFloat32(data[offset:])),
			float64(readFloat32(data[offset+4:])),
			float64(readFloat32(data[offset+8:])),
		)
	}

	return result, nil
}

// readIndices reads index data from a GLTF accessor.
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	if accessorIdx < 0 || accessorIdx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", accessorIdx)
	}
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR indices, got %v", accessor.Type)
	}

	var size int
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("unexpected index type: %v", accessor.ComponentType)
	}

	data, start, stride, err := accessorBytes(doc, accessor, size)
	if err != nil {
		return nil, err
	}

	result := make([]int, accessor.Count)
	for i := range accessor.Count {
		offset := start + i*stride
		if offset+size > len(data) {
			return nil, fmt.Errorf("accessor %d overruns its buffer", accessorIdx)
		}
		switch size {
		case 1:
			result[i] = int(data[offset])
		case 2:
			result[i] = int(uint16(data[offset]) | uint16(data[offset+1])<<8)
		case 4:
			result[i] = int(uint32(data[offset]) |
				uint32(data[offset+1])<<8 |
				uint32(data[offset+2])<<16 |
				uint32(data[offset+3])<<24)
		}
	}

	return result, nil
}

// accessorBytes returns the buffer backing an accessor, the byte offset of
// its first element and the element stride.
func accessorBytes(doc *gltf.Document, accessor *gltf.Accessor, elemSize int) (data []byte, start, stride int, err error) {
	if accessor.BufferView == nil {
		return nil, 0, 0, fmt.Errorf("accessor has no buffer view")
	}
	if *accessor.BufferView >= len(doc.BufferViews) {
		return nil, 0, 0, fmt.Errorf("buffer view %d out of range", *accessor.BufferView)
	}

	bufferView := doc.BufferViews[*accessor.BufferView]
	if bufferView.Buffer >= len(doc.Buffers) {
		return nil, 0, 0, fmt.Errorf("buffer %d out of range", bufferView.Buffer)
	}

	data = doc.Buffers[bufferView.Buffer].Data
	if data == nil {
		return nil, 0, 0, fmt.Errorf("buffer has no data")
	}

	stride = bufferView.ByteStride
	if stride == 0 {
		stride = elemSize
	}
	return data, bufferView.ByteOffset + accessor.ByteOffset, stride, nil
}

// readFloat32 reads a little-endian float32.
func readFloat32(b []byte) float32 {
	bits := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	return math.Float32frombits(bits)
}
