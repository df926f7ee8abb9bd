// Package render rasterizes indexed triangle meshes onto a cell target.
package render

import (
	"errors"
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	ErrInvalidMesh    = errors.New("invalid mesh")
	ErrMeshReleased   = errors.New("mesh released")
	ErrNotInitialized = errors.New("renderer not initialized")
)

// Mesh is indexed triangle geometry with one RGB color per vertex
type Mesh struct {
	positions []float32 // x,y,z per vertex
	colors    []float32 // r,g,b per vertex
	indices   []uint32
	released  bool
}

// NewMesh copies and validates flat vertex data
// positions and colors hold 3 floats per vertex; indices form triangles
func NewMesh(positions, colors []float32, indices []int) (*Mesh, error) {
	if len(positions) == 0 || len(positions)%3 != 0 {
		return nil, fmt.Errorf("%w: %d position floats", ErrInvalidMesh, len(positions))
	}
	if len(colors) != len(positions) {
		return nil, fmt.Errorf("%w: %d color floats for %d vertices", ErrInvalidMesh, len(colors), len(positions)/3)
	}
	if len(indices) == 0 || len(indices)%3 != 0 {
		return nil, fmt.Errorf("%w: %d indices", ErrInvalidMesh, len(indices))
	}

	vertices := len(positions) / 3
	idx := make([]uint32, len(indices))
	for i, v := range indices {
		if v < 0 || v >= vertices {
			return nil, fmt.Errorf("%w: index %d out of range [0,%d)", ErrInvalidMesh, v, vertices)
		}
		idx[i] = uint32(v)
	}

	return &Mesh{
		positions: append([]float32(nil), positions...),
		colors:    append([]float32(nil), colors...),
		indices:   idx,
	}, nil
}

// VertexCount is the number of indices drawn
func (m *Mesh) VertexCount() int {
	return len(m.indices)
}

// Vertices is the number of distinct vertices
func (m *Mesh) Vertices() int {
	return len(m.positions) / 3
}

// Triangles is the number of triangles drawn
func (m *Mesh) Triangles() int {
	return len(m.indices) / 3
}

// Released reports whether Cleanup ran
func (m *Mesh) Released() bool {
	return m.released
}

// Cleanup drops the vertex buffers; repeated calls are no-ops
func (m *Mesh) Cleanup() {
	if m == nil || m.released {
		return
	}
	m.positions = nil
	m.colors = nil
	m.indices = nil
	m.released = true
}

func (m *Mesh) position(i uint32) (x, y, z float32) {
	return m.positions[3*i], m.positions[3*i+1], m.positions[3*i+2]
}

func (m *Mesh) color(i uint32) colorful.Color {
	return colorful.Color{
		R: float64(m.colors[3*i]),
		G: float64(m.colors[3*i+1]),
		B: float64(m.colors[3*i+2]),
	}
}
