package render

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/lucasb-eyer/go-colorful"
)

// Target is a cell surface a mesh is drawn onto
type Target interface {
	Size() (width, height int)
	// Clear fills the surface with its current clear color
	Clear()
	Plot(x, y int, c colorful.Color)
}

// Projection defaults
const (
	DefaultFOV   = math32.Pi / 3 // 60 degrees
	DefaultZNear = 0.01
	DefaultZFar  = 1000
)

// Renderer projects meshes through a perspective camera at the origin looking down -Z
type Renderer struct {
	fov, zNear, zFar float32
	cellAspect       float32

	ready bool
	focal float32

	// Stats of the last Render
	triangles int
	cells     int
}

// NewRenderer creates a renderer for cells cellAspect times taller than wide
func NewRenderer(cellAspect float64) *Renderer {
	return &Renderer{
		fov:        DefaultFOV,
		zNear:      DefaultZNear,
		zFar:       DefaultZFar,
		cellAspect: float32(cellAspect),
	}
}

// Init validates the camera and prepares the projection
func (r *Renderer) Init() error {
	if r.cellAspect <= 0 {
		return fmt.Errorf("renderer: cell aspect %v", r.cellAspect)
	}
	if r.fov <= 0 || r.fov >= math32.Pi {
		return fmt.Errorf("renderer: field of view %v", r.fov)
	}
	if r.zNear <= 0 || r.zFar <= r.zNear {
		return fmt.Errorf("renderer: depth range [%v,%v]", r.zNear, r.zFar)
	}
	r.focal = 1 / math32.Tan(r.fov/2)
	r.ready = true
	return nil
}

// Ready reports whether Init succeeded and Cleanup has not run
func (r *Renderer) Ready() bool {
	return r.ready
}

// Stats returns triangles and cells drawn by the last Render
func (r *Renderer) Stats() (triangles, cells int) {
	return r.triangles, r.cells
}

// Render clears t and draws every triangle of m
func (r *Renderer) Render(m *Mesh, t Target) error {
	if !r.ready {
		return ErrNotInitialized
	}
	if m == nil || m.released {
		return ErrMeshReleased
	}

	t.Clear()
	r.triangles, r.cells = 0, 0

	w, h := t.Size()
	if w <= 0 || h <= 0 {
		return nil
	}
	aspect := float32(w) / (float32(h) * r.cellAspect)

	var tri [3]vertex
	for i := 0; i+2 < len(m.indices); i += 3 {
		visible := true
		for j := 0; j < 3; j++ {
			idx := m.indices[i+j]
			x, y, z := m.position(idx)
			v, ok := r.project(x, y, z, aspect, w, h)
			if !ok {
				visible = false
				break
			}
			v.c = m.color(idx)
			tri[j] = v
		}
		if !visible {
			continue
		}
		r.triangles++
		r.cells += fillTriangle(tri, w, h, t)
	}
	return nil
}

// Cleanup releases the projection state; repeated calls are no-ops
func (r *Renderer) Cleanup() {
	r.ready = false
	r.focal = 0
}

type vertex struct {
	x, y float32 // screen space, cells
	c    colorful.Color
}

// project maps a view-space point to screen cells; false when outside the depth range
func (r *Renderer) project(x, y, z, aspect float32, w, h int) (vertex, bool) {
	depth := -z
	if depth < r.zNear || depth > r.zFar {
		return vertex{}, false
	}
	ndcX := r.focal / aspect * x / depth
	ndcY := r.focal * y / depth
	return vertex{
		x: (ndcX + 1) / 2 * float32(w),
		y: (1 - ndcY) / 2 * float32(h),
	}, true
}

// fillTriangle plots every cell whose center lies inside the triangle and returns the count
func fillTriangle(v [3]vertex, w, h int, t Target) int {
	area := edge(v[0], v[1], v[2].x, v[2].y)
	if area == 0 {
		return 0
	}

	minX := clampInt(int(math32.Floor(math32.Min(v[0].x, math32.Min(v[1].x, v[2].x)))), 0, w-1)
	maxX := clampInt(int(math32.Ceil(math32.Max(v[0].x, math32.Max(v[1].x, v[2].x)))), 0, w-1)
	minY := clampInt(int(math32.Floor(math32.Min(v[0].y, math32.Min(v[1].y, v[2].y)))), 0, h-1)
	maxY := clampInt(int(math32.Ceil(math32.Max(v[0].y, math32.Max(v[1].y, v[2].y)))), 0, h-1)

	plotted := 0
	for y := minY; y <= maxY; y++ {
		py := float32(y) + 0.5
		for x := minX; x <= maxX; x++ {
			px := float32(x) + 0.5
			w0 := edge(v[1], v[2], px, py) / area
			w1 := edge(v[2], v[0], px, py) / area
			w2 := edge(v[0], v[1], px, py) / area
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			c := colorful.Color{
				R: float64(w0)*v[0].c.R + float64(w1)*v[1].c.R + float64(w2)*v[2].c.R,
				G: float64(w0)*v[0].c.G + float64(w1)*v[1].c.G + float64(w2)*v[2].c.G,
				B: float64(w0)*v[0].c.B + float64(w1)*v[1].c.B + float64(w2)*v[2].c.B,
			}
			t.Plot(x, y, c.Clamped())
			plotted++
		}
	}
	return plotted
}

// edge is twice the signed area of (a, b, p)
func edge(a, b vertex, px, py float32) float32 {
	return (b.x-a.x)*(py-a.y) - (b.y-a.y)*(px-a.x)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
