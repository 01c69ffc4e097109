package opticsray

import (
	"bufio"
	"fmt"
	"hash/fnv"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Exporter receives debug geometry. Groups only select materials.
type Exporter interface {
	AddLine(a, b Vector3, group string)
	AddPoint(p Vector3, group string)
	AddCircle(center, normal Vector3, radius Real, resolution int, group string)
	AddRectangle(corners [4]Vector3, group string)
	Save(objPath, mtlPath string) error
}

// ObjExporter builds a Wavefront OBJ of line elements with shared vertices
// and a companion MTL with one material per group.
type ObjExporter struct {
	vertices []Vector3
	index    map[Vector3]int
	groups   map[string][][2]int
	order    []string
}

func NewObjExporter() *ObjExporter {
	return &ObjExporter{
		index:  make(map[Vector3]int),
		groups: make(map[string][][2]int),
	}
}

func (e *ObjExporter) vertex(p Vector3) int {
	if i, ok := e.index[p]; ok {
		return i
	}
	e.vertices = append(e.vertices, p)
	i := len(e.vertices) // OBJ is 1-based
	e.index[p] = i
	return i
}

// Vertices and Lines report the current totals.
func (e *ObjExporter) Vertices() int { return len(e.vertices) }

func (e *ObjExporter) Lines() int {
	n := 0
	for _, ls := range e.groups {
		n += len(ls)
	}
	return n
}

func (e *ObjExporter) AddLine(a, b Vector3, group string) {
	if !finiteVec(a) || !finiteVec(b) {
		return
	}
	if _, ok := e.groups[group]; !ok {
		e.order = append(e.order, group)
	}
	e.groups[group] = append(e.groups[group], [2]int{e.vertex(a), e.vertex(b)})
}

// AddPoint draws a small cross along the three axes.
func (e *ObjExporter) AddPoint(p Vector3, group string) {
	h := PointCrossSize / 2
	e.AddLine(V(p.X-h, p.Y, p.Z), V(p.X+h, p.Y, p.Z), group)
	e.AddLine(V(p.X, p.Y-h, p.Z), V(p.X, p.Y+h, p.Z), group)
	e.AddLine(V(p.X, p.Y, p.Z-h), V(p.X, p.Y, p.Z+h), group)
}

// AddCircle draws a closed polygon of resolution segments. The ring is built
// around +Z and rotated onto normal.
func (e *ObjExporter) AddCircle(center, normal Vector3, radius Real, resolution int, group string) {
	if resolution < 3 {
		resolution = CircleResolution
	}
	n := norm(normal)
	if isZero(n) {
		return
	}
	q := mgl64.QuatBetweenVectors(mgl64.Vec3{0, 0, 1}, mgl64.Vec3{n.X, n.Y, n.Z})
	ring := make([]Vector3, resolution)
	for k := range ring {
		a := 2 * math.Pi * Real(k) / Real(resolution)
		p := q.Rotate(mgl64.Vec3{radius * math.Cos(a), radius * math.Sin(a), 0})
		ring[k] = V(center.X+p[0], center.Y+p[1], center.Z+p[2])
	}
	for k := range ring {
		e.AddLine(ring[k], ring[(k+1)%resolution], group)
	}
}

func (e *ObjExporter) AddRectangle(c [4]Vector3, group string) {
	for k := range c {
		e.AddLine(c[k], c[(k+1)%4], group)
	}
}

// Save writes objPath and mtlPath; an empty mtlPath sits next to objPath.
func (e *ObjExporter) Save(objPath, mtlPath string) error {
	if mtlPath == "" {
		mtlPath = strings.TrimSuffix(objPath, filepath.Ext(objPath)) + ".mtl"
	}
	if err := writeFile(mtlPath, e.writeMTL); err != nil {
		return err
	}
	err := writeFile(objPath, func(w *bufio.Writer) error { return e.writeOBJ(w, filepath.Base(mtlPath)) })
	if err != nil {
		return err
	}
	DebugLog("Saved OBJ %s (%d vertices, %d lines) and MTL %s", objPath, e.Vertices(), e.Lines(), mtlPath)
	return nil
}

func (e *ObjExporter) writeOBJ(w *bufio.Writer, mtlName string) error {
	fmt.Fprintf(w, "mtllib %s\n", mtlName)
	for _, v := range e.vertices {
		fmt.Fprintf(w, "v %g %g %g\n", v.X, v.Y, v.Z)
	}
	for _, g := range e.order {
		fmt.Fprintf(w, "g %s\nusemtl %s\n", g, g)
		for _, l := range e.groups[g] {
			fmt.Fprintf(w, "l %d %d\n", l[0], l[1])
		}
	}
	return nil
}

func (e *ObjExporter) writeMTL(w *bufio.Writer) error {
	for _, g := range e.order {
		c := materialColor(g)
		fmt.Fprintf(w, "newmtl %s\nKd %.4f %.4f %.4f\n\n", g, c.R, c.G, c.B)
	}
	return nil
}

// materialColor is fixed for the outline groups and hashed for ray groups,
// so a group keeps its color between exports.
func materialColor(group string) RGB {
	switch {
	case strings.HasPrefix(group, "hit_points"):
		return RGB{1, 0, 0}
	case group == ScreenOutlines():
		return RGB{0, 1, 0}
	case group == LensOutlines(), group == CameraLensIntersection():
		return RGB{0, 1, 1}
	case group == CameraCenter():
		return RGB{1, 1, 1}
	case group == MissedRays():
		return RGB{0.5, 0.5, 0.5}
	}
	h := fnv.New32a()
	h.Write([]byte(group))
	s := h.Sum32()
	// warm hues so rays stand out from the outlines
	return RGB{1, 0.5 + Real(s&0xff)/510, Real((s>>8)&0xff) / 510}
}

func finiteVec(v Vector3) bool { return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z) }

func writeFile(path string, fill func(*bufio.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err := fill(w); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
