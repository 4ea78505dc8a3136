package mesh

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

const (
	PositionLength  = 4
	TexCoordLength  = 2
	FloatsPerVertex = PositionLength + TexCoordLength
	// VertexStride is the byte size of one interleaved vertex.
	VertexStride = FloatsPerVertex * 4
	// TexCoordOffset is the byte offset of the texcoord attribute.
	TexCoordOffset = PositionLength * 4
)

var ErrNoDevice = errors.New("mesh: no device allocator")

// Topology selects how the vertex list is assembled into primitives.
type Topology uint32

const (
	TopologyTriangles Topology = iota
	TopologyLines
)

func (t Topology) String() string {
	switch t {
	case TopologyTriangles:
		return "triangles"
	case TopologyLines:
		return "lines"
	default:
		return fmt.Sprintf("Topology(%d)", uint32(t))
	}
}

// Buffer is a device-resident vertex buffer. *wgpu.Buffer satisfies it.
type Buffer interface {
	GetSize() uint64
	Release()
}

// Allocator creates device vertex buffers initialised with contents.
type Allocator interface {
	CreateVertexBuffer(label string, contents []byte) (Buffer, error)
}

// Mesh owns a triangle-list vertex array, the line-list array derived from it
// and the device buffer holding whichever of the two is active.
type Mesh struct {
	Name string

	triangles []float32
	lines     []float32
	topology  Topology

	alloc  Allocator
	buffer Buffer
}

// FromVertices builds a mesh from interleaved position[4]+texcoord[2] data in
// triangle-list order. A nil allocator leaves the mesh CPU-only until Upload.
func FromVertices(alloc Allocator, name string, raw []float32) (*Mesh, error) {
	if len(raw)%FloatsPerVertex != 0 {
		return nil, fmt.Errorf("mesh %q: %d floats is not a multiple of the vertex size %d", name, len(raw), FloatsPerVertex)
	}
	tris := make([]float32, len(raw))
	copy(tris, raw)

	m := &Mesh{
		Name:      name,
		triangles: tris,
		topology:  TopologyTriangles,
	}
	if alloc != nil {
		if err := m.Upload(alloc); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Upload allocates the device buffer for the active topology.
func (m *Mesh) Upload(alloc Allocator) error {
	if alloc == nil {
		return ErrNoDevice
	}
	m.alloc = alloc
	return m.reallocate()
}

// reallocate replaces the device buffer with one holding the active
// topology. On failure the previous buffer is kept.
func (m *Mesh) reallocate() error {
	var buf Buffer
	if data := m.active(); len(data) > 0 {
		var err error
		buf, err = m.alloc.CreateVertexBuffer(m.Name+" "+m.topology.String(), floatBytes(data))
		if err != nil {
			return fmt.Errorf("mesh %q: allocating %s buffer: %w", m.Name, m.topology, err)
		}
	}
	if m.buffer != nil {
		m.buffer.Release()
	}
	m.buffer = buf
	return nil
}

// SwitchTopology makes t the active topology, replacing the device buffer.
// It is a no-op when t is already active.
func (m *Mesh) SwitchTopology(t Topology) error {
	if t == m.topology {
		return nil
	}
	if m.alloc == nil {
		return fmt.Errorf("mesh %q: switch to %s: %w", m.Name, t, ErrNoDevice)
	}
	if t == TopologyLines && m.lines == nil {
		m.lines = ToLineList(m.triangles)
	}
	prev := m.topology
	m.topology = t
	if err := m.reallocate(); err != nil {
		m.topology = prev
		return err
	}
	return nil
}

func (m *Mesh) active() []float32 {
	if m.topology == TopologyLines {
		return m.lines
	}
	return m.triangles
}

func (m *Mesh) Topology() Topology { return m.topology }

// Buffer returns the device buffer of the active topology, or nil for an
// empty or not yet uploaded mesh.
func (m *Mesh) Buffer() Buffer { return m.buffer }

// VertexCount is the number of vertices in the active topology.
func (m *Mesh) VertexCount() uint32 {
	return uint32(len(m.active()) / FloatsPerVertex)
}

// ByteLength is the size in bytes of the active vertex data.
func (m *Mesh) ByteLength() uint64 {
	return uint64(len(m.active()) * 4)
}

// Stride is the byte distance between consecutive vertices.
func (m *Mesh) Stride() uint64 { return VertexStride }

// Triangles returns the triangle-list vertex data. Callers must not modify it.
func (m *Mesh) Triangles() []float32 { return m.triangles }

// TriangleCount is the number of triangles in the source geometry.
func (m *Mesh) TriangleCount() int {
	return len(m.triangles) / (3 * FloatsPerVertex)
}

// Release frees the device buffer.
func (m *Mesh) Release() {
	if m.buffer != nil {
		m.buffer.Release()
		m.buffer = nil
	}
}

func floatBytes(data []float32) []byte {
	out := make([]byte, len(data)*4)
	for i, v := range data {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(v))
	}
	return out
}
