// Package meshtest provides an in-memory mesh.Allocator for tests.
package meshtest

import (
	"errors"
	"sync"

	"github.com/gekko3d/scenerender/rt/mesh"
)

// Buffer is a host-memory vertex buffer.
type Buffer struct {
	Label    string
	Contents []byte
	Released bool
}

func (b *Buffer) GetSize() uint64 { return uint64(len(b.Contents)) }
func (b *Buffer) Release()        { b.Released = true }

// Allocator records every buffer it creates.
type Allocator struct {
	mu      sync.Mutex
	Buffers []*Buffer
	// Fail makes CreateVertexBuffer return an error.
	Fail bool
}

var errAlloc = errors.New("meshtest: allocation failed")

func (a *Allocator) CreateVertexBuffer(label string, contents []byte) (mesh.Buffer, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.Fail {
		return nil, errAlloc
	}
	b := &Buffer{Label: label, Contents: append([]byte(nil), contents...)}
	a.Buffers = append(a.Buffers, b)
	return b, nil
}

// Live counts buffers that have not been released.
func (a *Allocator) Live() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := 0
	for _, b := range a.Buffers {
		if !b.Released {
			n++
		}
	}
	return n
}
