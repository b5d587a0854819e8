package testutil

import (
	"fmt"
	"sort"
	"sync"

	"github.com/turtacn/rdkit-go/internal/infrastructure/native"
)

// FakeHeap is a synthetic native allocator.  Addresses are opaque integers
// that never alias Go memory, so any wrapper bug shows up as a recorded
// violation instead of a crash.
type FakeHeap struct {
	mu         sync.Mutex
	next       uintptr
	blocks     map[uintptr]*fakeBlock
	allocs     int
	frees      int
	violations []string
}

type fakeBlock struct {
	data  []byte
	words []uintptr
}

var _ native.Memory = (*FakeHeap)(nil)

// NewFakeHeap returns an empty heap.
func NewFakeHeap() *FakeHeap {
	return &FakeHeap{next: 0x10000, blocks: make(map[uintptr]*fakeBlock)}
}

func (h *FakeHeap) alloc(b *fakeBlock) uintptr {
	h.mu.Lock()
	defer h.mu.Unlock()
	p := h.next
	size := uintptr(len(b.data) + 8*len(b.words))
	h.next += (size+15)&^15 + 16
	h.blocks[p] = b
	h.allocs++
	return p
}

// AllocBytes stores a copy of data and returns its address.
func (h *FakeHeap) AllocBytes(data []byte) uintptr {
	cp := make([]byte, len(data))
	copy(cp, data)
	return h.alloc(&fakeBlock{data: cp})
}

// AllocString stores s as a C string.
func (h *FakeHeap) AllocString(s string) uintptr {
	return h.AllocBytes([]byte(s))
}

// AllocWords stores an array of pointer-sized values.
func (h *FakeHeap) AllocWords(words []uintptr) uintptr {
	cp := make([]uintptr, len(words))
	copy(cp, words)
	return h.alloc(&fakeBlock{words: cp})
}

// Free releases p.  0 is ignored; anything not live is a violation.
func (h *FakeHeap) Free(p uintptr) {
	if p == 0 {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.blocks[p]; !ok {
		h.violations = append(h.violations, fmt.Sprintf("free of non-live pointer %#x", p))
		return
	}
	delete(h.blocks, p)
	h.frees++
}

func (h *FakeHeap) block(p uintptr, op string) *fakeBlock {
	h.mu.Lock()
	defer h.mu.Unlock()
	b, ok := h.blocks[p]
	if !ok {
		h.violations = append(h.violations, fmt.Sprintf("%s of non-live pointer %#x", op, p))
		return nil
	}
	return b
}

// Bytes implements native.Memory.
func (h *FakeHeap) Bytes(p, n uintptr) []byte {
	if p == 0 || n == 0 {
		return nil
	}
	b := h.block(p, "read")
	if b == nil {
		return nil
	}
	if int(n) > len(b.data) {
		h.violate(fmt.Sprintf("read of %d bytes past %d-byte block %#x", n, len(b.data), p))
		n = uintptr(len(b.data))
	}
	out := make([]byte, n)
	copy(out, b.data[:n])
	return out
}

// String implements native.Memory.
func (h *FakeHeap) String(p uintptr) string {
	if p == 0 {
		return ""
	}
	b := h.block(p, "read")
	if b == nil {
		return ""
	}
	return string(b.data)
}

// PtrAt implements native.Memory.
func (h *FakeHeap) PtrAt(arr uintptr, i int) uintptr { return h.word(arr, i) }

// SizeAt implements native.Memory.
func (h *FakeHeap) SizeAt(arr uintptr, i int) uintptr { return h.word(arr, i) }

func (h *FakeHeap) word(arr uintptr, i int) uintptr {
	b := h.block(arr, "index")
	if b == nil {
		return 0
	}
	if i < 0 || i >= len(b.words) {
		h.violate(fmt.Sprintf("index %d out of range for array %#x", i, arr))
		return 0
	}
	return b.words[i]
}

func (h *FakeHeap) violate(msg string) {
	h.mu.Lock()
	h.violations = append(h.violations, msg)
	h.mu.Unlock()
}

// IsLive reports whether p is currently allocated.
func (h *FakeHeap) IsLive(p uintptr) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.blocks[p]
	return ok
}

// Live returns the number of outstanding allocations.
func (h *FakeHeap) Live() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.blocks)
}

// LiveAddresses returns the outstanding addresses in ascending order.
func (h *FakeHeap) LiveAddresses() []uintptr {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]uintptr, 0, len(h.blocks))
	for p := range h.blocks {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Stats returns allocation and free counts.
func (h *FakeHeap) Stats() (allocs, frees int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.allocs, h.frees
}

// Violations returns every double free, unknown free and stale read seen.
func (h *FakeHeap) Violations() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.violations...)
}

//Personal.AI order the ending
