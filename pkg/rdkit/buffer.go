package rdkit

import "time"

// buffer is an owned native pickle: the pointer and byte length exactly as
// the library reported them.  The zero buffer owns nothing.
type buffer struct {
	ptr  uintptr
	size uintptr
}

func (b buffer) empty() bool { return b.ptr == 0 }

// adopt takes ownership of a freshly returned pickle.
func (h *Handle) adopt(ptr, size uintptr) buffer {
	h.instr.SetLiveBuffers(h.live.Add(1))
	return buffer{ptr: ptr, size: size}
}

// release frees an owned pickle and zeroes b.  Releasing an empty buffer
// does nothing, so a second Close is harmless.
func (h *Handle) release(b *buffer) {
	if b.ptr == 0 {
		return
	}
	h.lib.FreePtr(b.ptr)
	b.ptr, b.size = 0, 0
	h.instr.SetLiveBuffers(h.live.Add(-1))
}

// replace swaps in the pickle a successful mutation handed back.  The
// library has already freed the old one.
func (h *Handle) replace(b *buffer, ptr, size uintptr) {
	b.ptr, b.size = ptr, size
}

// forget drops ownership without freeing; the library already retired the
// pickle.
func (h *Handle) forget(b *buffer) {
	if b.ptr == 0 {
		return
	}
	b.ptr, b.size = 0, 0
	h.instr.SetLiveBuffers(h.live.Add(-1))
}

// free releases a transient native allocation.
func (h *Handle) free(p uintptr) {
	if p != 0 {
		h.lib.FreePtr(p)
	}
}

// takeString copies the C string at p and frees it.
func (h *Handle) takeString(fn string, p uintptr) (string, error) {
	if p == 0 {
		return "", errBadPointer(fn)
	}
	defer h.free(p)
	return h.lib.String(p), nil
}

// takeBytes copies n bytes at p and frees them.
func (h *Handle) takeBytes(fn string, p, n uintptr) ([]byte, error) {
	if p == 0 {
		return nil, errBadPointer(fn)
	}
	defer h.free(p)
	return h.lib.Bytes(p, n), nil
}

func (h *Handle) callString(fn string, call func() uintptr) (s string, err error) {
	start := time.Now()
	defer func() { h.observe(fn, start, err) }()
	return h.takeString(fn, call())
}

func (h *Handle) callBytes(fn string, call func(n *uintptr) uintptr) (b []byte, err error) {
	start := time.Now()
	defer func() { h.observe(fn, start, err) }()
	var n uintptr
	p := call(&n)
	return h.takeBytes(fn, p, n)
}

// checkStatus maps a native status code; 1 is success.
func checkStatus(fn string, status int16) error {
	if status != 1 {
		return errBadStatus(fn, status)
	}
	return nil
}

// construct runs a parser that fills a size out-parameter and adopts the
// result.  A null pickle, or one reported as zero bytes, is invalid input;
// the zero-byte allocation is still freed.
func (h *Handle) construct(fn string, call func(size *uintptr) uintptr) (b buffer, err error) {
	start := time.Now()
	defer func() { h.observe(fn, start, err) }()
	var size uintptr
	p := call(&size)
	if p == 0 {
		return buffer{}, errInvalidInput(fn)
	}
	if size == 0 {
		h.free(p)
		return buffer{}, errInvalidInput(fn)
	}
	return h.adopt(p, size), nil
}

//Personal.AI order the ending
