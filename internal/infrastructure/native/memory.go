package native

import "unsafe"

// Memory reads native memory into Go-owned values.  Every method copies;
// no returned value aliases native memory.
type Memory interface {
	// Bytes copies n bytes starting at p.  p == 0 or n == 0 yields nil.
	Bytes(p, n uintptr) []byte
	// String copies the NUL-terminated string at p.  p == 0 yields "".
	String(p uintptr) string
	// PtrAt reads element i of a native pointer array.
	PtrAt(arr uintptr, i int) uintptr
	// SizeAt reads element i of a native size_t array.
	SizeAt(arr uintptr, i int) uintptr
}

// CMemory reads the process's real C heap.
type CMemory struct{}

var _ Memory = CMemory{}

// voidPtr turns a native address back into an unsafe.Pointer.  The result
// must be used immediately and never stored.
func voidPtr(p uintptr) unsafe.Pointer {
	var nullPtr unsafe.Pointer
	return unsafe.Pointer(uintptr(nullPtr) + p)
}

func (CMemory) Bytes(p, n uintptr) []byte {
	if p == 0 || n == 0 {
		return nil
	}
	out := make([]byte, n)
	copy(out, unsafe.Slice((*byte)(voidPtr(p)), n))
	return out
}

func (CMemory) String(p uintptr) string {
	if p == 0 {
		return ""
	}
	var n uintptr
	for *(*byte)(voidPtr(p + n)) != 0 {
		n++
	}
	return string(unsafe.Slice((*byte)(voidPtr(p)), n))
}

func (CMemory) PtrAt(arr uintptr, i int) uintptr {
	return *(*uintptr)(voidPtr(arr + uintptr(i)*unsafe.Sizeof(uintptr(0))))
}

// SizeAt assumes sizeof(size_t) == sizeof(uintptr_t), which holds on every
// platform librdkitcffi ships for.
func (CMemory) SizeAt(arr uintptr, i int) uintptr {
	return *(*uintptr)(voidPtr(arr + uintptr(i)*unsafe.Sizeof(uintptr(0))))
}

//Personal.AI order the ending
