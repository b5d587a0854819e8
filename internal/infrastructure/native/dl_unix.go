//go:build darwin || freebsd || linux

package native

import "github.com/ebitengine/purego"

func systemOpen(path string) (uintptr, error) {
	return purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
}

func systemSym(handle uintptr, name string) (uintptr, error) {
	return purego.Dlsym(handle, name)
}

func systemClose(handle uintptr) error {
	return purego.Dlclose(handle)
}

// systemBind panics on unsupported signatures; Loader.loadOne recovers.
func systemBind(fn interface{}, addr uintptr) {
	purego.RegisterFunc(fn, addr)
}

//Personal.AI order the ending
