//go:build !darwin && !freebsd && !linux

package native

import (
	"fmt"
	"runtime"
)

var errUnsupported = fmt.Errorf("dynamic loading is not supported on %s/%s", runtime.GOOS, runtime.GOARCH)

func systemOpen(string) (uintptr, error) { return 0, errUnsupported }

func systemSym(uintptr, string) (uintptr, error) { return 0, errUnsupported }

func systemClose(uintptr) error { return nil }

func systemBind(interface{}, uintptr) {}

//Personal.AI order the ending
