package native

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// EnvLibraryPath overrides every other candidate when set.  It may hold
// several paths separated by os.PathListSeparator.
const EnvLibraryPath = "RDKIT_CFFI_LIB"

// PlatformLibrary returns the vendor sub-directory and file name of
// librdkitcffi for goos/goarch.
func PlatformLibrary(goos, goarch string) (dir, file string) {
	switch goos {
	case "windows":
		return "x64-mingw", "rdkitcffi.dll"
	case "darwin":
		if goarch == "arm64" {
			return "arm64-darwin", "librdkitcffi.dylib"
		}
		return "x86_64-darwin", "librdkitcffi.dylib"
	default:
		if goarch == "arm64" {
			return "aarch64-linux", "librdkitcffi.so"
		}
		return "x86_64-linux", "librdkitcffi.so"
	}
}

// CandidatePaths builds the ordered, de-duplicated list of library paths:
// $RDKIT_CFFI_LIB, configured, <vendorRoot>/<platform>/<file>, then the bare
// file name for the system linker search path.
func CandidatePaths(configured []string, vendorRoot string) []string {
	return candidatePaths(os.Getenv(EnvLibraryPath), configured, vendorRoot, runtime.GOOS, runtime.GOARCH)
}

func candidatePaths(env string, configured []string, vendorRoot, goos, goarch string) []string {
	var out []string
	seen := make(map[string]struct{})
	add := func(p string) {
		p = strings.TrimSpace(p)
		if p == "" {
			return
		}
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}

	for _, p := range filepath.SplitList(env) {
		add(p)
	}
	for _, p := range configured {
		add(p)
	}
	dir, file := PlatformLibrary(goos, goarch)
	if vendorRoot != "" {
		add(filepath.Join(vendorRoot, dir, file))
	}
	add(file)
	return out
}

// ExecutableVendorRoot returns "<dir of the running binary>/vendor", or ""
// when the executable path cannot be determined.
func ExecutableVendorRoot() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	return filepath.Join(filepath.Dir(exe), "vendor")
}

//Personal.AI order the ending
