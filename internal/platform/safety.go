package platform

import (
	"os"
	"path/filepath"
	"strings"
)

// DevDirName is the directory under os.TempDir() that holds sandboxed vaults.
const DevDirName = "quill-dev"

// IsDevRun reports whether the process runs via `go run` or `go test`.
// Both build their binary in a temporary directory.
func IsDevRun() bool {
	exe, err := os.Executable()
	if err != nil {
		return false
	}

	if strings.HasPrefix(strings.ToLower(exe), strings.ToLower(os.TempDir())) {
		return true
	}
	return strings.HasSuffix(exe, ".test") || strings.HasSuffix(exe, ".test.exe")
}

// ResolveVaultPath returns the directory a vault really lives in.
// With forceTemp, paths outside the temp directory are re-rooted to
// $TMPDIR/quill-dev/<base name>; paths already inside it are kept.
func ResolveVaultPath(userPath string, forceTemp bool) string {
	if !forceTemp {
		if userPath == "" {
			return "."
		}
		return userPath
	}

	clean := filepath.Clean(userPath)
	if filepath.IsAbs(clean) {
		rel, err := filepath.Rel(os.TempDir(), clean)
		if err == nil && !strings.HasPrefix(rel, "..") {
			return clean
		}
	}

	name := filepath.Base(clean)
	if userPath == "" || name == "." || name == string(os.PathSeparator) {
		name = "default"
	}
	return filepath.Join(os.TempDir(), DevDirName, name)
}
