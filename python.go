package md2deck

import (
	"os"
	"path/filepath"

	"github.com/alnah/go-md2deck/internal/fileutil"
)

// PythonEnvVar names the environment variable that overrides discovery.
const PythonEnvVar = "PYTHON"

// defaultPython is used when no virtualenv is found.
const defaultPython = "python3"

// DiscoverPython picks the interpreter for Python diagrams:
// $PYTHON, then <dir>/.venv/bin/python, then <dir>/.venv/Scripts/python.exe,
// then python3 from PATH.
func DiscoverPython(dir string) string {
	return discoverPython(os.Getenv, dir)
}

func discoverPython(getenv func(string) string, dir string) string {
	if p := getenv(PythonEnvVar); p != "" {
		return p
	}
	candidates := []string{
		filepath.Join(dir, ".venv", "bin", "python"),
		filepath.Join(dir, ".venv", "Scripts", "python.exe"),
	}
	for _, c := range candidates {
		if fileutil.FileExists(c) {
			return c
		}
	}
	return defaultPython
}
