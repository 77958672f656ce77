package results

import (
	"path/filepath"
	"strings"
)

// File is a discovered result file together with the test-set name it applies to.
type File struct {
	Path       string `json:"path"`
	LookupName string `json:"lookup_name"`
}

// NewFile resolves the lookup name of path.
func NewFile(path, testSetOverride string) File {
	return File{Path: path, LookupName: LookupName(testSetOverride, path)}
}

// LookupName returns the test-set name used to find matching test sets for a file.
// A non-empty override applies to every file; otherwise the base name of the file
// without its extension is used.
func LookupName(override, path string) string {
	if override != "" {
		return override
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
