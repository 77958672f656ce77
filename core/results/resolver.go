package results

import (
	"context"
	"path/filepath"
	"sort"
)

// ResultExtension is the extension of result files picked up from a directory.
const ResultExtension = ".csv"

// ResolveFiles returns the result files to process, in processing order.
//
// An explicit File wins over Path. A Path naming a directory expands to its *.csv
// files, sorted by name; any other Path is a single file. Nothing configured yields
// an empty slice. Existence is not checked here.
func ResolveFiles(ctx context.Context, cfg Config, src Source) ([]string, error) {
	if cfg.File != "" {
		return []string{cfg.File}, nil
	}
	if cfg.Path == "" {
		return []string{}, nil
	}
	if !src.IsDir(ctx, cfg.Path) {
		return []string{cfg.Path}, nil
	}

	names, err := src.List(ctx, cfg.Path)
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(names))
	for _, name := range names {
		if filepath.Ext(name) == ResultExtension {
			files = append(files, name)
		}
	}
	sort.Strings(files)
	return files, nil
}
