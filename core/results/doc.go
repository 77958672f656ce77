// Package results turns CI result files into per-test status mappings.
//
// A result file holds one `testName<delimiter>status` record per line. Blank lines and
// lines starting with '#' are skipped; lines that do not split into exactly two fields
// are skipped with a warning; a repeated test name keeps its first status and the
// repeat is logged as an error. None of these abort parsing. Only a missing file is
// fatal, and only for that file (ErrFileNotFound).
//
// # Components
//
//   - Parser: reads every line of a file, then builds a Mapping.
//   - ResolveFiles: expands the configured file or directory into an ordered file list.
//   - LookupName: derives the test-set name a file's results apply to.
//   - Source: LocalSource (filesystem) or StorageSource (bucket prefix as directory).
//   - Archiver: copies processed files into object storage.
//
// # Usage
//
//	src := results.NewLocalSource()
//	files, _ := results.ResolveFiles(ctx, cfg.Results, src)
//	parser := results.NewParser(src, ',', log)
//	for _, f := range files {
//	    mapping, stats, err := parser.ParseFile(ctx, f)
//	    ...
//	}
package results
