// Package reconcile orchestrates a reconciliation pass: result files are resolved,
// parsed into per-test statuses and applied to every matching test set in the
// test-management repository.
//
// # Lifecycle
//
// A run moves Idle -> Connecting -> Processing -> Done. A failed connection moves it to
// Failed and no file is processed. Files are handled strictly one after another; a file
// that cannot be read is reported in its FileReport and the run continues. The Summary
// is the only state carried from one file to the next, and its Total is the number of
// individual test statuses applied.
//
// # Components
//
//  1. Engine: drives the run against a Repository and a results.Source.
//
//  2. Repository: the narrow repository interface (Connect, FindTestSets,
//     ApplyResults), implemented by testrepo.Client and mocked in tests.
//
//  3. CachedRepository: TTL cache of test-set lookups with stampede protection, for
//     runs and HTTP requests that repeat the same lookup.
//
// # Dry Run
//
// With Options.DryRun the engine still parses files and finds test sets but does not
// call ApplyResults; each TestSetReport carries the Planned count instead.
//
// # Usage Example
//
//	engine := reconcile.NewEngine(client, results.NewLocalSource(), log)
//	report, err := engine.Run(ctx, &reconcile.Spec{
//	    Results:     cfg.Results,
//	    Credentials: cfg.Repository.Credentials(),
//	    Path:        cfg.Repository.Path,
//	    TestSetName: cfg.Repository.TestSetName,
//	}, reconcile.Options{})
//	if errors.Is(err, reconcile.ErrConnect) {
//	    // fatal: nothing was processed
//	}
//	fmt.Println(report.Summary.Total)
package reconcile
