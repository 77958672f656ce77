// Package testrepo is the client of the test-management repository.
//
// The repository stores projects, test sets (named collections of tests filed under a
// folder path such as `Root\Regression`) and test instances carrying the last recorded
// status of each test. It is reached through GORM, on MySQL in production.
//
// # Session
//
// Connect verifies the database, resolves the configured domain/project and
// authenticates the login against a bcrypt password hash. The login is recorded as the
// tester of every status written during the session.
//
// # Operations
//
//   - FindTestSets: test sets with a given name at or below a folder path.
//   - ApplyResults: writes the statuses of a results.Mapping onto the matching
//     instances of one test set in a single transaction and returns how many were
//     updated.
//   - CheckSchema / Migrate: compare or align the live tables with the models.
//
// # Usage
//
//	client := testrepo.NewClient(db, log)
//	if err := client.Connect(ctx, cfg.Repository.Credentials()); err != nil {
//	    return err
//	}
//	sets, _ := client.FindTestSets(ctx, `Root\Nightly`, "smoke")
//	n, _ := client.ApplyResults(ctx, sets[0], mapping)
package testrepo
