// Package integrity provides health checks for the infrastructure reconciliation
// depends on.
//
// # Checks Provided
//
//   - Schema: the projects, repository_users, test_sets and test_instances tables
//     carry the expected columns.
//   - Storage: the result bucket exists and holds the result and archive folders.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/schema : Runs the schema check.
//   - GET /integrity/storage : Runs the storage check (supports ?fix=true).
package integrity
