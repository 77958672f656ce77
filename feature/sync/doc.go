// Package sync exposes reconciliation runs over HTTP.
//
// # Endpoints
//
//   - POST /sync: run a pass with the server's configuration, optionally overriding
//     file, path, test-set name and dry-run from a JSON body. A requested file or
//     path outside the configured results path is rejected with 400.
//   - POST /sync/upload: apply a result file sent as the request body.
//   - GET /sync/testsets: list the test sets a name resolves to.
//
// Runs share one repository session and are serialized; a request arriving while a
// run is in progress gets 409 Conflict. A repository that cannot be reached yields
// 502 Bad Gateway.
package sync
