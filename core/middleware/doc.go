// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation via the X-API-Key header.
//   - rayid: a request ID (RayID) for every request, stored in the context under
//     "ray_id" and echoed in the X-Ray-ID response header.
package middleware
