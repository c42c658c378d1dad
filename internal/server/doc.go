// Package server exposes the scanner over HTTP. It offers a
// synchronous scan endpoint, cached report retrieval, and DPDP removal
// notice generation, with permissive CORS so browser frontends can
// call it directly.
package server
