// Package report serves missing-translation reports over HTTP.
//
// Routes:
//
//	GET  /languages
//	GET  /missing?language=de
//	POST /missing/refresh
//
// Store snapshots are cached with a TTL; the source tree is rescanned on
// every report.
package report
