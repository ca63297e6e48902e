// Package scanner implements the security-header scan pipeline.
//
// A scan is a single synchronous pass over one target. The raw URL is
// validated and normalized, then fetched with a HEAD request that falls back
// to GET when the server rejects HEAD. The response headers are tested
// against a fixed six-entry checklist: a present header records pass, a
// missing one records fail, or warn when the entry's severity is low. The
// scanner checks header presence only; values are never parsed, so a
// permissive policy still counts as a pass.
//
// Scanners are stateless. Every call produces a fresh Report and nothing is
// cached between calls. Callers that need rate limiting or concurrency
// control layer it outside this package.
package scanner
