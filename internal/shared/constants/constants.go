package constants

import (
	"io/fs"
	"time"
)

const (
	// DefaultDirPerm is the default permission used when creating directories.
	DefaultDirPerm fs.FileMode = 0o755
	// DefaultFilePerm is the default permission used when creating files.
	DefaultFilePerm fs.FileMode = 0o644
)

const (
	// ScanTimeout bounds each outbound fetch attempt, the HEAD probe and the
	// GET fallback alike.
	ScanTimeout = 10 * time.Second
	// ScanUserAgent identifies the scanner to target servers.
	ScanUserAgent = "headcheck-scanner/1.0 (+https://headcheck.dev/scanner)"
)

const (
	// MaxRequestBodyBytes caps inbound API request bodies.
	MaxRequestBodyBytes = 1 << 20
	// WebhookTimeout bounds a single signup notification delivery.
	WebhookTimeout = 10 * time.Second
)
