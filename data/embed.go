// Package data carries static assets compiled into the worker binary.
package data

import _ "embed"

// AppShell is the minimal HTML document served for navigation requests
// when the hosted app cannot be fetched.
//
//go:embed shell/index.html
var AppShell string
