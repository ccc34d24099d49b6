package services

import "errors"

// Expected, branchable failures. Handlers map these to 400 {message}
// responses; anything else is a storage fault.
var (
	ErrNotFound        = errors.New("not found")
	ErrDuplicateNote   = errors.New("Note already exists.")
	ErrReportNotCached = errors.New("Report not found in offline database")
)
