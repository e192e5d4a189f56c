package repository

import "errors"

// ErrNotFound is returned by any Get* method when no row matches.
// Callers that treat absence as an expected outcome (e.g. "no membership"
// during authorization) branch on it with errors.Is.
var ErrNotFound = errors.New("not found")
