package view

import "errors"

// ErrBlockNotFound is returned by MemoryView.FetchBlock for an unknown
// hash. A real BlockStore implementation is free to use its own error;
// this module only ever treats a non-nil FetchBlock error as fatal.
var ErrBlockNotFound = errors.New("view: block not found")
