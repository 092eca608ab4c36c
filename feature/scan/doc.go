// Package scan is the pipeline between a raw barcode read and the
// inventory store: validate, resolve against the catalog, pick the
// scanned unit, fold the quantity in.
//
// Submissions carry an epoch number. When a lookup comes back after a
// newer scan has already started, the late result is dropped with
// ErrSuperseded instead of corrupting the count; the operator has
// already moved on to the next item.
package scan
