// Package barcode provides normalization and validation for scanned
// product barcodes.
//
// All functions are pure and synchronous; this package sits at the very
// front of the scan pipeline, before any catalog lookup happens.
//
// # Normalization
//
// Normalize strips everything that is not an ASCII digit. Scanners and
// manual entry produce separators ("489-123 456-789"), which must never
// reach the catalog lookup.
//
// # Validation
//
// Validate accepts the four retail symbologies by digit count:
//
//	 8 → EAN-8
//	12 → UPC-A
//	13 → EAN-13
//	14 → ITF-14
//
// Anything else is invalid and comes back with correction suggestions
// (zero-padding or trimming). Two heuristics flag probable misreads as
// warnings without rejecting the code: all-identical digits and
// arithmetic digit sequences longer than 4.
package barcode
