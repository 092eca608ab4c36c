// Package units models the three package granularities of a catalog
// product (case, display pack, each) and resolves the dual-unit input
// configuration for a scan.
//
// A product may carry up to three barcodes, one per unit type. When a
// case or display-pack barcode is scanned the operator counts two
// fields: the scanned unit and the next smaller unit the product
// actually has. The search order is fixed (cs → dsp → ea). When nothing
// smaller exists, a synthetic "fractional each" field with no backing
// barcode takes the secondary slot.
//
// Everything in this package is pure; it owns no state and performs no I/O.
package units
