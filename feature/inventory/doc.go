// Package inventory is the canonical counting state: one record per
// material code, accumulated across scans and manual corrections.
//
// # Aggregation rules
//
// The material code is the only aggregation key. Scanning a case
// barcode and an each barcode of the same product lands in one record,
// with the cs, dsp and ea counters kept distinct; they merge only when
// a view or export asks for case/piece columns. Scan additions always
// accumulate, manual corrections always overwrite, and both floor at
// zero.
//
// # Persistence
//
// Every mutation is followed by a snapshot write through the
// Repository. The in-memory state is authoritative: a failed write is
// logged and surfaced as ErrPersistence but never rolls the mutation
// back. Snapshots carry a schema version; on load, a mismatched
// version discards the snapshot and the session starts empty.
package inventory
