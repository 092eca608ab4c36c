// Package export renders the counting session as a report.
//
// Rows are regrouped by material code before rendering, so duplicates
// left over from older snapshots collapse into one line. Case and
// display-pack counters merge into the case column, each goes to the
// piece column, and all-zero rows are skipped. CSV output is UTF-8 with
// a BOM so Excel opens the Thai headers correctly; the same table also
// renders as XLSX. Artifacts can be downloaded directly or uploaded to
// object storage under a collision-free name.
package export
