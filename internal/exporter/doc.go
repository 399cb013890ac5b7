// Package exporter writes pipeline outputs: the processed workbook with the
// validation columns appended, per-sheet CSV extracts, and the JSON report.
//
// The exporters are serialization boundaries only; all content decisions are
// made upstream in the dataprocessing package.
package exporter
