// Package dataprocessing implements the demand normalization and validation
// pipeline: it takes heterogeneous tabular sheets (mixed date formats,
// inconsistent currency strings, free-text categorical fields) and produces
// a canonical, validated dataset with a per-record quality classification.
//
// # Architecture
//
// The package is organized around five components:
//
// 1. Normalizer: per-column canonical conversion (date, currency, text)
// 2. RuleSet: required fields, closed-domain value sets, discovery sets
// 3. Validator: per-record business-rule checks and severity classification
// 4. Processor: per-sheet orchestration and aggregate statistics
// 5. Report builder: assembly of the final serializable report
//
// # Data Flow
//
//	Workbook → Parser → Sheets → Normalizer → Validator → ValidatedSheets → Report
//
// # Error Handling
//
// Malformed values never abort processing: conversion failures degrade to
// sentinel values and rule violations become report content. Only structural
// failures (empty sheet, required column absent from the schema) return an
// error, and those do not abort sibling sheets in the same run.
package dataprocessing
