// Package text provides the deterministic text cleanup and quality
// heuristics shared by the extraction steps.
//
// Clean normalizes extracted or OCR'd text: line endings, whitespace runs,
// and the repeated-glyph artifacts that OCR engines produce on rules,
// table borders, and dotted leaders. It is idempotent.
//
// IsGarbage classifies a cleaned string as noise or meaningful prose using
// fixed thresholds; extraction steps drop rejected text instead of feeding
// it to the model.
package text
