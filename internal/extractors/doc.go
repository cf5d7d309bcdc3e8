// Package extractors provides implementations of the Extractor interface
// for the document formats found in tender packages. Each extractor knows
// how to pull plain text out of a specific set of file extensions.
//
// Extractors are registered with the Registry at startup. The Registry is
// the failure boundary: it never propagates an extractor error or panic.
package extractors
