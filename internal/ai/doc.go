// Package ai provides an optional natural-language summary of scan
// results through the OpenAI API. The feature is additive: it never
// participates in scanning or scoring, and a missing API key simply
// turns it off.
package ai
