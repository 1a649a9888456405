// Package services implements the driving port interfaces.
// Services contain the core business logic: source selection, lead
// scoring, deduplication, the multi-source discovery run and enrichment.
// They call out only through driven ports.
package services
