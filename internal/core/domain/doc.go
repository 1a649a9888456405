// Package domain defines the core business entities for prospector.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Prospect: A normalised candidate lead discovered on a platform
//   - Platform: One of the closed set of prospect sources
//   - SourceConfig: Operational settings for one platform
//   - SearchStrategy: A per-platform query plan derived from an ICP
//   - MultiSourceResult: The envelope returned by one discovery run
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
