// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem, under ~/.prospector
// unless another directory is given.
//
// Adapters:
//   - ConfigStore: TOML-based settings storage (config.toml)
//   - SourceStore: JSON per-platform source configuration (multi_source_config.json)
//   - PromptStore: user-editable outreach prompts (prompts/*.txt)
package file
