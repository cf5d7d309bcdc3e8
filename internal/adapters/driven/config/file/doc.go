// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem under ~/.tendera.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage
//   - PromptStore: editable prompt templates, one file per prompt
//   - PromptWatcher: reloads the PromptStore when templates change on disk
package file
