// Package file persists configuration and prompt templates under the kado
// config directory: a TOML ConfigStore (config.toml) and a PromptStore of
// user-editable prompt text files with embedded defaults.
package file
