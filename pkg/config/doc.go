// Package config loads AnimAssist configuration.
//
// Layers are applied lowest first:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. $XDG_CONFIG_HOME/animassist/config.toml, when present
//  3. an explicit file passed with --config
//  4. ANIMASSIST_<SECTION>_<KEY> environment variables
//
// The merged result is unmarshalled into Config.
package config
