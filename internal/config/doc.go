// Package config loads pwlab configuration from local and global YAML files.
// It is internal; CLI code merges flags over the local file over the global
// file.
package config
