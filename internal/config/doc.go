// Package config loads SmartMask configuration from local and global YAML
// files with precedence rules. It is internal; CLI code maps flags and
// files into pipeline configuration.
package config
