// Package smartmask provides the command-line interface for the SmartMask
// tool. It configures subcommands (scan, review, mask, detectors), parses
// flags, and executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/smartmask/smartmask/cmd/smartmask"
//	func main() { smartmask.Execute() }
package smartmask
