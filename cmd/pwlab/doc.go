// Package pwlab provides the command-line interface for Password & Entropy
// Lab. It configures subcommands (assess, batch, policies, interactive,
// history, config, update), parses flags, and executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/Razmik-Kutinava/password-entropy-lab/cmd/pwlab"
//	func main() { pwlab.Execute() }
package pwlab
