// Package cli is the interactive inputguard program.
//
// It asks for a first and last name, two 32-bit integers, an input file and
// an output file, then establishes and verifies a password and finally
// writes an annotated report of everything collected. Every prompt repeats
// until the value is valid; rejections go to the error log and the audit
// journal.
//
// The flow is started with App.Run, which blocks until the report is written
// or input ends.
package cli
