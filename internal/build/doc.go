// Package build provides the canonical generation pipeline for journalsite.
//
// BuildService runs parse → scan → render → write → verify for one
// configuration. The CLI build and preview commands both route through it so
// every entry point produces the same output.
package build
