// Package workspace manages the output directory used by preview.
//
// Ephemeral mode creates a fresh journalsite-preview-* directory under the
// system temp dir and removes it on Cleanup. Persistent mode writes into a
// caller-chosen directory (the --output flag) and leaves it in place.
package workspace
