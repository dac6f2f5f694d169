// Package preview builds the journal, serves the output over HTTP and
// rebuilds whenever the README, a day directory or a template changes.
package preview
