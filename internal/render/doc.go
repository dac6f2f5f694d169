// Package render turns a journal.SiteModel into HTML pages using an embedded
// html/template set that a templates directory may override file by file.
package render
