// Package highlight maps source files to Prism.js language identifiers and,
// when server-side highlighting is selected, renders code with Chroma.
package highlight
