// Package linkverify checks the internal links of a generated journal site.
//
// Every internal link must resolve to a file in the output directory, every
// day page must link back to index.html and every day page must be reachable
// from the index. External links are not fetched.
package linkverify
