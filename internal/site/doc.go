// Package site writes generated pages into the output directory.
//
// Every file is written to a temporary file next to its target and renamed
// into place, so readers never observe a partially written page. Files the
// generator does not own, such as .nojekyll and _config.yml, are left alone.
package site
