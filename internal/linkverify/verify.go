package linkverify

import (
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"git.home.luguber.info/inful/journalsite/internal/foundation/errors"
)

const indexPage = "index.html"

var dayPage = regexp.MustCompile(`^day-\d+\.html$`)

// BrokenLink is an internal link whose target does not exist.
type BrokenLink struct {
	Page   string
	URL    string
	Target string
}

// Report is the result of verifying an output directory.
type Report struct {
	Pages int
	Links int
	// Broken lists internal links without a target file.
	Broken []BrokenLink
	// MissingBackLinks lists day pages without a link to index.html.
	MissingBackLinks []string
	// Orphans lists day pages the index does not link to.
	Orphans []string
}

// OK reports whether no problem was found.
func (r *Report) OK() bool {
	return len(r.Broken) == 0 && len(r.MissingBackLinks) == 0 && len(r.Orphans) == 0
}

// Problems returns one human readable line per problem.
func (r *Report) Problems() []string {
	var out []string
	for _, b := range r.Broken {
		out = append(out, fmt.Sprintf("%s: broken link %q (no %s)", b.Page, b.URL, b.Target))
	}
	for _, p := range r.MissingBackLinks {
		out = append(out, fmt.Sprintf("%s: no link back to %s", p, indexPage))
	}
	for _, p := range r.Orphans {
		out = append(out, fmt.Sprintf("%s: not linked from %s", p, indexPage))
	}
	return out
}

// Err returns a validation error summarizing the problems, or nil.
func (r *Report) Err() error {
	if r.OK() {
		return nil
	}
	return errors.ValidationError("site has broken links").
		WithContext("broken", len(r.Broken)).
		WithContext("missing_back_links", len(r.MissingBackLinks)).
		WithContext("orphans", len(r.Orphans)).
		Build()
}

// VerifySite checks index.html and every day page in outputDir.
func VerifySite(outputDir string) (*Report, error) {
	if _, err := os.Stat(filepath.Join(outputDir, indexPage)); err != nil {
		return nil, errors.WrapError(err, errors.CategoryNotFound, "index page not found").
			Fatal().
			WithContext("path", outputDir).
			Build()
	}

	entries, err := os.ReadDir(outputDir)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to list output directory").
			WithContext("path", outputDir).
			Build()
	}
	var days []string
	for _, e := range entries {
		if !e.IsDir() && dayPage.MatchString(e.Name()) {
			days = append(days, e.Name())
		}
	}
	sort.Strings(days)

	report := &Report{}
	linkedFromIndex := make(map[string]bool)

	for _, page := range append([]string{indexPage}, days...) {
		links, err := ExtractLinks(filepath.Join(outputDir, page))
		if err != nil {
			return nil, err
		}
		report.Pages++

		backLink := false
		for _, link := range links {
			if !link.IsInternal {
				continue
			}
			report.Links++
			target, ok := resolve(page, link.URL)
			if !ok {
				report.Broken = append(report.Broken, BrokenLink{Page: page, URL: link.URL, Target: link.URL})
				continue
			}
			if target == "" {
				continue
			}
			if !exists(outputDir, target) {
				report.Broken = append(report.Broken, BrokenLink{Page: page, URL: link.URL, Target: target})
				continue
			}
			if link.Tag != "a" {
				continue
			}
			if page == indexPage {
				linkedFromIndex[target] = true
			} else if target == indexPage {
				backLink = true
			}
		}
		if page != indexPage && !backLink {
			report.MissingBackLinks = append(report.MissingBackLinks, page)
		}
	}

	for _, page := range days {
		if !linkedFromIndex[page] {
			report.Orphans = append(report.Orphans, page)
		}
	}
	return report, nil
}

// resolve turns a relative link on page into a slash separated path below the
// output root. An empty result means the link targets the page itself.
func resolve(page, link string) (string, bool) {
	u, err := url.Parse(link)
	if err != nil {
		return "", false
	}
	if u.Path == "" {
		return "", true
	}
	var p string
	if strings.HasPrefix(u.Path, "/") {
		p = path.Clean(u.Path)
	} else {
		p = path.Join("/", path.Dir(page), u.Path)
	}
	if strings.HasSuffix(u.Path, "/") {
		p = path.Join(p, indexPage)
	}
	p = strings.TrimPrefix(p, "/")
	if p == "" || p == "." {
		p = indexPage
	}
	return p, true
}

func exists(root, rel string) bool {
	info, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		return false
	}
	if info.IsDir() {
		_, err = os.Stat(filepath.Join(root, filepath.FromSlash(rel), indexPage))
		return err == nil
	}
	return true
}
