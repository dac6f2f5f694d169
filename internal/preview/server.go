package preview

import (
	"fmt"
	"net/http"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/journalsite/internal/metrics"
)

func newHandler(dir string, status *buildStatus, reg *prom.Registry) http.Handler {
	mux := http.NewServeMux()
	if reg != nil {
		mux.Handle("/metrics", metrics.HTTPHandler(reg))
	}
	mux.Handle("/", noCache(withBuildStatus(status, http.FileServer(http.Dir(dir)))))
	return mux
}

// noCache keeps browsers from serving a page from before the last rebuild.
func noCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")
		next.ServeHTTP(w, r)
	})
}

// withBuildStatus answers 503 with the error until a build succeeds. After
// that a failed rebuild keeps serving the previous output and sets
// X-Build-Error.
func withBuildStatus(status *buildStatus, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		good, err := status.get()
		if !good {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusServiceUnavailable)
			if err != nil {
				_, _ = fmt.Fprintf(w, "Build failed: %v\n", err)
			} else {
				_, _ = fmt.Fprintln(w, "Build in progress")
			}
			return
		}
		if err != nil {
			w.Header().Set("X-Build-Error", err.Error())
		}
		next.ServeHTTP(w, r)
	})
}
