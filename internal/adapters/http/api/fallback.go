package api

import (
	"net/http"
)

const notFoundPage = `<!doctype html>
<html lang=en>
<title>404 Not Found</title>
<h1>Not Found</h1>
<p>The requested URL was not found on the server. If you entered the URL manually please check your spelling and try again.</p>
`

const methodNotAllowedPage = `<!doctype html>
<html lang=en>
<title>405 Method Not Allowed</title>
<h1>Method Not Allowed</h1>
<p>The method is not allowed for the requested URL.</p>
`

// FallbackHandler answers every request no route claimed.
type FallbackHandler struct {
	known map[string]struct{}
}

// NewFallbackHandler creates a fallback aware of the registered paths, so it
// can tell an unknown path (404) from an unsupported method (405).
func NewFallbackHandler(paths ...string) *FallbackHandler {
	known := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		known[p] = struct{}{}
	}
	return &FallbackHandler{known: known}
}

// HandleFallback renders the not-found, method-not-allowed or OPTIONS reply.
func (h *FallbackHandler) HandleFallback(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.known[r.URL.Path]; !ok {
		writeHTML(w, http.StatusNotFound, notFoundPage)
		return
	}

	w.Header().Set("Allow", allowedMethods)
	if r.Method == http.MethodOptions {
		w.Header().Set("Content-Length", "0")
		w.WriteHeader(http.StatusOK)
		return
	}
	writeHTML(w, http.StatusMethodNotAllowed, methodNotAllowedPage)
}
