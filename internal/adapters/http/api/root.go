package api

import (
	"net/http"
)

// Greeting is the body served at the root path.
const Greeting = "Hello, world! Yuvin is here to conquer"

// RootHandler handles root path requests.
type RootHandler struct{}

// NewRootHandler creates a new root handler.
func NewRootHandler() *RootHandler {
	return &RootHandler{}
}

// HandleRoot handles GET / requests.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, _ *http.Request) {
	writeText(w, http.StatusOK, Greeting)
}
