package handler

import (
	"fmt"
	"net/http"
)

// HandleHome responds with a plain-text welcome message at the root path.
func HandleHome(w http.ResponseWriter, r *http.Request) {
	// "GET /" is the mux catch-all; anything but the root itself is a 404.
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "Welcome to the spendlog API")
}
