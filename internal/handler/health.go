package handler

import (
	"net/http"
)

// Version is reported by the service banner.
const Version = "1.0.0"

// HandleRoot responds with the service banner.
func HandleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{
		"message": "Welcome to Lamenar Backend API",
		"version": Version,
		"docs":    "/docs",
	})
}

// HandleHealth responds with a 200 OK and a JSON body indicating the server is healthy.
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "healthy"})
}
