package handlers

import (
	"net/http"

	"github.com/SARVESHVARADKAR123/RoastMyGram/internal/transport"
)

// Health answers GET /health for load balancers and uptime checks.
func Health(w http.ResponseWriter, r *http.Request) {
	transport.WriteJSON(w, http.StatusOK, map[string]string{
		"status":    "OK",
		"message":   "Roast My Insta API is running! 🔥",
		"timestamp": nowISO(),
	})
}
