package public

import "github.com/moojpayam/api/internal/provider"

// Handler serves the public site API.
type Handler struct {
	*provider.Container
}

// New creates the public handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
