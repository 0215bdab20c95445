package main

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// getLibrary returns library items whose name contains q (case-sensitive).
// GET /api/library?q=... An empty q lists everything.
func (h *Handler) getLibrary(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c.JSON(http.StatusOK, h.sess.library.suggest(c.Query("q")))
}

// addLibraryItem stores a manually entered food.
// POST /api/library. Returns 409 if the name already exists: items are never
// overwritten.
func (h *Handler) addLibraryItem(c *gin.Context) {
	var item LibraryItem
	if err := c.ShouldBindJSON(&item); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	item.Name = strings.TrimSpace(item.Name)
	item.Unit = strings.TrimSpace(item.Unit)
	if err := validateLibraryItem(item); err != nil {
		apiError(c, http.StatusBadRequest, asResolutionError(err).Message)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.sess.library.insert(item) {
		apiError(c, http.StatusConflict, "library item already exists")
		return
	}
	h.sess.persistLibrary()

	c.JSON(http.StatusCreated, item)
}

// lookupFood returns the cached item for name or resolves it through the AI.
// POST /api/library/lookup. On failure nothing is stored and the response
// carries {"error", "kind"} so the client can tell a bad key apart from an
// outage.
func (h *Handler) lookupFood(c *gin.Context) {
	var req lookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		apiError(c, http.StatusBadRequest, "name is required")
		return
	}

	// The lock is held across the lookup: there is one user, and holding it
	// keeps the cache check and the insert in one action.
	h.mu.Lock()
	defer h.mu.Unlock()

	ctx, cancel := withTimeout(c.Request.Context(), h.aiTimeout)
	defer cancel()

	item, cached, err := h.sess.library.lookupOrInsert(ctx, name, h.resolver)
	if err != nil {
		re := asResolutionError(err)
		log.Printf("[lookupFood] %q: %v", name, re)
		c.JSON(resolutionStatus(re.Kind), gin.H{"error": re.Message, "kind": re.Kind})
		return
	}
	if !cached {
		h.sess.persistLibrary()
	}

	c.JSON(http.StatusOK, gin.H{"item": item, "cached": cached})
}

// resolutionStatus maps a failure kind to an HTTP status.
func resolutionStatus(kind ResolutionKind) int {
	switch kind {
	case ResolutionUnauthorized:
		return http.StatusUnauthorized
	case ResolutionTimeout:
		return http.StatusGatewayTimeout
	case ResolutionMalformed:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}
