package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// getMeals returns the day being edited, grouped by category, with totals and
// the 7-day projection.
// GET /api/meals.
func (h *Handler) getMeals(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c.JSON(http.StatusOK, h.sess.summary())
}

// addMeal appends a food to the ledger with quantity 1.
// POST /api/meals. The food is either an existing library item (library_name)
// or an inline item, which is also added to the library as a user entry.
func (h *Handler) addMeal(c *gin.Context) {
	var body addMealRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	category := MealCategory(body.Category)
	// Validate category against the enum; an unknown one would never display.
	if !validCategory(category) {
		apiError(c, http.StatusBadRequest, "category must be one of: breakfast, lunch, dinner")
		return
	}
	provenance := ProvenanceUser
	if body.Provenance == string(ProvenanceAI) {
		provenance = ProvenanceAI
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	var item LibraryItem
	switch {
	case body.LibraryName != "":
		found, ok := h.sess.library.get(body.LibraryName)
		if !ok {
			apiError(c, http.StatusNotFound, "library item not found")
			return
		}
		item = found
	case body.Item != nil:
		item = *body.Item
		item.Name = strings.TrimSpace(item.Name)
		item.Unit = strings.TrimSpace(item.Unit)
		if err := validateLibraryItem(item); err != nil {
			apiError(c, http.StatusBadRequest, asResolutionError(err).Message)
			return
		}
		if h.sess.library.insert(item) {
			h.sess.persistLibrary()
		}
	default:
		apiError(c, http.StatusBadRequest, "library_name or item is required")
		return
	}

	entry := h.sess.ledger.add(item, category, provenance)
	h.sess.persistLedger()

	c.JSON(http.StatusCreated, entry)
}

// adjustMeal changes an entry's quantity by delta, never below 0.5.
// PATCH /api/meals/:id. Unknown ids are a no-op and return 204 so duplicate
// clicks don't surface as errors.
func (h *Handler) adjustMeal(c *gin.Context) {
	var body adjustQuantityRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if !validStep(body.Delta) {
		apiError(c, http.StatusBadRequest, "delta must be a multiple of 0.5")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	entry, ok := h.sess.ledger.adjustQuantity(c.Param("id"), body.Delta)
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}
	h.sess.persistLedger()

	c.JSON(http.StatusOK, entry)
}

// deleteMeal removes an entry. Idempotent: always 204.
// DELETE /api/meals/:id.
func (h *Handler) deleteMeal(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.sess.ledger.remove(c.Param("id")) {
		h.sess.persistLedger()
	}
	c.Status(http.StatusNoContent)
}

// clearMeals empties the ledger, e.g. to start a new day after saving.
// DELETE /api/meals.
func (h *Handler) clearMeals(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.sess.ledger.clear()
	h.sess.persistLedger()
	c.Status(http.StatusNoContent)
}
