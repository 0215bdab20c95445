package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// getProfile returns the biometric profile with computed BMR, TDEE and BMI.
// GET /api/profile.
func (h *Handler) getProfile(c *gin.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c.JSON(http.StatusOK, describeProfile(h.sess.profile))
}

// patchProfile updates only the provided profile fields.
// PATCH /api/profile. Uses pointer fields in the request body to distinguish
// "not provided" from zero. Non-positive body stats are stored as given: BMR
// and TDEE then read 0 until they are fixed.
func (h *Handler) patchProfile(c *gin.Context) {
	var body patchProfileRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	// Validate enums before touching state so a bad request changes nothing.
	if body.Gender != nil && Gender(*body.Gender) != GenderMale && Gender(*body.Gender) != GenderFemale {
		apiError(c, http.StatusBadRequest, "gender must be one of: male, female")
		return
	}
	if body.Goal != nil {
		switch Goal(*body.Goal) {
		case GoalLose, GoalMaintain, GoalGain:
		default:
			apiError(c, http.StatusBadRequest, "goal must be one of: lose, maintain, gain")
			return
		}
	}
	var levelFactor float64
	if body.ActivityLevel != nil {
		f, ok := activityMultipliers[*body.ActivityLevel]
		if !ok {
			apiError(c, http.StatusBadRequest, "activity_level must be one of: sedentary, light, moderate, active, very_active")
			return
		}
		levelFactor = f
	}
	if body.ActivityFactor != nil && *body.ActivityFactor <= 0 {
		apiError(c, http.StatusBadRequest, "activity_factor must be positive")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	p := h.sess.profile
	changed := false
	if body.Age != nil {
		p.Age = *body.Age
		changed = true
	}
	if body.Gender != nil {
		p.Gender = Gender(*body.Gender)
		changed = true
	}
	if body.WeightKG != nil {
		p.WeightKG = *body.WeightKG
		changed = true
	}
	if body.HeightCM != nil {
		p.HeightCM = *body.HeightCM
		changed = true
	}
	if body.ActivityFactor != nil {
		p.ActivityFactor = *body.ActivityFactor
		changed = true
	}
	if body.ActivityLevel != nil {
		p.ActivityFactor = levelFactor
		changed = true
	}
	if body.Goal != nil {
		p.Goal = Goal(*body.Goal)
		changed = true
	}

	if !changed {
		apiError(c, http.StatusBadRequest, "no fields to update")
		return
	}

	h.sess.profile = p
	h.sess.persistProfile()

	c.JSON(http.StatusOK, describeProfile(p))
}
