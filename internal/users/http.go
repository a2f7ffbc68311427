package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sparknest-app/sparknest-backend/internal/identity"
)

// Handler exposes the current user's profile over HTTP. Routes are expected
// to be registered behind the session middleware.
type Handler struct {
	svc   *Service
	clerk *identity.Client
}

func Register(rg *gin.RouterGroup, svc *Service, clerk *identity.Client) {
	h := &Handler{svc: svc, clerk: clerk}

	rg.GET("/me", h.me)
	rg.PUT("/me/preferences", h.updatePreferences)
}

// me returns the caller's profile, syncing it from the identity provider on
// first touch so a session that predates the webhook still gets a document.
func (h *Handler) me(c *gin.Context) {
	userID := identity.CurrentUserID(c)

	profile, err := h.svc.Get(c.Request.Context(), userID)
	if errors.Is(err, ErrProfileNotFound) && h.clerk != nil {
		md, mdErr := h.clerk.GetUser(c.Request.Context(), userID)
		if mdErr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
			return
		}
		profile, err = h.svc.Sync(c.Request.Context(), ExternalFromMetadata(md))
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *Handler) updatePreferences(c *gin.Context) {
	var patch PreferencesPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if patch.Theme != nil && *patch.Theme != "light" && *patch.Theme != "dark" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "theme must be light or dark"})
		return
	}

	profile, err := h.svc.UpdatePreferences(c.Request.Context(), identity.CurrentUserID(c), patch)
	if errors.Is(err, ErrProfileNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update preferences"})
		return
	}

	c.JSON(http.StatusOK, profile)
}
