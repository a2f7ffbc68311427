package content

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sparknest-app/sparknest-backend/internal/identity"
)

type Handler struct {
	svc *Service
}

// Register wires the content routes onto an authenticated group.
func Register(rg *gin.RouterGroup, svc *Service) {
	h := &Handler{svc: svc}

	notes := rg.Group("/notes")
	notes.GET("", h.listNotes)
	notes.POST("", h.createNote)
	notes.GET("/:id", h.getNote)
	notes.PUT("/:id", h.updateNote)
	notes.DELETE("/:id", h.deleteNote)

	ideas := rg.Group("/ideas")
	ideas.GET("", h.listIdeas)
	ideas.POST("", h.createIdea)
	ideas.GET("/:id", h.getIdea)
	ideas.PUT("/:id", h.updateIdea)
	ideas.DELETE("/:id", h.deleteIdea)

	resources := rg.Group("/resources")
	resources.GET("", h.listResources)
	resources.POST("", h.createResource)
	resources.GET("/:id", h.getResource)
	resources.PUT("/:id", h.updateResource)
	resources.PATCH("/:id/favorite", h.toggleFavorite)
	resources.DELETE("/:id", h.deleteResource)
}

func respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// ---- notes ----

func (h *Handler) createNote(c *gin.Context) {
	var in NoteInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	note, err := h.svc.CreateNote(c.Request.Context(), identity.CurrentUserID(c), in)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, note)
}

func (h *Handler) listNotes(c *gin.Context) {
	notes, err := h.svc.ListNotes(c.Request.Context(), identity.CurrentUserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notes": notes})
}

func (h *Handler) getNote(c *gin.Context) {
	note, err := h.svc.GetNote(c.Request.Context(), identity.CurrentUserID(c), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, note)
}

func (h *Handler) updateNote(c *gin.Context) {
	var in NoteInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	note, err := h.svc.UpdateNote(c.Request.Context(), identity.CurrentUserID(c), c.Param("id"), in)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, note)
}

func (h *Handler) deleteNote(c *gin.Context) {
	if err := h.svc.DeleteNote(c.Request.Context(), identity.CurrentUserID(c), c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ---- business ideas ----

func (h *Handler) createIdea(c *gin.Context) {
	var in IdeaInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	idea, err := h.svc.CreateIdea(c.Request.Context(), identity.CurrentUserID(c), in)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, idea)
}

func (h *Handler) listIdeas(c *gin.Context) {
	ideas, err := h.svc.ListIdeas(c.Request.Context(), identity.CurrentUserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ideas": ideas})
}

func (h *Handler) getIdea(c *gin.Context) {
	idea, err := h.svc.GetIdea(c.Request.Context(), identity.CurrentUserID(c), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, idea)
}

func (h *Handler) updateIdea(c *gin.Context) {
	var in IdeaInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	idea, err := h.svc.UpdateIdea(c.Request.Context(), identity.CurrentUserID(c), c.Param("id"), in)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, idea)
}

func (h *Handler) deleteIdea(c *gin.Context) {
	if err := h.svc.DeleteIdea(c.Request.Context(), identity.CurrentUserID(c), c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ---- library resources ----

func (h *Handler) createResource(c *gin.Context) {
	var in ResourceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	res, err := h.svc.CreateResource(c.Request.Context(), identity.CurrentUserID(c), in)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *Handler) listResources(c *gin.Context) {
	resources, err := h.svc.ListResources(c.Request.Context(), identity.CurrentUserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"resources": resources})
}

func (h *Handler) getResource(c *gin.Context) {
	res, err := h.svc.GetResource(c.Request.Context(), identity.CurrentUserID(c), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) updateResource(c *gin.Context) {
	var in ResourceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	res, err := h.svc.UpdateResource(c.Request.Context(), identity.CurrentUserID(c), c.Param("id"), in)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) toggleFavorite(c *gin.Context) {
	res, err := h.svc.ToggleFavorite(c.Request.Context(), identity.CurrentUserID(c), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) deleteResource(c *gin.Context) {
	if err := h.svc.DeleteResource(c.Request.Context(), identity.CurrentUserID(c), c.Param("id")); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
