package videos

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

// Register wires the video browsing routes onto an authenticated group. A
// nil service means no API key was configured.
func Register(rg *gin.RouterGroup, svc *Service) {
	h := &Handler{svc: svc}
	grp := rg.Group("/videos")
	grp.GET("/search", h.search)
	grp.GET("/trending", h.trending)
	grp.GET("/category/:id", h.byCategory)
	grp.GET("/:id", h.details)
}

func (h *Handler) configured(c *gin.Context) bool {
	if h.svc == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "YouTube API key not configured"})
		return false
	}
	return true
}

func (h *Handler) search(c *gin.Context) {
	if !h.configured(c) {
		return
	}

	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	page, err := h.svc.Search(c.Request.Context(), query, c.Query("pageToken"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "video search failed"})
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handler) trending(c *gin.Context) {
	if !h.configured(c) {
		return
	}

	list, err := h.svc.Trending(c.Request.Context(), c.Query("region"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "trending lookup failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"videos": list})
}

func (h *Handler) byCategory(c *gin.Context) {
	if !h.configured(c) {
		return
	}

	list, err := h.svc.ByCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "category lookup failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"videos": list})
}

func (h *Handler) details(c *gin.Context) {
	if !h.configured(c) {
		return
	}

	d, err := h.svc.Details(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrVideoNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "video not found"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "video details failed"})
		return
	}
	c.JSON(http.StatusOK, d)
}
