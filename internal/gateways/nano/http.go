package nano

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	client *Client
}

// Register mounts the edit endpoint on an authenticated group. A nil client
// means the provider key is not configured.
func Register(r gin.IRouter, client *Client) {
	h := &Handler{client: client}
	r.POST("/api/nano/edit", h.edit)
}

func (h *Handler) edit(c *gin.Context) {
	var req EditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prompt and image URLs are required"})
		return
	}
	if req.Prompt == "" || len(req.ImageURLs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prompt and image URLs are required"})
		return
	}

	if h.client == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "FAL AI API key not configured"})
		return
	}

	result, err := h.client.Edit(c.Request.Context(), req)
	if err != nil {
		var upstream *UpstreamError
		if errors.As(err, &upstream) {
			log.Printf("[error] operation=nano_edit upstream_status=%d body=%s", upstream.Status, upstream.Body)
			c.JSON(upstream.Status, gin.H{"error": "Failed to process image editing request"})
			return
		}
		log.Printf("[error] operation=nano_edit error=%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.Data(http.StatusOK, "application/json", result)
}
