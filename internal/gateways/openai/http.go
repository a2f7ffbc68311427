package openai

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	client *Client
}

// Register wires the OpenAI routes. A nil client means no API key was
// configured; the endpoints stay mounted and answer 500.
func Register(r gin.IRouter, client *Client) {
	h := &Handler{client: client}
	grp := r.Group("/api/openai")
	grp.GET("/quote", h.quote)
	grp.POST("/image", h.image)
	grp.POST("/facts", h.facts)
	grp.POST("/transcribe", h.transcribe)
}

func (h *Handler) configured(c *gin.Context) bool {
	if h.client == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "OpenAI API key not configured"})
		return false
	}
	return true
}

// quote always answers 200; with no API key the curated fallback list is
// served directly.
func (h *Handler) quote(c *gin.Context) {
	if h.client == nil {
		c.JSON(http.StatusOK, fallbackQuote())
		return
	}

	q, err := h.client.MotivationalQuote(c.Request.Context(), c.Query("theme"))
	if err != nil {
		q = fallbackQuote()
	}
	c.JSON(http.StatusOK, q)
}

func (h *Handler) image(c *gin.Context) {
	if !h.configured(c) {
		return
	}

	var body struct {
		Prompt string `json:"prompt"`
		Size   string `json:"size"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Prompt == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prompt is required"})
		return
	}

	img, err := h.client.GenerateImage(c.Request.Context(), body.Prompt, body.Size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate image"})
		return
	}
	c.JSON(http.StatusOK, img)
}

func (h *Handler) facts(c *gin.Context) {
	if !h.configured(c) {
		return
	}

	var body struct {
		ImageURL string `json:"imageUrl"`
		Language string `json:"language"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.ImageURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image URL is required"})
		return
	}

	fact, err := h.client.ImageFact(c.Request.Context(), body.ImageURL, body.Language)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate fact"})
		return
	}
	c.JSON(http.StatusOK, fact)
}

func (h *Handler) transcribe(c *gin.Context) {
	if !h.configured(c) {
		return
	}

	fh, err := c.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Audio file is required"})
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Audio file is required"})
		return
	}
	defer f.Close()

	text, err := h.client.Transcribe(c.Request.Context(), fh.Filename, f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to transcribe audio"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"transcription": text, "success": true})
}
