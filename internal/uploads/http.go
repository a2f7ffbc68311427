// Package uploads serves user file uploads backed by the blob store. Every
// object lives under uploads/<user-id>/ and users can only touch their own
// prefix.
package uploads

import (
	"fmt"
	"log"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sparknest-app/sparknest-backend/internal/blob"
	"github.com/sparknest-app/sparknest-backend/internal/identity"
)

const maxUploadBytes = 25 << 20 // 25 MB

type Handler struct {
	storage blob.Storage
}

// Register wires the upload routes onto an authenticated group.
func Register(rg *gin.RouterGroup, storage blob.Storage) {
	h := &Handler{storage: storage}
	grp := rg.Group("/uploads")
	grp.POST("", h.upload)
	grp.GET("", h.list)
	grp.DELETE("/*path", h.remove)
}

func userPrefix(userID string) string {
	return "uploads/" + userID + "/"
}

func (h *Handler) upload(c *gin.Context) {
	userID := identity.CurrentUserID(c)

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if fh.Size > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	defer f.Close()

	// Object names are random so re-uploading the same filename never
	// clobbers an earlier object.
	objectPath := fmt.Sprintf("%s%s%s", userPrefix(userID), uuid.New().String(), strings.ToLower(path.Ext(fh.Filename)))
	contentType := fh.Header.Get("Content-Type")

	url, err := h.storage.Upload(c.Request.Context(), objectPath, f, fh.Size, contentType, nil)
	if err != nil {
		log.Printf("[error] operation=upload user_id=%s path=%s error=%v", userID, objectPath, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"url":  url,
		"path": objectPath,
		"name": fh.Filename,
		"size": fh.Size,
	})
}

func (h *Handler) list(c *gin.Context) {
	userID := identity.CurrentUserID(c)

	// The listing is always confined to the caller's prefix; a client-sent
	// prefix only narrows it further.
	prefix := userPrefix(userID)
	if sub := strings.TrimPrefix(c.Query("prefix"), "/"); sub != "" {
		prefix += sub
	}

	objects, err := h.storage.List(c.Request.Context(), prefix)
	if err != nil {
		log.Printf("[error] operation=list_uploads user_id=%s error=%v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "listing failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"files": objects})
}

func (h *Handler) remove(c *gin.Context) {
	userID := identity.CurrentUserID(c)

	objectPath := strings.TrimPrefix(c.Param("path"), "/")
	if !strings.HasPrefix(objectPath, userPrefix(userID)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	if err := h.storage.Delete(c.Request.Context(), objectPath); err != nil {
		log.Printf("[error] operation=delete_upload user_id=%s path=%s error=%v", userID, objectPath, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
