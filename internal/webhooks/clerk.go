// Package webhooks receives identity-provider events and applies them to the
// internal user profiles.
package webhooks

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	standardwebhooks "github.com/standard-webhooks/standard-webhooks/libraries/go"

	"github.com/sparknest-app/sparknest-backend/internal/users"
)

// clerkEvent is the provider's wire shape; timestamps are unix millis.
type clerkEvent struct {
	Type string `json:"type"`
	Data struct {
		ID             string  `json:"id"`
		FirstName      *string `json:"first_name"`
		LastName       *string `json:"last_name"`
		ImageURL       string  `json:"image_url"`
		CreatedAt      int64   `json:"created_at"`
		UpdatedAt      int64   `json:"updated_at"`
		LastSignInAt   *int64  `json:"last_sign_in_at"`
		EmailAddresses []struct {
			EmailAddress string `json:"email_address"`
			Verification *struct {
				Status string `json:"status"`
			} `json:"verification"`
		} `json:"email_addresses"`
	} `json:"data"`
}

type ClerkHandler struct {
	verifier *standardwebhooks.Webhook
	users    *users.Service
}

// NewClerkHandler builds the webhook endpoint. secret is the svix signing
// secret (whsec_...); an empty secret leaves the endpoint unconfigured and
// every delivery is rejected with 500.
func NewClerkHandler(secret string, userSvc *users.Service) *ClerkHandler {
	h := &ClerkHandler{users: userSvc}
	if secret != "" {
		wh, err := standardwebhooks.NewWebhook(strings.TrimPrefix(secret, "whsec_"))
		if err != nil {
			log.Printf("[error] operation=clerk_webhook error=invalid webhook secret: %v", err)
			return h
		}
		h.verifier = wh
	}
	return h
}

func (h *ClerkHandler) Register(r gin.IRouter) {
	r.POST("/api/webhooks/clerk", h.handle)
}

func (h *ClerkHandler) handle(c *gin.Context) {
	if h.verifier == nil {
		log.Printf("[error] operation=clerk_webhook error=CLERK_WEBHOOK_SECRET not configured")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Missing webhook secret"})
		return
	}

	svixID := c.GetHeader("svix-id")
	svixTimestamp := c.GetHeader("svix-timestamp")
	svixSignature := c.GetHeader("svix-signature")
	if svixID == "" || svixTimestamp == "" || svixSignature == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing svix headers"})
		return
	}

	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unreadable body"})
		return
	}

	// Clerk signs with svix, which implements the standard-webhooks scheme
	// under its own header names.
	headers := http.Header{}
	headers.Set("webhook-id", svixID)
	headers.Set("webhook-timestamp", svixTimestamp)
	headers.Set("webhook-signature", svixSignature)

	if err := h.verifier.Verify(payload, headers); err != nil {
		log.Printf("[warn] operation=clerk_webhook error=signature verification failed: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook signature"})
		return
	}

	var evt clerkEvent
	if err := json.Unmarshal(payload, &evt); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}

	ctx := c.Request.Context()
	switch evt.Type {
	case "user.created", "user.updated":
		if _, err := h.users.Sync(ctx, evt.externalUser()); err != nil {
			log.Printf("[error] operation=clerk_webhook event=%s user_id=%s error=%v", evt.Type, evt.Data.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error processing webhook"})
			return
		}
		log.Printf("[info] operation=clerk_webhook event=%s user_id=%s", evt.Type, evt.Data.ID)

	case "user.deleted":
		if err := h.users.DeleteUser(ctx, evt.Data.ID); err != nil {
			log.Printf("[error] operation=clerk_webhook event=user.deleted user_id=%s error=%v", evt.Data.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error processing webhook"})
			return
		}
		log.Printf("[info] operation=clerk_webhook event=user.deleted user_id=%s", evt.Data.ID)

	default:
		log.Printf("[info] operation=clerk_webhook event=%s ignored", evt.Type)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Webhook processed successfully"})
}

func (e *clerkEvent) externalUser() users.ExternalUser {
	ext := users.ExternalUser{
		ID:        e.Data.ID,
		FirstName: e.Data.FirstName,
		LastName:  e.Data.LastName,
		AvatarURL: e.Data.ImageURL,
		CreatedAt: time.UnixMilli(e.Data.CreatedAt).UTC(),
		UpdatedAt: time.UnixMilli(e.Data.UpdatedAt).UTC(),
	}
	if e.Data.LastSignInAt != nil {
		t := time.UnixMilli(*e.Data.LastSignInAt).UTC()
		ext.LastSignInAt = &t
	}
	if len(e.Data.EmailAddresses) > 0 {
		ext.Email = e.Data.EmailAddresses[0].EmailAddress
		v := e.Data.EmailAddresses[0].Verification
		ext.EmailVerified = v != nil && v.Status == "verified"
	}
	return ext
}
