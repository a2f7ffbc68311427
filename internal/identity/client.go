package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultAPIBase = "https://api.clerk.com"

// UserMetadata is the read-only projection of a Clerk user record.
type UserMetadata struct {
	ID            string     `json:"id"`
	Email         string     `json:"email"`
	EmailVerified bool       `json:"emailVerified"`
	FirstName     *string    `json:"firstName"`
	LastName      *string    `json:"lastName"`
	FullName      string     `json:"fullName"`
	AvatarURL     string     `json:"avatarUrl"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	LastSignInAt  *time.Time `json:"lastSignInAt"`
}

// Client fetches user records from the Clerk backend API.
type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

func NewClient(secretKey string) *Client {
	return &Client{
		baseURL:   defaultAPIBase,
		secretKey: secretKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// clerkUser mirrors the provider's wire shape. Timestamps are unix millis.
type clerkUser struct {
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
}

// GetUser fetches one user by id.
func (c *Client) GetUser(ctx context.Context, userID string) (*UserMetadata, error) {
	reqURL := c.baseURL + "/v1/users/" + userID
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("clerk request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("clerk user %s not found", userID)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("clerk returned status %d", resp.StatusCode)
	}

	var u clerkUser
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return nil, fmt.Errorf("decode clerk user: %w", err)
	}
	return u.toMetadata(), nil
}

func (u *clerkUser) toMetadata() *UserMetadata {
	md := &UserMetadata{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		FullName:  fullName(u.FirstName, u.LastName),
		AvatarURL: u.ImageURL,
		CreatedAt: time.UnixMilli(u.CreatedAt).UTC(),
		UpdatedAt: time.UnixMilli(u.UpdatedAt).UTC(),
	}
	if u.LastSignInAt != nil {
		t := time.UnixMilli(*u.LastSignInAt).UTC()
		md.LastSignInAt = &t
	}
	if len(u.EmailAddresses) > 0 {
		md.Email = u.EmailAddresses[0].EmailAddress
		v := u.EmailAddresses[0].Verification
		md.EmailVerified = v != nil && v.Status == "verified"
	}
	return md
}

// fullName joins first and last, falling back to "User" when both are empty.
func fullName(first, last *string) string {
	name := strings.TrimSpace(strings.TrimSpace(deref(first)) + " " + strings.TrimSpace(deref(last)))
	if name == "" {
		return "User"
	}
	return name
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
