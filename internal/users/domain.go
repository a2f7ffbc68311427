package users

import (
	"errors"
	"time"

	"github.com/sparknest-app/sparknest-backend/internal/identity"
)

// ErrProfileNotFound is returned when no profile document exists for an id.
var ErrProfileNotFound = errors.New("user profile not found")

// Preferences are app-local settings. They are never part of the identity
// event and must survive every re-sync.
type Preferences struct {
	Theme         string `json:"theme"`
	Notifications bool   `json:"notifications"`
}

func defaultPreferences() Preferences {
	return Preferences{Theme: "light", Notifications: true}
}

// Stats are per-user content counters. Never negative.
type Stats struct {
	NotesCount     int64 `json:"notesCount"`
	IdeasCount     int64 `json:"ideasCount"`
	ResourcesCount int64 `json:"resourcesCount"`
}

// Profile is the internal user document, keyed by the external identity id.
type Profile struct {
	ID            string      `json:"id"`
	Email         string      `json:"email"`
	FirstName     *string     `json:"firstName"`
	LastName      *string     `json:"lastName"`
	FullName      string      `json:"fullName"`
	AvatarURL     string      `json:"avatarUrl"`
	EmailVerified bool        `json:"emailVerified"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
	LastSignInAt  *time.Time  `json:"lastSignInAt"`
	Preferences   Preferences `json:"preferences"`
	Stats         Stats       `json:"stats"`
}

// ExternalUser is the identity-provider payload a sync runs from, either a
// webhook event or a backend-API fetch.
type ExternalUser struct {
	ID            string
	Email         string
	EmailVerified bool
	FirstName     *string
	LastName      *string
	FullName      string
	AvatarURL     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	LastSignInAt  *time.Time
}

// ExternalFromMetadata adapts a Clerk user record into a sync input.
func ExternalFromMetadata(md *identity.UserMetadata) ExternalUser {
	return ExternalUser{
		ID:            md.ID,
		Email:         md.Email,
		EmailVerified: md.EmailVerified,
		FirstName:     md.FirstName,
		LastName:      md.LastName,
		FullName:      md.FullName,
		AvatarURL:     md.AvatarURL,
		CreatedAt:     md.CreatedAt,
		UpdatedAt:     md.UpdatedAt,
		LastSignInAt:  md.LastSignInAt,
	}
}

// StatKind names one of the per-user counters.
type StatKind string

const (
	StatNotes     StatKind = "notes"
	StatIdeas     StatKind = "ideas"
	StatResources StatKind = "resources"
)

// fieldPath is the dotted document path of the counter.
func (k StatKind) fieldPath() string {
	switch k {
	case StatNotes:
		return "stats.notesCount"
	case StatIdeas:
		return "stats.ideasCount"
	case StatResources:
		return "stats.resourcesCount"
	}
	return ""
}

// PreferencesPatch is a partial preferences update; nil fields keep their
// stored values.
type PreferencesPatch struct {
	Theme         *string `json:"theme"`
	Notifications *bool   `json:"notifications"`
}
