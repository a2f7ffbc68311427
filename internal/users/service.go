package users

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/sparknest-app/sparknest-backend/internal/store"
)

const (
	usersCollection     = "users"
	notesCollection     = "notes"
	ideasCollection     = "businessIdeas"
	resourcesCollection = "libraryResources"
)

// Service reconciles external identity data with internal user profiles and
// owns every user-scoped write to the users collection.
type Service struct {
	store store.Store
}

func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// Sync creates or updates the profile for an identity event. Identity-derived
// fields are recomputed from the event on every call; preferences and stats
// are carried forward verbatim when a profile already exists, so a provider
// update can never reset user-accumulated state.
func (s *Service) Sync(ctx context.Context, ext ExternalUser) (*Profile, error) {
	if ext.ID == "" {
		return nil, fmt.Errorf("sync: external user id is required")
	}

	profile := &Profile{
		ID:            ext.ID,
		Email:         ext.Email,
		FirstName:     ext.FirstName,
		LastName:      ext.LastName,
		FullName:      displayName(ext),
		AvatarURL:     ext.AvatarURL,
		EmailVerified: ext.EmailVerified,
		CreatedAt:     ext.CreatedAt,
		UpdatedAt:     ext.UpdatedAt,
		LastSignInAt:  ext.LastSignInAt,
	}

	existing, err := s.Get(ctx, ext.ID)
	switch {
	case err == nil:
		profile.Preferences = existing.Preferences
		profile.Stats = existing.Stats
		if err := s.store.Update(ctx, usersCollection, ext.ID, profileToMap(profile)); err != nil {
			return nil, fmt.Errorf("sync update %s: %w", ext.ID, err)
		}
	case errors.Is(err, ErrProfileNotFound):
		profile.Preferences = defaultPreferences()
		profile.Stats = Stats{}
		if _, err := s.store.Create(ctx, usersCollection, profileToMap(profile), ext.ID); err != nil {
			return nil, fmt.Errorf("sync create %s: %w", ext.ID, err)
		}
	default:
		return nil, fmt.Errorf("sync lookup %s: %w", ext.ID, err)
	}

	return profile, nil
}

// Get reads a profile without side effects.
func (s *Service) Get(ctx context.Context, userID string) (*Profile, error) {
	rec, err := s.store.GetByID(ctx, usersCollection, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return profileFromRecord(rec), nil
}

// UpdateStats adjusts one counter by delta, clamped at zero. The underlying
// store performs the increment transactionally, so concurrent content
// actions for the same user cannot lose an update.
func (s *Service) UpdateStats(ctx context.Context, userID string, kind StatKind, delta int64) error {
	field := kind.fieldPath()
	if field == "" {
		return fmt.Errorf("update stats: unknown kind %q", string(kind))
	}

	_, err := s.store.IncrementCounter(ctx, usersCollection, userID, field, delta)
	if errors.Is(err, store.ErrNotFound) {
		return ErrProfileNotFound
	}
	return err
}

// UpdatePreferences merges a partial preferences update over the stored ones.
func (s *Service) UpdatePreferences(ctx context.Context, userID string, patch PreferencesPatch) (*Profile, error) {
	profile, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if patch.Theme != nil {
		profile.Preferences.Theme = *patch.Theme
	}
	if patch.Notifications != nil {
		profile.Preferences.Notifications = *patch.Notifications
	}
	profile.UpdatedAt = time.Now().UTC()

	err = s.store.Update(ctx, usersCollection, userID, map[string]any{
		"preferences": preferencesToMap(profile.Preferences),
		"updatedAt":   profile.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("update preferences %s: %w", userID, err)
	}
	return profile, nil
}

// DeleteUser removes every content document owned by the user, then the
// profile itself. The profile is strictly last; a failure in any collection
// aborts the remaining steps, leaving completed deletions in place.
func (s *Service) DeleteUser(ctx context.Context, userID string) error {
	for _, collection := range []string{notesCollection, ideasCollection, resourcesCollection} {
		recs, err := s.store.GetAll(ctx, collection, store.Where("userId", store.OpEqual, userID))
		if err != nil {
			return fmt.Errorf("delete user %s: list %s: %w", userID, collection, err)
		}

		ids := make([]string, len(recs))
		for i, r := range recs {
			ids[i] = r.ID
		}
		if err := s.store.DeleteAll(ctx, collection, ids); err != nil {
			return fmt.Errorf("delete user %s: purge %s: %w", userID, collection, err)
		}
		log.Printf("[info] operation=delete_user user_id=%s collection=%s removed=%d", userID, collection, len(ids))
	}

	if err := s.store.Delete(ctx, usersCollection, userID); err != nil {
		return fmt.Errorf("delete user %s: profile: %w", userID, err)
	}
	return nil
}

// displayName prefers the event's own full name, then first+last, then the
// "User" fallback.
func displayName(ext ExternalUser) string {
	if name := strings.TrimSpace(ext.FullName); name != "" {
		return name
	}
	first, last := "", ""
	if ext.FirstName != nil {
		first = strings.TrimSpace(*ext.FirstName)
	}
	if ext.LastName != nil {
		last = strings.TrimSpace(*ext.LastName)
	}
	name := strings.TrimSpace(first + " " + last)
	if name == "" {
		return "User"
	}
	return name
}
