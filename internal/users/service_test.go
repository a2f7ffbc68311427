package users

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sparknest-app/sparknest-backend/internal/store"
)

func strPtr(s string) *string { return &s }

func testExternalUser(id string) ExternalUser {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	signIn := created.Add(48 * time.Hour)
	return ExternalUser{
		ID:            id,
		Email:         "ada@example.com",
		EmailVerified: true,
		FirstName:     strPtr("Ada"),
		LastName:      strPtr("Lovelace"),
		AvatarURL:     "https://img.example/ada.png",
		CreatedAt:     created,
		UpdatedAt:     created.Add(time.Hour),
		LastSignInAt:  &signIn,
	}
}

func TestSyncCreatesProfileWithDefaults(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemStore())

	p, err := svc.Sync(ctx, testExternalUser("user_1"))
	require.NoError(t, err)

	require.Equal(t, "Ada Lovelace", p.FullName)
	require.Equal(t, Preferences{Theme: "light", Notifications: true}, p.Preferences)
	require.Equal(t, Stats{}, p.Stats)

	stored, err := svc.Get(ctx, "user_1")
	require.NoError(t, err)
	require.Equal(t, p.Email, stored.Email)
	require.True(t, stored.EmailVerified)
}

func TestSyncPreservesPreferencesAndStats(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemStore())

	_, err := svc.Sync(ctx, testExternalUser("user_1"))
	require.NoError(t, err)

	dark := "dark"
	_, err = svc.UpdatePreferences(ctx, "user_1", PreferencesPatch{Theme: &dark})
	require.NoError(t, err)
	require.NoError(t, svc.UpdateStats(ctx, "user_1", StatNotes, 1))
	require.NoError(t, svc.UpdateStats(ctx, "user_1", StatNotes, 1))
	require.NoError(t, svc.UpdateStats(ctx, "user_1", StatResources, 1))

	// A later identity event carries none of the app-local state.
	ext := testExternalUser("user_1")
	ext.Email = "ada@new.example.com"
	ext.FirstName = strPtr("Augusta")
	p, err := svc.Sync(ctx, ext)
	require.NoError(t, err)

	require.Equal(t, "ada@new.example.com", p.Email)
	require.Equal(t, "Augusta Lovelace", p.FullName)
	require.Equal(t, "dark", p.Preferences.Theme)
	require.True(t, p.Preferences.Notifications)
	require.Equal(t, int64(2), p.Stats.NotesCount)
	require.Equal(t, int64(1), p.Stats.ResourcesCount)
}

func TestSyncIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemStore())

	ext := testExternalUser("user_1")
	first, err := svc.Sync(ctx, ext)
	require.NoError(t, err)
	second, err := svc.Sync(ctx, ext)
	require.NoError(t, err)

	require.Equal(t, first, second)

	stored, err := svc.Get(ctx, "user_1")
	require.NoError(t, err)
	require.Equal(t, first.Email, stored.Email)
	require.Equal(t, first.Stats, stored.Stats)
	require.Equal(t, first.Preferences, stored.Preferences)
}

func TestSyncFullNameFallsBackToUser(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemStore())

	ext := testExternalUser("user_1")
	ext.FirstName = nil
	ext.LastName = strPtr("   ")
	p, err := svc.Sync(ctx, ext)
	require.NoError(t, err)
	require.Equal(t, "User", p.FullName)
}

func TestUpdateStatsClampsAtZero(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemStore())

	_, err := svc.Sync(ctx, testExternalUser("user_1"))
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStats(ctx, "user_1", StatIdeas, -1))
	p, err := svc.Get(ctx, "user_1")
	require.NoError(t, err)
	require.Equal(t, int64(0), p.Stats.IdeasCount)

	require.NoError(t, svc.UpdateStats(ctx, "user_1", StatIdeas, 1))
	require.NoError(t, svc.UpdateStats(ctx, "user_1", StatIdeas, -1))
	require.NoError(t, svc.UpdateStats(ctx, "user_1", StatIdeas, -1))
	p, _ = svc.Get(ctx, "user_1")
	require.Equal(t, int64(0), p.Stats.IdeasCount)

	err = svc.UpdateStats(ctx, "user_1", StatKind("bookmarks"), 1)
	require.Error(t, err)

	err = svc.UpdateStats(ctx, "missing", StatNotes, 1)
	require.ErrorIs(t, err, ErrProfileNotFound)
}

func TestDeleteUserFansOutAcrossCollections(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemStore()
	svc := NewService(st)

	_, err := svc.Sync(ctx, testExternalUser("user_1"))
	require.NoError(t, err)
	_, err = svc.Sync(ctx, testExternalUser("user_2"))
	require.NoError(t, err)

	seed := func(collection, owner string, n int) {
		for i := 0; i < n; i++ {
			_, err := st.Create(ctx, collection, map[string]any{"userId": owner, "title": "x"}, "")
			require.NoError(t, err)
		}
	}
	seed("notes", "user_1", 3)
	seed("businessIdeas", "user_1", 2)
	seed("libraryResources", "user_1", 1)
	seed("notes", "user_2", 2)

	require.NoError(t, svc.DeleteUser(ctx, "user_1"))

	_, err = svc.Get(ctx, "user_1")
	require.ErrorIs(t, err, ErrProfileNotFound)

	for _, collection := range []string{"notes", "businessIdeas", "libraryResources"} {
		recs, err := st.GetAll(ctx, collection, store.Where("userId", store.OpEqual, "user_1"))
		require.NoError(t, err)
		require.Empty(t, recs, collection)
	}

	// Other users' content is untouched.
	recs, err := st.GetAll(ctx, "notes", store.Where("userId", store.OpEqual, "user_2"))
	require.NoError(t, err)
	require.Len(t, recs, 2)
	_, err = svc.Get(ctx, "user_2")
	require.NoError(t, err)
}

func TestUpdatePreferencesMergesPartial(t *testing.T) {
	ctx := context.Background()
	svc := NewService(store.NewMemStore())

	_, err := svc.Sync(ctx, testExternalUser("user_1"))
	require.NoError(t, err)

	off := false
	p, err := svc.UpdatePreferences(ctx, "user_1", PreferencesPatch{Notifications: &off})
	require.NoError(t, err)
	require.Equal(t, "light", p.Preferences.Theme)
	require.False(t, p.Preferences.Notifications)

	stored, err := svc.Get(ctx, "user_1")
	require.NoError(t, err)
	require.Equal(t, p.Preferences, stored.Preferences)

	_, err = svc.UpdatePreferences(ctx, "missing", PreferencesPatch{Notifications: &off})
	require.True(t, errors.Is(err, ErrProfileNotFound))
}
