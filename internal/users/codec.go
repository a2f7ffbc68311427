package users

import (
	"time"

	"github.com/sparknest-app/sparknest-backend/internal/store"
)

// profileToMap flattens a Profile into the stored document shape.
func profileToMap(p *Profile) map[string]any {
	doc := map[string]any{
		"email":         p.Email,
		"firstName":     strPtrValue(p.FirstName),
		"lastName":      strPtrValue(p.LastName),
		"fullName":      p.FullName,
		"imageUrl":      p.AvatarURL,
		"emailVerified": p.EmailVerified,
		"createdAt":     p.CreatedAt,
		"updatedAt":     p.UpdatedAt,
		"lastSignInAt":  timePtrValue(p.LastSignInAt),
		"preferences":   preferencesToMap(p.Preferences),
		"stats": map[string]any{
			"notesCount":     p.Stats.NotesCount,
			"ideasCount":     p.Stats.IdeasCount,
			"resourcesCount": p.Stats.ResourcesCount,
		},
	}
	return doc
}

func preferencesToMap(p Preferences) map[string]any {
	return map[string]any{
		"theme":         p.Theme,
		"notifications": p.Notifications,
	}
}

func profileFromRecord(rec store.Record) *Profile {
	d := rec.Data
	p := &Profile{
		ID:            rec.ID,
		Email:         asString(d["email"]),
		FirstName:     asStringPtr(d["firstName"]),
		LastName:      asStringPtr(d["lastName"]),
		FullName:      asString(d["fullName"]),
		AvatarURL:     asString(d["imageUrl"]),
		EmailVerified: asBool(d["emailVerified"]),
		CreatedAt:     asTime(d["createdAt"]),
		UpdatedAt:     asTime(d["updatedAt"]),
		LastSignInAt:  asTimePtr(d["lastSignInAt"]),
		Preferences:   defaultPreferences(),
	}

	if prefs, ok := d["preferences"].(map[string]any); ok {
		if theme := asString(prefs["theme"]); theme != "" {
			p.Preferences.Theme = theme
		}
		if v, ok := prefs["notifications"].(bool); ok {
			p.Preferences.Notifications = v
		}
	}
	if stats, ok := d["stats"].(map[string]any); ok {
		p.Stats = Stats{
			NotesCount:     asInt64(stats["notesCount"]),
			IdeasCount:     asInt64(stats["ideasCount"]),
			ResourcesCount: asInt64(stats["resourcesCount"]),
		}
	}
	return p
}

func strPtrValue(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func timePtrValue(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asStringPtr(v any) *string {
	if s, ok := v.(string); ok {
		return &s
	}
	return nil
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func asTime(v any) time.Time {
	t, _ := v.(time.Time)
	return t
}

func asTimePtr(v any) *time.Time {
	if t, ok := v.(time.Time); ok {
		return &t
	}
	return nil
}

func asInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	}
	return 0
}
