package content

import (
	"time"

	"github.com/sparknest-app/sparknest-backend/internal/store"
)

func noteToMap(n *Note) map[string]any {
	return map[string]any{
		"userId":    n.UserID,
		"title":     n.Title,
		"content":   n.Content,
		"tags":      tagsToAny(n.Tags),
		"audioUrl":  n.AudioURL,
		"createdAt": n.CreatedAt,
		"updatedAt": n.UpdatedAt,
	}
}

func noteFromRecord(rec store.Record) *Note {
	d := rec.Data
	return &Note{
		ID:        rec.ID,
		UserID:    asString(d["userId"]),
		Title:     asString(d["title"]),
		Content:   asString(d["content"]),
		Tags:      asTags(d["tags"]),
		AudioURL:  asString(d["audioUrl"]),
		CreatedAt: asTime(d["createdAt"]),
		UpdatedAt: asTime(d["updatedAt"]),
	}
}

func ideaToMap(i *BusinessIdea) map[string]any {
	return map[string]any{
		"userId":           i.UserID,
		"title":            i.Title,
		"description":      i.Description,
		"category":         i.Category,
		"targetMarket":     i.TargetMarket,
		"feasibilityScore": int64(i.FeasibilityScore),
		"status":           string(i.Status),
		"tags":             tagsToAny(i.Tags),
		"createdAt":        i.CreatedAt,
		"updatedAt":        i.UpdatedAt,
	}
}

func ideaFromRecord(rec store.Record) *BusinessIdea {
	d := rec.Data
	return &BusinessIdea{
		ID:               rec.ID,
		UserID:           asString(d["userId"]),
		Title:            asString(d["title"]),
		Description:      asString(d["description"]),
		Category:         asString(d["category"]),
		TargetMarket:     asString(d["targetMarket"]),
		FeasibilityScore: int(asInt64(d["feasibilityScore"])),
		Status:           IdeaStatus(asString(d["status"])),
		Tags:             asTags(d["tags"]),
		CreatedAt:        asTime(d["createdAt"]),
		UpdatedAt:        asTime(d["updatedAt"]),
	}
}

func resourceToMap(r *LibraryResource) map[string]any {
	return map[string]any{
		"userId":      r.UserID,
		"title":       r.Title,
		"url":         r.URL,
		"description": r.Description,
		"type":        string(r.Type),
		"tags":        tagsToAny(r.Tags),
		"isFavorite":  r.IsFavorite,
		"createdAt":   r.CreatedAt,
		"updatedAt":   r.UpdatedAt,
	}
}

func resourceFromRecord(rec store.Record) *LibraryResource {
	d := rec.Data
	return &LibraryResource{
		ID:          rec.ID,
		UserID:      asString(d["userId"]),
		Title:       asString(d["title"]),
		URL:         asString(d["url"]),
		Description: asString(d["description"]),
		Type:        ResourceType(asString(d["type"])),
		Tags:        asTags(d["tags"]),
		IsFavorite:  asBool(d["isFavorite"]),
		CreatedAt:   asTime(d["createdAt"]),
		UpdatedAt:   asTime(d["updatedAt"]),
	}
}

// tagsToAny stores tags as []any, matching what Firestore hands back for
// array fields so both implementations round-trip identically.
func tagsToAny(tags []string) []any {
	out := make([]any, len(tags))
	for i, t := range tags {
		out[i] = t
	}
	return out
}

func asTags(v any) []string {
	switch t := v.(type) {
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return []string{}
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func asTime(v any) time.Time {
	t, _ := v.(time.Time)
	return t
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
