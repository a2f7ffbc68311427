package store

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestConstraintValidation(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()

	if _, err := s.GetAll(ctx, "notes", Where("userId", Op("array-contains"), "u1")); err == nil {
		t.Fatal("expected error for unsupported operator")
	}

	if _, err := s.GetAll(ctx, "notes", Where("", OpEqual, "u1")); err == nil {
		t.Fatal("expected error for empty field")
	}

	if _, err := s.GetAll(ctx, "notes", OrderBy("createdAt", Direction("sideways"))); err == nil {
		t.Fatal("expected error for unsupported direction")
	}

	if _, err := s.GetAll(ctx, "notes", Limit(0)); err == nil {
		t.Fatal("expected error for non-positive limit")
	}

	var opErr *OpError
	_, err := s.GetAll(ctx, "notes", Limit(-1))
	if !errors.As(err, &opErr) {
		t.Fatalf("expected OpError, got %v", err)
	}
	if opErr.Collection != "notes" || opErr.Op != "query" {
		t.Errorf("unexpected OpError fields: %+v", opErr)
	}
}

func TestMemStoreCRUD(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()

	rec, err := s.Create(ctx, "notes", map[string]any{"title": "first"}, "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.ID == "" {
		t.Fatal("expected generated id")
	}

	got, err := s.GetByID(ctx, "notes", rec.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Data["title"] != "first" {
		t.Errorf("expected title 'first', got %v", got.Data["title"])
	}

	if err := s.Update(ctx, "notes", rec.ID, map[string]any{"title": "second"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ = s.GetByID(ctx, "notes", rec.ID)
	if got.Data["title"] != "second" {
		t.Errorf("expected updated title, got %v", got.Data["title"])
	}

	if err := s.Update(ctx, "notes", "missing", map[string]any{"title": "x"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound updating missing doc, got %v", err)
	}

	if err := s.Delete(ctx, "notes", rec.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.GetByID(ctx, "notes", rec.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestMemStoreQueryFilterSortLimit(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i, owner := range []string{"u1", "u1", "u2", "u1"} {
		_, err := s.Create(ctx, "notes", map[string]any{
			"userId":    owner,
			"title":     string(rune('a' + i)),
			"createdAt": base.Add(time.Duration(i) * time.Hour),
		}, "")
		if err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	recs, err := s.GetAll(ctx, "notes",
		Where("userId", OpEqual, "u1"),
		OrderBy("createdAt", Descending),
	)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("expected 3 records for u1, got %d", len(recs))
	}
	if recs[0].Data["title"] != "d" {
		t.Errorf("expected newest first, got %v", recs[0].Data["title"])
	}

	recs, err = s.GetAll(ctx, "notes",
		Where("userId", OpEqual, "u1"),
		OrderBy("createdAt", Ascending),
		Limit(2),
	)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(recs) != 2 || recs[0].Data["title"] != "a" {
		t.Errorf("unexpected limited ascending result: %+v", recs)
	}
}

func TestMemStoreIncrementCounterClampsAtZero(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()

	_, err := s.Create(ctx, "users", map[string]any{
		"stats": map[string]any{"notesCount": int64(1)},
	}, "u1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	n, err := s.IncrementCounter(ctx, "users", "u1", "stats.notesCount", 1)
	if err != nil {
		t.Fatalf("increment: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2, got %d", n)
	}

	for i := 0; i < 3; i++ {
		if n, err = s.IncrementCounter(ctx, "users", "u1", "stats.notesCount", -1); err != nil {
			t.Fatalf("decrement: %v", err)
		}
	}
	if n != 0 {
		t.Errorf("expected counter clamped at 0, got %d", n)
	}

	if _, err := s.IncrementCounter(ctx, "users", "missing", "stats.notesCount", 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
