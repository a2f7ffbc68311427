package content

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/sparknest-app/sparknest-backend/internal/store"
	"github.com/sparknest-app/sparknest-backend/internal/users"
)

const (
	notesCollection     = "notes"
	ideasCollection     = "businessIdeas"
	resourcesCollection = "libraryResources"
)

// Service owns CRUD for the three content collections. Creates and deletes
// bump the owner's usage counters after the store write succeeds; a counter
// failure is logged but does not undo the content write.
type Service struct {
	store store.Store
	users *users.Service
}

func NewService(st store.Store, userSvc *users.Service) *Service {
	return &Service{store: st, users: userSvc}
}

func (s *Service) bumpStats(ctx context.Context, userID string, kind users.StatKind, delta int64) {
	if err := s.users.UpdateStats(ctx, userID, kind, delta); err != nil {
		log.Printf("[warn] operation=update_stats user_id=%s kind=%s delta=%d error=%v", userID, kind, delta, err)
	}
}

// ownedRecord fetches a document and enforces ownership; foreign documents
// are indistinguishable from missing ones.
func (s *Service) ownedRecord(ctx context.Context, collection, userID, id string) (store.Record, error) {
	rec, err := s.store.GetByID(ctx, collection, id)
	if errors.Is(err, store.ErrNotFound) {
		return store.Record{}, ErrNotFound
	}
	if err != nil {
		return store.Record{}, err
	}
	if owner, _ := rec.Data["userId"].(string); owner != userID {
		return store.Record{}, ErrNotFound
	}
	return rec, nil
}

func (s *Service) listByOwner(ctx context.Context, collection, userID string) ([]store.Record, error) {
	return s.store.GetAll(ctx, collection,
		store.Where("userId", store.OpEqual, userID),
		store.OrderBy("createdAt", store.Descending),
	)
}

// ---- notes ----

func (s *Service) CreateNote(ctx context.Context, userID string, in NoteInput) (*Note, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	note := &Note{
		UserID:    userID,
		Title:     in.Title,
		Content:   in.Content,
		Tags:      normalizeTags(in.Tags),
		AudioURL:  in.AudioURL,
		CreatedAt: now,
		UpdatedAt: now,
	}

	rec, err := s.store.Create(ctx, notesCollection, noteToMap(note), "")
	if err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}
	note.ID = rec.ID

	s.bumpStats(ctx, userID, users.StatNotes, 1)
	return note, nil
}

func (s *Service) ListNotes(ctx context.Context, userID string) ([]*Note, error) {
	recs, err := s.listByOwner(ctx, notesCollection, userID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	out := make([]*Note, len(recs))
	for i, rec := range recs {
		out[i] = noteFromRecord(rec)
	}
	return out, nil
}

func (s *Service) GetNote(ctx context.Context, userID, id string) (*Note, error) {
	rec, err := s.ownedRecord(ctx, notesCollection, userID, id)
	if err != nil {
		return nil, err
	}
	return noteFromRecord(rec), nil
}

func (s *Service) UpdateNote(ctx context.Context, userID, id string, in NoteInput) (*Note, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	rec, err := s.ownedRecord(ctx, notesCollection, userID, id)
	if err != nil {
		return nil, err
	}

	note := noteFromRecord(rec)
	note.Title = in.Title
	note.Content = in.Content
	note.Tags = normalizeTags(in.Tags)
	note.AudioURL = in.AudioURL
	note.UpdatedAt = time.Now().UTC()

	if err := s.store.Update(ctx, notesCollection, id, noteToMap(note)); err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}
	return note, nil
}

func (s *Service) DeleteNote(ctx context.Context, userID, id string) error {
	if _, err := s.ownedRecord(ctx, notesCollection, userID, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, notesCollection, id); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}

	s.bumpStats(ctx, userID, users.StatNotes, -1)
	return nil
}

// ---- business ideas ----

func (s *Service) CreateIdea(ctx context.Context, userID string, in IdeaInput) (*BusinessIdea, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	idea := &BusinessIdea{
		UserID:           userID,
		Title:            in.Title,
		Description:      in.Description,
		Category:         in.Category,
		TargetMarket:     in.TargetMarket,
		FeasibilityScore: in.FeasibilityScore,
		Status:           IdeaStatus(in.Status),
		Tags:             normalizeTags(in.Tags),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	rec, err := s.store.Create(ctx, ideasCollection, ideaToMap(idea), "")
	if err != nil {
		return nil, fmt.Errorf("create idea: %w", err)
	}
	idea.ID = rec.ID

	s.bumpStats(ctx, userID, users.StatIdeas, 1)
	return idea, nil
}

func (s *Service) ListIdeas(ctx context.Context, userID string) ([]*BusinessIdea, error) {
	recs, err := s.listByOwner(ctx, ideasCollection, userID)
	if err != nil {
		return nil, fmt.Errorf("list ideas: %w", err)
	}
	out := make([]*BusinessIdea, len(recs))
	for i, rec := range recs {
		out[i] = ideaFromRecord(rec)
	}
	return out, nil
}

func (s *Service) GetIdea(ctx context.Context, userID, id string) (*BusinessIdea, error) {
	rec, err := s.ownedRecord(ctx, ideasCollection, userID, id)
	if err != nil {
		return nil, err
	}
	return ideaFromRecord(rec), nil
}

func (s *Service) UpdateIdea(ctx context.Context, userID, id string, in IdeaInput) (*BusinessIdea, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	rec, err := s.ownedRecord(ctx, ideasCollection, userID, id)
	if err != nil {
		return nil, err
	}

	idea := ideaFromRecord(rec)
	idea.Title = in.Title
	idea.Description = in.Description
	idea.Category = in.Category
	idea.TargetMarket = in.TargetMarket
	idea.FeasibilityScore = in.FeasibilityScore
	idea.Status = IdeaStatus(in.Status)
	idea.Tags = normalizeTags(in.Tags)
	idea.UpdatedAt = time.Now().UTC()

	if err := s.store.Update(ctx, ideasCollection, id, ideaToMap(idea)); err != nil {
		return nil, fmt.Errorf("update idea: %w", err)
	}
	return idea, nil
}

func (s *Service) DeleteIdea(ctx context.Context, userID, id string) error {
	if _, err := s.ownedRecord(ctx, ideasCollection, userID, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, ideasCollection, id); err != nil {
		return fmt.Errorf("delete idea: %w", err)
	}

	s.bumpStats(ctx, userID, users.StatIdeas, -1)
	return nil
}

// ---- library resources ----

func (s *Service) CreateResource(ctx context.Context, userID string, in ResourceInput) (*LibraryResource, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	res := &LibraryResource{
		UserID:      userID,
		Title:       in.Title,
		URL:         in.URL,
		Description: in.Description,
		Type:        ResourceType(in.Type),
		Tags:        normalizeTags(in.Tags),
		IsFavorite:  in.IsFavorite,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	rec, err := s.store.Create(ctx, resourcesCollection, resourceToMap(res), "")
	if err != nil {
		return nil, fmt.Errorf("create resource: %w", err)
	}
	res.ID = rec.ID

	s.bumpStats(ctx, userID, users.StatResources, 1)
	return res, nil
}

func (s *Service) ListResources(ctx context.Context, userID string) ([]*LibraryResource, error) {
	recs, err := s.listByOwner(ctx, resourcesCollection, userID)
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	out := make([]*LibraryResource, len(recs))
	for i, rec := range recs {
		out[i] = resourceFromRecord(rec)
	}
	return out, nil
}

func (s *Service) GetResource(ctx context.Context, userID, id string) (*LibraryResource, error) {
	rec, err := s.ownedRecord(ctx, resourcesCollection, userID, id)
	if err != nil {
		return nil, err
	}
	return resourceFromRecord(rec), nil
}

func (s *Service) UpdateResource(ctx context.Context, userID, id string, in ResourceInput) (*LibraryResource, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	rec, err := s.ownedRecord(ctx, resourcesCollection, userID, id)
	if err != nil {
		return nil, err
	}

	res := resourceFromRecord(rec)
	res.Title = in.Title
	res.URL = in.URL
	res.Description = in.Description
	res.Type = ResourceType(in.Type)
	res.Tags = normalizeTags(in.Tags)
	res.IsFavorite = in.IsFavorite
	res.UpdatedAt = time.Now().UTC()

	if err := s.store.Update(ctx, resourcesCollection, id, resourceToMap(res)); err != nil {
		return nil, fmt.Errorf("update resource: %w", err)
	}
	return res, nil
}

// ToggleFavorite flips the favorite flag without touching other fields.
func (s *Service) ToggleFavorite(ctx context.Context, userID, id string) (*LibraryResource, error) {
	rec, err := s.ownedRecord(ctx, resourcesCollection, userID, id)
	if err != nil {
		return nil, err
	}

	res := resourceFromRecord(rec)
	res.IsFavorite = !res.IsFavorite
	res.UpdatedAt = time.Now().UTC()

	err = s.store.Update(ctx, resourcesCollection, id, map[string]any{
		"isFavorite": res.IsFavorite,
		"updatedAt":  res.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("toggle favorite: %w", err)
	}
	return res, nil
}

func (s *Service) DeleteResource(ctx context.Context, userID, id string) error {
	if _, err := s.ownedRecord(ctx, resourcesCollection, userID, id); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, resourcesCollection, id); err != nil {
		return fmt.Errorf("delete resource: %w", err)
	}

	s.bumpStats(ctx, userID, users.StatResources, -1)
	return nil
}

// normalizeTags drops empty entries but preserves the user's ordering.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
