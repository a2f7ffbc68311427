package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreStore implements Store on top of a Firestore client. The client is
// constructed once at bootstrap and injected; this type holds no other state.
type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) Create(ctx context.Context, collection string, data map[string]any, id string) (Record, error) {
	col := s.client.Collection(collection)

	if id == "" {
		ref, _, err := col.Add(ctx, data)
		if err != nil {
			return Record{}, &OpError{Collection: collection, Op: "create", Err: err}
		}
		return Record{ID: ref.ID, Data: data}, nil
	}

	// Caller-chosen id overwrites any existing document, matching the
	// document-store contract.
	if _, err := col.Doc(id).Set(ctx, data); err != nil {
		return Record{}, &OpError{Collection: collection, Op: "create", Err: err}
	}
	return Record{ID: id, Data: data}, nil
}

func (s *FirestoreStore) GetByID(ctx context.Context, collection, id string) (Record, error) {
	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, &OpError{Collection: collection, Op: "get", Err: err}
	}
	return Record{ID: snap.Ref.ID, Data: snap.Data()}, nil
}

func (s *FirestoreStore) GetAll(ctx context.Context, collection string, constraints ...Constraint) ([]Record, error) {
	if err := validateConstraints(constraints); err != nil {
		return nil, &OpError{Collection: collection, Op: "query", Err: err}
	}

	q := s.client.Collection(collection).Query
	for _, c := range constraints {
		switch c.kind {
		case kindWhere:
			q = q.Where(c.field, string(c.op), c.value)
		case kindOrderBy:
			dir := firestore.Asc
			if c.direction == Descending {
				dir = firestore.Desc
			}
			q = q.OrderBy(c.field, dir)
		case kindLimit:
			q = q.Limit(c.limit)
		}
	}

	it := q.Documents(ctx)
	defer it.Stop()

	var out []Record
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, &OpError{Collection: collection, Op: "query", Err: err}
		}
		out = append(out, Record{ID: snap.Ref.ID, Data: snap.Data()})
	}
	return out, nil
}

func (s *FirestoreStore) Update(ctx context.Context, collection, id string, data map[string]any) error {
	updates := make([]firestore.Update, 0, len(data))
	for k, v := range data {
		updates = append(updates, firestore.Update{Path: k, Value: v})
	}

	if _, err := s.client.Collection(collection).Doc(id).Update(ctx, updates); err != nil {
		if status.Code(err) == codes.NotFound {
			return ErrNotFound
		}
		return &OpError{Collection: collection, Op: "update", Err: err}
	}
	return nil
}

func (s *FirestoreStore) Delete(ctx context.Context, collection, id string) error {
	if _, err := s.client.Collection(collection).Doc(id).Delete(ctx); err != nil {
		return &OpError{Collection: collection, Op: "delete", Err: err}
	}
	return nil
}

// DeleteAll batches the deletes through a BulkWriter so one collection's
// fan-out does not issue hundreds of sequential round trips.
func (s *FirestoreStore) DeleteAll(ctx context.Context, collection string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	bw := s.client.BulkWriter(ctx)
	jobs := make([]*firestore.BulkWriterJob, 0, len(ids))
	for _, id := range ids {
		job, err := bw.Delete(s.client.Collection(collection).Doc(id))
		if err != nil {
			bw.End()
			return &OpError{Collection: collection, Op: "deleteAll", Err: err}
		}
		jobs = append(jobs, job)
	}
	bw.End()

	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			return &OpError{Collection: collection, Op: "deleteAll", Err: err}
		}
	}
	return nil
}

// IncrementCounter runs a transaction so concurrent writers cannot lose an
// increment. The counter is clamped at zero on the way down.
func (s *FirestoreStore) IncrementCounter(ctx context.Context, collection, id, field string, delta int64) (int64, error) {
	ref := s.client.Collection(collection).Doc(id)

	var next int64
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			return err
		}

		current := int64(0)
		if v, err := snap.DataAt(field); err == nil {
			switch n := v.(type) {
			case int64:
				current = n
			case float64:
				current = int64(n)
			}
		}

		next = current + delta
		if next < 0 {
			next = 0
		}

		return tx.Update(ref, []firestore.Update{
			{Path: field, Value: next},
			{Path: "updatedAt", Value: time.Now().UTC()},
		})
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return 0, ErrNotFound
		}
		return 0, &OpError{Collection: collection, Op: "increment", Err: err}
	}
	return next, nil
}
