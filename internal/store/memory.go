package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemStore is an in-memory Store with the same observable semantics as the
// Firestore implementation. It exists so service tests can run without an
// emulator.
type MemStore struct {
	mu   sync.Mutex
	cols map[string]map[string]map[string]any
}

func NewMemStore() *MemStore {
	return &MemStore{cols: make(map[string]map[string]map[string]any)}
}

func (s *MemStore) collection(name string) map[string]map[string]any {
	col, ok := s.cols[name]
	if !ok {
		col = make(map[string]map[string]any)
		s.cols[name] = col
	}
	return col
}

func (s *MemStore) Create(ctx context.Context, collection string, data map[string]any, id string) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id == "" {
		id = uuid.New().String()
	}
	s.collection(collection)[id] = deepCopy(data)
	return Record{ID: id, Data: deepCopy(data)}, nil
}

func (s *MemStore) GetByID(ctx context.Context, collection, id string) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.collection(collection)[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return Record{ID: id, Data: deepCopy(doc)}, nil
}

func (s *MemStore) GetAll(ctx context.Context, collection string, constraints ...Constraint) ([]Record, error) {
	if err := validateConstraints(constraints); err != nil {
		return nil, &OpError{Collection: collection, Op: "query", Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Record
	for id, doc := range s.collection(collection) {
		matches := true
		for _, c := range constraints {
			if c.kind == kindWhere && !matchWhere(doc, c) {
				matches = false
				break
			}
		}
		if matches {
			out = append(out, Record{ID: id, Data: deepCopy(doc)})
		}
	}

	for _, c := range constraints {
		if c.kind == kindOrderBy {
			field, desc := c.field, c.direction == Descending
			sort.SliceStable(out, func(i, j int) bool {
				less := compareValues(fieldAt(out[i].Data, field), fieldAt(out[j].Data, field)) < 0
				if desc {
					return !less
				}
				return less
			})
		}
	}

	for _, c := range constraints {
		if c.kind == kindLimit && len(out) > c.limit {
			out = out[:c.limit]
		}
	}
	return out, nil
}

func (s *MemStore) Update(ctx context.Context, collection, id string, data map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.collection(collection)[id]
	if !ok {
		return ErrNotFound
	}
	for k, v := range data {
		setFieldAt(doc, k, deepCopyValue(v))
	}
	return nil
}

func (s *MemStore) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.collection(collection), id)
	return nil
}

func (s *MemStore) DeleteAll(ctx context.Context, collection string, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	col := s.collection(collection)
	for _, id := range ids {
		delete(col, id)
	}
	return nil
}

func (s *MemStore) IncrementCounter(ctx context.Context, collection, id, field string, delta int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.collection(collection)[id]
	if !ok {
		return 0, ErrNotFound
	}

	current := int64(0)
	switch n := fieldAt(doc, field).(type) {
	case int64:
		current = n
	case int:
		current = int64(n)
	case float64:
		current = int64(n)
	}

	next := current + delta
	if next < 0 {
		next = 0
	}
	setFieldAt(doc, field, next)
	setFieldAt(doc, "updatedAt", time.Now().UTC())
	return next, nil
}

func matchWhere(doc map[string]any, c Constraint) bool {
	cmp := compareValues(fieldAt(doc, c.field), c.value)
	switch c.op {
	case OpEqual:
		return cmp == 0
	case OpNotEqual:
		return cmp != 0
	case OpLess:
		return cmp < 0
	case OpLessEqual:
		return cmp <= 0
	case OpGreater:
		return cmp > 0
	case OpGreaterEqual:
		return cmp >= 0
	}
	return false
}

// fieldAt resolves a dotted field path into nested maps.
func fieldAt(doc map[string]any, path string) any {
	parts := strings.Split(path, ".")
	var cur any = doc
	for _, p := range parts {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = m[p]
	}
	return cur
}

func setFieldAt(doc map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	cur := doc
	for _, p := range parts[:len(parts)-1] {
		next, ok := cur[p].(map[string]any)
		if !ok {
			next = make(map[string]any)
			cur[p] = next
		}
		cur = next
	}
	cur[parts[len(parts)-1]] = value
}

func compareValues(a, b any) int {
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		if !ok {
			return -1
		}
		return strings.Compare(av, bv)
	case bool:
		bv, ok := b.(bool)
		if !ok || av == bv {
			return 0
		}
		if !av {
			return -1
		}
		return 1
	case time.Time:
		bv, ok := b.(time.Time)
		if !ok {
			return -1
		}
		return av.Compare(bv)
	case int, int64, float64:
		return compareNumbers(toFloat(a), b)
	}
	if a == nil && b == nil {
		return 0
	}
	if a == nil {
		return -1
	}
	return 1
}

func compareNumbers(av float64, b any) int {
	switch b.(type) {
	case int, int64, float64:
	default:
		return -1
	}
	bv := toFloat(b)
	switch {
	case av < bv:
		return -1
	case av > bv:
		return 1
	}
	return 0
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case float64:
		return n
	}
	return 0
}

func deepCopy(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = deepCopyValue(v)
	}
	return out
}

func deepCopyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return deepCopy(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = deepCopyValue(e)
		}
		return out
	case []string:
		out := make([]string, len(t))
		copy(out, t)
		return out
	}
	return v
}
