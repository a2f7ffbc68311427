package store

import "fmt"

// Op is the closed set of comparison operators a query constraint may use.
// Anything outside this set is rejected when the query is built, not when it
// reaches the backend.
type Op string

const (
	OpEqual        Op = "=="
	OpNotEqual     Op = "!="
	OpLess         Op = "<"
	OpLessEqual    Op = "<="
	OpGreater      Op = ">"
	OpGreaterEqual Op = ">="
)

func (o Op) valid() bool {
	switch o {
	case OpEqual, OpNotEqual, OpLess, OpLessEqual, OpGreater, OpGreaterEqual:
		return true
	}
	return false
}

// Direction orders query results on a field.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

type constraintKind int

const (
	kindWhere constraintKind = iota
	kindOrderBy
	kindLimit
)

// Constraint is one composable query predicate: a field filter, an ordering
// directive, or a result limit.
type Constraint struct {
	kind      constraintKind
	field     string
	op        Op
	value     any
	direction Direction
	limit     int
}

// Where filters on field <op> value.
func Where(field string, op Op, value any) Constraint {
	return Constraint{kind: kindWhere, field: field, op: op, value: value}
}

// OrderBy sorts results on a field.
func OrderBy(field string, direction Direction) Constraint {
	return Constraint{kind: kindOrderBy, field: field, direction: direction}
}

// Limit caps the number of returned documents.
func Limit(n int) Constraint {
	return Constraint{kind: kindLimit, limit: n}
}

// validate rejects malformed constraints before any backend call is made.
func (c Constraint) validate() error {
	switch c.kind {
	case kindWhere:
		if c.field == "" {
			return fmt.Errorf("where: field is required")
		}
		if !c.op.valid() {
			return fmt.Errorf("where: unsupported operator %q", string(c.op))
		}
	case kindOrderBy:
		if c.field == "" {
			return fmt.Errorf("orderBy: field is required")
		}
		if c.direction != Ascending && c.direction != Descending {
			return fmt.Errorf("orderBy: unsupported direction %q", string(c.direction))
		}
	case kindLimit:
		if c.limit <= 0 {
			return fmt.Errorf("limit: must be positive, got %d", c.limit)
		}
	}
	return nil
}

func validateConstraints(cs []Constraint) error {
	for _, c := range cs {
		if err := c.validate(); err != nil {
			return err
		}
	}
	return nil
}
