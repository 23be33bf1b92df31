package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	appErrors "github.com/unclebandit/creatorhub-backend/internal/errors"
)

// Order selects the column and direction of a list call. Columns are checked
// against a per-table whitelist before they reach SQL.
type Order struct {
	Column    string
	Ascending bool
}

// Desc orders by column, newest/largest first.
func Desc(column string) Order { return Order{Column: column} }

func (o Order) clause(def string, allowed ...string) (string, error) {
	column := o.Column
	if column == "" {
		column = def
	}
	ok := false
	for _, a := range allowed {
		if a == column {
			ok = true
			break
		}
	}
	if !ok {
		return "", appErrors.NewValidation("order", fmt.Sprintf("cannot order by %q", column))
	}
	dir := "DESC"
	if o.Ascending {
		dir = "ASC"
	}
	return fmt.Sprintf(" ORDER BY %s %s", column, dir), nil
}

func newID() string { return uuid.NewString() }

func now() time.Time { return time.Now().UTC() }

// requireOwner guards every owner-scoped call: no identity, no query.
func requireOwner(ownerID string) error {
	if strings.TrimSpace(ownerID) == "" {
		return appErrors.ErrUnauthenticated
	}
	return nil
}

// expectOne turns a zero-row write into a not-found error. Rows owned by
// someone else are indistinguishable from missing rows.
func expectOne(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return appErrors.NewNotFound(entity, id)
	}
	return nil
}

// checkID reports a malformed row id as a missing row. Every table is keyed
// by UUID, so such an id can never match.
func checkID(entity, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return appErrors.NewNotFound(entity, id)
	}
	return nil
}

// checkRef rejects a malformed reference to another row.
func checkRef(field, entity, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return appErrors.NewValidation(field, "unknown "+entity)
	}
	return nil
}

// refOr turns a foreign key violation into a validation error on field.
func refOr(err error, field, entity string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23503" {
		return appErrors.NewValidation(field, "unknown "+entity)
	}
	return err
}

func notFoundOr(err error, entity, id string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.NewNotFound(entity, id)
	}
	return err
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
