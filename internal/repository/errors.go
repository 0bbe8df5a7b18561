package repository

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

var (
	// ErrDuplicate is returned when a unique constraint rejects a write.
	ErrDuplicate = errors.New("duplicate value")
	// ErrReferenced is returned when a row cannot be removed while other rows point at it.
	ErrReferenced = errors.New("row is still referenced")
	// ErrUnknownReference is returned when a write points at a row that does not exist.
	ErrUnknownReference = errors.New("referenced row does not exist")
)

func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// translateWriteError maps constraint violations onto repository sentinels so services
// never inspect driver errors.
func translateWriteError(err error, deleting bool) error {
	switch pqCode(err) {
	case pqUniqueViolation:
		return ErrDuplicate
	case pqForeignKeyViolation:
		if deleting {
			return ErrReferenced
		}
		return ErrUnknownReference
	}
	return err
}

func expectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
