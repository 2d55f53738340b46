package repository

import (
	"database/sql"
	"fmt"
)

// requireRowsAffected maps zero-row writes onto sql.ErrNoRows so services
// can surface a not-found error.
func requireRowsAffected(result sql.Result, entity string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check affected %s rows: %w", entity, err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
