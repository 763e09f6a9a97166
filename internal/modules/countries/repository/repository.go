package repository

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"

	"meteodb-server/internal/apperr"
	"meteodb-server/internal/modules/countries/types"
)

//go:embed sql/insert-country.sql
var insertCountrySQL string

//go:embed sql/list-countries.sql
var listCountriesSQL string

//go:embed sql/update-country.sql
var updateCountrySQL string

//go:embed sql/delete-country.sql
var deleteCountrySQL string

type CountryRepository interface {
	Create(name string, lat, lon float64) (int64, error)
	List() ([]types.Country, error)
	Update(id int64, c types.Country) error
	Delete(id int64) error
}

type repositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) CountryRepository {
	return &repositoryImpl{db: db}
}

// Create inserts a country and returns the generated id. Every storage
// failure during the insert is reported as a conflict; only a missing
// generated id maps to a retrieval failure.
func (r *repositoryImpl) Create(name string, lat, lon float64) (int64, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, apperr.New(apperr.Conflict, err)
	}
	defer rollback(tx, "create country")

	var id int64
	if err := tx.QueryRow(insertCountrySQL, name, lat, lon).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, apperr.New(apperr.Retrieval, err)
		}
		return 0, apperr.New(apperr.Conflict, fmt.Errorf("insert country %q: %w", name, err))
	}

	if err := tx.Commit(); err != nil {
		return 0, apperr.New(apperr.Conflict, err)
	}
	return id, nil
}

func (r *repositoryImpl) List() ([]types.Country, error) {
	rows, err := r.db.Query(listCountriesSQL)
	if err != nil {
		return nil, apperr.New(apperr.Storage, err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("close countries rows", "error", err)
		}
	}()

	out := []types.Country{}
	for rows.Next() {
		var c types.Country
		if err := rows.Scan(&c.ID, &c.Name, &c.Lat, &c.Lon); err != nil {
			return nil, apperr.New(apperr.Storage, err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.New(apperr.Storage, err)
	}
	return out, nil
}

// Update replaces the full row addressed by id, the body id included. The
// affected-row count is deliberately not checked: updating an absent row is a
// successful no-op.
func (r *repositoryImpl) Update(id int64, c types.Country) error {
	tx, err := r.db.Begin()
	if err != nil {
		return apperr.New(apperr.Storage, err)
	}
	defer rollback(tx, "update country")

	if _, err := tx.Exec(updateCountrySQL, c.ID, c.Name, c.Lat, c.Lon, id); err != nil {
		return apperr.New(apperr.Storage, fmt.Errorf("update country id=%d: %w", id, err))
	}

	if err := tx.Commit(); err != nil {
		return apperr.New(apperr.Storage, err)
	}
	return nil
}

// Delete removes the row addressed by id. Deleting an absent row is a
// successful no-op.
func (r *repositoryImpl) Delete(id int64) error {
	tx, err := r.db.Begin()
	if err != nil {
		return apperr.New(apperr.Storage, err)
	}
	defer rollback(tx, "delete country")

	if _, err := tx.Exec(deleteCountrySQL, id); err != nil {
		return apperr.New(apperr.Storage, fmt.Errorf("delete country id=%d: %w", id, err))
	}

	if err := tx.Commit(); err != nil {
		return apperr.New(apperr.Storage, err)
	}
	return nil
}

// rollback releases the transaction on error paths; after a successful commit
// it is a no-op.
func rollback(tx *sql.Tx, op string) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		slog.Error("rollback failed", "op", op, "error", err)
	}
}
