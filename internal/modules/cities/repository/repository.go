package repository

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"

	"meteodb-server/internal/apperr"
	"meteodb-server/internal/modules/cities/types"
)

//go:embed sql/insert-city.sql
var insertCitySQL string

//go:embed sql/list-cities.sql
var listCitiesSQL string

//go:embed sql/list-cities-by-country.sql
var listCitiesByCountrySQL string

//go:embed sql/update-city.sql
var updateCitySQL string

//go:embed sql/delete-city.sql
var deleteCitySQL string

type CityRepository interface {
	Create(countryID int64, name string, lat, lon float64) (int64, error)
	List() ([]types.City, error)
	ListByCountry(countryID int64) ([]types.City, error)
	Update(id int64, c types.City) error
	Delete(id int64) error
}

type repositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) CityRepository {
	return &repositoryImpl{db: db}
}

// Create inserts a city and returns the generated id. A duplicate name and a
// missing country both fail the insert, and every insert failure is a
// conflict.
func (r *repositoryImpl) Create(countryID int64, name string, lat, lon float64) (int64, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, apperr.New(apperr.Conflict, err)
	}
	defer rollback(tx, "create city")

	var id int64
	if err := tx.QueryRow(insertCitySQL, countryID, name, lat, lon).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, apperr.New(apperr.Retrieval, err)
		}
		return 0, apperr.New(apperr.Conflict, fmt.Errorf("insert city %q: %w", name, err))
	}

	if err := tx.Commit(); err != nil {
		return 0, apperr.New(apperr.Conflict, err)
	}
	return id, nil
}

func (r *repositoryImpl) List() ([]types.City, error) {
	return r.queryCities(listCitiesSQL)
}

func (r *repositoryImpl) ListByCountry(countryID int64) ([]types.City, error) {
	return r.queryCities(listCitiesByCountrySQL, countryID)
}

func (r *repositoryImpl) queryCities(query string, args ...any) ([]types.City, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, apperr.New(apperr.Storage, err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("close cities rows", "error", err)
		}
	}()

	out := []types.City{}
	for rows.Next() {
		var c types.City
		if err := rows.Scan(&c.ID, &c.CountryID, &c.Name, &c.Lat, &c.Lon); err != nil {
			return nil, apperr.New(apperr.Storage, err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.New(apperr.Storage, err)
	}
	return out, nil
}

// Update replaces the full row addressed by id, the body id included.
// Updating an absent row is a successful no-op.
func (r *repositoryImpl) Update(id int64, c types.City) error {
	tx, err := r.db.Begin()
	if err != nil {
		return apperr.New(apperr.Storage, err)
	}
	defer rollback(tx, "update city")

	if _, err := tx.Exec(updateCitySQL, c.ID, c.CountryID, c.Name, c.Lat, c.Lon, id); err != nil {
		return apperr.New(apperr.Storage, fmt.Errorf("update city id=%d: %w", id, err))
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
	defer rollback(tx, "delete city")

	if _, err := tx.Exec(deleteCitySQL, id); err != nil {
		return apperr.New(apperr.Storage, fmt.Errorf("delete city id=%d: %w", id, err))
	}

	if err := tx.Commit(); err != nil {
		return apperr.New(apperr.Storage, err)
	}
	return nil
}

func rollback(tx *sql.Tx, op string) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		slog.Error("rollback failed", "op", op, "error", err)
	}
}
