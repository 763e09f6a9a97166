package repository

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"meteodb-server/internal/apperr"
	"meteodb-server/internal/modules/temperatures/types"
)

//go:embed sql/insert-temperature.sql
var insertTemperatureSQL string

//go:embed sql/insert-temperature-at.sql
var insertTemperatureAtSQL string

//go:embed sql/update-temperature.sql
var updateTemperatureSQL string

//go:embed sql/delete-temperature.sql
var deleteTemperatureSQL string

//go:embed sql/list-temperatures-filtered.sql
var listFilteredSQL string

//go:embed sql/list-temperatures-by-city.sql
var listByCitySQL string

//go:embed sql/list-temperatures-by-country.sql
var listByCountrySQL string

type TemperatureRepository interface {
	Create(cityID int64, value float64) (int64, error)
	CreateAt(cityID int64, value float64, ts time.Time) (int64, error)
	Filtered(lat, lon *float64, from, until *string) ([]types.Temperature, error)
	ByCity(cityID int64, from, until *string) ([]types.Temperature, error)
	ByCountry(countryID int64, from, until *string) ([]types.Temperature, error)
	Update(id, bodyID, cityID int64, value float64) error
	Delete(id int64) error
}

type repositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) TemperatureRepository {
	return &repositoryImpl{db: db}
}

// Create inserts a reading with a server-assigned timestamp (the column
// default) and returns the generated id.
func (r *repositoryImpl) Create(cityID int64, value float64) (int64, error) {
	return r.insert(insertTemperatureSQL, cityID, value)
}

// CreateAt inserts a reading carrying an explicit timestamp, used by the
// ingest path when the device reports its own clock.
func (r *repositoryImpl) CreateAt(cityID int64, value float64, ts time.Time) (int64, error) {
	return r.insert(insertTemperatureAtSQL, cityID, value, ts.UTC().Format(time.RFC3339Nano))
}

func (r *repositoryImpl) insert(query string, args ...any) (int64, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, apperr.New(apperr.Conflict, err)
	}
	defer rollback(tx, "create temperature")

	var id int64
	if err := tx.QueryRow(query, args...).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, apperr.New(apperr.Retrieval, err)
		}
		return 0, apperr.New(apperr.Conflict, fmt.Errorf("insert temperature: %w", err))
	}

	if err := tx.Commit(); err != nil {
		return 0, apperr.New(apperr.Conflict, err)
	}
	return id, nil
}

func (r *repositoryImpl) Filtered(lat, lon *float64, from, until *string) ([]types.Temperature, error) {
	return r.queryTemperatures(listFilteredSQL, lat, lon, from, until)
}

func (r *repositoryImpl) ByCity(cityID int64, from, until *string) ([]types.Temperature, error) {
	return r.queryTemperatures(listByCitySQL, cityID, from, until)
}

func (r *repositoryImpl) ByCountry(countryID int64, from, until *string) ([]types.Temperature, error) {
	return r.queryTemperatures(listByCountrySQL, countryID, from, until)
}

func (r *repositoryImpl) queryTemperatures(query string, args ...any) ([]types.Temperature, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, apperr.New(apperr.Storage, err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("close temperatures rows", "error", err)
		}
	}()

	out := []types.Temperature{}
	for rows.Next() {
		var t types.Temperature
		var ts string
		if err := rows.Scan(&t.ID, &t.Value, &ts); err != nil {
			return nil, apperr.New(apperr.Storage, err)
		}
		t.Timestamp = formatDate(ts)
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.New(apperr.Storage, err)
	}
	return out, nil
}

// Update replaces the addressed row's id, city and value; the stored timestamp
// is untouched. Updating an absent row is a successful no-op.
func (r *repositoryImpl) Update(id, bodyID, cityID int64, value float64) error {
	tx, err := r.db.Begin()
	if err != nil {
		return apperr.New(apperr.Storage, err)
	}
	defer rollback(tx, "update temperature")

	if _, err := tx.Exec(updateTemperatureSQL, bodyID, cityID, value, id); err != nil {
		return apperr.New(apperr.Storage, fmt.Errorf("update temperature id=%d: %w", id, err))
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
	defer rollback(tx, "delete temperature")

	if _, err := tx.Exec(deleteTemperatureSQL, id); err != nil {
		return apperr.New(apperr.Storage, fmt.Errorf("delete temperature id=%d: %w", id, err))
	}

	if err := tx.Commit(); err != nil {
		return apperr.New(apperr.Storage, err)
	}
	return nil
}

// formatDate renders a stored timestamp as YYYY-MM-DD. Stored values are
// RFC3339 with or without fractional seconds; anything else is returned as-is
// rather than dropped.
func formatDate(ts string) string {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, ts); err == nil {
			return t.Format("2006-01-02")
		}
	}
	slog.Warn("unparseable stored timestamp", "ts", ts)
	return ts
}

func rollback(tx *sql.Tx, op string) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		slog.Error("rollback failed", "op", op, "error", err)
	}
}
