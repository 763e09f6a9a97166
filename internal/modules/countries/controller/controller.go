package controller

import (
	"net/http"

	"meteodb-server/internal/modules/countries/repository"
)

type CountryController interface {
	RegisterRoutes(mux *http.ServeMux)
}

type countryControllerImpl struct {
	repository repository.CountryRepository
}

func NewCountryController(repository repository.CountryRepository) CountryController {
	return &countryControllerImpl{repository: repository}
}

func (c *countryControllerImpl) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/countries", c.handleCreate)
	mux.HandleFunc("GET /api/countries", c.handleList)
	mux.HandleFunc("PUT /api/countries/{id}", c.handleUpdate)
	mux.HandleFunc("DELETE /api/countries/{id}", c.handleDelete)
}
