package controller

import (
	"net/http"

	"meteodb-server/internal/modules/cities/repository"
)

type CityController interface {
	RegisterRoutes(mux *http.ServeMux)
}

type cityControllerImpl struct {
	repository repository.CityRepository
}

func NewCityController(repository repository.CityRepository) CityController {
	return &cityControllerImpl{repository: repository}
}

func (c *cityControllerImpl) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/cities", c.handleCreate)
	mux.HandleFunc("GET /api/cities", c.handleList)
	mux.HandleFunc("PUT /api/cities/{id}", c.handleUpdate)
	mux.HandleFunc("DELETE /api/cities/{id}", c.handleDelete)
	mux.HandleFunc("GET /api/cities/country/{id}", c.handleListByCountry)
}
