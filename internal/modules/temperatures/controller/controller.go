package controller

import (
	"net/http"

	"meteodb-server/internal/modules/temperatures/repository"
)

type TemperatureController interface {
	RegisterRoutes(mux *http.ServeMux)
}

type temperatureControllerImpl struct {
	repository repository.TemperatureRepository
}

func NewTemperatureController(repository repository.TemperatureRepository) TemperatureController {
	return &temperatureControllerImpl{repository: repository}
}

func (c *temperatureControllerImpl) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/temperatures", c.handleCreate)
	mux.HandleFunc("GET /api/temperatures", c.handleFiltered)
	mux.HandleFunc("PUT /api/temperatures/{id}", c.handleUpdate)
	mux.HandleFunc("DELETE /api/temperatures/{id}", c.handleDelete)
	mux.HandleFunc("GET /api/temperatures/cities/{id}", c.handleByCity)
	mux.HandleFunc("GET /api/temperatures/countries/{id}", c.handleByCountry)
}
