package cities

import (
	"database/sql"
	"net/http"

	"meteodb-server/internal/modules/cities/controller"
	"meteodb-server/internal/modules/cities/repository"
)

func RegisterFeature(mux *http.ServeMux, db *sql.DB) {
	cityRepository := repository.NewRepository(db)
	cityController := controller.NewCityController(cityRepository)
	cityController.RegisterRoutes(mux)
}
