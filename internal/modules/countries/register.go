package countries

import (
	"database/sql"
	"net/http"

	"meteodb-server/internal/modules/countries/controller"
	"meteodb-server/internal/modules/countries/repository"
)

func RegisterFeature(mux *http.ServeMux, db *sql.DB) {
	countryRepository := repository.NewRepository(db)
	countryController := controller.NewCountryController(countryRepository)
	countryController.RegisterRoutes(mux)
}
