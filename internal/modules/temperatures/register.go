package temperatures

import (
	"database/sql"
	"net/http"

	"meteodb-server/internal/modules/temperatures/controller"
	"meteodb-server/internal/modules/temperatures/repository"
)

// RegisterFeature wires the temperatures routes and, when a subscriber is
// given, the MQTT ingest path. subscriber may be nil when ingest is disabled.
func RegisterFeature(mux *http.ServeMux, db *sql.DB, subscriber MQTTSubscriber) {
	temperatureRepository := repository.NewRepository(db)
	temperatureController := controller.NewTemperatureController(temperatureRepository)
	temperatureController.RegisterRoutes(mux)

	if subscriber != nil {
		registerMQTTHandler(subscriber, temperatureRepository)
	}
}
