package temperatures

import (
	"encoding/json"
	"log/slog"
	"time"

	"meteodb-server/internal/modules/temperatures/repository"
	"meteodb-server/internal/modules/temperatures/types"
)

// MQTTSubscriber interface for attaching message handlers
type MQTTSubscriber interface {
	SetMessageHandler(handler func(topic string, payload []byte))
}

// registerMQTTHandler sets up the temperature ingest handler. Malformed
// messages are logged and dropped; the subscription stays alive.
func registerMQTTHandler(subscriber MQTTSubscriber, repo repository.TemperatureRepository) {
	subscriber.SetMessageHandler(func(topic string, payload []byte) {
		var reading types.Reading
		if err := json.Unmarshal(payload, &reading); err != nil {
			slog.Warn("dropping malformed reading", "topic", topic, "error", err)
			return
		}
		if reading.CityID == 0 {
			slog.Warn("dropping reading without a city", "topic", topic)
			return
		}

		var id int64
		var err error
		if reading.Timestamp != "" {
			ts, parseErr := time.Parse(time.RFC3339, reading.Timestamp)
			if parseErr != nil {
				slog.Warn("dropping reading with a bad timestamp",
					"topic", topic,
					"timestamp", reading.Timestamp,
					"error", parseErr,
				)
				return
			}
			id, err = repo.CreateAt(reading.CityID, reading.Value, ts)
		} else {
			id, err = repo.Create(reading.CityID, reading.Value)
		}
		if err != nil {
			slog.Error("failed to store reading",
				"city_id", reading.CityID,
				"error", err,
			)
			return
		}

		slog.Debug("stored reading", "id", id, "city_id", reading.CityID)
	})
}
