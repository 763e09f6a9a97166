package types

// Temperature is the wire shape of one reading. Timestamp is rendered as a
// YYYY-MM-DD date in responses.
type Temperature struct {
	ID        int64   `json:"id"`
	Value     float64 `json:"valoare"`
	Timestamp string  `json:"timestamp"`
}

// Reading is one ingest message from the measurement topic. Timestamp is an
// optional RFC3339 device timestamp; when absent the server assigns one.
type Reading struct {
	CityID    int64   `json:"idOras"`
	Value     float64 `json:"valoare"`
	Timestamp string  `json:"timestamp,omitempty"`
}
