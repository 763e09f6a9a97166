package types

// Country is the wire representation of one countries row. The JSON keys are
// the API's original contract and predate the English column names.
type Country struct {
	ID   int64   `json:"id"`
	Name string  `json:"nume"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}
