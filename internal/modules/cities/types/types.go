package types

type City struct {
	ID        int64   `json:"id"`
	CountryID int64   `json:"idTara"`
	Name      string  `json:"nume"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
}
