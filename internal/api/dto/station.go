package dto

type StationResponse struct {
	StationID      string   `json:"station_id"`
	Name           string   `json:"name"`
	Address        string   `json:"address"`
	City           string   `json:"city"`
	State          string   `json:"state"`
	ZipCode        string   `json:"zip_code"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	PricePerGallon float64  `json:"price_per_gallon"`
}

type ListStationsResponse struct {
	Stations []StationResponse `json:"stations"`
}
