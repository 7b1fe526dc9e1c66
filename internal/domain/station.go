package domain

// Represents a single fuel station from the loaded catalogue.
// Coord is nil when geocoding of the station's address failed; such
// stations stay in the catalogue but are never offered as stop candidates.
// Stations are created once at data-load time and read-only afterwards.
type FuelStation struct {
	StationID      string
	Name           string
	Address        string
	City           string
	State          string
	ZipCode        string
	Coord          *Coordinates
	PricePerGallon float64
}
