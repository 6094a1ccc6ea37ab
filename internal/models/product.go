package models

// Product is a single rental listing. Values are never mutated after fetch.
type Product struct {
	Location           string   `json:"location"`
	InstantBookable    bool     `json:"instantBookable"`
	Name               string   `json:"name"`
	PassengersCapacity int      `json:"passengersCapacity"`
	SleepCapacity      int      `json:"sleepCapacity"`
	Price              float64  `json:"price"`
	VehicleType        string   `json:"vehicleType"` // Campervan | Intergrated | BuiltIn | Alcove
	Toilet             bool     `json:"toilet"`
	Shower             bool     `json:"shower"`
	Pictures           []string `json:"pictures"`
}

// CatalogPage is the payload of GET /api/data.
type CatalogPage struct {
	Count int       `json:"count"`
	Items []Product `json:"items"`
}

// Cover returns the first picture, or "" when none is set.
func (p Product) Cover() string {
	if len(p.Pictures) == 0 {
		return ""
	}
	return p.Pictures[0]
}
