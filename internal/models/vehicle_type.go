package models

// Vehicle type identifiers as they appear in the dataset.
const (
	VehicleCampervan   = "Campervan"
	VehicleIntergrated = "Intergrated"
	VehicleBuiltIn     = "BuiltIn"
	VehicleAlcove      = "Alcove"
)

// VehicleType is the display metadata for one vehicle type id.
type VehicleType struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// VehicleTypes lists the known types in display order.
var VehicleTypes = []VehicleType{
	{ID: VehicleCampervan, Name: "Campervan", Description: "Obytka s rozměry osobáku, se kterou dojedete všude."},
	{ID: VehicleIntergrated, Name: "Integrál", Description: "Král mezi karavany. Luxus na kolech."},
	{ID: VehicleBuiltIn, Name: "Vestavba", Description: "Celý byt geniálně poskládaný do dodávky."},
	{ID: VehicleAlcove, Name: "Přívěs", Description: "Tažný karavan za vaše auto. Od kapkovitých až po rodinné."},
}

// LookupVehicleType returns the metadata for id. Unknown ids fall back to the
// raw id as name with an empty description.
func LookupVehicleType(id string) (VehicleType, bool) {
	for _, vt := range VehicleTypes {
		if vt.ID == id {
			return vt, true
		}
	}
	return VehicleType{ID: id, Name: id}, false
}
