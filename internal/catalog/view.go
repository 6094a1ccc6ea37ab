package catalog

import (
	"strconv"

	"campervan_catalog/internal/models"
)

// Labels and messages shown by the product list footer.
const (
	LabelLoadMore = "Načíst další"
	LabelLoading  = "Načítání..."
	LabelRetry    = "Zkusit znovu"

	MessageLoadError = "Došlo k chybě při načítání dat."
	MessageNoMatches = "Žádné karavany nebyly nalezeny. Zkuste změnit filtr nebo načíst další stránku."
)

// ItemView is one rendered product card.
type ItemView struct {
	// Key is the item's position in the accumulated list. Accumulation is
	// append-only, so it identifies the item for the whole session.
	Key         string             `json:"key"`
	Product     models.Product     `json:"product"`
	VehicleType models.VehicleType `json:"vehicleType"`
}

type ButtonView struct {
	Visible  bool   `json:"visible"`
	Label    string `json:"label,omitempty"`
	Href     string `json:"href,omitempty"`
	Disabled bool   `json:"disabled"`
}

// View is everything the presentation layer needs after a change.
type View struct {
	Status     Status          `json:"status"`
	Page       int             `json:"page"`
	Loaded     int             `json:"loaded"`
	TotalCount int             `json:"totalCount"`
	Items      []ItemView      `json:"items"`
	Button     ButtonView      `json:"button"`
	Error      string          `json:"error,omitempty"`
	Notice     string          `json:"notice,omitempty"`
	Filters    FilterSelection `json:"filters"`
}

// Present projects a load state and a filter selection into a View.
func Present(state LoadState, sel FilterSelection) View {
	idx := visibleIndexes(state.Items, sel)
	v := View{
		Status:     state.Status,
		Page:       state.Page,
		Loaded:     len(state.Items),
		TotalCount: state.TotalCount,
		Items:      make([]ItemView, 0, len(idx)),
		Button:     presentButton(state),
		Filters:    sel,
	}
	for _, i := range idx {
		p := state.Items[i]
		vt, _ := models.LookupVehicleType(p.VehicleType)
		v.Items = append(v.Items, ItemView{Key: strconv.Itoa(i), Product: p, VehicleType: vt})
	}

	switch {
	case state.Status == StatusError:
		v.Error = MessageLoadError
	case state.Status == StatusReady && len(state.Items) > 0 && len(idx) == 0:
		v.Notice = MessageNoMatches
	}
	return v
}

func presentButton(state LoadState) ButtonView {
	target := state.Page
	b := ButtonView{Visible: true}
	switch state.Status {
	case StatusReady:
		b.Label = LabelLoadMore
		target++
	case StatusLoading:
		b.Label = LabelLoading
		b.Disabled = true
	case StatusError:
		b.Label = LabelRetry
	default:
		return ButtonView{}
	}
	b.Href = "./?page=" + strconv.Itoa(target)
	return b
}
