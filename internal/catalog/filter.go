package catalog

import (
	"maps"
	"strconv"
	"strings"

	"campervan_catalog/internal/models"
)

// Price slider bounds in CZK per day.
const (
	PriceFloor   = 100
	PriceCeiling = 10000
)

// FilterSelection is the user's current filter input. It is replaced
// wholesale on every edit.
type FilterSelection struct {
	MinPrice *float64 `json:"minPrice,omitempty"`
	MaxPrice *float64 `json:"maxPrice,omitempty"`
	// VehicleTypes maps a vehicle type id to an explicit inclusion flag.
	// An absent id has no opinion.
	VehicleTypes        map[string]bool `json:"vehicleTypes,omitempty"`
	InstantBookableOnly bool            `json:"instantBookableOnly"`
}

// HasVehicleTypeFilter reports whether any type is explicitly included.
// Explicit exclusions only take effect when this is true.
func (s FilterSelection) HasVehicleTypeFilter() bool {
	for _, included := range s.VehicleTypes {
		if included {
			return true
		}
	}
	return false
}

// Matches applies the selection to a single product.
func (s FilterSelection) Matches(p models.Product) bool {
	return s.matches(p, s.HasVehicleTypeFilter())
}

func (s FilterSelection) matches(p models.Product, typeFilter bool) bool {
	if s.MinPrice != nil && p.Price < *s.MinPrice {
		return false
	}
	if s.MaxPrice != nil && p.Price > *s.MaxPrice {
		return false
	}
	if s.InstantBookableOnly && !p.InstantBookable {
		return false
	}
	if typeFilter {
		if included, ok := s.VehicleTypes[p.VehicleType]; ok && !included {
			return false
		}
	}
	return true
}

// ApplyFilters returns the items matching sel, in their original order.
func ApplyFilters(items []models.Product, sel FilterSelection) []models.Product {
	idx := visibleIndexes(items, sel)
	out := make([]models.Product, 0, len(idx))
	for _, i := range idx {
		out = append(out, items[i])
	}
	return out
}

func visibleIndexes(items []models.Product, sel FilterSelection) []int {
	typeFilter := sel.HasVehicleTypeFilter()
	out := make([]int, 0, len(items))
	for i, p := range items {
		if sel.matches(p, typeFilter) {
			out = append(out, i)
		}
	}
	return out
}

// ToggleVehicleType returns a copy of s with id set to checked. Every
// known type that had no flag yet becomes explicitly excluded first, so
// checking one box narrows the list to that type.
func (s FilterSelection) ToggleVehicleType(id string, checked bool) FilterSelection {
	next := s
	next.VehicleTypes = make(map[string]bool, len(models.VehicleTypes)+len(s.VehicleTypes))
	maps.Copy(next.VehicleTypes, s.VehicleTypes)
	for _, vt := range models.VehicleTypes {
		if _, ok := next.VehicleTypes[vt.ID]; !ok {
			next.VehicleTypes[vt.ID] = false
		}
	}
	next.VehicleTypes[id] = checked
	return next
}

// WithPriceRange returns a copy of s with both price bounds replaced.
func (s FilterSelection) WithPriceRange(minPrice, maxPrice *float64) FilterSelection {
	next := s
	next.MinPrice = minPrice
	next.MaxPrice = maxPrice
	return next
}

// ParsePrice reads a locale formatted amount such as "10 000 Kč" by
// keeping its digits. Empty input and zero both mean "no bound".
func ParsePrice(raw string) *float64 {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
	if digits == "" {
		return nil
	}
	v, err := strconv.ParseFloat(digits, 64)
	if err != nil || v == 0 {
		return nil
	}
	return &v
}

// Price returns a pointer to v, for building selections.
func Price(v float64) *float64 {
	return &v
}
