package inventory

import (
	"strconv"

	"github.com/inventariolab/inventario/internal/models"
)

// Patch is a partial asset update. Nil pointers mean the field is absent from
// the request, not "set to zero".
type Patch struct {
	Name          *string
	TypeID        *int
	Subtype       *string
	Description   *string
	SerialNumber  *string
	ResponsibleID *int
	LocationID    *int
	Cost          *float64
	Status        *string
}

// fieldSpec pairs one mutable asset field with how to read, compare, and write
// it. Comparison always happens on the formatted string so that numeric and
// string fields diff consistently; the delta keeps the native value.
type fieldSpec struct {
	name     string
	current  func(*models.Asset) (any, string)
	proposed func(*Patch) (any, string, bool)
	apply    func(*models.Asset, *Patch)
}

func field[T comparable](name string, fld func(*models.Asset) *T, sel func(*Patch) *T, format func(T) string) fieldSpec {
	return fieldSpec{
		name: name,
		current: func(a *models.Asset) (any, string) {
			v := *fld(a)
			return v, format(v)
		},
		proposed: func(p *Patch) (any, string, bool) {
			pv := sel(p)
			if pv == nil {
				return nil, "", false
			}
			return *pv, format(*pv), true
		},
		apply: func(a *models.Asset, p *Patch) { *fld(a) = *sel(p) },
	}
}

func fmtString(s string) string { return s }
func fmtInt(n int) string       { return strconv.Itoa(n) }
func fmtFloat(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

// assetFields is the full list of mutable asset fields. Identity, creator, and
// timestamps are deliberately absent: they are not patchable.
var assetFields = []fieldSpec{
	field("name", func(a *models.Asset) *string { return &a.Name }, func(p *Patch) *string { return p.Name }, fmtString),
	field("type", func(a *models.Asset) *int { return &a.TypeID }, func(p *Patch) *int { return p.TypeID }, fmtInt),
	field("subtype", func(a *models.Asset) *string { return &a.Subtype }, func(p *Patch) *string { return p.Subtype }, fmtString),
	field("description", func(a *models.Asset) *string { return &a.Description }, func(p *Patch) *string { return p.Description }, fmtString),
	field("serial_number", func(a *models.Asset) *string { return &a.SerialNumber }, func(p *Patch) *string { return p.SerialNumber }, fmtString),
	field("responsible", func(a *models.Asset) *int { return &a.ResponsibleID }, func(p *Patch) *int { return p.ResponsibleID }, fmtInt),
	field("location", func(a *models.Asset) *int { return &a.LocationID }, func(p *Patch) *int { return p.LocationID }, fmtInt),
	field("cost", func(a *models.Asset) *float64 { return &a.Cost }, func(p *Patch) *float64 { return p.Cost }, fmtFloat),
	field("status", func(a *models.Asset) *string { return &a.Status }, func(p *Patch) *string { return p.Status }, fmtString),
}

// diff returns one delta per patched field whose formatted value differs from
// the current record, plus the specs to apply. Fields equal after formatting
// are excluded, which is what makes no-op updates silent.
func diff(a *models.Asset, p *Patch) ([]models.FieldDelta, []fieldSpec) {
	var deltas []models.FieldDelta
	var changed []fieldSpec
	for _, f := range assetFields {
		newVal, newStr, ok := f.proposed(p)
		if !ok {
			continue
		}
		oldVal, oldStr := f.current(a)
		if oldStr == newStr {
			continue
		}
		deltas = append(deltas, models.FieldDelta{Field: f.name, Old: oldVal, New: newVal})
		changed = append(changed, f)
	}
	return deltas, changed
}

// validate rejects out-of-range patch values before any diffing happens.
func (p *Patch) validate() error {
	if p.Name != nil && *p.Name == "" {
		return &ValidationError{Field: "name", Reason: "required"}
	}
	if p.TypeID != nil && *p.TypeID <= 0 {
		return &ValidationError{Field: "type", Reason: "required"}
	}
	if p.ResponsibleID != nil && *p.ResponsibleID <= 0 {
		return &ValidationError{Field: "responsible", Reason: "required"}
	}
	if p.LocationID != nil && *p.LocationID <= 0 {
		return &ValidationError{Field: "location", Reason: "required"}
	}
	if p.Cost != nil && *p.Cost < 0 {
		return &ValidationError{Field: "cost", Reason: "must be non-negative"}
	}
	if p.Status != nil && !models.ValidStatus(*p.Status) {
		return &ValidationError{Field: "status", Reason: "must be active, inactive or decommissioned"}
	}
	return nil
}
