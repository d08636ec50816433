// Package changelog computes field-level diffs of fridge entries and appends
// them to the change log.
package changelog

import (
	"strconv"
	"strings"
)

// Snapshot is the part of a fridge entry the change log tracks.
type Snapshot struct {
	Unit     string
	Quantity float64
}

// Change is the slash-delimited diff encoding. Fields appear in the fixed
// order unit, quantity; the photo never carries a value.
type Change struct {
	OldValue     string
	NewValue     string
	ChangedValue string
}

// Empty reports whether nothing changed.
func (c Change) Empty() bool {
	return c.OldValue == "" && c.NewValue == "" && c.ChangedValue == ""
}

const (
	fieldUnit     = "unit"
	fieldQuantity = "quantity"
	fieldPhoto    = "photo"
)

// FormatQuantity renders q with the fewest digits that round-trip.
func FormatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

// Diff compares two snapshots. It is pure and never fails.
func Diff(old Snapshot, updated Snapshot, assetChanged bool) Change {
	var oldValue, newValue, changed strings.Builder

	if updated.Unit != old.Unit {
		appendSegment(&oldValue, old.Unit)
		appendSegment(&newValue, updated.Unit)
		appendSegment(&changed, fieldUnit)
	}
	if updated.Quantity != old.Quantity {
		appendSegment(&oldValue, FormatQuantity(old.Quantity))
		appendSegment(&newValue, FormatQuantity(updated.Quantity))
		appendSegment(&changed, fieldQuantity)
	}
	if assetChanged {
		appendSegment(&changed, fieldPhoto)
	}

	return Change{OldValue: oldValue.String(), NewValue: newValue.String(), ChangedValue: changed.String()}
}

// AddChange encodes a newly created entry.
func AddChange(s Snapshot) Change {
	return Change{
		NewValue:     "/" + s.Unit + "/" + FormatQuantity(s.Quantity),
		ChangedValue: "/" + fieldUnit + "/" + fieldQuantity,
	}
}

// DeleteChange encodes a removed entry.
func DeleteChange(s Snapshot, hadAsset bool) Change {
	c := Change{
		OldValue:     "/" + s.Unit + "/" + FormatQuantity(s.Quantity),
		ChangedValue: "/" + fieldUnit + "/" + fieldQuantity,
	}
	if hadAsset {
		c.ChangedValue += "/" + fieldPhoto
	}
	return c
}

func appendSegment(b *strings.Builder, value string) {
	b.WriteByte('/')
	b.WriteString(value)
}
