package changelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiff(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		old          Snapshot
		updated      Snapshot
		assetChanged bool
		expected     Change
	}{
		{
			name:     "nothing changed",
			old:      Snapshot{Unit: "l", Quantity: 1},
			updated:  Snapshot{Unit: "l", Quantity: 1},
			expected: Change{},
		},
		{
			name:     "unit only",
			old:      Snapshot{Unit: "l", Quantity: 1},
			updated:  Snapshot{Unit: "ml", Quantity: 1},
			expected: Change{OldValue: "/l", NewValue: "/ml", ChangedValue: "/unit"},
		},
		{
			name:     "quantity only",
			old:      Snapshot{Unit: "pcs", Quantity: 6},
			updated:  Snapshot{Unit: "pcs", Quantity: 4.5},
			expected: Change{OldValue: "/6", NewValue: "/4.5", ChangedValue: "/quantity"},
		},
		{
			name:     "unit before quantity",
			old:      Snapshot{Unit: "g", Quantity: 500},
			updated:  Snapshot{Unit: "kg", Quantity: 0.5},
			expected: Change{OldValue: "/g/500", NewValue: "/kg/0.5", ChangedValue: "/unit/quantity"},
		},
		{
			name:         "photo only",
			old:          Snapshot{Unit: "l", Quantity: 1},
			updated:      Snapshot{Unit: "l", Quantity: 1},
			assetChanged: true,
			expected:     Change{ChangedValue: "/photo"},
		},
		{
			name:         "everything",
			old:          Snapshot{Unit: "l", Quantity: 1},
			updated:      Snapshot{Unit: "ml", Quantity: 250},
			assetChanged: true,
			expected:     Change{OldValue: "/l/1", NewValue: "/ml/250", ChangedValue: "/unit/quantity/photo"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.expected, Diff(tc.old, tc.updated, tc.assetChanged))
		})
	}
}

func TestDiffFieldsStayAligned(t *testing.T) {
	t.Parallel()

	units := []string{"l", "ml", "pcs"}
	quantities := []float64{0, 1, 2.25}

	for _, oldUnit := range units {
		for _, newUnit := range units {
			for _, oldQty := range quantities {
				for _, newQty := range quantities {
					c := Diff(Snapshot{Unit: oldUnit, Quantity: oldQty}, Snapshot{Unit: newUnit, Quantity: newQty}, false)

					assert.Equal(t, oldUnit != newUnit, containsSegment(c.ChangedValue, "unit"))
					assert.Equal(t, oldQty != newQty, containsSegment(c.ChangedValue, "quantity"))
					assert.Equal(t, segments(c.ChangedValue), segments(c.OldValue))
					assert.Equal(t, segments(c.ChangedValue), segments(c.NewValue))
					if oldUnit == newUnit && oldQty == newQty {
						assert.True(t, c.Empty())
					}
					assert.Equal(t, c, Diff(Snapshot{Unit: oldUnit, Quantity: oldQty}, Snapshot{Unit: newUnit, Quantity: newQty}, false))
				}
			}
		}
	}
}

func TestAddAndDeleteChange(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Change{NewValue: "/l/2", ChangedValue: "/unit/quantity"}, AddChange(Snapshot{Unit: "l", Quantity: 2}))
	assert.Equal(t, Change{OldValue: "/pcs/12", ChangedValue: "/unit/quantity"}, DeleteChange(Snapshot{Unit: "pcs", Quantity: 12}, false))
	assert.Equal(t, Change{OldValue: "/g/0.25", ChangedValue: "/unit/quantity/photo"}, DeleteChange(Snapshot{Unit: "g", Quantity: 0.25}, true))
}

func containsSegment(encoded string, field string) bool {
	for _, s := range splitSegments(encoded) {
		if s == field {
			return true
		}
	}
	return false
}

func segments(encoded string) int {
	return len(splitSegments(encoded))
}

func splitSegments(encoded string) []string {
	if encoded == "" {
		return nil
	}
	out := []string{}
	start := 1
	for i := 1; i <= len(encoded); i++ {
		if i == len(encoded) || encoded[i] == '/' {
			out = append(out, encoded[start:i])
			start = i + 1
		}
	}
	return out
}
