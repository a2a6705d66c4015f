package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocalizedResolve(t *testing.T) {
	l := Localized{"vi": "Bếp từ", "en": "Induction cooker"}

	assert.Equal(t, "Induction cooker", l.Resolve("en"))
	assert.Equal(t, "Bếp từ", l.Resolve("vi"))

	// Unknown locale falls back to the default, then to empty.
	assert.Equal(t, "Bếp từ", l.Resolve("fr"))
	assert.Equal(t, "", Localized{"en": "only english"}.Resolve("fr"))
	assert.Equal(t, "", Localized(nil).Resolve("vi"))
}

func TestLocalizedResolveSkipsEmptyEntries(t *testing.T) {
	l := Localized{"vi": "Bếp từ", "en": ""}
	assert.Equal(t, "Bếp từ", l.Resolve("en"))
}

func TestLocalizedMerge(t *testing.T) {
	base := Localized{"vi": "Bếp từ", "en": "Induction cooker"}

	merged := base.Merge(Localized{"en": "Induction hob"})
	assert.Equal(t, "Bếp từ", merged["vi"])
	assert.Equal(t, "Induction hob", merged["en"])

	// The receiver is left untouched.
	assert.Equal(t, "Induction cooker", base["en"])

	// Empty values never clobber existing ones.
	merged = base.Merge(Localized{"en": ""})
	assert.Equal(t, "Induction cooker", merged["en"])

	// Merging nothing returns the receiver as-is.
	assert.Equal(t, base, base.Merge(nil))
}

func TestValidOrderStatus(t *testing.T) {
	for _, s := range []OrderStatus{
		OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipping, OrderStatusDelivered, OrderStatusCancelled,
	} {
		assert.True(t, ValidOrderStatus(s))
	}
	assert.False(t, ValidOrderStatus("teleported"))
	assert.False(t, ValidOrderStatus(""))
}
