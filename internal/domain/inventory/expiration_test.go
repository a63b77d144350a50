package inventory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-vision/internal/domain/inventory"
)

var now = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

func day(offset int) *time.Time {
	d := now.AddDate(0, 0, offset)
	return &d
}

func TestClassify_Precedencia(t *testing.T) {
	cases := []struct {
		name      string
		hasItem   bool
		exp       *time.Time
		threshold int
		want      inventory.AlertStatus
	}{
		{"ubicación vacía", false, day(-10), 30, inventory.StatusEmpty},
		{"sin vencimiento", true, nil, 30, inventory.StatusNoExpiration},
		{"venció ayer", true, day(-1), 7, inventory.StatusExpired},
		{"vence en 5 días con umbral 7", true, day(5), 7, inventory.StatusExpiringSoon},
		{"vence en 5 días con umbral 2", true, day(5), 2, inventory.StatusNormal},
		{"vence hoy", true, day(0), 0, inventory.StatusExpiringSoon},
		{"justo en el umbral", true, day(7), 7, inventory.StatusExpiringSoon},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := inventory.Classify(now, tc.hasItem, tc.exp, tc.threshold)
			assert.Equal(t, tc.want, got.Status)
		})
	}
}

func TestClassify_DiasReales(t *testing.T) {
	mediodia := now.Add(12 * time.Hour)
	got := inventory.Classify(mediodia, true, day(2), 30)
	require.NotNil(t, got.DaysUntilExpiration)
	assert.InDelta(t, 1.5, *got.DaysUntilExpiration, 1e-9)

	// A mediodía del día de vencimiento el producto ya está vencido.
	got = inventory.Classify(mediodia, true, day(0), 30)
	assert.Equal(t, inventory.StatusExpired, got.Status)
	assert.InDelta(t, -0.5, *got.DaysUntilExpiration, 1e-9)
}

func TestClassify_SinDiasParaVacioYSinVencimiento(t *testing.T) {
	assert.Nil(t, inventory.Classify(now, false, nil, 30).DaysUntilExpiration)
	assert.Nil(t, inventory.Classify(now, true, nil, 30).DaysUntilExpiration)
}

func TestAlertStatus_IsAlert(t *testing.T) {
	assert.True(t, inventory.StatusExpired.IsAlert())
	assert.True(t, inventory.StatusExpiringSoon.IsAlert())
	assert.False(t, inventory.StatusNormal.IsAlert())
	assert.False(t, inventory.StatusNoExpiration.IsAlert())
	assert.False(t, inventory.StatusEmpty.IsAlert())
}
