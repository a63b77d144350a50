package layout_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/warehouse-vision/internal/domain"
	"github.com/jhoicas/warehouse-vision/internal/domain/layout"
)

func TestGenerate_CantidadYUnicidad(t *testing.T) {
	req := layout.Request{
		ZoneName: "A", Aisles: 3, RacksPerAisle: 4, LevelsPerRack: 2, PositionsPerLevel: 5,
		AisleNaming: layout.NamingAlpha,
	}
	slots, err := layout.Generate(req)
	require.NoError(t, err)

	assert.Len(t, slots, 3*2*4*2*5)
	assert.EqualValues(t, len(slots), req.Count())

	seen := map[string]bool{}
	for _, s := range slots {
		key := fmt.Sprintf("%s|%s|%d|%d", s.Pasillo, s.Rack, s.Nivel, s.Posicion)
		assert.False(t, seen[key], "tupla repetida %s", key)
		seen[key] = true
		assert.Equal(t, "A", s.Zona)
	}
}

func TestGenerate_OrdenYCoordenadas(t *testing.T) {
	slots, err := layout.Generate(layout.Request{
		ZoneName: "Z1", Aisles: 2, RacksPerAisle: 2, LevelsPerRack: 2, PositionsPerLevel: 2,
		AisleNaming: layout.NamingNumeric,
	})
	require.NoError(t, err)

	first := slots[0]
	assert.Equal(t, layout.Slot{Zona: "Z1", Pasillo: "P01", Rack: "L01", Nivel: 1, Posicion: 1, X: 0, Y: 0, Z: 10}, first)

	// Después de los 2×2×2 slots del lado L viene el lado R del mismo pasillo.
	right := slots[8]
	assert.Equal(t, "P01", right.Pasillo)
	assert.Equal(t, "R01", right.Rack)
	assert.Equal(t, 80, right.X)

	last := slots[len(slots)-1]
	assert.Equal(t, layout.Slot{Zona: "Z1", Pasillo: "P02", Rack: "R02", Nivel: 2, Posicion: 2, X: 230, Y: 50, Z: 50}, last)
}

func TestAisleName_Alpha(t *testing.T) {
	cases := map[int]string{1: "A", 26: "Z", 27: "AA", 28: "AB", 52: "AZ", 53: "BA", 702: "ZZ", 703: "AAA"}
	for n, want := range cases {
		assert.Equal(t, want, layout.AisleName(n, layout.NamingAlpha), "n=%d", n)
	}
}

func TestAisleName_NumericoPorDefecto(t *testing.T) {
	assert.Equal(t, "P01", layout.AisleName(1, layout.NamingNumeric))
	assert.Equal(t, "P12", layout.AisleName(12, layout.NamingNumeric))
	assert.Equal(t, "P100", layout.AisleName(100, layout.NamingNumeric))
	// Cualquier valor desconocido cae en numérico.
	assert.Equal(t, "P03", layout.AisleName(3, layout.Naming("roman")))
}

func TestRequest_Validate(t *testing.T) {
	base := layout.Request{ZoneName: "A", Aisles: 1, RacksPerAisle: 1, LevelsPerRack: 1, PositionsPerLevel: 1}
	require.NoError(t, base.Validate())

	cases := []struct {
		name  string
		mod   func(r *layout.Request)
		field string
	}{
		{"zona vacía", func(r *layout.Request) { r.ZoneName = "  " }, "zone_name"},
		{"pasillos cero", func(r *layout.Request) { r.Aisles = 0 }, "aisles"},
		{"racks negativos", func(r *layout.Request) { r.RacksPerAisle = -1 }, "racks_per_aisle"},
		{"niveles cero", func(r *layout.Request) { r.LevelsPerRack = 0 }, "levels_per_rack"},
		{"posiciones cero", func(r *layout.Request) { r.PositionsPerLevel = 0 }, "positions_per_level"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := base
			tc.mod(&r)
			err := r.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput))
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.field, ve.Field)

			_, genErr := layout.Generate(r)
			assert.Error(t, genErr)
		})
	}
}

func TestRequest_CountSatura(t *testing.T) {
	r := layout.Request{ZoneName: "A", Aisles: 1 << 30, RacksPerAisle: 1 << 30, LevelsPerRack: 1 << 30, PositionsPerLevel: 1 << 30}
	assert.Greater(t, r.Count(), int64(1<<40))
	assert.Equal(t, 2*5, layout.Request{RacksPerAisle: 5}.RacksPerSide())
}
