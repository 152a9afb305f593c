package models

import (
	"testing"

	olc "github.com/google/open-location-code/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocation(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		address string
		coords  bool
	}{
		{"name and address", "Cafe Central - Av. Paz 12", "Cafe Central", "Av. Paz 12", false},
		{"name only", "  Cafe Central ", "Cafe Central", "", false},
		{"with coordinates", "Cafe Central - Av. Paz 12 (14.0818, -87.2068)", "Cafe Central", "Av. Paz 12", true},
		{"coordinates only", "(14.0818,-87.2068)", "", "", true},
		{"out of range", "Shop (95.0, 10.0)", "Shop", "", false},
		{"empty", "", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc := ParseLocation(tt.raw)
			assert.Equal(t, tt.want, loc.BusinessName)
			assert.Equal(t, tt.address, loc.Address)
			assert.Equal(t, tt.coords, loc.HasCoordinates())
			if !tt.coords {
				assert.Empty(t, loc.PlusCode)
			}
		})
	}
}

func TestParseLocationPlusCode(t *testing.T) {
	loc := ParseLocation("Cafe Central (14.0818, -87.2068)")
	require.True(t, loc.HasCoordinates())
	assert.Equal(t, 14.0818, *loc.Latitude)
	assert.Equal(t, -87.2068, *loc.Longitude)

	require.NoError(t, olc.CheckFull(loc.PlusCode))
	area, err := olc.Decode(loc.PlusCode)
	require.NoError(t, err)
	lat, lng := area.Center()
	assert.InDelta(t, 14.0818, lat, 0.001)
	assert.InDelta(t, -87.2068, lng, 0.001)
}

func TestVisitPlace(t *testing.T) {
	v := BusinessVisit{Location: "Barber Shop - Main St"}
	assert.Equal(t, "Barber Shop", v.Place().BusinessName)
}

func TestVisitAfterFind(t *testing.T) {
	v := BusinessVisit{Location: "Cafe Luna - Av. Central (14.0818, -87.2068)"}
	require.NoError(t, v.AfterFind(nil))
	require.NotNil(t, v.Parsed)
	assert.Equal(t, "Cafe Luna", v.Parsed.BusinessName)
	assert.NotEmpty(t, v.Parsed.PlusCode)
}
