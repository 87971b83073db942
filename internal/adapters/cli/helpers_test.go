package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/annocalc-go/test/helpers"
)

func TestParseRate(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    string
		wantErr string
	}{
		{name: "integer", value: "4", want: "4"},
		{name: "fraction", value: "0.75", want: "0.75"},
		{name: "zero", value: "0", wantErr: "rate must be positive, got 0"},
		{name: "negative", value: "-2", wantErr: "rate must be positive, got -2"},
		{name: "not a number", value: "fast", wantErr: `invalid rate "fast"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate, err := parseRate(tt.value)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, rate.String())
		})
	}
}

func TestMaskPassword(t *testing.T) {
	assert.Equal(t, "postgres://anno:xxxxx@db:5432/annocalc", maskPassword("postgres://anno:secret@db:5432/annocalc"))
	assert.Equal(t, "postgres://anno@db/annocalc", maskPassword("postgres://anno@db/annocalc"))
	assert.Equal(t, "not a url", maskPassword("not a url"))
}

func TestFormatCatalog_Demo(t *testing.T) {
	output := FormatCatalog(helpers.NewDemoCatalog(t))

	assert.Contains(t, output, "Goods (6):\n")
	assert.Contains(t, output, "  Grain                raw\n")
	assert.Contains(t, output, "  Flour                manufactured\n")
	assert.Contains(t, output, "Buildings (3):\n")
	assert.Contains(t, output, "  Chocolate Factory: 1.5 Cocoa + 0.5 Sugar -> 1 Chocolate every 60s\n")
	assert.Contains(t, output, "    tags: Production, New World | locations: New World, Old World | workforce: Engineers 20 | electrifiable\n")
	assert.Contains(t, output, "Modifiers (5):\n")
	assert.Contains(t, output, "  Electricity: +50% productivity (tags: Production, needs electricity)\n")
	assert.Contains(t, output, "  Master Baker Extra Bread: +1 Bread every 1 cycles (tags: Old World)\n")
	assert.Contains(t, output, "  Master Baker Workforce: -30% workforce (tags: Old World)\n")
}
