package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invoza/invoza/internal/services"
)

func TestParseItemSpec(t *testing.T) {
	tests := []struct {
		name string
		spec string
		want services.ItemInput
	}{
		{"plain", "Consulting:2:100", services.ItemInput{Description: "Consulting", Quantity: 2, Rate: 100}},
		{"fractional numbers", "Hosting:0.5:99.95", services.ItemInput{Description: "Hosting", Quantity: 0.5, Rate: 99.95}},
		{"colons in description", "Setup: phase 1:1:500", services.ItemInput{Description: "Setup: phase 1", Quantity: 1, Rate: 500}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseItemSpec(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseItemSpec_Errors(t *testing.T) {
	for _, spec := range []string{"", "Consulting", "Consulting:2", "Consulting:two:100", "Consulting:2:lots"} {
		_, err := parseItemSpec(spec)
		assert.Error(t, err, "spec %q", spec)
	}
}

func TestParseItemSpecs_StopsAtFirstError(t *testing.T) {
	items, err := parseItemSpecs([]string{"Work:1:100", "broken"})
	assert.Error(t, err)
	assert.Nil(t, items)
}
