package safe

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUint16(t *testing.T) {
	tests := []struct {
		name    string
		value   int64
		want    uint16
		wantErr bool
	}{
		{name: "zero", value: 0, want: 0},
		{name: "in range", value: 42, want: 42},
		{name: "max", value: math.MaxUint16, want: math.MaxUint16},
		{name: "negative", value: -1, wantErr: true},
		{name: "above max", value: math.MaxUint16 + 1, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Uint16(tt.value)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUint16Int(t *testing.T) {
	got, err := Uint16(7)
	require.NoError(t, err)
	assert.Equal(t, uint16(7), got)
}
