package game

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidScore(t *testing.T) {
	accepted := [][2]float64{{1, 1}, {15, 15}, {20, 20}, {25, 20}, {30, 20}}
	for _, p := range accepted {
		assert.True(t, ValidScore(p[0], p[1]), "expected (%v,%v) to be accepted", p[0], p[1])
	}

	rejected := [][2]float64{
		{0, 1}, {-5, 1}, {31, 20}, {1, 0}, {21, 21}, {5, 10}, {25, 19}, {5.5, 5}, {5, 5.5},
		{math.NaN(), 5}, {math.Inf(1), 20},
	}
	for _, p := range rejected {
		assert.False(t, ValidScore(p[0], p[1]), "expected (%v,%v) to be rejected", p[0], p[1])
	}
}

func TestCheckScore_Classification(t *testing.T) {
	tests := []struct {
		score, hp float64
		want      error
	}{
		{0, 1, ErrMalformedScore},
		{5.5, 5, ErrMalformedScore},
		{5, 21, ErrMalformedScore},
		{5, 10, ErrInconsistentScore},
		{25, 19, ErrInconsistentScore},
		{30, 20, nil},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v_%v", tt.score, tt.hp), func(t *testing.T) {
			err := CheckScore(tt.score, tt.hp)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
