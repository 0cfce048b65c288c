package partition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		name      string
		start     int
		max       int
		step      int
		wantCount int
		wantFirst string
		wantLast  string
	}{
		{
			name:      "exact multiple",
			start:     0,
			max:       500,
			step:      50,
			wantCount: 10,
			wantFirst: "0..50",
			wantLast:  "450..500",
		},
		{
			name:      "non multiple keeps last range inside step",
			start:     0,
			max:       120,
			step:      50,
			wantCount: 3,
			wantFirst: "0..50",
			wantLast:  "100..150",
		},
		{
			name:      "non zero start",
			start:     100,
			max:       400,
			step:      100,
			wantCount: 3,
			wantFirst: "100..200",
			wantLast:  "300..400",
		},
		{
			name:      "single range",
			start:     0,
			max:       10,
			step:      50,
			wantCount: 1,
			wantFirst: "0..50",
			wantLast:  "0..50",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ranges, err := Generate(tt.start, tt.max, tt.step)
			require.NoError(t, err)
			require.Len(t, ranges, tt.wantCount)
			assert.Equal(t, tt.wantFirst, ranges[0].String())
			assert.Equal(t, tt.wantLast, ranges[len(ranges)-1].String())
		})
	}
}

func TestGenerateCoversDomainWithoutOverlap(t *testing.T) {
	ranges, err := Generate(0, 470, 50)
	require.NoError(t, err)

	// Số khoảng là ceil((max-start)/step)
	require.Len(t, ranges, 10)

	for i, rng := range ranges {
		assert.Equal(t, rng.MinKb+50, rng.MaxKb)
		if i > 0 {
			// Kề nhau, không chồng lặp, không có lỗ hổng
			assert.Equal(t, ranges[i-1].MaxKb, rng.MinKb)
		}
	}

	assert.Equal(t, 0, ranges[0].MinKb)
	assert.GreaterOrEqual(t, ranges[len(ranges)-1].MaxKb, 470)
	assert.Less(t, ranges[len(ranges)-1].MinKb, 470)
}

func TestGenerateRejectsBadDomain(t *testing.T) {
	_, err := Generate(0, 100, 0)
	assert.Error(t, err)

	_, err = Generate(0, 100, -5)
	assert.Error(t, err)

	_, err = Generate(100, 100, 10)
	assert.Error(t, err)

	_, err = Generate(200, 100, 10)
	assert.Error(t, err)
}
