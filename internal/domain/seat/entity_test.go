package seat

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSeat(t *testing.T) {
	s := NewSeat(7, 3, 12)

	assert.Equal(t, int64(7), s.SessionID)
	assert.Equal(t, 3, s.RowNumber)
	assert.Equal(t, 12, s.PlaceNumber)
	assert.False(t, s.Occupied)
	assert.True(t, s.IsAvailable())
	assert.NotZero(t, s.CreatedAt)
}

func TestBuildLayout(t *testing.T) {
	t.Run("行・番号順に生成される", func(t *testing.T) {
		seats := BuildLayout(1, 2, 3)

		require.Len(t, seats, 6)
		assert.Equal(t, 1, seats[0].RowNumber)
		assert.Equal(t, 1, seats[0].PlaceNumber)
		assert.Equal(t, 1, seats[2].RowNumber)
		assert.Equal(t, 3, seats[2].PlaceNumber)
		assert.Equal(t, 2, seats[3].RowNumber)
		assert.Equal(t, 1, seats[3].PlaceNumber)
		for _, s := range seats {
			assert.Equal(t, int64(1), s.SessionID)
			assert.False(t, s.Occupied)
		}
	})

	t.Run("行数0なら座席なし", func(t *testing.T) {
		assert.Empty(t, BuildLayout(1, 0, 10))
	})

	t.Run("座席数0なら座席なし", func(t *testing.T) {
		assert.Empty(t, BuildLayout(1, 5, 0))
	})

	t.Run("上限を超える配置は生成しない", func(t *testing.T) {
		assert.Empty(t, BuildLayout(1, MaxRows+1, 1))
	})

	t.Run("上限いっぱいの配置", func(t *testing.T) {
		assert.Len(t, BuildLayout(1, MaxRows, MaxPlacesPerRow), MaxRows*MaxPlacesPerRow)
	})
}

func TestValidateLayout(t *testing.T) {
	tests := []struct {
		name         string
		rows         int
		placesPerRow int
		expectedErr  error
	}{
		{"空の配置", 0, 0, nil},
		{"上限いっぱい", MaxRows, MaxPlacesPerRow, nil},
		{"負の列数", -1, 10, ErrInvalidLayout},
		{"負の座席数", 10, -1, ErrInvalidLayout},
		{"列数が上限超過", MaxRows + 1, 1, ErrLayoutTooLarge},
		{"座席数が上限超過", 1, MaxPlacesPerRow + 1, ErrLayoutTooLarge},
		{"積が桁あふれする配置", math.MaxInt, math.MaxInt, ErrLayoutTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLayout(tt.rows, tt.placesPerRow)
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSeat_BelongsTo(t *testing.T) {
	s := NewSeat(5, 1, 1)

	assert.True(t, s.BelongsTo(5))
	assert.False(t, s.BelongsTo(6))
}

func TestSeat_IsAvailable(t *testing.T) {
	tests := []struct {
		name     string
		occupied bool
		expected bool
	}{
		{"空き", false, true},
		{"使用中", true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Seat{Occupied: tt.occupied}
			assert.Equal(t, tt.expected, s.IsAvailable())
		})
	}
}

func TestSeat_Validate(t *testing.T) {
	tests := []struct {
		name        string
		seat        *Seat
		expectedErr error
	}{
		{"有効な座席", &Seat{SessionID: 1, RowNumber: 1, PlaceNumber: 1}, nil},
		{"上映IDなし", &Seat{SessionID: 0, RowNumber: 1, PlaceNumber: 1}, ErrSessionIDRequired},
		{"列番号が0", &Seat{SessionID: 1, RowNumber: 0, PlaceNumber: 1}, ErrInvalidPosition},
		{"座席番号が負", &Seat{SessionID: 1, RowNumber: 1, PlaceNumber: -1}, ErrInvalidPosition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.seat.Validate()
			if tt.expectedErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
