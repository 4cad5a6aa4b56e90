package seat

import "time"

// 1上映の座席配置の上限
const (
	MaxRows         = 100
	MaxPlacesPerRow = 100
)

// Seat は上映ごとの物理座席を表す
type Seat struct {
	ID          int64
	SessionID   int64
	RowNumber   int
	PlaceNumber int
	Occupied    bool // false→true の一方向のみ。予約時の条件付き更新でのみ変更される
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewSeat は新しい空き座席を作成する
func NewSeat(sessionID int64, rowNumber, placeNumber int) *Seat {
	now := time.Now()
	return &Seat{
		SessionID:   sessionID,
		RowNumber:   rowNumber,
		PlaceNumber: placeNumber,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// ValidateLayout は座席配置の列数と1列あたりの座席数を検証する
func ValidateLayout(rows, placesPerRow int) error {
	if rows < 0 || placesPerRow < 0 {
		return ErrInvalidLayout
	}
	if rows > MaxRows || placesPerRow > MaxPlacesPerRow {
		return ErrLayoutTooLarge
	}
	return nil
}

// BuildLayout は rows × placesPerRow の座席を行・番号順に生成する。
// 上限を超える配置や空の配置では何も生成しない
func BuildLayout(sessionID int64, rows, placesPerRow int) []*Seat {
	if rows <= 0 || placesPerRow <= 0 || ValidateLayout(rows, placesPerRow) != nil {
		return nil
	}
	seats := make([]*Seat, 0, rows*placesPerRow)
	for r := 1; r <= rows; r++ {
		for p := 1; p <= placesPerRow; p++ {
			seats = append(seats, NewSeat(sessionID, r, p))
		}
	}
	return seats
}

// IsAvailable は座席が予約可能かを返す
func (s *Seat) IsAvailable() bool {
	return !s.Occupied
}

// BelongsTo は座席が指定の上映のものかを返す
func (s *Seat) BelongsTo(sessionID int64) bool {
	return s.SessionID == sessionID
}

// Validate は座席の検証を行う
func (s *Seat) Validate() error {
	if s.SessionID <= 0 {
		return ErrSessionIDRequired
	}
	if s.RowNumber <= 0 || s.PlaceNumber <= 0 {
		return ErrInvalidPosition
	}
	return nil
}
