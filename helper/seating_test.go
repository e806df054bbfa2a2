package helper

import (
	"errors"
	"testing"

	"pod_dining/constants"
	"pod_dining/model"
)

func seat(id uint, column int, status string) model.Seat {
	s := model.Seat{
		Number:  "U" + string(rune('0'+id)),
		Status:  status,
		Row:     1,
		Column:  column,
		Side:    "LEFT",
		PodType: constants.POD_SINGLE,
	}
	s.ID = id
	return s
}

func dualPair(aId, bId uint, aCol, bCol int, aStatus, bStatus string) (model.Seat, model.Seat) {
	a := seat(aId, aCol, aStatus)
	b := seat(bId, bCol, bStatus)
	a.PodType = constants.POD_DUAL
	b.PodType = constants.POD_DUAL
	// ghế id nhỏ giữ forward reference
	a.DualPartnerId = &b.ID
	return a, b
}

func TestPartnerOf(t *testing.T) {
	a, b := dualPair(1, 2, 1, 2, constants.SEAT_AVAILABLE, constants.SEAT_AVAILABLE)
	seats := []model.Seat{a, b, seat(3, 3, constants.SEAT_AVAILABLE)}

	// theo forward reference
	p := PartnerOf(a, seats)
	if p == nil || p.ID != 2 {
		t.Fatalf("expected partner 2 for seat 1, got %v", p)
	}

	// tra ngược: b không giữ reference nhưng vẫn tìm ra a
	p = PartnerOf(b, seats)
	if p == nil || p.ID != 1 {
		t.Fatalf("expected partner 1 for seat 2, got %v", p)
	}

	if p := PartnerOf(seats[2], seats); p != nil {
		t.Fatalf("single seat should have no partner, got %v", p)
	}
}

func TestFilterAllocatableExcludesBrokenPairs(t *testing.T) {
	// cặp đôi có một ghế RESERVED: cả cặp không cấp phát được
	a, b := dualPair(1, 2, 1, 2, constants.SEAT_AVAILABLE, constants.SEAT_RESERVED)
	c := seat(3, 3, constants.SEAT_AVAILABLE)
	d := seat(4, 4, constants.SEAT_OCCUPIED)

	result := FilterAllocatable([]model.Seat{a, b, c, d})

	if len(result) != 1 || result[0].ID != 3 {
		t.Fatalf("expected only seat 3 allocatable, got %v", SeatIds(result))
	}
}

func TestFilterAllocatableKeepsHealthyPairs(t *testing.T) {
	a, b := dualPair(1, 2, 1, 2, constants.SEAT_AVAILABLE, constants.SEAT_AVAILABLE)
	result := FilterAllocatable([]model.Seat{b, a})

	if len(result) != 2 {
		t.Fatalf("expected both seats of a healthy pair, got %v", SeatIds(result))
	}
	// sắp theo column
	if result[0].ID != 1 || result[1].ID != 2 {
		t.Fatalf("expected column order 1,2, got %v", SeatIds(result))
	}
}

func TestSelectSeatsOptions(t *testing.T) {
	available := make([]model.Seat, 0, 6)
	for i := uint(1); i <= 6; i++ {
		available = append(available, seat(i, int(i), constants.SEAT_AVAILABLE))
	}

	cases := []struct {
		option   int
		needed   int
		wantIds  []uint
	}{
		{option: 1, needed: 2, wantIds: []uint{1, 2}},
		{option: 2, needed: 2, wantIds: []uint{3, 4}}, // floor(6/3) = 2
		{option: 3, needed: 2, wantIds: []uint{5, 6}}, // floor(12/3) = 4
		{option: 3, needed: 3, wantIds: []uint{4, 5, 6}}, // cửa sổ vượt cuối, lùi lại
		{option: 1, needed: 6, wantIds: []uint{1, 2, 3, 4, 5, 6}},
	}

	for _, tc := range cases {
		selected, err := SelectSeats(available, tc.needed, tc.option)
		if err != nil {
			t.Fatalf("option %d needed %d: unexpected error %v", tc.option, tc.needed, err)
		}
		got := SeatIds(selected)
		if len(got) != len(tc.wantIds) {
			t.Fatalf("option %d needed %d: got %v, want %v", tc.option, tc.needed, got, tc.wantIds)
		}
		for i := range got {
			if got[i] != tc.wantIds[i] {
				t.Fatalf("option %d needed %d: got %v, want %v", tc.option, tc.needed, got, tc.wantIds)
			}
		}
	}
}

func TestSelectSeatsInsufficient(t *testing.T) {
	available := []model.Seat{
		seat(1, 1, constants.SEAT_AVAILABLE),
		seat(2, 2, constants.SEAT_AVAILABLE),
	}

	if _, err := SelectSeats(available, 3, 1); !errors.Is(err, ErrInsufficientSeats) {
		t.Fatalf("expected ErrInsufficientSeats, got %v", err)
	}
	if _, err := SelectSeats(available, 0, 1); !errors.Is(err, ErrInsufficientSeats) {
		t.Fatalf("expected ErrInsufficientSeats for zero seats, got %v", err)
	}
	if _, err := SelectSeats(nil, 1, 2); !errors.Is(err, ErrInsufficientSeats) {
		t.Fatalf("expected ErrInsufficientSeats for empty list, got %v", err)
	}
}
