package helper

import (
	"pod_dining/constants"
	"pod_dining/model"
	"sort"
)

// PartnerOf tìm ghế đôi còn lại của seat trong danh sách seats:
// theo forward reference hoặc tra ngược (ghế nào giữ dual_partner_id = seat.ID).
func PartnerOf(seat model.Seat, seats []model.Seat) *model.Seat {
	if seat.DualPartnerId != nil {
		for i := range seats {
			if seats[i].ID == *seat.DualPartnerId {
				return &seats[i]
			}
		}
		return nil
	}
	for i := range seats {
		if seats[i].DualPartnerId != nil && *seats[i].DualPartnerId == seat.ID {
			return &seats[i]
		}
	}
	return nil
}

// FilterAllocatable lọc từ toàn bộ ghế của một location ra danh sách cấp phát được:
// ghế AVAILABLE, và nếu là pod đôi thì ghế còn lại của cặp cũng phải AVAILABLE
// (trạng thái hiệu dụng của cặp là trạng thái xấu nhất). Kết quả sắp theo column.
func FilterAllocatable(seats []model.Seat) []model.Seat {
	var result []model.Seat
	for _, s := range seats {
		if s.Status != constants.SEAT_AVAILABLE {
			continue
		}
		if s.PodType == constants.POD_DUAL {
			partner := PartnerOf(s, seats)
			if partner == nil || partner.Status != constants.SEAT_AVAILABLE {
				continue
			}
		}
		result = append(result, s)
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Column != result[j].Column {
			return result[i].Column < result[j].Column
		}
		return result[i].Row < result[j].Row
	})
	return result
}

// SelectSeats chọn một cửa sổ liên tiếp seatsNeeded ghế từ danh sách đã lọc,
// lệch về đầu / giữa / cuối theo option:
//
//	option 1 → index 0
//	option 2 → floor(n/3)
//	option 3 → floor(2n/3)
//
// Chỉ là bias, không bin-packing. Nếu cửa sổ vượt cuối danh sách thì lùi lại cho vừa.
func SelectSeats(available []model.Seat, seatsNeeded int, option int) ([]model.Seat, error) {
	if seatsNeeded <= 0 {
		return nil, ErrInsufficientSeats
	}
	length := len(available)
	if length < seatsNeeded {
		return nil, ErrInsufficientSeats
	}

	var start int
	switch option {
	case 2:
		start = length / 3
	case 3:
		start = length * 2 / 3
	default:
		start = 0
	}
	if start+seatsNeeded > length {
		start = length - seatsNeeded
	}

	return available[start : start+seatsNeeded], nil
}

func SeatIds(seats []model.Seat) []uint {
	ids := make([]uint, 0, len(seats))
	for _, s := range seats {
		ids = append(ids, s.ID)
	}
	return ids
}
