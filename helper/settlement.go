package helper

import (
	"errors"
	"pod_dining/constants"
	"pod_dining/model"
	"sort"
)

// Cảnh báo xếp chỗ trong biên nhận: thanh toán xong nhưng chưa có ghế.
var (
	WarnInsufficientSeats = "Không đủ pod trống, nhóm sẽ được nhân viên xếp chỗ sau"
	WarnSeatConflict      = "Pod vừa bị nhóm khác giữ, nhóm sẽ được nhân viên xếp chỗ sau"
)

type SettlementReceipt struct {
	GroupCode       string  `json:"groupCode"`
	GroupStatus     string  `json:"groupStatus"`
	PaidOrderRefs   []string `json:"paidOrderIds"`
	AssignedSeatIds []uint  `json:"assignedSeatIds"` // null khi không xếp được chỗ
	Warning         *string `json:"warning"`
}

// SettlementDeps tách phần giao dịch ra khỏi luồng settle để test được.
// Handler bơm bản thật (GORM + OrderService + notifier), test bơm mock.
type SettlementDeps struct {
	LoadGroup     func(groupCode string) (*model.GroupOrder, error)
	MarkOrderPaid func(orderRef string) error
	// SetGroupStatus chuyển trạng thái CÓ ĐIỀU KIỆN: chỉ đổi khi trạng thái
	// hiện tại đúng là from, sai thì trả ErrGroupNotOpen. Đây là chốt chống
	// hai request trả tiền cùng lúc cùng chạy hết saga.
	SetGroupStatus func(group *model.GroupOrder, from string, to string) error
	AvailableSeats func(locationId uint) ([]model.Seat, error)
	ReserveSeats   func(group *model.GroupOrder, seatIds []uint) error
	NotifySeated   func(group *model.GroupOrder, seatIds []uint)
}

// SettleGroup gom thanh toán cho nhóm HOST_PAYS_ALL rồi xếp chỗ, theo thứ tự:
//
//	1. nhóm phải OPEN + HOST_PAYS_ALL
//	2. mark PAID từng đơn thành viên; lỗi giữa chừng: dừng, báo PartialPaymentError
//	   kèm danh sách đơn đã PAID (không tự "un-pay", đó là việc của payment gateway)
//	3. nhóm OPEN → PAID, update có điều kiện trên trạng thái cũ
//	4+5. chọn ghế theo seating option và reserve; đụng độ thì thử lại một lần
//	     với danh sách mới; vẫn không được → chỉ là warning, không fail
//	6. báo bếp (fire-and-forget)
//	7. nhóm → COMPLETED
//
// Thanh toán là bước không đảo ngược; ghế là tài nguyên tái tạo được,
// nên sau bước 2 không còn đường nào trả về lỗi tổng thể vì chuyện xếp chỗ.
func SettleGroup(deps SettlementDeps, groupCode string) (*SettlementReceipt, error) {
	group, err := deps.LoadGroup(groupCode)
	if err != nil {
		return nil, err
	}
	if group.Status != constants.GROUP_OPEN || group.PaymentMode != constants.PAYMENT_HOST_PAYS_ALL {
		return nil, ErrGroupNotOpen
	}

	members := append([]model.GroupMember{}, group.Members...)
	sort.SliceStable(members, func(i, j int) bool { return members[i].Position < members[j].Position })

	paid := []string{}
	for _, m := range members {
		if err := deps.MarkOrderPaid(m.OrderRef); err != nil {
			return nil, &PartialPaymentError{
				PaidOrderRefs:  paid,
				FailedOrderRef: m.OrderRef,
				Err:            err,
			}
		}
		paid = append(paid, m.OrderRef)
	}

	// OPEN → PAID có điều kiện: hai request đua nhau thì chỉ request đầu
	// đi tiếp xếp chỗ, request sau nhận ErrGroupNotOpen tại đây
	if err := deps.SetGroupStatus(group, constants.GROUP_OPEN, constants.GROUP_PAID); err != nil {
		return nil, err
	}

	var assigned []uint
	var warning *string
	if group.SeatingOption != nil {
		seatsNeeded := len(members)
		if group.GroupSize != nil && *group.GroupSize > 0 {
			seatsNeeded = *group.GroupSize
		}

		for attempt := 0; attempt < 2; attempt++ {
			available, err := deps.AvailableSeats(group.LocationId)
			if err != nil {
				warning = &WarnInsufficientSeats
				break
			}
			selected, err := SelectSeats(available, seatsNeeded, *group.SeatingOption)
			if err != nil {
				warning = &WarnInsufficientSeats
				break
			}
			ids := SeatIds(selected)
			if err := deps.ReserveSeats(group, ids); err != nil {
				if errors.Is(err, ErrSeatConflict) && attempt == 0 {
					continue
				}
				warning = &WarnSeatConflict
				break
			}
			assigned = ids
			break
		}
	}

	deps.NotifySeated(group, assigned)

	if err := deps.SetGroupStatus(group, constants.GROUP_PAID, constants.GROUP_COMPLETED); err != nil {
		return nil, err
	}

	return &SettlementReceipt{
		GroupCode:       group.GroupCode,
		GroupStatus:     constants.GROUP_COMPLETED,
		PaidOrderRefs:   paid,
		AssignedSeatIds: assigned,
		Warning:         warning,
	}, nil
}
