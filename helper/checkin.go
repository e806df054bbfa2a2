package helper

import (
	"errors"
	"pod_dining/constants"
	"pod_dining/model"

	"gorm.io/gorm"
)

// PodInfo là kết quả quét mã pod.
type PodInfo struct {
	State      string               `json:"state"` // NO_ACTIVE_ORDER, AWAITING_CONFIRMATION, CONFIRMED
	SeatId     uint                 `json:"seatId"`
	SeatNumber string               `json:"seatNumber"`
	LocationId uint                 `json:"locationId"`
	Order      *model.ExternalOrder `json:"order,omitempty"`
}

// ConfirmedOrder trả khách về trang theo dõi đơn sau khi xác nhận đã tới.
type ConfirmedOrder struct {
	OrderRef    string `json:"orderRef"`
	OrderNumber string `json:"orderNumber"`
	SeatId      uint   `json:"seatId"`
	SeatNumber  string `json:"seatNumber"`
	LocationId  uint   `json:"locationId"`
}

// ResolvePod tra mã quét về pod + đơn hàng đang chờ khách (nếu có).
func ResolvePod(db *gorm.DB, svc OrderService, scanCode string) (*PodInfo, error) {
	var seat model.Seat
	if err := db.Where("scan_code = ?", scanCode).First(&seat).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownCode
		}
		return nil, err
	}

	order, err := svc.FindActiveOrderForSeat(scanCode)
	if err != nil {
		return nil, err
	}

	info := &PodInfo{
		State:      constants.POD_NO_ACTIVE_ORDER,
		SeatId:     seat.ID,
		SeatNumber: seat.Number,
		LocationId: seat.LocationId,
	}
	if order != nil {
		info.Order = order
		if order.FulfillmentStatus == constants.ORDER_CONFIRMED {
			info.State = constants.POD_CONFIRMED
		} else {
			info.State = constants.POD_AWAITING_CONFIRMATION
		}
	}
	return info, nil
}

// CheckinDeps tách tra cứu ghế và Order Service khỏi luồng xác nhận,
// cùng kiểu với SettlementDeps. Handler bơm bản thật qua NewCheckinDeps.
type CheckinDeps struct {
	FindSeat    func(scanCode string) (*model.Seat, error)
	ActiveOrder func(scanCode string) (*model.ExternalOrder, error)
	MarkArrived func(orderRef string, userId string) error
	OccupySeat  func(seatId uint) error
}

// NewCheckinDeps nối CheckinDeps vào GORM + OrderService thật.
func NewCheckinDeps(db *gorm.DB, svc OrderService) CheckinDeps {
	return CheckinDeps{
		FindSeat: func(scanCode string) (*model.Seat, error) {
			var seat model.Seat
			if err := db.Where("scan_code = ?", scanCode).First(&seat).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, ErrUnknownCode
				}
				return nil, err
			}
			return &seat, nil
		},
		ActiveOrder: svc.FindActiveOrderForSeat,
		MarkArrived: svc.MarkArrived,
		OccupySeat: func(seatId uint) error {
			_, err := OccupySeat(db, seatId)
			return err
		},
	}
}

// ConfirmArrival xác nhận khách đã ngồi vào pod.
// Quét lại pod đã xác nhận KHÔNG phải lỗi: trả lại đúng payload cũ
// (idempotent với double-tap / retry mạng), ghế chỉ chuyển OCCUPIED một lần.
func ConfirmArrival(deps CheckinDeps, scanCode string, userId string) (*ConfirmedOrder, error) {
	seat, err := deps.FindSeat(scanCode)
	if err != nil {
		return nil, err
	}

	order, err := deps.ActiveOrder(scanCode)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNoActiveOrder
	}

	confirmed := &ConfirmedOrder{
		OrderRef:    order.Ref,
		OrderNumber: order.OrderNumber,
		SeatId:      seat.ID,
		SeatNumber:  seat.Number,
		LocationId:  seat.LocationId,
	}

	if order.FulfillmentStatus == constants.ORDER_CONFIRMED {
		return confirmed, nil
	}

	if err := deps.MarkArrived(order.Ref, userId); err != nil {
		return nil, err
	}
	if err := deps.OccupySeat(seat.ID); err != nil {
		return nil, err
	}
	return confirmed, nil
}
