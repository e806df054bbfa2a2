package helper

import (
	"errors"
	"testing"

	"pod_dining/constants"
	"pod_dining/model"
)

type checkinRecorder struct {
	markArrivedCalls int
	markArrivedRefs  []string
	markArrivedUsers []string
	occupiedSeatIds  []uint
}

// fakeCheckinDeps mô phỏng một pod có đơn đang chờ khách; sau lần xác nhận
// đầu tiên, Order Service trả đơn ở trạng thái CONFIRMED như thật.
func fakeCheckinDeps(rec *checkinRecorder) CheckinDeps {
	fulfillment := constants.ORDER_AWAITING_ARRIVAL
	return CheckinDeps{
		FindSeat: func(scanCode string) (*model.Seat, error) {
			if scanCode != "pod-abc" {
				return nil, ErrUnknownCode
			}
			seat := &model.Seat{Number: "U03", LocationId: 1, Status: constants.SEAT_RESERVED}
			seat.ID = 3
			return seat, nil
		},
		ActiveOrder: func(scanCode string) (*model.ExternalOrder, error) {
			return &model.ExternalOrder{
				Ref:               "ord-77",
				OrderNumber:       "A-077",
				FulfillmentStatus: fulfillment,
			}, nil
		},
		MarkArrived: func(orderRef string, userId string) error {
			rec.markArrivedCalls++
			rec.markArrivedRefs = append(rec.markArrivedRefs, orderRef)
			rec.markArrivedUsers = append(rec.markArrivedUsers, userId)
			fulfillment = constants.ORDER_CONFIRMED
			return nil
		},
		OccupySeat: func(seatId uint) error {
			rec.occupiedSeatIds = append(rec.occupiedSeatIds, seatId)
			return nil
		},
	}
}

func TestConfirmArrivalFirstScan(t *testing.T) {
	rec := &checkinRecorder{}
	deps := fakeCheckinDeps(rec)

	confirmed, err := ConfirmArrival(deps, "pod-abc", "42")
	if err != nil {
		t.Fatalf("ConfirmArrival: %v", err)
	}
	if confirmed.OrderRef != "ord-77" || confirmed.SeatId != 3 || confirmed.SeatNumber != "U03" {
		t.Fatalf("payload sai: %+v", confirmed)
	}
	if rec.markArrivedCalls != 1 {
		t.Fatalf("MarkArrived gọi %d lần, muốn 1", rec.markArrivedCalls)
	}
	if len(rec.markArrivedRefs) != 1 || rec.markArrivedRefs[0] != "ord-77" {
		t.Fatalf("MarkArrived sai đơn: %v", rec.markArrivedRefs)
	}
	if len(rec.markArrivedUsers) != 1 || rec.markArrivedUsers[0] != "42" {
		t.Fatalf("userId không được chuyển tiếp: %v", rec.markArrivedUsers)
	}
	if len(rec.occupiedSeatIds) != 1 || rec.occupiedSeatIds[0] != 3 {
		t.Fatalf("OccupySeat sai: %v", rec.occupiedSeatIds)
	}
}

// Quét lại pod đã xác nhận: payload giống hệt lần đầu, ghế không bị
// chuyển OCCUPIED thêm lần nào, Order Service không bị gọi lại.
func TestConfirmArrivalRescanIsIdempotent(t *testing.T) {
	rec := &checkinRecorder{}
	deps := fakeCheckinDeps(rec)

	first, err := ConfirmArrival(deps, "pod-abc", "42")
	if err != nil {
		t.Fatalf("lần quét đầu: %v", err)
	}
	second, err := ConfirmArrival(deps, "pod-abc", "42")
	if err != nil {
		t.Fatalf("lần quét lại: %v", err)
	}

	if *first != *second {
		t.Fatalf("payload hai lần quét khác nhau:\n lần 1: %+v\n lần 2: %+v", first, second)
	}
	if rec.markArrivedCalls != 1 {
		t.Fatalf("MarkArrived gọi %d lần, muốn 1", rec.markArrivedCalls)
	}
	if len(rec.occupiedSeatIds) != 1 {
		t.Fatalf("ghế bị chuyển OCCUPIED %d lần, muốn 1", len(rec.occupiedSeatIds))
	}
}

func TestConfirmArrivalUnknownCode(t *testing.T) {
	rec := &checkinRecorder{}
	deps := fakeCheckinDeps(rec)

	if _, err := ConfirmArrival(deps, "pod-khong-ton-tai", ""); !errors.Is(err, ErrUnknownCode) {
		t.Fatalf("muốn ErrUnknownCode, nhận %v", err)
	}
	if rec.markArrivedCalls != 0 {
		t.Fatalf("MarkArrived không được gọi khi mã sai")
	}
}

func TestConfirmArrivalNoActiveOrder(t *testing.T) {
	rec := &checkinRecorder{}
	deps := fakeCheckinDeps(rec)
	deps.ActiveOrder = func(scanCode string) (*model.ExternalOrder, error) {
		return nil, nil
	}

	if _, err := ConfirmArrival(deps, "pod-abc", ""); !errors.Is(err, ErrNoActiveOrder) {
		t.Fatalf("muốn ErrNoActiveOrder, nhận %v", err)
	}
	if len(rec.occupiedSeatIds) != 0 {
		t.Fatalf("ghế không được đụng tới khi không có đơn: %v", rec.occupiedSeatIds)
	}
}
