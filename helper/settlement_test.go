package helper

import (
	"errors"
	"sync"
	"testing"

	"pod_dining/constants"
	"pod_dining/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openGroup(paymentMode string, memberRefs ...string) *model.GroupOrder {
	group := &model.GroupOrder{
		GroupCode:   "GRP-TEST01",
		LocationId:  1,
		Status:      constants.GROUP_OPEN,
		PaymentMode: paymentMode,
	}
	group.ID = 10
	for i, ref := range memberRefs {
		group.Members = append(group.Members, model.GroupMember{
			GroupOrderId: group.ID,
			OrderRef:     ref,
			Position:     i,
			IsHost:       i == 0,
		})
	}
	return group
}

func availableSeats(n int) []model.Seat {
	seats := make([]model.Seat, 0, n)
	for i := 1; i <= n; i++ {
		s := model.Seat{Status: constants.SEAT_AVAILABLE, Column: i, PodType: constants.POD_SINGLE}
		s.ID = uint(i)
		seats = append(seats, s)
	}
	return seats
}

// deps mặc định: mọi bước thành công, ghi lại diễn biến để assert
type settlementRecorder struct {
	paidRefs     []string
	statuses     []string
	reserved     [][]uint
	notifiedWith []uint
	notifyCount  int
}

func happyDeps(group *model.GroupOrder, rec *settlementRecorder) SettlementDeps {
	return SettlementDeps{
		LoadGroup: func(code string) (*model.GroupOrder, error) {
			if code != group.GroupCode {
				return nil, ErrGroupNotFound
			}
			return group, nil
		},
		MarkOrderPaid: func(orderRef string) error {
			rec.paidRefs = append(rec.paidRefs, orderRef)
			return nil
		},
		SetGroupStatus: func(g *model.GroupOrder, from string, to string) error {
			if g.Status != from {
				return ErrGroupNotOpen
			}
			rec.statuses = append(rec.statuses, to)
			g.Status = to
			return nil
		},
		AvailableSeats: func(locationId uint) ([]model.Seat, error) {
			return availableSeats(6), nil
		},
		ReserveSeats: func(g *model.GroupOrder, seatIds []uint) error {
			rec.reserved = append(rec.reserved, seatIds)
			return nil
		},
		NotifySeated: func(g *model.GroupOrder, seatIds []uint) {
			rec.notifyCount++
			rec.notifiedWith = seatIds
		},
	}
}

func TestSettleGroupHappyPath(t *testing.T) {
	group := openGroup(constants.PAYMENT_HOST_PAYS_ALL, "ord-1", "ord-2", "ord-3")
	group.SeatingOption = ptrTo(1)

	rec := &settlementRecorder{}
	receipt, err := SettleGroup(happyDeps(group, rec), "GRP-TEST01")

	require.NoError(t, err)
	assert.Equal(t, []string{"ord-1", "ord-2", "ord-3"}, rec.paidRefs)
	assert.Equal(t, []string{constants.GROUP_PAID, constants.GROUP_COMPLETED}, rec.statuses)
	assert.Equal(t, constants.GROUP_COMPLETED, receipt.GroupStatus)
	assert.Equal(t, []uint{1, 2, 3}, receipt.AssignedSeatIds)
	assert.Nil(t, receipt.Warning)
	assert.Equal(t, 1, rec.notifyCount)
	assert.Equal(t, []uint{1, 2, 3}, rec.notifiedWith)
}

func TestSettleGroupPaysInJoinOrder(t *testing.T) {
	group := openGroup(constants.PAYMENT_HOST_PAYS_ALL, "ord-1", "ord-2", "ord-3")
	// đảo thứ tự trong slice, Position vẫn quyết định thứ tự thanh toán
	group.Members[0], group.Members[2] = group.Members[2], group.Members[0]

	rec := &settlementRecorder{}
	_, err := SettleGroup(happyDeps(group, rec), "GRP-TEST01")

	require.NoError(t, err)
	assert.Equal(t, []string{"ord-1", "ord-2", "ord-3"}, rec.paidRefs)
}

func TestSettleGroupRejectsNonOpenGroup(t *testing.T) {
	group := openGroup(constants.PAYMENT_HOST_PAYS_ALL, "ord-1")
	group.Status = constants.GROUP_PAID

	rec := &settlementRecorder{}
	_, err := SettleGroup(happyDeps(group, rec), "GRP-TEST01")

	assert.ErrorIs(t, err, ErrGroupNotOpen)
	assert.Empty(t, rec.paidRefs)
}

func TestSettleGroupRejectsEachPaysOwn(t *testing.T) {
	group := openGroup(constants.PAYMENT_EACH_PAYS_OWN, "ord-1")

	rec := &settlementRecorder{}
	_, err := SettleGroup(happyDeps(group, rec), "GRP-TEST01")

	assert.ErrorIs(t, err, ErrGroupNotOpen)
}

func TestSettleGroupPartialPaymentStops(t *testing.T) {
	group := openGroup(constants.PAYMENT_HOST_PAYS_ALL, "ord-1", "ord-2", "ord-3")

	rec := &settlementRecorder{}
	deps := happyDeps(group, rec)
	deps.MarkOrderPaid = func(orderRef string) error {
		if orderRef == "ord-2" {
			return errors.New("gateway timeout")
		}
		rec.paidRefs = append(rec.paidRefs, orderRef)
		return nil
	}

	_, err := SettleGroup(deps, "GRP-TEST01")

	var partial *PartialPaymentError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, []string{"ord-1"}, partial.PaidOrderRefs)
	assert.Equal(t, "ord-2", partial.FailedOrderRef)
	// nhóm chưa được đổi trạng thái, ord-3 chưa bị đụng tới
	assert.Empty(t, rec.statuses)
	assert.Equal(t, []string{"ord-1"}, rec.paidRefs)
}

func TestSettleGroupRetriesOnceOnSeatConflict(t *testing.T) {
	group := openGroup(constants.PAYMENT_HOST_PAYS_ALL, "ord-1", "ord-2")
	group.SeatingOption = ptrTo(2)

	rec := &settlementRecorder{}
	deps := happyDeps(group, rec)
	attempts := 0
	deps.ReserveSeats = func(g *model.GroupOrder, seatIds []uint) error {
		attempts++
		if attempts == 1 {
			return ErrSeatConflict
		}
		rec.reserved = append(rec.reserved, seatIds)
		return nil
	}

	receipt, err := SettleGroup(deps, "GRP-TEST01")

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.NotEmpty(t, receipt.AssignedSeatIds)
	assert.Nil(t, receipt.Warning)
}

func TestSettleGroupSeatConflictTwiceIsOnlyWarning(t *testing.T) {
	group := openGroup(constants.PAYMENT_HOST_PAYS_ALL, "ord-1", "ord-2")
	group.SeatingOption = ptrTo(1)

	rec := &settlementRecorder{}
	deps := happyDeps(group, rec)
	deps.ReserveSeats = func(g *model.GroupOrder, seatIds []uint) error {
		return ErrSeatConflict
	}

	receipt, err := SettleGroup(deps, "GRP-TEST01")

	require.NoError(t, err)
	assert.Equal(t, constants.GROUP_COMPLETED, receipt.GroupStatus)
	assert.Empty(t, receipt.AssignedSeatIds)
	require.NotNil(t, receipt.Warning)
	assert.Equal(t, WarnSeatConflict, *receipt.Warning)
	// bếp vẫn được báo, dù chưa có ghế
	assert.Equal(t, 1, rec.notifyCount)
}

func TestSettleGroupInsufficientSeatsIsOnlyWarning(t *testing.T) {
	group := openGroup(constants.PAYMENT_HOST_PAYS_ALL, "ord-1", "ord-2", "ord-3")
	group.SeatingOption = ptrTo(1)

	rec := &settlementRecorder{}
	deps := happyDeps(group, rec)
	deps.AvailableSeats = func(locationId uint) ([]model.Seat, error) {
		return availableSeats(1), nil
	}

	receipt, err := SettleGroup(deps, "GRP-TEST01")

	require.NoError(t, err)
	assert.Equal(t, constants.GROUP_COMPLETED, receipt.GroupStatus)
	require.NotNil(t, receipt.Warning)
	assert.Equal(t, WarnInsufficientSeats, *receipt.Warning)
	assert.Equal(t, []string{"ord-1", "ord-2", "ord-3"}, receipt.PaidOrderRefs)
}

func TestSettleGroupGroupSizeOverridesMemberCount(t *testing.T) {
	group := openGroup(constants.PAYMENT_HOST_PAYS_ALL, "ord-1", "ord-2")
	group.SeatingOption = ptrTo(1)
	group.GroupSize = ptrTo(4)

	rec := &settlementRecorder{}
	receipt, err := SettleGroup(happyDeps(group, rec), "GRP-TEST01")

	require.NoError(t, err)
	assert.Len(t, receipt.AssignedSeatIds, 4)
}

func TestSettleGroupWithoutSeatingOptionSkipsSeating(t *testing.T) {
	group := openGroup(constants.PAYMENT_HOST_PAYS_ALL, "ord-1")

	rec := &settlementRecorder{}
	deps := happyDeps(group, rec)
	deps.AvailableSeats = func(locationId uint) ([]model.Seat, error) {
		t.Fatal("AvailableSeats should not be called without a seating option")
		return nil, nil
	}

	receipt, err := SettleGroup(deps, "GRP-TEST01")

	require.NoError(t, err)
	assert.Empty(t, receipt.AssignedSeatIds)
	assert.Nil(t, receipt.Warning)
	assert.Equal(t, 1, rec.notifyCount)
}

// Hai request trả tiền cùng quan sát nhóm OPEN: chỉ request thắng bước
// OPEN → PAID được xếp chỗ, request thua nhận ErrGroupNotOpen và không
// reserve thêm ghế nào.
func TestSettleGroupConcurrentPaymentsOnlyOneWins(t *testing.T) {
	var mu sync.Mutex
	status := constants.GROUP_OPEN
	reserveCount := 0

	makeDeps := func() SettlementDeps {
		// mỗi request load một bản OPEN riêng, như hai transaction đọc cùng dòng
		group := openGroup(constants.PAYMENT_HOST_PAYS_ALL, "ord-1", "ord-2")
		group.SeatingOption = ptrTo(1)
		deps := happyDeps(group, &settlementRecorder{})
		deps.SetGroupStatus = func(g *model.GroupOrder, from string, to string) error {
			mu.Lock()
			defer mu.Unlock()
			if status != from {
				return ErrGroupNotOpen
			}
			status = to
			g.Status = to
			return nil
		}
		deps.ReserveSeats = func(g *model.GroupOrder, seatIds []uint) error {
			mu.Lock()
			defer mu.Unlock()
			reserveCount++
			return nil
		}
		return deps
	}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = SettleGroup(makeDeps(), "GRP-TEST01")
		}(i)
	}
	wg.Wait()

	winners, losers := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			winners++
		case errors.Is(err, ErrGroupNotOpen):
			losers++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, winners)
	assert.Equal(t, 1, losers)
	assert.Equal(t, 1, reserveCount)
	assert.Equal(t, constants.GROUP_COMPLETED, status)
}

func TestSettleGroupUnknownCode(t *testing.T) {
	group := openGroup(constants.PAYMENT_HOST_PAYS_ALL, "ord-1")

	rec := &settlementRecorder{}
	_, err := SettleGroup(happyDeps(group, rec), "GRP-KHONGTONTAI")

	assert.ErrorIs(t, err, ErrGroupNotFound)
}

func ptrTo[T any](v T) *T {
	return &v
}
