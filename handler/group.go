package handler

import (
	"errors"
	"log"
	"time"

	"pod_dining/constants"
	"pod_dining/database"
	"pod_dining/helper"
	"pod_dining/model"
	"pod_dining/utils"

	"github.com/gofiber/fiber/v2"
)

// CreateGroupOrder mở một phiên ăn chung từ đơn của host.
// Mã nhóm công khai, host chia sẻ cho bạn bè để join.
func CreateGroupOrder(c *fiber.Ctx) error {
	db := database.DB
	input := c.Locals("createGroupInput").(model.CreateGroupOrderInput)

	// Đơn của host phải tồn tại bên Order Service mới cho mở nhóm
	order, err := helper.Orders.GetOrder(input.HostOrderRef)
	if err != nil {
		if helper.IsOrderNotFound(err) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Đơn hàng của chủ nhóm không tồn tại", err)
		}
		return utils.ErrorResponse(c, fiber.StatusBadGateway, "Không tra được đơn hàng của chủ nhóm", err)
	}
	if order.LocationId != input.LocationId {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Đơn hàng thuộc cơ sở khác", errors.New("order location mismatch"))
	}

	// Một đơn chỉ được làm host của một nhóm đang mở
	var existing int64
	db.Model(&model.GroupOrder{}).
		Where("host_order_ref = ? AND status = ?", input.HostOrderRef, constants.GROUP_OPEN).
		Count(&existing)
	if existing > 0 {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Đơn này đã mở một nhóm khác", errors.New("duplicate open group"))
	}

	tx := db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	group := model.GroupOrder{
		GroupCode:    helper.GenerateUniqueGroupCode(tx),
		LocationId:   input.LocationId,
		Status:       constants.GROUP_OPEN,
		PaymentMode:  input.PaymentMode,
		HostOrderRef: input.HostOrderRef,
	}
	if err := tx.Create(&group).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	host := model.GroupMember{
		GroupOrderId: group.ID,
		OrderRef:     input.HostOrderRef,
		Position:     0,
		IsHost:       true,
	}
	if err := tx.Create(&host).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := tx.Commit().Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	group.Members = []model.GroupMember{host}
	return utils.SuccessResponse(c, fiber.StatusCreated, group)
}

// JoinGroupOrder gắn thêm một đơn hàng vào nhóm đang mở.
func JoinGroupOrder(c *fiber.Ctx) error {
	db := database.DB
	groupCode := c.Params("groupCode")
	input := c.Locals("joinGroupInput").(model.JoinGroupOrderInput)

	var group model.GroupOrder
	if err := db.Preload("Members").Where("group_code = ?", groupCode).First(&group).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Không tìm thấy nhóm", helper.ErrGroupNotFound)
	}
	if group.Status != constants.GROUP_OPEN {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Nhóm đã đóng, không nhận thêm thành viên", helper.ErrGroupNotOpen)
	}

	for _, m := range group.Members {
		if m.OrderRef == input.OrderRef {
			return utils.ErrorResponse(c, fiber.StatusConflict, "Đơn này đã ở trong nhóm", helper.ErrAlreadyMember)
		}
	}

	order, err := helper.Orders.GetOrder(input.OrderRef)
	if err != nil {
		if helper.IsOrderNotFound(err) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Đơn hàng không tồn tại", err)
		}
		return utils.ErrorResponse(c, fiber.StatusBadGateway, "Không tra được đơn hàng", err)
	}
	if order.LocationId != group.LocationId {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Đơn hàng thuộc cơ sở khác", errors.New("order location mismatch"))
	}

	member := model.GroupMember{
		GroupOrderId: group.ID,
		OrderRef:     input.OrderRef,
		Position:     len(group.Members),
		IsHost:       false,
	}
	if err := db.Create(&member).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	group.Members = append(group.Members, member)
	return utils.SuccessResponse(c, fiber.StatusOK, group)
}

// ChooseSeatingOption ghi nguyện vọng chỗ ngồi của nhóm (đầu / giữa / cuối dãy).
// Chỉ là nguyện vọng, ghế thật được chọn lúc settlement.
func ChooseSeatingOption(c *fiber.Ctx) error {
	db := database.DB
	groupCode := c.Params("groupCode")
	input := c.Locals("seatingOptionInput").(model.SeatingOptionInput)

	var group model.GroupOrder
	if err := db.Preload("Members").Where("group_code = ?", groupCode).First(&group).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Không tìm thấy nhóm", helper.ErrGroupNotFound)
	}
	if group.Status != constants.GROUP_OPEN {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Nhóm đã đóng, không đổi được chỗ ngồi", helper.ErrGroupNotOpen)
	}

	group.SeatingOption = &input.Option
	if input.GroupSize != nil {
		group.GroupSize = input.GroupSize
	} else {
		size := len(group.Members)
		group.GroupSize = &size
	}

	if err := db.Model(&model.GroupOrder{}).Where("id = ?", group.ID).
		Updates(map[string]interface{}{
			"seating_option": group.SeatingOption,
			"group_size":     group.GroupSize,
		}).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, group)
}

// GetGroupOrder trả chi tiết nhóm kèm tổng tiền live từ Order Service.
func GetGroupOrder(c *fiber.Ctx) error {
	db := database.DB
	groupCode := c.Params("groupCode")

	var group model.GroupOrder
	if err := db.Preload("Members").Preload("Seats").Preload("Location").
		Where("group_code = ?", groupCode).First(&group).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Không tìm thấy nhóm", helper.ErrGroupNotFound)
	}

	// Tổng tiền luôn tính lại từ đơn thành viên, không lưu cột riêng.
	// Order Service chết thì vẫn trả nhóm, total để null.
	var total *float64
	memberOrders := make([]model.ExternalOrder, 0, len(group.Members))
	sum := 0.0
	ok := true
	for _, m := range group.Members {
		order, err := helper.Orders.GetOrder(m.OrderRef)
		if err != nil || order == nil {
			log.Printf("Không tra được đơn %s của nhóm %s: %v", m.OrderRef, groupCode, err)
			ok = false
			break
		}
		memberOrders = append(memberOrders, *order)
		sum += order.TotalAmount
	}
	if ok {
		total = &sum
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"group":        group,
		"memberOrders": memberOrders,
		"totalAmount":  total,
	})
}

// FinishGroupVisit: nhân viên kết thúc bữa ăn của nhóm:
// pod của nhóm chuyển CLEANING chờ dọn, sáng hôm sau job trả về AVAILABLE.
func FinishGroupVisit(c *fiber.Ctx) error {
	db := database.DB
	_, isAdmin, isManager, isStaff := helper.GetInfoAccountFromToken(c)
	if !isAdmin && !isManager && !isStaff {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Không có quyền thao tác", errors.New("staff only"))
	}

	groupCode := c.Params("groupCode")

	var group model.GroupOrder
	if err := db.Preload("Seats").Where("group_code = ?", groupCode).First(&group).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Không tìm thấy nhóm", helper.ErrGroupNotFound)
	}
	if group.Status != constants.GROUP_COMPLETED {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Nhóm chưa thanh toán xong", errors.New("group not completed"))
	}

	seatIds := make([]uint, 0, len(group.Seats))
	for _, gs := range group.Seats {
		seatIds = append(seatIds, gs.SeatId)
	}

	if len(seatIds) > 0 {
		if err := helper.MarkSeatsCleaning(db, seatIds); err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	now := time.Now()
	if err := db.Model(&model.GroupOrder{}).Where("id = ?", group.ID).
		Update("completed_at", &now).Error; err != nil {
		log.Printf("Không ghi được completed_at cho nhóm %s: %v", groupCode, err)
	}

	BroadcastPodMap(group.LocationId)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"groupCode":     group.GroupCode,
		"cleaningSeats": seatIds,
	})
}
