package handler

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"pod_dining/config"
	"pod_dining/constants"
	"pod_dining/database"
	"pod_dining/helper"
	"pod_dining/model"
	"pod_dining/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// PayForGroup: host trả cả nhóm một lần. Bơm bản thật của SettlementDeps
// (GORM + Order Service + notify bếp) vào helper.SettleGroup.
func PayForGroup(c *fiber.Ctx) error {
	db := database.DB
	groupCode := c.Params("groupCode")

	// Email host tùy chọn, có thì gửi biên nhận kèm QR mã nhóm
	type payInput struct {
		HostEmail string `json:"hostEmail"`
	}
	input := new(payInput)
	if len(c.Body()) > 0 {
		if err := c.BodyParser(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Dữ liệu không hợp lệ", err)
		}
	}

	deps := helper.SettlementDeps{
		LoadGroup: func(code string) (*model.GroupOrder, error) {
			var group model.GroupOrder
			if err := db.Preload("Members").Preload("Location").
				Where("group_code = ?", code).First(&group).Error; err != nil {
				return nil, helper.ErrGroupNotFound
			}
			return &group, nil
		},
		MarkOrderPaid: func(orderRef string) error {
			return helper.Orders.SetPaymentStatus(orderRef, constants.ORDER_PAYMENT_PAID)
		},
		SetGroupStatus: func(group *model.GroupOrder, from string, to string) error {
			updates := map[string]interface{}{"status": to}
			now := time.Now()
			switch to {
			case constants.GROUP_PAID:
				updates["paid_at"] = &now
			case constants.GROUP_COMPLETED:
				updates["completed_at"] = &now
			}
			// Update có điều kiện trên trạng thái cũ: hai request trả tiền
			// cùng lúc thì chỉ một request đổi được OPEN → PAID, request kia
			// không chạm dòng nào và nhận ErrGroupNotOpen
			result := db.Model(&model.GroupOrder{}).
				Where("id = ? AND status = ?", group.ID, from).
				Updates(updates)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return helper.ErrGroupNotOpen
			}
			group.Status = to
			return nil
		},
		AvailableSeats: func(locationId uint) ([]model.Seat, error) {
			var seats []model.Seat
			if err := db.Where("location_id = ?", locationId).
				Order(`row, "column"`).Find(&seats).Error; err != nil {
				return nil, err
			}
			return helper.FilterAllocatable(seats), nil
		},
		ReserveSeats: func(group *model.GroupOrder, seatIds []uint) error {
			if err := helper.ReserveSeats(db, seatIds); err != nil {
				return err
			}
			for _, id := range seatIds {
				if err := db.Create(&model.GroupOrderSeat{
					GroupOrderId: group.ID,
					SeatId:       id,
				}).Error; err != nil {
					log.Printf("Không ghi được ghế %d cho nhóm %s: %v", id, group.GroupCode, err)
				}
			}
			BroadcastPodMap(group.LocationId)
			return nil
		},
		NotifySeated: func(group *model.GroupOrder, seatIds []uint) {
			helper.NotifyGroupSeated(group, seatIds)
			if input.HostEmail != "" {
				sendGroupReceipt(db, input.HostEmail, group, seatIds)
			}
		},
	}

	receipt, err := helper.SettleGroup(deps, groupCode)
	if err != nil {
		var partial *helper.PartialPaymentError
		switch {
		case errors.Is(err, helper.ErrGroupNotFound):
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Không tìm thấy nhóm", err)
		case errors.Is(err, helper.ErrGroupNotOpen):
			return utils.ErrorResponse(c, fiber.StatusConflict, "Nhóm không ở trạng thái thanh toán được", err)
		case errors.As(err, &partial):
			// Thanh toán đứt giữa chừng: trả danh sách đơn đã PAID để
			// client / nhân viên đối soát, tuyệt đối không tự hoàn tiền
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"status":        "error",
				"message":       "Thanh toán nhóm bị gián đoạn, vui lòng liên hệ nhân viên",
				"paidOrderIds":  partial.PaidOrderRefs,
				"failedOrderId": partial.FailedOrderRef,
			})
		default:
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	return utils.SuccessResponse(c, fiber.StatusOK, receipt)
}

// sendGroupReceipt gửi biên nhận HTML cho host (async bên trong SendGroupReceiptEmail)
func sendGroupReceipt(db *gorm.DB, to string, group *model.GroupOrder, seatIds []uint) {
	total := 0.0
	for _, m := range group.Members {
		order, err := helper.Orders.GetOrder(m.OrderRef)
		if err != nil || order == nil {
			continue
		}
		total += order.TotalAmount
	}

	seatNumbers := make([]string, 0, len(seatIds))
	if len(seatIds) > 0 {
		var seats []model.Seat
		if err := db.Where("id IN ?", seatIds).Find(&seats).Error; err == nil {
			for _, s := range seats {
				seatNumbers = append(seatNumbers, s.Number)
			}
		}
	}

	utils.SendGroupReceiptEmail(to, utils.GroupReceiptData{
		GroupCode:    group.GroupCode,
		LocationName: group.Location.Name,
		Seats:        strings.Join(seatNumbers, ", "),
		MemberCount:  len(group.Members),
		TotalAmount:  total,
		DetailLink:   fmt.Sprintf("%s/groups/%s", config.Config("FRONTEND_URL"), group.GroupCode),
	})
}
