package handler

import (
	"errors"
	"strconv"

	"pod_dining/constants"
	"pod_dining/database"
	"pod_dining/helper"
	"pod_dining/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// ResolvePod xử lý lượt quét QR trên bàn: pod này đang chờ đơn nào?
func ResolvePod(c *fiber.Ctx) error {
	db := database.DB
	scanCode := c.Params("scanCode")

	info, err := helper.ResolvePod(db, helper.Orders, scanCode)
	if err != nil {
		if errors.Is(err, helper.ErrUnknownCode) {
			return utils.ErrorResponse(c, 404, "Mã pod không hợp lệ", err)
		}
		// Lỗi mạng / Order Service trả thẳng cho client retry
		return utils.ErrorResponse(c, 502, "Không tra được đơn hàng, vui lòng thử lại", err)
	}

	return utils.SuccessResponse(c, 200, info)
}

// ConfirmArrival xác nhận khách đã tới pod. Khách chưa đăng nhập vẫn xác nhận được.
// Quét lại pod đã xác nhận trả về đúng payload cũ, không phải lỗi.
func ConfirmArrival(c *fiber.Ctx) error {
	db := database.DB
	scanCode := c.Params("scanCode")

	// userId tuỳ chọn, guest session không có token
	userId := ""
	if token, ok := c.Locals("user").(*jwt.Token); ok && token != nil {
		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if id, ok := claims["accountId"].(float64); ok {
				userId = strconv.FormatUint(uint64(id), 10)
			}
		}
	}

	confirmed, err := helper.ConfirmArrival(helper.NewCheckinDeps(db, helper.Orders), scanCode, userId)
	if err != nil {
		switch {
		case errors.Is(err, helper.ErrUnknownCode):
			return utils.ErrorResponse(c, 404, "Mã pod không hợp lệ", err)
		case errors.Is(err, helper.ErrNoActiveOrder):
			return utils.ErrorResponse(c, 400, "Pod này không có đơn hàng đang chờ", err)
		default:
			return utils.ErrorResponse(c, 502, "Không xác nhận được, vui lòng thử lại", err)
		}
	}

	BroadcastPodMap(confirmed.LocationId)

	return utils.SuccessResponse(c, 200, fiber.Map{
		"orderRef":    confirmed.OrderRef,
		"orderNumber": confirmed.OrderNumber,
		"seatId":      confirmed.SeatId,
		"seatNumber":  confirmed.SeatNumber,
		"seatStatus":  constants.SEAT_OCCUPIED,
	})
}
