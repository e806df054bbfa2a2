package handler

import (
	"errors"
	"fmt"
	"pod_dining/constants"
	"pod_dining/database"
	"pod_dining/helper"
	"pod_dining/model"
	"pod_dining/utils"
	"pod_dining/validate"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SeatUI struct {
	Id            uint   `json:"id"`
	Number        string `json:"number"`
	Status        string `json:"status"`
	Row           int    `json:"row"`
	Column        int    `json:"column"`
	Side          string `json:"side"`
	PodType       string `json:"podType"`
	DualPartnerId *uint  `json:"dualPartnerId,omitempty"`
}

func toSeatUI(s model.Seat) SeatUI {
	return SeatUI{
		Id:            s.ID,
		Number:        s.Number,
		Status:        s.Status,
		Row:           s.Row,
		Column:        s.Column,
		Side:          s.Side,
		PodType:       s.PodType,
		DualPartnerId: s.DualPartnerId,
	}
}

// GetSeatsByLocation trả toàn bộ lưới pod của location, gom theo hàng để render.
func GetSeatsByLocation(c *fiber.Ctx) error {
	db := database.DB
	locationId := c.Locals("inputId").(int)

	var seats []model.Seat
	if err := db.Where("location_id = ?", locationId).
		Order("row, \"column\"").
		Find(&seats).Error; err != nil {
		return utils.ErrorResponse(c, 500, "Lỗi lấy danh sách pod", err)
	}

	result := make(map[string][]SeatUI)
	for _, s := range seats {
		row := fmt.Sprintf("%d", s.Row)
		result[row] = append(result[row], toSeatUI(s))
	}

	return utils.SuccessResponse(c, 200, result)
}

// GetAvailableSeats trả danh sách pod cấp phát được: AVAILABLE, và pod đôi
// chỉ xuất hiện khi cả hai nửa cùng AVAILABLE. Đây là ranh giới duy nhất
// downstream cần: không code nào phía trên phải tự kiểm tra cặp nữa.
func GetAvailableSeats(c *fiber.Ctx) error {
	db := database.DB
	locationId := c.Locals("inputId").(int)

	var seats []model.Seat
	if err := db.Where("location_id = ?", locationId).Find(&seats).Error; err != nil {
		return utils.ErrorResponse(c, 500, "Lỗi lấy danh sách pod", err)
	}

	available := helper.FilterAllocatable(seats)
	result := make([]SeatUI, 0, len(available))
	for _, s := range available {
		result = append(result, toSeatUI(s))
	}

	return utils.SuccessResponse(c, 200, result)
}

// LinkDualPods ghép 2 pod liền kề thành pod đôi (STAFF)
func LinkDualPods(c *fiber.Ctx) error {
	db := database.DB
	input := c.Locals("linkDualInput").(validate.LinkDualInput)

	_, isAdmin, isManager, isStaff := helper.GetInfoAccountFromToken(c)
	if !isAdmin && !isManager && !isStaff {
		return utils.ErrorResponse(c, 403, "FORBIDDEN", nil)
	}

	if err := helper.LinkDualPods(db, input.SeatAId, input.SeatBId); err != nil {
		switch {
		case errors.Is(err, helper.ErrSeatNotFound):
			return utils.ErrorResponse(c, 404, "Pod không tồn tại", err)
		case errors.Is(err, helper.ErrSelfLink):
			return utils.ErrorResponse(c, 400, "Không thể ghép pod với chính nó", err)
		case errors.Is(err, helper.ErrCrossLocation):
			return utils.ErrorResponse(c, 400, "Hai pod không cùng location", err)
		case errors.Is(err, helper.ErrAlreadyLinked):
			return utils.ErrorResponse(c, 409, "Pod đã thuộc một cặp khác", err)
		default:
			return utils.ErrorResponse(c, 500, constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	var seat model.Seat
	if err := db.First(&seat, input.SeatAId).Error; err == nil {
		BroadcastPodMap(seat.LocationId)
	}

	return utils.SuccessResponse(c, 200, fiber.Map{
		"message": "Đã ghép pod đôi",
		"seatIds": []uint{input.SeatAId, input.SeatBId},
	})
}

// UnlinkDualPod gỡ pod đôi, gọi từ nửa nào của cặp cũng được (STAFF)
func UnlinkDualPod(c *fiber.Ctx) error {
	db := database.DB
	seatId := c.Locals("inputId").(int)

	_, isAdmin, isManager, isStaff := helper.GetInfoAccountFromToken(c)
	if !isAdmin && !isManager && !isStaff {
		return utils.ErrorResponse(c, 403, "FORBIDDEN", nil)
	}

	if err := helper.UnlinkDualPod(db, uint(seatId)); err != nil {
		switch {
		case errors.Is(err, helper.ErrSeatNotFound):
			return utils.ErrorResponse(c, 404, "Pod không tồn tại", err)
		case errors.Is(err, helper.ErrNotLinked):
			return utils.ErrorResponse(c, 400, "Pod không thuộc cặp nào", err)
		default:
			return utils.ErrorResponse(c, 500, constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	var seat model.Seat
	if err := db.First(&seat, seatId).Error; err == nil {
		BroadcastPodMap(seat.LocationId)
	}

	return utils.SuccessResponse(c, 200, "Đã gỡ pod đôi")
}

// ReserveSeatsForStaff giữ một tập pod cho khách vãng lai (STAFF).
// Cả tập hoặc không gì cả, đụng độ với nhóm khác là trả 409.
func ReserveSeatsForStaff(c *fiber.Ctx) error {
	db := database.DB
	input := c.Locals("seatIds").(model.ArrayId)

	_, isAdmin, isManager, isStaff := helper.GetInfoAccountFromToken(c)
	if !isAdmin && !isManager && !isStaff {
		return utils.ErrorResponse(c, 403, "FORBIDDEN", nil)
	}

	if err := helper.ReserveSeats(db, input.IDs); err != nil {
		if errors.Is(err, helper.ErrSeatConflict) {
			return utils.ErrorResponse(c, 409, "Một số pod không còn trống", err)
		}
		return utils.ErrorResponse(c, 500, "Không thể giữ pod", err)
	}

	broadcastSeats(db, input.IDs)

	return utils.SuccessResponse(c, 200, fiber.Map{
		"reservedSeatIds": input.IDs,
	})
}

// ReleaseSeatsForStaff trả pod về AVAILABLE (STAFF)
func ReleaseSeatsForStaff(c *fiber.Ctx) error {
	db := database.DB
	input := c.Locals("seatIds").(model.ArrayId)

	_, isAdmin, isManager, isStaff := helper.GetInfoAccountFromToken(c)
	if !isAdmin && !isManager && !isStaff {
		return utils.ErrorResponse(c, 403, "FORBIDDEN", nil)
	}

	if err := helper.ReleaseSeats(db, input.IDs); err != nil {
		return utils.ErrorResponse(c, 500, "Không thể trả pod", err)
	}

	broadcastSeats(db, input.IDs)

	return utils.SuccessResponse(c, 200, "Đã trả pod")
}

// GetPodQR xuất QR PNG cho mã quét của pod, in dán lên bàn.
func GetPodQR(c *fiber.Ctx) error {
	db := database.DB
	scanCode := c.Params("scanCode")

	var seat model.Seat
	if err := db.Where("scan_code = ?", scanCode).First(&seat).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, 404, "Pod không tồn tại", err)
		}
		return utils.ErrorResponse(c, 500, constants.ERROR_INTERNAL_ERROR, err)
	}

	qrBytes, err := utils.GenerateQRCode(seat.ScanCode, 400)
	if err != nil {
		return utils.ErrorResponse(c, 500, "Lỗi tạo QR", err)
	}

	c.Set("Content-Type", "image/png")
	return c.Send(qrBytes)
}

func broadcastSeats(db *gorm.DB, seatIds []uint) {
	if len(seatIds) == 0 {
		return
	}
	var seat model.Seat
	if err := db.First(&seat, seatIds[0]).Error; err == nil {
		BroadcastPodMap(seat.LocationId)
	}
}
