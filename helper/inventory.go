package helper

import (
	"errors"
	"pod_dining/constants"
	"pod_dining/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LinkDualPods ghép 2 ghế thành một pod đôi.
// Forward reference đặt trên ghế có id nhỏ hơn để kết quả luôn xác định.
func LinkDualPods(db *gorm.DB, seatAId, seatBId uint) error {
	if seatAId == seatBId {
		return ErrSelfLink
	}

	tx := db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var a, b model.Seat
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&a, seatAId).Error; err != nil {
		tx.Rollback()
		return ErrSeatNotFound
	}
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&b, seatBId).Error; err != nil {
		tx.Rollback()
		return ErrSeatNotFound
	}

	if a.LocationId != b.LocationId {
		tx.Rollback()
		return ErrCrossLocation
	}

	// Một ghế chỉ được tham gia đúng một cặp: đang giữ forward reference,
	// hoặc đang bị ghế khác trỏ tới → đều coi là đã ghép
	if a.DualPartnerId != nil || b.DualPartnerId != nil {
		tx.Rollback()
		return ErrAlreadyLinked
	}
	var referenced int64
	if err := tx.Model(&model.Seat{}).Where("dual_partner_id IN ?", []uint{a.ID, b.ID}).Count(&referenced).Error; err != nil {
		tx.Rollback()
		return err
	}
	if referenced > 0 {
		tx.Rollback()
		return ErrAlreadyLinked
	}

	fwd, other := &a, &b
	if b.ID < a.ID {
		fwd, other = &b, &a
	}
	if err := tx.Model(fwd).Updates(map[string]any{
		"dual_partner_id": other.ID,
		"pod_type":        constants.POD_DUAL,
	}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Model(other).Update("pod_type", constants.POD_DUAL).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

// UnlinkDualPod gỡ pod đôi, gọi từ nửa nào của cặp cũng được.
func UnlinkDualPod(db *gorm.DB, seatId uint) error {
	tx := db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var seat model.Seat
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&seat, seatId).Error; err != nil {
		tx.Rollback()
		return ErrSeatNotFound
	}

	var partner model.Seat
	if seat.DualPartnerId != nil {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&partner, *seat.DualPartnerId).Error; err != nil {
			tx.Rollback()
			return ErrNotLinked
		}
	} else {
		// Ghế này là phía bị trỏ tới → tra ngược
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("dual_partner_id = ?", seat.ID).First(&partner).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotLinked
			}
			return err
		}
	}

	for _, id := range []uint{seat.ID, partner.ID} {
		if err := tx.Model(&model.Seat{}).Where("id = ?", id).Updates(map[string]any{
			"dual_partner_id": nil,
			"pod_type":        constants.POD_SINGLE,
		}).Error; err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit().Error
}

// ReserveSeats chuyển cả tập ghế AVAILABLE → RESERVED bằng một câu UPDATE có điều kiện.
// Chỉ cần một ghế không còn AVAILABLE là cả tập thất bại, không reserve một phần.
func ReserveSeats(db *gorm.DB, seatIds []uint) error {
	if len(seatIds) == 0 {
		return nil
	}

	tx := db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	res := tx.Model(&model.Seat{}).
		Where("id IN ? AND status = ?", seatIds, constants.SEAT_AVAILABLE).
		Update("status", constants.SEAT_RESERVED)
	if res.Error != nil {
		tx.Rollback()
		return res.Error
	}
	if res.RowsAffected != int64(len(seatIds)) {
		tx.Rollback()
		return ErrSeatConflict
	}

	return tx.Commit().Error
}

// ReleaseSeats trả ghế về AVAILABLE (hết giờ nhóm, dọn xong, huỷ reserve).
func ReleaseSeats(db *gorm.DB, seatIds []uint) error {
	if len(seatIds) == 0 {
		return nil
	}
	return db.Model(&model.Seat{}).
		Where("id IN ?", seatIds).
		Update("status", constants.SEAT_AVAILABLE).Error
}

// MarkSeatsCleaning đánh dấu ghế cần dọn sau khi nhóm rời đi.
func MarkSeatsCleaning(db *gorm.DB, seatIds []uint) error {
	if len(seatIds) == 0 {
		return nil
	}
	return db.Model(&model.Seat{}).
		Where("id IN ?", seatIds).
		Update("status", constants.SEAT_CLEANING).Error
}

// OccupySeat chuyển ghế (và ghế đôi đi kèm nếu có) sang OCCUPIED khi khách check-in.
// Trả về danh sách id ghế thuộc pod. Ghế đã OCCUPIED rồi thì bỏ qua (idempotent).
func OccupySeat(db *gorm.DB, seatId uint) ([]uint, error) {
	tx := db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var seat model.Seat
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&seat, seatId).Error; err != nil {
		tx.Rollback()
		return nil, ErrSeatNotFound
	}

	ids := []uint{seat.ID}
	if seat.PodType == constants.POD_DUAL {
		var partner model.Seat
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&partner, "dual_partner_id = ?", seat.ID).Error
		if err != nil && seat.DualPartnerId != nil {
			err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&partner, *seat.DualPartnerId).Error
		}
		if err == nil {
			ids = append(ids, partner.ID)
		}
	}

	if err := tx.Model(&model.Seat{}).
		Where("id IN ? AND status <> ?", ids, constants.SEAT_OCCUPIED).
		Update("status", constants.SEAT_OCCUPIED).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return ids, nil
}
