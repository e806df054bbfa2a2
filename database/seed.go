package database

import (
	"fmt"
	"log"
	"pod_dining/constants"
	"pod_dining/model"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func SeedData(db *gorm.DB) {
	bytes, err := bcrypt.GenerateFromPassword([]byte("123456cn"), 10)
	HashPassword := string(bytes)
	if err != nil {
		HashPassword = "123456cn"
	}
	accounts := []model.Account{
		{Username: "Administration", Password: HashPassword, Active: true, Role: constants.ROLE_ADMIN},
	}

	for _, account := range accounts {
		// Tạo mới nếu không tồn tại
		if err := db.Where(model.Account{Username: account.Username}).FirstOrCreate(&account).Error; err != nil {
			log.Println("failed to seed data for account:", account.Username, "error:", err)
		}
	}

	location := model.Location{
		Name:        "Pod Dining Nguyễn Huệ",
		Slug:        "pod-dining-nguyen-hue",
		Address:     "36 Nguyễn Huệ, Quận 1, TP.HCM",
		OpeningHour: "08:00",
		Active:      true,
	}
	if err := db.Where(model.Location{Slug: location.Slug}).FirstOrCreate(&location).Error; err != nil {
		log.Println("failed to seed location:", err)
		return
	}

	var seatCount int64
	db.Model(&model.Seat{}).Where("location_id = ?", location.ID).Count(&seatCount)
	if seatCount > 0 {
		return
	}

	// Lưới 2 hàng x 6 cột, hàng 1 bên trái, hàng 2 bên phải
	var seats []model.Seat
	for row := 1; row <= 2; row++ {
		side := "LEFT"
		if row == 2 {
			side = "RIGHT"
		}
		for col := 1; col <= 6; col++ {
			seats = append(seats, model.Seat{
				Number:     fmt.Sprintf("U%d%d", row, col),
				ScanCode:   uuid.New().String(),
				Status:     constants.SEAT_AVAILABLE,
				Row:        row,
				Column:     col,
				Side:       side,
				PodType:    constants.POD_SINGLE,
				LocationId: location.ID,
			})
		}
	}
	if err := db.Create(&seats).Error; err != nil {
		log.Println("failed to seed seats:", err)
		return
	}

	// U11 + U12 là một pod đôi, forward reference nằm trên ghế id nhỏ hơn
	a, b := seats[0], seats[1]
	if err := db.Model(&model.Seat{}).Where("id = ?", a.ID).
		Updates(map[string]any{"dual_partner_id": b.ID, "pod_type": constants.POD_DUAL}).Error; err != nil {
		log.Println("failed to seed dual pod:", err)
		return
	}
	db.Model(&model.Seat{}).Where("id = ?", b.ID).Update("pod_type", constants.POD_DUAL)
}
