package helper

import (
	"log"
	"pod_dining/config"
	"pod_dining/constants"
	"pod_dining/database"
	"pod_dining/model"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"
)

var groupScheduler *cron.Cron

// StartGroupExpiryScheduler quét mỗi phút các nhóm OPEN bỏ quên quá hạn.
func StartGroupExpiryScheduler() {
	groupScheduler = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	_, err := groupScheduler.AddFunc("* * * * *", ExpireStaleGroups)
	if err != nil {
		log.Printf("Lỗi khởi tạo scheduler: %v", err)
		return
	}

	groupScheduler.Start()
	log.Println("Scheduler hết hạn nhóm đã khởi động (mỗi phút)")
}

// Dừng scheduler khi tắt server
func StopGroupExpiryScheduler() {
	if groupScheduler != nil {
		groupScheduler.Stop()
		log.Println("Scheduler hết hạn nhóm đã dừng")
	}
}

// ExpireStaleGroups chuyển nhóm OPEN không hoạt động quá GROUP_EXPIRY_MINUTES
// sang EXPIRED và trả lại ghế nhóm đang giữ (lưới an toàn: luồng mặc định
// chỉ reserve ghế lúc settlement nên thường không có ghế để trả).
func ExpireStaleGroups() {
	db := database.DB

	minutes, err := strconv.Atoi(config.ConfigDefault("GROUP_EXPIRY_MINUTES", "90"))
	if err != nil || minutes <= 0 {
		minutes = 90
	}
	cutoff := time.Now().Add(-time.Duration(minutes) * time.Minute)

	var stale []model.GroupOrder
	if err := db.Preload("Seats").
		Where("status = ? AND updated_at < ?", constants.GROUP_OPEN, cutoff).
		Find(&stale).Error; err != nil {
		log.Printf("Lỗi quét nhóm hết hạn: %v", err)
		return
	}

	for _, group := range stale {
		res := db.Model(&model.GroupOrder{}).
			Where("id = ? AND status = ?", group.ID, constants.GROUP_OPEN).
			Update("status", constants.GROUP_EXPIRED)
		if res.Error != nil || res.RowsAffected == 0 {
			continue
		}

		var seatIds []uint
		for _, gs := range group.Seats {
			seatIds = append(seatIds, gs.SeatId)
		}
		if len(seatIds) > 0 {
			if err := ReleaseSeats(db, seatIds); err != nil {
				log.Printf("Lỗi trả ghế nhóm %s: %v", group.GroupCode, err)
			}
		}
		log.Printf("Nhóm %s đã hết hạn", group.GroupCode)
	}
}
