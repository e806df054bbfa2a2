package helper

import (
	"log"
	"pod_dining/constants"
	"pod_dining/database"
	"pod_dining/model"
	"time"

	"github.com/go-co-op/gocron/v2"
)

var maintenanceScheduler gocron.Scheduler

// StartSeatMaintenanceScheduler: mỗi sáng trước giờ mở cửa trả toàn bộ ghế
// CLEANING về AVAILABLE: ca đêm dọn xong nhưng quên bấm trả ghế là chuyện thường.
func StartSeatMaintenanceScheduler() {
	s, err := gocron.NewScheduler(
		gocron.WithLocation(time.FixedZone("ICT", 7*3600)),
	)
	if err != nil {
		log.Printf("Lỗi khởi tạo scheduler dọn ghế: %v", err)
		return
	}

	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(7, 30, 0),
			),
		),
		gocron.NewTask(ResetCleaningSeats),
	)
	if err != nil {
		log.Printf("Lỗi đăng ký job dọn ghế: %v", err)
		return
	}

	s.Start()
	maintenanceScheduler = s
	log.Println("Scheduler dọn ghế đã khởi động (7:30 hằng ngày)")
}

func StopSeatMaintenanceScheduler() {
	if maintenanceScheduler != nil {
		_ = maintenanceScheduler.Shutdown()
	}
}

func ResetCleaningSeats() {
	res := database.DB.Model(&model.Seat{}).
		Where("status = ?", constants.SEAT_CLEANING).
		Update("status", constants.SEAT_AVAILABLE)

	if res.Error != nil {
		log.Printf("Lỗi trả ghế CLEANING: %v", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("Đã trả %d ghế CLEANING về AVAILABLE", res.RowsAffected)
	}
}
