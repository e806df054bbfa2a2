package helper

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/smtp"
	"os"
	"pod_dining/model"
	"strings"
	"time"

	"github.com/jordan-wright/email"
)

// NotifyGroupSeated báo hệ thống bếp của location rằng nhóm đã chốt.
// Fire-and-forget: lỗi chỉ log, không bao giờ làm settlement thất bại.
func NotifyGroupSeated(group *model.GroupOrder, seatIds []uint) {
	go func() {
		kitchenURL := os.Getenv("KITCHEN_SERVICE_URL")
		if kitchenURL == "" {
			notifyKitchenByEmail(group, seatIds)
			return
		}

		payload, err := json.Marshal(map[string]any{
			"groupCode":     group.GroupCode,
			"locationId":    group.LocationId,
			"seatIds":       seatIds,
			"seatingOption": group.SeatingOption,
			"memberCount":   len(group.Members),
		})
		if err != nil {
			log.Printf("Lỗi encode thông báo bếp: %v", err)
			return
		}

		client := &http.Client{Timeout: 5 * time.Second}
		resp, err := client.Post(kitchenURL+"/internal/groups/seated", "application/json", bytes.NewReader(payload))
		if err != nil {
			log.Printf("Lỗi báo bếp nhóm %s: %v", group.GroupCode, err)
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 300 {
			log.Printf("Bếp trả về %d cho nhóm %s", resp.StatusCode, group.GroupCode)
		}
	}()
}

// notifyKitchenByEmail: fallback text đơn giản khi chưa cấu hình endpoint bếp.
func notifyKitchenByEmail(group *model.GroupOrder, seatIds []uint) {
	to := os.Getenv("KITCHEN_EMAIL")
	if to == "" {
		log.Printf("Không có KITCHEN_SERVICE_URL lẫn KITCHEN_EMAIL, bỏ qua thông báo nhóm %s", group.GroupCode)
		return
	}

	seats := make([]string, 0, len(seatIds))
	for _, id := range seatIds {
		seats = append(seats, fmt.Sprintf("%d", id))
	}

	e := email.NewEmail()
	e.From = os.Getenv("SMTP_FROM")
	e.To = []string{to}
	e.Subject = "Nhóm mới: " + group.GroupCode
	e.Text = []byte(fmt.Sprintf("Nhóm %s (%d đơn) đã thanh toán. Ghế: %s",
		group.GroupCode, len(group.Members), strings.Join(seats, ", ")))

	addr := os.Getenv("SMTP_HOST") + ":" + os.Getenv("SMTP_PORT")
	auth := smtp.PlainAuth("", os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"), os.Getenv("SMTP_HOST"))
	if err := e.Send(addr, auth); err != nil {
		log.Printf("Lỗi gửi email bếp: %v", err)
	}
}
