package helper

import (
	"context"
	"pod_dining/database"
	"pod_dining/model"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GenerateUniqueGroupCode cấp mã nhóm ngắn để chia sẻ, ví dụ GRP-A1B2C3.
// Giữ chỗ mã qua Redis SETNX để hai request cùng lúc không trùng mã,
// sau đó vẫn kiểm tra DB phòng khi Redis không chạy.
func GenerateUniqueGroupCode(tx *gorm.DB) string {
	ctx := context.Background()
	for {
		code := "GRP-" + strings.ToUpper(uuid.New().String()[:6])

		if database.Redis != nil {
			ok, err := database.Redis.SetNX(ctx, "groupcode:"+code, 1, time.Hour).Result()
			if err == nil && !ok {
				continue
			}
		}

		var count int64
		tx.Model(&model.GroupOrder{}).Where("group_code = ?", code).Count(&count)
		if count == 0 {
			return code
		}
	}
}
