package helper

import (
	"fmt"
	"pod_dining/model"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

func GenerateUniqueLocationSlug(tx *gorm.DB, name string) string {
	base := slug.Make(name)
	result := base
	i := 1

	for {
		var count int64
		tx.Model(&model.Location{}).
			Where("slug = ?", result).
			Count(&count)

		if count == 0 {
			break
		}
		result = fmt.Sprintf("%s-%d", base, i)
		i++
	}

	return result
}
