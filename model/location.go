package model

type Location struct {
	DTO
	Name        string `gorm:"not null" validate:"required" json:"name"`
	Slug        string `gorm:"uniqueIndex" json:"slug"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	OpeningHour string `gorm:"default:08:00" json:"openingHour"` // giờ mở cửa, ví dụ "08:00"
	Active      bool   `gorm:"not null;default:true" json:"active"`
}
