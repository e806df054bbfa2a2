package model

// Seat là một pod vật lý tại một location.
// Pod đôi: một phía của cặp giữ DualPartnerId (forward reference),
// phía còn lại tra ngược qua dual_partner_id = id của mình.
type Seat struct {
	DTO
	Number        string   `gorm:"not null" validate:"required" json:"number"` // ví dụ "U07"
	ScanCode      string   `gorm:"uniqueIndex;size:36" json:"scanCode"`
	Status        string   `gorm:"not null;default:AVAILABLE" json:"status"` // AVAILABLE, OCCUPIED, RESERVED, CLEANING
	Row           int      `gorm:"not null" json:"row"`
	Column        int      `gorm:"not null" validate:"min=1" json:"column"`
	Side          string   `json:"side"` // LEFT / RIGHT, chỉ dùng để render
	PodType       string   `gorm:"not null;default:SINGLE" json:"podType"` // SINGLE, DUAL
	LocationId    uint     `json:"locationId"`
	Location      Location `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	DualPartnerId *uint    `gorm:"index" json:"dualPartnerId"`
}
