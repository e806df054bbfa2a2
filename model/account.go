package model

type Account struct {
	DTO
	Username     string    `gorm:"uniqueIndex;not null" validate:"required,min=3,max=50" json:"username"`
	Password     string    `gorm:"not null" validate:"required,min=6,max=50" json:"password"`
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	Active       bool      `gorm:"not null;default:true" json:"active"`
	Role         string    `json:"role"` // ADMIN, MANAGER, STAFF
	LocationId   *uint     `json:"locationId"`
	Location     *Location `gorm:"foreignKey:LocationId;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"location,omitempty"`
}

type AccountInfo struct {
	ID         uint   `json:"id"`
	Username   string `json:"username"`
	Role       string `json:"role"`
	LocationId *uint  `json:"locationId"`
}
