package model

import "time"

// GroupOrder là một phiên ăn chung: nhiều đơn hàng, một chỗ ngồi, một lần thanh toán.
// Tổng tiền không lưu cột riêng, luôn tính từ tổng các đơn thành viên.
type GroupOrder struct {
	DTO
	GroupCode     string           `gorm:"uniqueIndex;size:20" json:"groupCode"` // ví dụ GRP-A1B2C3
	LocationId    uint             `json:"locationId"`
	Location      Location         `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	Status        string           `gorm:"not null;default:OPEN" json:"status"`      // OPEN, PAID, COMPLETED, EXPIRED
	PaymentMode   string           `gorm:"not null" json:"paymentMode"`              // EACH_PAYS_OWN, HOST_PAYS_ALL
	HostOrderRef  string           `gorm:"not null" json:"hostOrderRef"`             // id đơn hàng bên Order Service
	SeatingOption *int             `json:"seatingOption"`                            // 1: đầu, 2: giữa, 3: cuối
	GroupSize     *int             `json:"groupSize"`                                // số chỗ cần, mặc định = số thành viên
	PaidAt        *time.Time       `json:"paidAt,omitempty"`
	CompletedAt   *time.Time       `json:"completedAt,omitempty"`
	Members       []GroupMember    `gorm:"foreignKey:GroupOrderId" json:"members"`
	Seats         []GroupOrderSeat `gorm:"foreignKey:GroupOrderId" json:"seats"`
}

type GroupMember struct {
	DTO
	GroupOrderId uint   `gorm:"index" json:"groupOrderId"`
	OrderRef     string `gorm:"not null" json:"orderRef"`
	Position     int    `json:"position"` // thứ tự tham gia
	IsHost       bool   `gorm:"not null;default:false" json:"isHost"`
}

// GroupOrderSeat ghi lại ghế đã reserve cho nhóm khi settlement,
// để expiry / kết thúc bữa ăn trả đúng ghế.
type GroupOrderSeat struct {
	DTO
	GroupOrderId uint `gorm:"index" json:"groupOrderId"`
	SeatId       uint `json:"seatId"`
}

type CreateGroupOrderInput struct {
	HostOrderRef string `json:"hostOrderRef" validate:"required"`
	LocationId   uint   `json:"locationId" validate:"required,gt=0"`
	PaymentMode  string `json:"paymentMode" validate:"required,oneof=EACH_PAYS_OWN HOST_PAYS_ALL"`
}

type JoinGroupOrderInput struct {
	OrderRef string `json:"orderRef" validate:"required"`
}

type SeatingOptionInput struct {
	Option    int  `json:"option" validate:"required,oneof=1 2 3"`
	GroupSize *int `json:"groupSize" validate:"omitempty,gt=0"`
}
