package constants

// Roles
const (
	ROLE_ADMIN   = "ADMIN"
	ROLE_MANAGER = "MANAGER"
	ROLE_STAFF   = "STAFF"
)

// Trạng thái pod
const (
	SEAT_AVAILABLE = "AVAILABLE"
	SEAT_OCCUPIED  = "OCCUPIED"
	SEAT_RESERVED  = "RESERVED"
	SEAT_CLEANING  = "CLEANING"
)

// Loại pod
const (
	POD_SINGLE = "SINGLE"
	POD_DUAL   = "DUAL"
)

// Trạng thái group order
const (
	GROUP_OPEN      = "OPEN"
	GROUP_PAID      = "PAID"
	GROUP_COMPLETED = "COMPLETED"
	GROUP_EXPIRED   = "EXPIRED"
)

// Hình thức thanh toán nhóm
const (
	PAYMENT_EACH_PAYS_OWN = "EACH_PAYS_OWN"
	PAYMENT_HOST_PAYS_ALL = "HOST_PAYS_ALL"
)

// Trạng thái thanh toán đơn hàng (bên Order Service)
const (
	ORDER_PAYMENT_PENDING = "PENDING"
	ORDER_PAYMENT_PAID    = "PAID"
)

// Trạng thái phục vụ đơn hàng (bên Order Service)
const (
	ORDER_AWAITING_ARRIVAL = "AWAITING_ARRIVAL"
	ORDER_CONFIRMED        = "CONFIRMED"
)

// Trạng thái khi quét mã pod
const (
	POD_NO_ACTIVE_ORDER       = "NO_ACTIVE_ORDER"
	POD_AWAITING_CONFIRMATION = "AWAITING_CONFIRMATION"
	POD_CONFIRMED             = "CONFIRMED"
)

// Messages
const (
	ERROR_INTERNAL_ERROR     = "Lỗi hệ thống, vui lòng thử lại sau"
	DATA_INPUT_IS_NOT_NUMBER = "Dữ liệu truyền vào không phải là số"
	MISSING_LOGIN_INPUT      = "Thiếu thông tin đăng nhập"
	INVALID_USERNAME         = "Tài khoản không tồn tại"
	INVALID_PASSWORD         = "Mật khẩu không đúng"
	ACCOUNT_NOT_ACTIVE       = "Tài khoản đã bị khoá"
)
