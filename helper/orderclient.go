package helper

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"pod_dining/model"
	"time"
)

// OrderService là mặt cắt với Order Service bên ngoài.
// Đơn hàng thuộc về service đó, ở đây chỉ đọc và yêu cầu đổi trạng thái.
type OrderService interface {
	GetOrder(ref string) (*model.ExternalOrder, error)
	SetPaymentStatus(ref string, status string) error
	// MarkArrived báo Order Service khách đã tới; userId rỗng với guest session
	MarkArrived(ref string, userId string) error
	// FindActiveOrderForSeat trả về (nil, nil) khi pod không có đơn chờ khách
	FindActiveOrderForSeat(scanCode string) (*model.ExternalOrder, error)
	CreateReorder(items []model.OrderItem, locationId uint) (*model.ExternalOrder, error)
}

// Orders là client dùng chung, gán trong main. Test thay bằng mock.
var Orders OrderService

type OrderClient struct {
	BaseURL string
	http    *http.Client
}

func NewOrderClient() *OrderClient {
	return &OrderClient{
		BaseURL: os.Getenv("ORDER_SERVICE_URL"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (oc *OrderClient) GetOrder(ref string) (*model.ExternalOrder, error) {
	var order model.ExternalOrder
	if err := oc.do(http.MethodGet, "/internal/orders/"+ref, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (oc *OrderClient) SetPaymentStatus(ref string, status string) error {
	body := map[string]string{"paymentStatus": status}
	return oc.do(http.MethodPatch, "/internal/orders/"+ref+"/payment-status", body, nil)
}

func (oc *OrderClient) MarkArrived(ref string, userId string) error {
	var body any
	if userId != "" {
		body = map[string]string{"userId": userId}
	}
	return oc.do(http.MethodPatch, "/internal/orders/"+ref+"/arrive", body, nil)
}

func (oc *OrderClient) FindActiveOrderForSeat(scanCode string) (*model.ExternalOrder, error) {
	var order model.ExternalOrder
	err := oc.do(http.MethodGet, "/internal/seats/"+scanCode+"/active-order", nil, &order)
	if err != nil {
		if errNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (oc *OrderClient) CreateReorder(items []model.OrderItem, locationId uint) (*model.ExternalOrder, error) {
	body := map[string]any{"items": items, "locationId": locationId}
	var order model.ExternalOrder
	if err := oc.do(http.MethodPost, "/internal/orders/reorder", body, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

type upstreamError struct {
	StatusCode int
	Body       string
}

func (e *upstreamError) Error() string {
	return fmt.Sprintf("order service returned %d: %s", e.StatusCode, e.Body)
}

func errNotFound(err error) bool {
	ue, ok := err.(*upstreamError)
	return ok && ue.StatusCode == http.StatusNotFound
}

// IsOrderNotFound cho handler phân biệt "đơn không tồn tại" với lỗi mạng
func IsOrderNotFound(err error) bool {
	return errNotFound(err)
}

func (oc *OrderClient) do(method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, oc.BaseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := oc.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)
		return &upstreamError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
