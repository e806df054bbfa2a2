package helper

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"pod_dining/constants"
	"pod_dining/model"
)

func newTestClient(handler http.HandlerFunc) (*OrderClient, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := &OrderClient{
		BaseURL: server.URL,
		http:    server.Client(),
	}
	return client, server
}

func TestGetOrder(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/internal/orders/ord-1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(model.ExternalOrder{
			Ref:           "ord-1",
			OrderNumber:   "DH-0042",
			LocationId:    1,
			TotalAmount:   125000,
			PaymentStatus: constants.ORDER_PAYMENT_PENDING,
		})
	})
	defer server.Close()

	order, err := client.GetOrder("ord-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Ref != "ord-1" || order.OrderNumber != "DH-0042" {
		t.Fatalf("unexpected order: %+v", order)
	}
	if order.TotalAmount != 125000 {
		t.Fatalf("unexpected total: %v", order.TotalAmount)
	}
}

func TestGetOrderNotFound(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})
	defer server.Close()

	_, err := client.GetOrder("ord-missing")
	if err == nil {
		t.Fatal("expected error for missing order")
	}
	if !IsOrderNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestFindActiveOrderForSeatNoOrder(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no active order", http.StatusNotFound)
	})
	defer server.Close()

	// pod không có đơn chờ không phải là lỗi
	order, err := client.FindActiveOrderForSeat("scan-abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order != nil {
		t.Fatalf("expected nil order, got %+v", order)
	}
}

func TestSetPaymentStatus(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody map[string]string

	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusNoContent)
	})
	defer server.Close()

	if err := client.SetPaymentStatus("ord-1", constants.ORDER_PAYMENT_PAID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotMethod != http.MethodPatch {
		t.Errorf("expected PATCH, got %s", gotMethod)
	}
	if gotPath != "/internal/orders/ord-1/payment-status" {
		t.Errorf("unexpected path %s", gotPath)
	}
	if gotBody["paymentStatus"] != constants.ORDER_PAYMENT_PAID {
		t.Errorf("unexpected body %v", gotBody)
	}
}

func TestCreateReorder(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/internal/orders/reorder" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		json.NewDecoder(r.Body).Decode(&body)
		if body["locationId"] != float64(1) {
			t.Errorf("unexpected locationId %v", body["locationId"])
		}
		json.NewEncoder(w).Encode(model.ExternalOrder{Ref: "ord-2", LocationId: 1})
	})
	defer server.Close()

	items := []model.OrderItem{{Name: "Phở bò", Quantity: 2, Price: 55000}}
	order, err := client.CreateReorder(items, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Ref != "ord-2" {
		t.Fatalf("unexpected reorder: %+v", order)
	}
}

func TestMarkArrivedForwardsUserId(t *testing.T) {
	var gotPath string
	var gotBody map[string]string

	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusNoContent)
	})
	defer server.Close()

	if err := client.MarkArrived("ord-1", "42"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/internal/orders/ord-1/arrive" {
		t.Errorf("unexpected path %s", gotPath)
	}
	if gotBody["userId"] != "42" {
		t.Errorf("userId not forwarded, body %v", gotBody)
	}
}

func TestMarkArrivedGuestHasEmptyBody(t *testing.T) {
	var gotLength int64

	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotLength = r.ContentLength
		w.WriteHeader(http.StatusNoContent)
	})
	defer server.Close()

	// guest session không có token thì không gửi body
	if err := client.MarkArrived("ord-1", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLength > 0 {
		t.Errorf("expected empty body, got %d bytes", gotLength)
	}
}

func TestUpstreamErrorSurfacesStatus(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	defer server.Close()

	err := client.MarkArrived("ord-1", "")
	if err == nil {
		t.Fatal("expected error")
	}
	if IsOrderNotFound(err) {
		t.Fatal("500 must not be treated as not-found")
	}
}
