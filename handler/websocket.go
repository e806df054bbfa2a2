package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"pod_dining/database"
	"pod_dining/model"
	"strconv"
	"strings"
	"sync"

	"github.com/gofiber/contrib/websocket"
)

var (
	podConnections = make(map[uint]map[*websocket.Conn]bool)
	podMutex       sync.Mutex
)

// PodMapWebsocket đẩy trạng thái pod realtime cho màn hình chọn chỗ của một location.
func PodMapWebsocket(c *websocket.Conn) {
	locationIdStr := c.Params("locationId")
	locationId64, err := strconv.ParseUint(locationIdStr, 10, 64)
	if err != nil {
		log.Printf("Invalid locationId: %s", locationIdStr)
		c.Close()
		return
	}
	id := uint(locationId64)

	// Thêm connection vào map
	podMutex.Lock()
	if podConnections[id] == nil {
		podConnections[id] = make(map[*websocket.Conn]bool)
	}
	podConnections[id][c] = true
	podMutex.Unlock()

	log.Printf("New WS connection for location %d. Total connections: %d", id, len(podConnections[id]))

	defer func() {
		podMutex.Lock()
		delete(podConnections[id], c)
		if len(podConnections[id]) == 0 {
			delete(podConnections, id)
		}
		podMutex.Unlock()
		c.Close()
	}()

	// Gửi ngay trạng thái pod hiện tại cho client mới connect
	if state, err := fetchPodMap(id); err == nil {
		c.WriteJSON(state)
	}

	// Loop để giữ connection
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			break
		}
	}
}

func fetchPodMap(locationId uint) (map[string][]SeatUI, error) {
	var seats []model.Seat
	if err := database.DB.
		Where("location_id = ?", locationId).
		Order("row, \"column\"").
		Find(&seats).Error; err != nil {
		return nil, err
	}

	result := make(map[string][]SeatUI)
	for _, s := range seats {
		row := fmt.Sprintf("%d", s.Row)
		result[row] = append(result[row], toSeatUI(s))
	}
	return result, nil
}

// BroadcastPodMap đẩy trạng thái mới nhất sau mỗi mutation ghế.
// Có Redis thì publish để các instance khác cùng forward; không thì ghi thẳng.
func BroadcastPodMap(locationId uint) {
	state, err := fetchPodMap(locationId)
	if err != nil {
		log.Printf("Error loading pod map for broadcast: %v", err)
		return
	}

	if database.Redis != nil {
		payload, err := json.Marshal(state)
		if err == nil {
			if err := database.Redis.Publish(context.Background(),
				fmt.Sprintf("podmap:%d", locationId), payload).Err(); err == nil {
				return
			}
		}
	}

	writePodMap(locationId, state)
}

func writePodMap(locationId uint, state any) {
	podMutex.Lock()
	conns, ok := podConnections[locationId]
	if !ok {
		podMutex.Unlock()
		return
	}
	podMutex.Unlock()

	for conn := range conns {
		if err := conn.WriteJSON(state); err != nil {
			log.Printf("Error broadcasting pod map: %v", err)
		}
	}
}

// StartPodMapSubscriber nhận broadcast từ các instance khác qua Redis pub/sub.
func StartPodMapSubscriber() {
	if database.Redis == nil {
		return
	}

	go func() {
		pubsub := database.Redis.PSubscribe(context.Background(), "podmap:*")
		defer pubsub.Close()

		for msg := range pubsub.Channel() {
			idStr := strings.TrimPrefix(msg.Channel, "podmap:")
			id64, err := strconv.ParseUint(idStr, 10, 64)
			if err != nil {
				continue
			}

			var state map[string][]SeatUI
			if err := json.Unmarshal([]byte(msg.Payload), &state); err != nil {
				continue
			}
			writePodMap(uint(id64), state)
		}
	}()
}
