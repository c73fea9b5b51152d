package hub

import (
	"github.com/devimrittika/Green-Planet/internal/model"
	"github.com/devimrittika/Green-Planet/internal/service"
)

// MonitorService gathers feed hub statistics.
type MonitorService struct {
	hub *Hub
}

func NewMonitorService(hub *Hub) *MonitorService {
	return &MonitorService{hub: hub}
}

// GetStats snapshots the hub: connected clients and per-topic counts.
func (ms *MonitorService) GetStats() model.MonitorResponse {
	topics := make(map[string]int)
	var snapshot []*Client

	for _, bucket := range ms.hub.shards {
		bucket.RLock()
		for _, room := range bucket.rooms {
			for _, c := range room {
				snapshot = append(snapshot, c)
			}
		}
		bucket.RUnlock()
	}

	// A client observed mid-teardown still sits in its room map.
	snapshot = service.Filter(snapshot, func(c *Client) bool {
		return !c.IsClosed()
	})

	clients := make([]model.ClientInfo, 0, len(snapshot))
	for _, c := range snapshot {
		topics[c.topic]++
		clients = append(clients, model.ClientInfo{
			ClientID: c.ID,
			UserID:   c.userID,
			Topic:    c.topic,
		})
	}
	topics = service.FilterMap(topics, func(_ string, n int) bool {
		return n > 0
	})

	status := "healthy"
	if len(clients) == 0 {
		status = "idle"
	}

	return model.MonitorResponse{
		Status:       status,
		TotalClients: len(clients),
		Topics:       topics,
		Clients:      clients,
	}
}
