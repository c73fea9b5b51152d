package model

// MonitorResponse reports the live state of the feed hub.
type MonitorResponse struct {
	Status       string         `json:"status"`
	TotalClients int            `json:"totalClients"`
	Topics       map[string]int `json:"topics"`
	Clients      []ClientInfo   `json:"clients"`
}

// ClientInfo describes one connected feed subscriber.
type ClientInfo struct {
	ClientID string `json:"clientId"`
	UserID   string `json:"userId"`
	Topic    string `json:"topic"`
}
