package models

const (
	SyncSuccess = "success"
	SyncFailure = "failure"
	SyncPending = "pending"
)

var SyncStatuses = []string{SyncSuccess, SyncFailure, SyncPending}

type SyncLog struct {
	ID           string `json:"id,omitempty"`
	ESLID        string `json:"eslId"`
	ProductName  string `json:"productName"`
	GatewayID    string `json:"gatewayId"`
	StoreName    string `json:"storeName"`
	Status       string `json:"status"`
	SyncedAt     string `json:"syncedAt"`
	ErrorMessage string `json:"errorMessage,omitempty"`
	Duration     string `json:"duration"`
}

func SampleSyncLogs() []SyncLog {
	return []SyncLog{
		{ID: "1", ESLID: "ESL-001", ProductName: "Premium Coffee Beans", GatewayID: "GW-001", StoreName: "Downtown Store", Status: SyncSuccess, SyncedAt: "2024-01-15 14:30:25", Duration: "1.2s"},
		{ID: "2", ESLID: "ESL-002", ProductName: "Organic Milk", GatewayID: "GW-001", StoreName: "Downtown Store", Status: SyncFailure, SyncedAt: "2024-01-15 14:28:15", ErrorMessage: "Connection timeout - ESL not responding", Duration: "30s"},
		{ID: "3", ESLID: "ESL-003", ProductName: "Whole Wheat Bread", GatewayID: "GW-002", StoreName: "Mall Branch", Status: SyncSuccess, SyncedAt: "2024-01-15 14:25:10", Duration: "0.8s"},
		{ID: "4", ESLID: "ESL-004", ProductName: "Fresh Apples", GatewayID: "GW-003", StoreName: "Airport Terminal", Status: SyncFailure, SyncedAt: "2024-01-15 14:20:45", ErrorMessage: "Low battery - sync incomplete", Duration: "15s"},
		{ID: "5", ESLID: "ESL-005", ProductName: "Greek Yogurt", GatewayID: "GW-002", StoreName: "Mall Branch", Status: SyncSuccess, SyncedAt: "2024-01-15 14:18:30", Duration: "1.5s"},
	}
}
