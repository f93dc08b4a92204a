package models

const (
	ESLActive   = "active"
	ESLInactive = "inactive"
	ESLError    = "error"
)

var ESLStatuses = []string{ESLActive, ESLInactive, ESLError}

// Level tiers used by the battery and signal facets.
const (
	TierLow    = "low"
	TierMedium = "medium"
	TierHigh   = "high"
)

var Tiers = []string{TierLow, TierMedium, TierHigh}

// LevelTier maps a 0-100 reading to low (<30), medium (30-60) or high (>60).
func LevelTier(level int) string {
	switch {
	case level < 30:
		return TierLow
	case level <= 60:
		return TierMedium
	default:
		return TierHigh
	}
}

// SignalBars renders signal strength as 0-4 bars.
func SignalBars(strength int) int {
	bars := 0
	for _, threshold := range []int{0, 25, 50, 75} {
		if strength > threshold {
			bars++
		}
	}
	return bars
}

type ESL struct {
	ID             string `json:"id,omitempty"`
	LabelSize      string `json:"labelSize"`
	BatteryLevel   int    `json:"batteryLevel"`
	SignalStrength int    `json:"signalStrength"`
	Status         string `json:"status"`
	ProductName    string `json:"productName"`
	StoreName      string `json:"storeName"`
	LastSync       string `json:"lastSync,omitempty"`
	IsRecentlySync bool   `json:"isRecentlySync"`
}

var LabelSizes = []string{"2.9 inch", "4.2 inch", "7.5 inch"}

func (e ESL) Validate() error {
	var c checker
	c.requireChoice("labelSize", e.LabelSize)
	c.requireChoice("storeName", e.StoreName)
	c.requireChoice("productName", e.ProductName)
	c.check("batteryLevel", e.BatteryLevel >= 0 && e.BatteryLevel <= 100)
	c.check("signalStrength", e.SignalStrength >= 0 && e.SignalStrength <= 100)
	return c.err()
}

func NewESL() ESL {
	return ESL{BatteryLevel: 100, SignalStrength: 100, Status: ESLActive}
}

// MarkCreated stamps a freshly registered label as just synced.
func (e *ESL) MarkCreated() {
	e.LastSync = "Just now"
	e.IsRecentlySync = true
}

func SampleESLs() []ESL {
	return []ESL{
		{ID: "ESL-001", LabelSize: "2.9 inch", BatteryLevel: 85, SignalStrength: 92, Status: ESLActive, ProductName: "Premium Coffee Beans", StoreName: "Store #001", LastSync: "2 min ago", IsRecentlySync: true},
		{ID: "ESL-002", LabelSize: "4.2 inch", BatteryLevel: 23, SignalStrength: 67, Status: ESLActive, ProductName: "Organic Milk", StoreName: "Store #001", LastSync: "15 min ago"},
		{ID: "ESL-003", LabelSize: "2.9 inch", BatteryLevel: 0, SignalStrength: 0, Status: ESLError, ProductName: "Whole Wheat Bread", StoreName: "Store #002", LastSync: "2 hours ago"},
		{ID: "ESL-004", LabelSize: "7.5 inch", BatteryLevel: 67, SignalStrength: 88, Status: ESLInactive, ProductName: "Fresh Apples", StoreName: "Store #002", LastSync: "1 hour ago"},
		{ID: "ESL-005", LabelSize: "4.2 inch", BatteryLevel: 91, SignalStrength: 95, Status: ESLActive, ProductName: "Greek Yogurt", StoreName: "Store #003", LastSync: "30 sec ago", IsRecentlySync: true},
	}
}
