package models

const (
	StoreActive      = "active"
	StoreMaintenance = "maintenance"
	StoreInactive    = "inactive"
)

var StoreStatuses = []string{StoreActive, StoreMaintenance, StoreInactive}

type Store struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	Location  string `json:"location"`
	Manager   string `json:"manager"`
	ManagerID string `json:"managerId,omitempty"`
	ESLCount  int    `json:"eslCount"`
	Status    string `json:"status"`
	LastSync  string `json:"lastSync,omitempty"`
}

func (s Store) Validate() error {
	var c checker
	c.require("name", s.Name)
	c.require("location", s.Location)
	c.require("manager", s.Manager)
	return c.err()
}

func NewStore() Store {
	return Store{Status: StoreActive}
}

func SampleStores() []Store {
	return []Store{
		{ID: "1", Name: "Downtown Store", Location: "123 Main St, Downtown, NY 10001", Manager: "John Smith", ManagerID: "mgr-001", ESLCount: 245, Status: StoreActive, LastSync: "2 min ago"},
		{ID: "2", Name: "Mall Branch", Location: "456 Shopping Mall, Level 2, NY 10002", Manager: "Sarah Johnson", ManagerID: "mgr-002", ESLCount: 189, Status: StoreActive, LastSync: "5 min ago"},
		{ID: "3", Name: "Airport Terminal", Location: "Terminal 1, JFK Airport, NY 11430", Manager: "Mike Davis", ManagerID: "mgr-003", ESLCount: 156, Status: StoreMaintenance, LastSync: "1 hour ago"},
		{ID: "4", Name: "Suburban Outlet", Location: "789 Suburban Ave, Queens, NY 11101", Manager: "Lisa Wilson", ManagerID: "mgr-004", ESLCount: 98, Status: StoreActive, LastSync: "3 min ago"},
	}
}
