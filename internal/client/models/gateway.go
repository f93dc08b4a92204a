package models

import (
	"net"
	"time"
)

const (
	GatewayOnline  = "online"
	GatewayOffline = "offline"

	DefaultFirmware = "v2.1.3"
)

var GatewayStatuses = []string{GatewayOnline, GatewayOffline}

type Gateway struct {
	ID              string `json:"id,omitempty"`
	StoreName       string `json:"storeName"`
	StoreID         string `json:"storeId"`
	IPAddress       string `json:"ipAddress"`
	FirmwareVersion string `json:"firmwareVersion"`
	LastHeartbeat   string `json:"lastHeartbeat"`
	Status          string `json:"status"`
	SyncCount       int    `json:"syncCount"`
	ErrorCount      int    `json:"errorCount"`
	Uptime          string `json:"uptime"`
}

func (g Gateway) Validate() error {
	var c checker
	c.requireChoice("storeName", g.StoreName)
	c.require("storeId", g.StoreID)
	c.require("ipAddress", g.IPAddress)
	c.require("firmwareVersion", g.FirmwareVersion)
	if g.IPAddress != "" {
		c.check("ipAddress", net.ParseIP(g.IPAddress) != nil)
	}
	return c.err()
}

func NewGateway() Gateway {
	return Gateway{FirmwareVersion: DefaultFirmware, Status: GatewayOnline}
}

// MarkCreated resets counters and stamps the first heartbeat.
func (g *Gateway) MarkCreated(now time.Time) {
	g.SyncCount = 0
	g.ErrorCount = 0
	g.Uptime = "0 days"
	g.LastHeartbeat = now.UTC().Format(time.RFC3339)
}

func SampleGateways() []Gateway {
	return []Gateway{
		{ID: "GW-001", StoreName: "Downtown Store", StoreID: "store-001", IPAddress: "192.168.1.100", FirmwareVersion: "v2.1.3", LastHeartbeat: "2024-01-15 14:30:25", Status: GatewayOnline, SyncCount: 245, ErrorCount: 2, Uptime: "15 days"},
		{ID: "GW-002", StoreName: "Mall Branch", StoreID: "store-002", IPAddress: "192.168.2.100", FirmwareVersion: "v2.1.2", LastHeartbeat: "2024-01-15 14:25:10", Status: GatewayOnline, SyncCount: 189, Uptime: "8 days"},
		{ID: "GW-003", StoreName: "Airport Terminal", StoreID: "store-003", IPAddress: "192.168.3.100", FirmwareVersion: "v2.0.8", LastHeartbeat: "2024-01-15 13:45:30", Status: GatewayOffline, SyncCount: 156, ErrorCount: 15, Uptime: "0 days"},
		{ID: "GW-004", StoreName: "Suburban Outlet", StoreID: "store-004", IPAddress: "192.168.4.100", FirmwareVersion: "v2.1.3", LastHeartbeat: "2024-01-15 14:28:45", Status: GatewayOnline, SyncCount: 98, ErrorCount: 1, Uptime: "22 days"},
	}
}
