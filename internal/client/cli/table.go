package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dmitrijs2005/eslconsole/internal/client/models"
)

const sampleMarker = "[sample data]"

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	titleStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
)

func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		String()
}

// badge colors a status value the way the web console colors its pills.
func badge(status string) string {
	switch status {
	case models.StoreActive, models.GatewayOnline, models.SyncSuccess, models.UserActive:
		return okStyle.Render(status)
	case models.StoreMaintenance, models.ProductLowStock, models.SyncPending, models.UserPending, models.ESLInactive:
		return warnStyle.Render(status)
	case models.ESLError, models.GatewayOffline, models.SyncFailure, models.ProductOutOfStock, models.UserDisabled:
		return errorStyle.Render(status)
	}
	return status
}

// signal draws a four-bar meter.
func signal(strength int) string {
	bars := models.SignalBars(strength)
	return strings.Repeat("▮", bars) + strings.Repeat("▯", 4-bars)
}
