package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"
	"go.uber.org/zap"

	"github.com/hy4ri/projtrack/internal/store"
	"github.com/hy4ri/projtrack/internal/tui/utils"
)

// Notifier sends a desktop notification.
type Notifier func(title, message string) error

func desktopNotify(title, message string) error {
	return beeep.Notify(title, message, "")
}

// DueSoon returns the active records whose end date falls between now and
// now plus days, in store order.
func DueSoon(records []*store.Record, now time.Time, days int) []*store.Record {
	if days <= 0 {
		return nil
	}
	from := unixSeconds(now)
	until := unixSeconds(now.Add(time.Duration(days) * 24 * time.Hour))

	var due []*store.Record
	for _, r := range records {
		if r.Active && r.EndDate >= from && r.EndDate <= until {
			due = append(due, r)
		}
	}
	return due
}

func unixSeconds(t time.Time) float64 {
	return float64(t.UnixMilli()) / 1000
}

func dueSoonMessage(due []*store.Record, days int) string {
	names := make([]string, 0, 3)
	for i, r := range due {
		if i == 3 {
			names = append(names, fmt.Sprintf("and %d more", len(due)-3))
			break
		}
		names = append(names, r.Title())
	}
	return fmt.Sprintf("%s due within %s: %s",
		utils.Pluralize(len(due), "active project"), utils.Pluralize(days, "day"), strings.Join(names, ", "))
}

// notifyDueSoon returns a command sending one notification for the projects
// due soon, or nil when there are none or notifications are off.
func (a *App) notifyDueSoon() tea.Cmd {
	days := a.config.Notify.DueWithinDays
	due := DueSoon(a.store.All(), a.now(), days)
	if len(due) == 0 {
		return nil
	}

	notify := a.notify
	logger := a.logger
	msg := dueSoonMessage(due, days)
	return func() tea.Msg {
		if err := notify("Projects due soon", msg); err != nil {
			logger.Warn("failed to send notification", zap.Error(err))
			return nil
		}
		logger.Info("due soon notification sent", zap.Int("count", len(due)))
		return nil
	}
}
