package alerts

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pantrywatch/pantrywatch/internal/inventory"
	"github.com/pantrywatch/pantrywatch/internal/logger"
)

// Alert level thresholds in days remaining before expiry.
const (
	criticalThresholdDays = 1
	warningThresholdDays  = 3
	infoThresholdDays     = 7
)

// Level identifies the urgency of an expiry alert.
type Level string

const (
	LevelCritical Level = "critical"
	LevelWarning  Level = "warning"
	LevelInfo     Level = "info"
	LevelNone     Level = "none"
)

// ExpiryStatus describes where an item sits relative to its expiry date.
type ExpiryStatus struct {
	// Status is "expired", "expiring", or "safe".
	Status string

	// DaysRemaining is the number of whole days until expiry. Negative
	// values mean the item is already past its date.
	DaysRemaining int

	// Level is the alert urgency derived from DaysRemaining.
	Level Level

	// Message is a short human-readable summary of the status.
	Message string
}

// ItemAlert pairs a stored item with its computed expiry status.
type ItemAlert struct {
	Item   *inventory.FoodItem
	Status ExpiryStatus
}

// Stats summarizes the current state of the alert system.
type Stats struct {
	TrackedItems         int     `json:"tracked_items"`
	ExpiringThisWeek     int     `json:"expiring_this_week"`
	CriticalItems        int     `json:"critical_items"`
	NotificationsSent    int     `json:"notifications_sent"`
	AverageDaysRemaining float64 `json:"average_days_remaining"`
}

// CheckStatus classifies an expiry date against a reference time.
//
// An expired item is always critical. Otherwise the level follows the
// nearest threshold the remaining days fall under, and items more than a
// week out report LevelNone.
func CheckStatus(expiry, now time.Time) ExpiryStatus {
	days := daysBetween(now, expiry)

	switch {
	case days < 0:
		return ExpiryStatus{
			Status:        "expired",
			DaysRemaining: days,
			Level:         LevelCritical,
			Message:       "item has EXPIRED",
		}
	case days <= criticalThresholdDays:
		return ExpiryStatus{
			Status:        "expiring",
			DaysRemaining: days,
			Level:         LevelCritical,
			Message:       fmt.Sprintf("URGENT - expires in %s", dayCount(days)),
		}
	case days <= warningThresholdDays:
		return ExpiryStatus{
			Status:        "expiring",
			DaysRemaining: days,
			Level:         LevelWarning,
			Message:       fmt.Sprintf("warning - expires in %s", dayCount(days)),
		}
	case days <= infoThresholdDays:
		return ExpiryStatus{
			Status:        "expiring",
			DaysRemaining: days,
			Level:         LevelInfo,
			Message:       fmt.Sprintf("expires in %s", dayCount(days)),
		}
	default:
		return ExpiryStatus{
			Status:        "safe",
			DaysRemaining: days,
			Level:         LevelNone,
			Message:       fmt.Sprintf("safe - %s remaining", dayCount(days)),
		}
	}
}

// System checks tracked items against the alert thresholds, records
// triggered alerts, and delivers notifications through a Notifier.
type System struct {
	store    inventory.Store
	notifier Notifier
	sent     int
	log      zerolog.Logger
}

// NewSystem creates an alert system over the given store. A nil notifier
// falls back to LogNotifier so notifications are never silently dropped.
func NewSystem(store inventory.Store, notifier Notifier) *System {
	if notifier == nil {
		notifier = NewLogNotifier()
	}
	return &System{
		store:    store,
		notifier: notifier,
		log:      logger.WithComponent("alerts"),
	}
}

// ExpiringItems returns active items expiring within the given number of
// days, each paired with its computed status. Results keep the store's
// soonest-first ordering.
func (s *System) ExpiringItems(days int, now time.Time) ([]ItemAlert, error) {
	items, err := s.store.ExpiringWithin(days, now)
	if err != nil {
		return nil, fmt.Errorf("listing expiring items: %w", err)
	}

	out := make([]ItemAlert, 0, len(items))
	for _, item := range items {
		out = append(out, ItemAlert{Item: item, Status: CheckStatus(item.ExpiryDate, now)})
	}
	return out, nil
}

// Summary renders a plain-text report of everything expiring within the
// next week, grouped by alert level.
func (s *System) Summary(now time.Time) (string, error) {
	expiring, err := s.ExpiringItems(infoThresholdDays, now)
	if err != nil {
		return "", err
	}
	if len(expiring) == 0 {
		return "No items expiring in the next 7 days. Your pantry looks good!", nil
	}

	groups := map[Level][]ItemAlert{}
	for _, entry := range expiring {
		groups[entry.Status.Level] = append(groups[entry.Status.Level], entry)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "FOOD EXPIRY ALERT - %s UTC\n", now.UTC().Format("2006-01-02 15:04"))
	b.WriteString(strings.Repeat("=", 60) + "\n")

	sections := []struct {
		level Level
		title string
	}{
		{LevelCritical, "CRITICAL (today or tomorrow)"},
		{LevelWarning, "WARNING (within 3 days)"},
		{LevelInfo, "INFO (within 7 days)"},
	}
	for _, sec := range sections {
		entries := groups[sec.level]
		if len(entries) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n%s:\n", sec.title)
		for _, entry := range entries {
			fmt.Fprintf(&b, "  - %s (%s)\n", entry.Item.Name, dayCount(entry.Status.DaysRemaining))
		}
	}

	b.WriteString("\n" + strings.Repeat("=", 60) + "\n")
	b.WriteString("Tip: use, freeze or share items that are expiring soon.")
	return b.String(), nil
}

// NotifyItem sends a notification for a single expiring item and records
// the alert in the store.
func (s *System) NotifyItem(item *inventory.FoodItem, now time.Time) error {
	status := CheckStatus(item.ExpiryDate, now)

	subject := fmt.Sprintf("Expiry alert: %s", item.Name)
	body := fmt.Sprintf("%s: %s is expiring in %s.", status.Message, item.Name, dayCount(status.DaysRemaining))
	if err := s.notifier.Send(subject, body); err != nil {
		return fmt.Errorf("sending alert for %q: %w", item.Name, err)
	}
	s.sent++

	if err := s.LogAlert(item.ID, status.Level, status.DaysRemaining); err != nil {
		s.log.Error().Err(err).Str("item_id", item.ID).Msg("failed to record alert")
	}
	s.log.Info().
		Str("item", item.Name).
		Str("level", string(status.Level)).
		Int("days_remaining", status.DaysRemaining).
		Msg("alert sent")
	return nil
}

// NotifyBatch sends the weekly summary as a single notification and
// returns the number of items it covered.
func (s *System) NotifyBatch(now time.Time) (int, error) {
	summary, err := s.Summary(now)
	if err != nil {
		return 0, err
	}
	if err := s.notifier.Send("Daily food expiry summary", summary); err != nil {
		return 0, fmt.Errorf("sending summary: %w", err)
	}
	s.sent++

	expiring, err := s.ExpiringItems(infoThresholdDays, now)
	if err != nil {
		return 0, err
	}
	s.log.Info().Int("items", len(expiring)).Msg("batch alert sent")
	return len(expiring), nil
}

// LogAlert records a triggered alert against an item in the store.
func (s *System) LogAlert(itemID string, level Level, daysRemaining int) error {
	return s.store.SaveAlert(&inventory.AlertRecord{
		ItemID:        itemID,
		Level:         string(level),
		DaysRemaining: daysRemaining,
	})
}

// Statistics reports the current alert workload across active items.
func (s *System) Statistics(now time.Time) (*Stats, error) {
	active, err := s.store.ListByStatus(inventory.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("listing active items: %w", err)
	}
	expiring, err := s.ExpiringItems(infoThresholdDays, now)
	if err != nil {
		return nil, err
	}

	critical := 0
	for _, entry := range expiring {
		if entry.Status.Level == LevelCritical {
			critical++
		}
	}

	var avg float64
	if len(active) > 0 {
		total := 0
		for _, item := range active {
			total += daysBetween(now, item.ExpiryDate)
		}
		avg = math.Round(float64(total)/float64(len(active))*10) / 10
	}

	return &Stats{
		TrackedItems:         len(active),
		ExpiringThisWeek:     len(expiring),
		CriticalItems:        critical,
		NotificationsSent:    s.sent,
		AverageDaysRemaining: avg,
	}, nil
}

// daysBetween returns whole days from now to later, rounding toward
// negative infinity so a partially elapsed day still counts as expired.
func daysBetween(now, later time.Time) int {
	return int(math.Floor(later.Sub(now).Hours() / 24))
}

func dayCount(days int) string {
	if days == 1 || days == -1 {
		return fmt.Sprintf("%d day", days)
	}
	return fmt.Sprintf("%d days", days)
}
