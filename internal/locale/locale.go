// Package locale formats event dates the way the German-language site shows
// them ("Samstag", "1. März 2025 um 14:00").
package locale

import (
	"fmt"
	"strings"
	"sync"
	"time"
	_ "time/tzdata"

	"github.com/klauspost/lctime"

	"github.com/petruschka/site-api/internal/utils"
	"go.uber.org/zap"
)

const germanLocale = "de_DE"

var setLocaleOnce sync.Once

// Formatter renders dates in a fixed time zone.
type Formatter struct {
	loc *time.Location
}

// NewFormatter loads the IANA zone name. An unknown zone falls back to UTC.
func NewFormatter(zone string) *Formatter {
	setLocaleOnce.Do(func() {
		if err := lctime.SetLocale(germanLocale); err != nil {
			utils.Zlog.Warn("Failed to set date locale", zap.String("locale", germanLocale), zap.Error(err))
		}
	})

	loc, err := time.LoadLocation(zone)
	if err != nil {
		utils.Zlog.Warn("Unknown time zone, using UTC", zap.String("zone", zone), zap.Error(err))
		loc = time.UTC
	}
	return &Formatter{loc: loc}
}

func (f *Formatter) Location() *time.Location {
	return f.loc
}

func (f *Formatter) In(t time.Time) time.Time {
	return t.In(f.loc)
}

// Weekday is the long weekday name, e.g. "Samstag".
func (f *Formatter) Weekday(t time.Time) string {
	return lctime.Strftime("%A", f.In(t))
}

// MonthShort is the abbreviated month in upper case, e.g. "OKT".
func (f *Formatter) MonthShort(t time.Time) string {
	return strings.ToUpper(strings.TrimSuffix(lctime.Strftime("%b", f.In(t)), "."))
}

// Clock is the 24h wall clock time, e.g. "14:00".
func (f *Formatter) Clock(t time.Time) string {
	return f.In(t).Format("15:04")
}

// MonthYear is e.g. "März 2025".
func (f *Formatter) MonthYear(t time.Time) string {
	return lctime.Strftime("%B %Y", f.In(t))
}

// Long is e.g. "Samstag, 1. März 2025 um 14:00".
func (f *Formatter) Long(t time.Time) string {
	local := f.In(t)
	return fmt.Sprintf("%s, %d. %s um %s",
		f.Weekday(local), local.Day(), lctime.Strftime("%B %Y", local), local.Format("15:04"))
}

// Countdown is the English long date the countdown widget parses, e.g. "March 1, 2025".
func (f *Formatter) Countdown(t time.Time) string {
	return f.In(t).Format("January 2, 2006")
}

// Duration renders end-start as "ca. 1h 15min", "ca. 1h" or "ca. 45min".
// Non-positive spans render as "".
func Duration(start, end time.Time) string {
	d := end.Sub(start)
	if d <= 0 {
		return ""
	}
	hours := int(d / time.Hour)
	minutes := int((d % time.Hour) / time.Minute)
	switch {
	case hours > 0 && minutes > 0:
		return fmt.Sprintf("ca. %dh %dmin", hours, minutes)
	case hours > 0:
		return fmt.Sprintf("ca. %dh", hours)
	case minutes > 0:
		return fmt.Sprintf("ca. %dmin", minutes)
	}
	return ""
}
