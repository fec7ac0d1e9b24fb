package exp

import (
	"slices"
	"time"
	_ "time/tzdata"
)

// BonusTimeZone is the zone weekends are evaluated in.
const BonusTimeZone = "America/New_York"

// BonusHours decides whether a moment earns the power hour bonus.
type BonusHours struct {
	// PowerHours are hours of the day (0-23) in Location.
	PowerHours []int
	Location   *time.Location
	// Now defaults to time.Now.
	Now func() time.Time
}

// NewBonusHours loads zone, falling back to BonusTimeZone when zone is empty.
func NewBonusHours(zone string, powerHours []int) (BonusHours, error) {
	if zone == "" {
		zone = BonusTimeZone
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return BonusHours{}, err
	}
	return BonusHours{PowerHours: powerHours, Location: loc, Now: time.Now}, nil
}

func (b BonusHours) now() time.Time {
	now := time.Now
	if b.Now != nil {
		now = b.Now
	}
	loc := b.Location
	if loc == nil {
		loc = time.UTC
	}
	return now().In(loc)
}

func (b BonusHours) IsWeekend() bool {
	day := b.now().Weekday()
	return day == time.Saturday || day == time.Sunday
}

func (b BonusHours) IsPowerHour() bool {
	return slices.Contains(b.PowerHours, b.now().Hour())
}

// Active reports whether the power hour bonus applies right now.
func (b BonusHours) Active() bool {
	return b.IsWeekend() || b.IsPowerHour()
}
