package workout

import (
	"fmt"
	"strings"
	"time"
)

// Weekday is a day of the week. It encodes as the lower-case English name
// ("monday") and decodes full or three-letter names in any case.
type Weekday time.Weekday

// Std returns the standard library weekday.
func (d Weekday) Std() time.Weekday { return time.Weekday(d) }

// String returns the English name ("Monday").
func (d Weekday) String() string { return time.Weekday(d).String() }

// MarshalText implements encoding.TextMarshaler.
func (d Weekday) MarshalText() ([]byte, error) {
	if d < 0 || d > 6 {
		return nil, fmt.Errorf("invalid weekday %d", int(d))
	}
	return []byte(strings.ToLower(d.String())), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Weekday) UnmarshalText(text []byte) error {
	wd, err := ParseWeekday(string(text))
	if err != nil {
		return err
	}
	*d = wd
	return nil
}

// ParseWeekday parses "monday", "Mon", "SUNDAY" and so on.
func ParseWeekday(s string) (Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		full := strings.ToLower(wd.String())
		if name == full || (len(name) == 3 && name == full[:3]) {
			return Weekday(wd), nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}
