package wire

import (
	"fmt"
	"time"
)

// PostgreSQL temporal values are transmitted relative to 2000-01-01 rather
// than the Unix epoch. These offsets convert them on the way in.
const (
	// Days between 1970-01-01 and 2000-01-01.
	daysUnixToY2K = 10957
	// Microseconds between 1970-01-01 and 2000-01-01.
	microsecUnixToY2K = int64(946684800) * 1000000

	secondsPerDay = 86400
)

// Date is a calendar date, stored as seconds since the Unix epoch at
// midnight UTC of that day.
type Date int64

func (d Date) Time() time.Time {
	return time.Unix(int64(d), 0).UTC()
}

func (d Date) String() string {
	return d.Time().Format("2006-01-02")
}

// Time is a time of day, in microseconds since midnight.
type Time int64

func (t Time) Duration() time.Duration {
	return time.Duration(t) * time.Microsecond
}

func (t Time) String() string {
	us := int64(t)
	return fmt.Sprintf("%02d:%02d:%02d.%06d",
		us/3600000000, us/60000000%60, us/1000000%60, us%1000000)
}

// Timestamp is a date and time without time zone, in microseconds since the
// Unix epoch.
type Timestamp int64

func (t Timestamp) Time() time.Time {
	return time.Unix(int64(t)/1000000, int64(t)%1000000*1000).UTC()
}

func (t Timestamp) String() string {
	return t.Time().Format("2006-01-02 15:04:05.999999")
}

// TimestampTz is a date and time with time zone. The server normalizes the
// value to UTC before sending it, so the representation matches Timestamp.
type TimestampTz int64

func (t TimestampTz) Time() time.Time {
	return Timestamp(t).Time()
}

func (t TimestampTz) String() string {
	return Timestamp(t).String()
}

// TimeTz is a time of day carrying the zone it was entered in:
// microseconds since midnight plus the zone offset in seconds west of UTC.
type TimeTz struct {
	Microseconds int64
	ZoneSeconds  int32
}

// Interval is the span type: a microsecond part, a day part and a month
// part, kept separate because days and months have no fixed length.
type Interval struct {
	Microseconds int64
	Days         int32
	Months       int32
}

// Duration folds the microsecond and day parts into a time.Duration using
// 24-hour days. The month part is not folded in; callers that need it must
// apply it against a calendar.
func (iv Interval) Duration() time.Duration {
	return time.Duration(iv.Microseconds+int64(iv.Days)*secondsPerDay*1000000) * time.Microsecond
}

func ReadDate(c *Cursor) Date {
	return Date((int64(c.Int32()) + daysUnixToY2K) * secondsPerDay)
}

func ReadTime(c *Cursor) Time {
	return Time(c.Int64())
}

func ReadTimestamp(c *Cursor) Timestamp {
	return Timestamp(c.Int64() + microsecUnixToY2K)
}

func ReadTimestampTz(c *Cursor) TimestampTz {
	return TimestampTz(c.Int64() + microsecUnixToY2K)
}

func ReadTimeTz(c *Cursor) TimeTz {
	return TimeTz{
		Microseconds: c.Int64(),
		ZoneSeconds:  c.Int32(),
	}
}

func ReadInterval(c *Cursor) Interval {
	return Interval{
		Microseconds: c.Int64(),
		Days:         c.Int32(),
		Months:       c.Int32(),
	}
}
