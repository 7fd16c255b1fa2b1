package core

import (
	"fmt"
	"time"
)

// RecordZone is the fixed civil zone expenses are stamped in (UTC+7),
// independent of the host or caller timezone.
var RecordZone = time.FixedZone("ICT", 7*60*60)

// Timestamp holds the date and time strings captured for one record.
type Timestamp struct {
	Date      string // YYYY-MM-DD
	Time      string // HH:MM:SS
	MonthYear string // "Enero 2026", enriched profile only
}

var spanishMonths = [12]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// TimestampAt captures the record timestamp for t in RecordZone.
func TimestampAt(t time.Time) Timestamp {
	t = t.In(RecordZone)
	return Timestamp{
		Date:      t.Format("2006-01-02"),
		Time:      t.Format("15:04:05"),
		MonthYear: fmt.Sprintf("%s %d", spanishMonths[int(t.Month())-1], t.Year()),
	}
}

// Key is the date+time concatenation hashed into the receipt identifier.
func (ts Timestamp) Key() string {
	return ts.Date + ts.Time
}
