package tools

import (
	"context"
	"fmt"
	"time"
)

var indonesianDays = map[time.Weekday]string{
	time.Sunday:    "Minggu",
	time.Monday:    "Senin",
	time.Tuesday:   "Selasa",
	time.Wednesday: "Rabu",
	time.Thursday:  "Kamis",
	time.Friday:    "Jumat",
	time.Saturday:  "Sabtu",
}

var indonesianMonths = map[time.Month]string{
	time.January:   "Januari",
	time.February:  "Februari",
	time.March:     "Maret",
	time.April:     "April",
	time.May:       "Mei",
	time.June:      "Juni",
	time.July:      "Juli",
	time.August:    "Agustus",
	time.September: "September",
	time.October:   "Oktober",
	time.November:  "November",
	time.December:  "Desember",
}

// DateTool answers "what day is it" style questions without touching the
// network or the session.
type DateTool struct {
	now func() time.Time
}

func NewDateTool() *DateTool {
	return &DateTool{now: time.Now}
}

func (t *DateTool) Name() string { return "dapatkan_tanggal_sekarang" }

func (t *DateTool) Description() string {
	return "Gunakan untuk mengetahui tanggal dan waktu saat ini."
}

func (t *DateTool) Call(ctx context.Context, tctx ToolContext, arg string) (string, error) {
	n := t.now()
	return fmt.Sprintf("Sekarang hari %s, %d %s %d, pukul %02d:%02d.",
		indonesianDays[n.Weekday()], n.Day(), indonesianMonths[n.Month()], n.Year(),
		n.Hour(), n.Minute()), nil
}
