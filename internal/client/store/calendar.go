package store

import (
	"sort"
	"time"

	"github.com/dmitrijs2005/postplanner/internal/client/models"
)

// Day is one calendar cell.
type Day struct {
	Date  time.Time
	Items []models.Postcard
}

// ByScheduledDate returns the dated items ordered by day, then by creation
// time, then by id. Undated items are left out. The input is not modified.
func ByScheduledDate(items []models.Postcard) []models.Postcard {
	out := make([]models.Postcard, 0, len(items))
	for _, it := range items {
		if it.ScheduledDate != nil {
			out = append(out, it.Clone())
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := models.DayOf(*out[i].ScheduledDate), models.DayOf(*out[j].ScheduledDate)
		if !a.Equal(b) {
			return a.Before(b)
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Calendar lays out days consecutive days starting at from, each with the
// items scheduled on it. Empty days are included.
func Calendar(items []models.Postcard, from time.Time, days int) []Day {
	if days <= 0 {
		return nil
	}
	start := models.DayOf(from)
	out := make([]Day, days)
	index := make(map[string]int, days)
	for i := range out {
		d := start.AddDate(0, 0, i)
		out[i].Date = d
		index[d.Format(models.DateLayout)] = i
	}
	for _, it := range ByScheduledDate(items) {
		if i, ok := index[models.FormatDate(it.ScheduledDate)]; ok {
			out[i].Items = append(out[i].Items, it)
		}
	}
	return out
}
