// Package aggregate reduces record snapshots into dashboard and report summaries.
// Results are recomputed on demand and never persisted.
package aggregate

import (
	"cmp"
	"fmt"
	"slices"
	"time"
)

// TotalsByCategory sums value over the records sharing each category. Only
// categories present in records appear in the result.
func TotalsByCategory[T any](records []T, category func(T) string, value func(T) float64) map[string]float64 {
	totals := make(map[string]float64)
	for _, record := range records {
		totals[category(record)] += value(record)
	}
	return totals
}

// CountByCategory counts the records sharing each category.
func CountByCategory[T any](records []T, category func(T) string) map[string]int {
	counts := make(map[string]int)
	for _, record := range records {
		counts[category(record)]++
	}
	return counts
}

// Backfill returns a copy of totals with every key in keys present, zero when absent.
func Backfill[V int | float64](totals map[string]V, keys []string) map[string]V {
	out := make(map[string]V, len(totals)+len(keys))
	for k, v := range totals {
		out[k] = v
	}
	for _, k := range keys {
		if _, ok := out[k]; !ok {
			out[k] = 0
		}
	}
	return out
}

// Series names one numeric measure summed per time bucket.
type Series[T any] struct {
	Name  string
	Value func(T) float64
}

// Bucket is one calendar month of a time series.
type Bucket struct {
	Key    string             `json:"key"`
	Label  string             `json:"label"`
	Year   int                `json:"year"`
	Month  time.Month         `json:"month"`
	Values map[string]float64 `json:"values"`
}

// TimeSeries holds month buckets in ascending (year, month) order.
type TimeSeries struct {
	Buckets []Bucket `json:"buckets"`
}

// Labels returns the display label of every bucket.
func (ts TimeSeries) Labels() []string {
	out := make([]string, len(ts.Buckets))
	for i, b := range ts.Buckets {
		out[i] = b.Label
	}
	return out
}

// Values returns the per-bucket values of one series.
func (ts TimeSeries) Values(series string) []float64 {
	out := make([]float64, len(ts.Buckets))
	for i, b := range ts.Buckets {
		out[i] = b.Values[series]
	}
	return out
}

// TimeSeriesByMonth groups records by the calendar month of date in loc and
// sums every series per month. Records without a date are skipped.
func TimeSeriesByMonth[T any](records []T, date func(T) time.Time, loc *time.Location, series ...Series[T]) TimeSeries {
	if loc == nil {
		loc = time.UTC
	}

	type monthKey struct {
		year  int
		month time.Month
	}
	buckets := make(map[monthKey]*Bucket)

	for _, record := range records {
		at := date(record)
		if at.IsZero() {
			continue
		}
		at = at.In(loc)
		key := monthKey{year: at.Year(), month: at.Month()}

		bucket, ok := buckets[key]
		if !ok {
			bucket = &Bucket{
				Key:    fmt.Sprintf("%d-%d", key.year, int(key.month)),
				Label:  time.Date(key.year, key.month, 1, 0, 0, 0, 0, loc).Format("Jan 2006"),
				Year:   key.year,
				Month:  key.month,
				Values: make(map[string]float64, len(series)),
			}
			for _, s := range series {
				bucket.Values[s.Name] = 0
			}
			buckets[key] = bucket
		}
		for _, s := range series {
			bucket.Values[s.Name] += s.Value(record)
		}
	}

	out := TimeSeries{Buckets: make([]Bucket, 0, len(buckets))}
	for _, b := range buckets {
		out.Buckets = append(out.Buckets, *b)
	}
	slices.SortFunc(out.Buckets, func(a, b Bucket) int {
		if c := cmp.Compare(a.Year, b.Year); c != 0 {
			return c
		}
		return cmp.Compare(a.Month, b.Month)
	})
	return out
}

// Ranked is one entry of a top-N ranking.
type Ranked struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
}

// Top orders totals by value descending, ties by key, and keeps at most n entries.
// A non-positive n keeps every entry.
func Top(totals map[string]float64, n int) []Ranked {
	out := make([]Ranked, 0, len(totals))
	for k, v := range totals {
		out = append(out, Ranked{Key: k, Value: v})
	}
	slices.SortFunc(out, func(a, b Ranked) int {
		if c := cmp.Compare(b.Value, a.Value); c != 0 {
			return c
		}
		return cmp.Compare(a.Key, b.Key)
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
