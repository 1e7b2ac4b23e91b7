package core

import (
	"sort"
	"time"
)

// MonthLayout formats a year-month period label.
const MonthLayout = "2006-01"

// SalesBySubCategory sums sales per sub-category, largest first. Groups with
// equal totals keep the order in which they first appear in t.
func SalesBySubCategory(t Table) Aggregate {
	agg := sumBy(t,
		func(r Record) string { return r.SubCategory },
		func(r Record) float64 { return r.Sales })
	sort.SliceStable(agg, func(i, j int) bool {
		return agg[i].Value > agg[j].Value
	})
	return agg
}

// SalesByMonth sums sales per calendar month of the order date, oldest first.
// Keys are "YYYY-MM" labels.
func SalesByMonth(t Table) Aggregate {
	type bucket struct {
		start time.Time
		total float64
	}
	index := map[int]int{}
	buckets := make([]bucket, 0)
	for _, r := range t {
		y, m, _ := r.OrderDate.Date()
		key := y*12 + int(m) - 1
		i, ok := index[key]
		if !ok {
			i = len(buckets)
			index[key] = i
			buckets = append(buckets, bucket{start: time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)})
		}
		buckets[i].total += r.Sales
	}
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].start.Before(buckets[j].start)
	})

	agg := make(Aggregate, len(buckets))
	for i, b := range buckets {
		agg[i] = GroupTotal{Key: MonthLabel(b.start), Value: b.total}
	}
	return agg
}

// ProfitByCategory sums profit per category in first-seen order.
func ProfitByCategory(t Table) Aggregate {
	return sumBy(t,
		func(r Record) string { return r.Category },
		func(r Record) float64 { return r.Profit })
}

// ComputeTotals sums sales and profit over every row of t.
func ComputeTotals(t Table) Totals {
	var totals Totals
	for _, r := range t {
		totals.Sales += r.Sales
		totals.Profit += r.Profit
	}
	return totals
}

// MonthLabel returns the "YYYY-MM" label of the month containing d.
func MonthLabel(d time.Time) string {
	return d.Format(MonthLayout)
}

// sumBy groups rows by key and sums value, preserving first-seen group order.
func sumBy(t Table, key func(Record) string, value func(Record) float64) Aggregate {
	index := map[string]int{}
	agg := make(Aggregate, 0)
	for _, r := range t {
		k := key(r)
		i, ok := index[k]
		if !ok {
			i = len(agg)
			index[k] = i
			agg = append(agg, GroupTotal{Key: k})
		}
		agg[i].Value += value(r)
	}
	return agg
}
