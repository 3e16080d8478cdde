package analytics

import (
	"sort"
	"strings"

	"aisolutions-backend/models"

	"github.com/shopspring/decimal"
)

type EffectivenessKPIs struct {
	AvgRating          float64 `json:"avgRating"`
	Stars              string  `json:"stars"`
	RefundTotal        float64 `json:"refundTotal"`
	AvgResponseTime    float64 `json:"avgResponseTime"`
	DemosScheduled     int     `json:"demosScheduled"`
	EventParticipation int     `json:"eventParticipation"`
	ConversionRate     float64 `json:"conversionRate"`
}

func ComputeEffectiveness(records []models.Record) EffectivenessKPIs {
	var (
		kpi                    EffectivenessKPIs
		ratingSum, responseSum int
		completedCount         int
		refund                 decimal.Decimal
	)
	for _, r := range records {
		ratingSum += r.ProductRating
		responseSum += r.ResponseTimeDays
		refund = refund.Add(r.RefundAmount)
		if r.DemoScheduled == models.Yes {
			kpi.DemosScheduled++
		}
		if r.PromoParticipation == models.Yes {
			kpi.EventParticipation++
		}
		if r.ProductStatus == models.StatusCompleted {
			completedCount++
		}
	}
	if n := len(records); n > 0 {
		kpi.AvgRating = round2(float64(ratingSum) / float64(n))
		kpi.AvgResponseTime = round2(float64(responseSum) / float64(n))
	}
	kpi.Stars = StarRating(kpi.AvgRating)
	kpi.RefundTotal = toFloat(refund)
	// Completed sales per scheduled demo, as a percentage.
	if kpi.DemosScheduled > 0 {
		kpi.ConversionRate = round2(float64(completedCount) / float64(kpi.DemosScheduled) * 100)
	}
	return kpi
}

// StarRating renders one star per whole point and a half star when the
// fraction reaches 0.5.
func StarRating(rating float64) string {
	if rating <= 0 {
		return ""
	}
	full := int(rating)
	stars := strings.Repeat("⭐", full)
	if rating-float64(full) >= 0.5 {
		stars += "✬"
	}
	return stars
}

type StatusCount struct {
	Status models.ProductStatus `json:"status"`
	Count  int                  `json:"count"`
}

// StatusCounts orders statuses by frequency.
func StatusCounts(records []models.Record) []StatusCount {
	counts := map[models.ProductStatus]int{}
	for _, r := range records {
		counts[r.ProductStatus]++
	}
	out := make([]StatusCount, 0, len(counts))
	for s, c := range counts {
		out = append(out, StatusCount{Status: s, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Status < out[j].Status
	})
	return out
}

type ProductRatings struct {
	ProductType string      `json:"productType"`
	Sales       int         `json:"sales"`
	Average     float64     `json:"average"`
	Counts      map[int]int `json:"counts"`
}

// RatingsForTopProducts returns the rating distribution of the n most
// frequently sold product types.
func RatingsForTopProducts(records []models.Record, n int) []ProductRatings {
	byType := map[string]*ProductRatings{}
	sums := map[string]int{}
	for _, r := range records {
		pr, ok := byType[r.ProductType]
		if !ok {
			pr = &ProductRatings{ProductType: r.ProductType, Counts: map[int]int{}}
			byType[r.ProductType] = pr
		}
		pr.Sales++
		pr.Counts[r.ProductRating]++
		sums[r.ProductType] += r.ProductRating
	}
	out := make([]ProductRatings, 0, len(byType))
	for k, pr := range byType {
		pr.Average = round2(float64(sums[k]) / float64(pr.Sales))
		out = append(out, *pr)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Sales != out[j].Sales {
			return out[i].Sales > out[j].Sales
		}
		return out[i].ProductType < out[j].ProductType
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// RefundsByProduct summarises non-zero refunds per product type.
func RefundsByProduct(records []models.Record) []GroupStat {
	groups := map[string]*statAcc{}
	for _, r := range records {
		if !r.RefundAmount.IsPositive() {
			continue
		}
		acc, ok := groups[r.ProductType]
		if !ok {
			acc = &statAcc{}
			groups[r.ProductType] = acc
		}
		acc.add(r.RefundAmount.InexactFloat64())
	}
	out := make([]GroupStat, 0, len(groups))
	for k, acc := range groups {
		out = append(out, GroupStat{Key: k, Stat: acc.stat()})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Sum != out[j].Sum {
			return out[i].Sum > out[j].Sum
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// ResponseTimeHistogram counts records per response time in days.
func ResponseTimeHistogram(records []models.Record) []Bucket {
	counts := map[int]int{}
	for _, r := range records {
		counts[r.ResponseTimeDays]++
	}
	out := make([]Bucket, 0, len(counts))
	for days, c := range counts {
		out = append(out, Bucket{Days: days, Count: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Days < out[j].Days })
	return out
}

type Bucket struct {
	Days  int `json:"days"`
	Count int `json:"count"`
}
