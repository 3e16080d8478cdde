package analytics

import (
	"math"
	"sort"

	"aisolutions-backend/models"
)

// Stat is the sum/mean/count aggregate shown in summary tables.
type Stat struct {
	Sum   float64 `json:"sum"`
	Mean  float64 `json:"mean"`
	Count int     `json:"count"`
}

type GroupStat struct {
	Key string `json:"key"`
	Stat
}

type statAcc struct {
	n     int
	sum   float64
	sumSq float64
	min   float64
	max   float64
}

func (a *statAcc) add(v float64) {
	if a.n == 0 || v < a.min {
		a.min = v
	}
	if a.n == 0 || v > a.max {
		a.max = v
	}
	a.n++
	a.sum += v
	a.sumSq += v * v
}

func (a *statAcc) mean() float64 {
	if a.n == 0 {
		return 0
	}
	return a.sum / float64(a.n)
}

// std is the sample standard deviation; undefined below two values.
func (a *statAcc) std() float64 {
	if a.n < 2 {
		return 0
	}
	m := a.mean()
	v := (a.sumSq - float64(a.n)*m*m) / float64(a.n-1)
	if v < 0 {
		return 0
	}
	return math.Sqrt(v)
}

func (a *statAcc) stat() Stat {
	return Stat{Sum: round2(a.sum), Mean: round2(a.mean()), Count: a.n}
}

// CountryProductRow aggregates one (country, product type) pair.
type CountryProductRow struct {
	Country      string `json:"country"`
	ProductType  string `json:"productType"`
	SalesAmount  Stat   `json:"salesAmount"`
	Cost         Stat   `json:"costOfProduct"`
	Profit       Stat   `json:"profit"`
	Loss         Stat   `json:"loss"`
	ResponseTime Stat   `json:"responseTimeDays"`
	Rating       Stat   `json:"productRating"`
}

// CountryProductSummary groups by country and product type, highest total
// sales first.
func CountryProductSummary(records []models.Record) []CountryProductRow {
	type key struct{ country, product string }
	type accs struct{ sales, cost, profit, loss, response, rating statAcc }

	groups := map[key]*accs{}
	for _, r := range records {
		k := key{r.Country, r.ProductType}
		g, ok := groups[k]
		if !ok {
			g = &accs{}
			groups[k] = g
		}
		g.sales.add(r.SalesAmount.InexactFloat64())
		g.cost.add(r.CostOfProduct.InexactFloat64())
		g.profit.add(r.Profit.InexactFloat64())
		g.loss.add(r.Loss.InexactFloat64())
		g.response.add(float64(r.ResponseTimeDays))
		g.rating.add(float64(r.ProductRating))
	}

	out := make([]CountryProductRow, 0, len(groups))
	for k, g := range groups {
		out = append(out, CountryProductRow{
			Country:      k.country,
			ProductType:  k.product,
			SalesAmount:  g.sales.stat(),
			Cost:         g.cost.stat(),
			Profit:       g.profit.stat(),
			Loss:         g.loss.stat(),
			ResponseTime: g.response.stat(),
			Rating:       g.rating.stat(),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SalesAmount.Sum != out[j].SalesAmount.Sum {
			return out[i].SalesAmount.Sum > out[j].SalesAmount.Sum
		}
		if out[i].Country != out[j].Country {
			return out[i].Country < out[j].Country
		}
		return out[i].ProductType < out[j].ProductType
	})
	return out
}

type Period string

const (
	Daily   Period = "day"
	Monthly Period = "month"
	Yearly  Period = "year"
)

func (p Period) layout() string {
	switch p {
	case Daily:
		return "2006-01-02"
	case Monthly:
		return "2006-01"
	default:
		return "2006"
	}
}

type PeriodTotal struct {
	Period string  `json:"period"`
	Profit float64 `json:"profit"`
	Loss   float64 `json:"loss"`
}

// ProfitLossByPeriod totals profit and loss per sales day, month or year,
// oldest first.
func ProfitLossByPeriod(records []models.Record, p Period) []PeriodTotal {
	layout := p.layout()
	totals := map[string]*PeriodTotal{}
	for _, r := range records {
		k := r.SalesDate.Format(layout)
		t, ok := totals[k]
		if !ok {
			t = &PeriodTotal{Period: k}
			totals[k] = t
		}
		t.Profit += r.Profit.InexactFloat64()
		t.Loss += r.Loss.InexactFloat64()
	}
	out := make([]PeriodTotal, 0, len(totals))
	for _, t := range totals {
		t.Profit = round2(t.Profit)
		t.Loss = round2(t.Loss)
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out
}

// Last keeps the trailing n entries.
func Last(totals []PeriodTotal, n int) []PeriodTotal {
	if n <= 0 || len(totals) <= n {
		return totals
	}
	return totals[len(totals)-n:]
}

type ColumnStats struct {
	Column string  `json:"column"`
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

var numericColumns = []struct {
	name  string
	value func(models.Record) float64
}{
	{"Age", func(r models.Record) float64 { return float64(r.Age) }},
	{"Subscription Price", func(r models.Record) float64 { return r.SubscriptionPrice.InexactFloat64() }},
	{"Product ID", func(r models.Record) float64 { return float64(r.ProductID) }},
	{"Cost of Product", func(r models.Record) float64 { return r.CostOfProduct.InexactFloat64() }},
	{"Sales Amount", func(r models.Record) float64 { return r.SalesAmount.InexactFloat64() }},
	{"Response Time (days)", func(r models.Record) float64 { return float64(r.ResponseTimeDays) }},
	{"Refund Amount", func(r models.Record) float64 { return r.RefundAmount.InexactFloat64() }},
	{"Product Rating", func(r models.Record) float64 { return float64(r.ProductRating) }},
	{"Profit", func(r models.Record) float64 { return r.Profit.InexactFloat64() }},
	{"Loss", func(r models.Record) float64 { return r.Loss.InexactFloat64() }},
}

// Describe reports descriptive statistics for every numeric column.
func Describe(records []models.Record) []ColumnStats {
	out := make([]ColumnStats, 0, len(numericColumns))
	for _, col := range numericColumns {
		var acc statAcc
		for _, r := range records {
			acc.add(col.value(r))
		}
		out = append(out, ColumnStats{
			Column: col.name,
			Count:  acc.n,
			Mean:   round2(acc.mean()),
			Std:    round2(acc.std()),
			Min:    round2(acc.min),
			Max:    round2(acc.max),
		})
	}
	return out
}
