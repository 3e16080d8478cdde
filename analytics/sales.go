// Package analytics computes dashboard figures over stored sales records.
package analytics

import (
	"math"
	"sort"
	"strings"
	"time"

	"aisolutions-backend/models"

	"github.com/shopspring/decimal"
)

// Filter narrows records by country, product type and sales year. An empty
// dimension matches everything.
type Filter struct {
	Countries    []string `form:"country" json:"countries"`
	ProductTypes []string `form:"product" json:"productTypes"`
	Years        []string `form:"year" json:"years"`
}

func (f Filter) Apply(records []models.Record) []models.Record {
	countries := toSet(f.Countries)
	products := toSet(f.ProductTypes)
	years := toSet(f.Years)

	out := make([]models.Record, 0, len(records))
	for _, r := range records {
		if len(countries) > 0 && !countries[r.Country] {
			continue
		}
		if len(products) > 0 && !products[r.ProductType] {
			continue
		}
		if len(years) > 0 && !years[r.SalesDate.Format("2006")] {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Options lists the distinct filter values present in the records.
func Options(records []models.Record) Filter {
	var opts Filter
	countries, products, years := map[string]bool{}, map[string]bool{}, map[string]bool{}
	for _, r := range records {
		countries[r.Country] = true
		products[r.ProductType] = true
		years[r.SalesDate.Format("2006")] = true
	}
	opts.Countries = sortedKeys(countries)
	opts.ProductTypes = sortedKeys(products)
	opts.Years = sortedKeys(years)
	return opts
}

// Amount is one labelled total of a breakdown.
type Amount struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
}

type SalesKPIs struct {
	TotalSalesRevenue   float64 `json:"totalSalesRevenue"`
	TotalProfit         float64 `json:"totalProfit"`
	TotalLoss           float64 `json:"totalLoss"`
	TotalCustomers      int     `json:"totalCustomers"`
	CountriesReached    int     `json:"countriesReached"`
	TotalJobRequests    int     `json:"totalJobRequests"`
	Subscribers         int     `json:"subscribers"`
	SubscriptionRevenue float64 `json:"subscriptionRevenue"`
	TopSellingProduct   string  `json:"topSellingProduct"`
}

// Sales revenue only counts Completed sales; profit and loss count all.
func ComputeSalesKPIs(records []models.Record) SalesKPIs {
	var (
		kpi                            SalesKPIs
		revenue, profit, loss, subsRev decimal.Decimal
	)
	countries := map[string]bool{}
	productCounts := map[string]int{}
	for _, r := range records {
		kpi.TotalCustomers++
		countries[r.Country] = true
		if r.ProductStatus == models.StatusCompleted {
			revenue = revenue.Add(r.SalesAmount)
		}
		profit = profit.Add(r.Profit)
		loss = loss.Add(r.Loss)
		if r.ProductType != "" {
			kpi.TotalJobRequests++
			productCounts[r.ProductType]++
		}
		if r.SubscriptionType == models.SubscriptionPremium || r.SubscriptionType == models.SubscriptionStandard {
			kpi.Subscribers++
		}
		if r.SubscriptionType != models.SubscriptionFree {
			subsRev = subsRev.Add(r.SubscriptionPrice)
		}
	}
	kpi.TotalSalesRevenue = toFloat(revenue)
	kpi.TotalProfit = toFloat(profit)
	kpi.TotalLoss = toFloat(loss)
	kpi.SubscriptionRevenue = toFloat(subsRev)
	kpi.CountriesReached = len(countries)
	kpi.TopSellingProduct = mode(productCounts)
	return kpi
}

// MonthlyRevenue sums Completed sales per calendar month, January first.
func MonthlyRevenue(records []models.Record) []Amount {
	var totals [12]decimal.Decimal
	for _, r := range completed(records) {
		m := r.SalesDate.Month()
		totals[m-1] = totals[m-1].Add(r.SalesAmount)
	}
	out := make([]Amount, 12)
	for i := range totals {
		out[i] = Amount{Key: time.Month(i + 1).String(), Value: toFloat(totals[i])}
	}
	return out
}

// TopProducts ranks product types by Completed revenue.
func TopProducts(records []models.Record, n int) []Amount {
	return top(groupSum(completed(records), byProduct, salesAmount), n)
}

// TopCountries ranks countries by Completed revenue.
func TopCountries(records []models.Record, n int) []Amount {
	return top(groupSum(completed(records), byCountry, salesAmount), n)
}

func LossByProduct(records []models.Record) []Amount {
	return top(groupSum(records, byProduct, func(r models.Record) decimal.Decimal { return r.Loss }), 0)
}

func SubscriptionRevenue(records []models.Record) []Amount {
	return top(groupSum(records, func(r models.Record) string { return string(r.SubscriptionType) },
		func(r models.Record) decimal.Decimal { return r.SubscriptionPrice }), 0)
}

func SalesByCustomerType(records []models.Record) []Amount {
	return top(groupSum(records, func(r models.Record) string { return string(r.CustomerType) }, salesAmount), 0)
}

func byProduct(r models.Record) string            { return r.ProductType }
func byCountry(r models.Record) string            { return r.Country }
func salesAmount(r models.Record) decimal.Decimal { return r.SalesAmount }

func completed(records []models.Record) []models.Record {
	out := make([]models.Record, 0, len(records))
	for _, r := range records {
		if r.ProductStatus == models.StatusCompleted {
			out = append(out, r)
		}
	}
	return out
}

func groupSum(records []models.Record, key func(models.Record) string, value func(models.Record) decimal.Decimal) map[string]decimal.Decimal {
	sums := map[string]decimal.Decimal{}
	for _, r := range records {
		k := key(r)
		sums[k] = sums[k].Add(value(r))
	}
	return sums
}

// top sorts descending by value, then by key. n <= 0 keeps everything.
func top(sums map[string]decimal.Decimal, n int) []Amount {
	out := make([]Amount, 0, len(sums))
	for k, v := range sums {
		out = append(out, Amount{Key: k, Value: toFloat(v)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Key < out[j].Key
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

func mode(counts map[string]int) string {
	best, bestCount := "", 0
	for k, c := range counts {
		if c > bestCount || (c == bestCount && strings.Compare(k, best) < 0) {
			best, bestCount = k, c
		}
	}
	return best
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			set[v] = true
		}
	}
	return set
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func toFloat(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
