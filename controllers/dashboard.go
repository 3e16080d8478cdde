// controllers/dashboard.go
package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"aisolutions-backend/analytics"
	"aisolutions-backend/models"
	"aisolutions-backend/store"
	"aisolutions-backend/utils"

	"github.com/gin-gonic/gin"
)

const (
	topProducts  = 10
	topCountries = 10
	recentDays   = 30
	recentMonths = 12
)

// DashboardController serves the three dashboard tabs. Every handler accepts
// the same country/product/year filter.
type DashboardController struct {
	Store *store.CSVStore
	Log   *slog.Logger
}

type SalesDashboard struct {
	Filter              analytics.Filter    `json:"filter"`
	Options             analytics.Filter    `json:"options"`
	KPIs                analytics.SalesKPIs `json:"kpis"`
	MonthlyRevenue      []analytics.Amount  `json:"monthlyRevenue"`
	TopProducts         []analytics.Amount  `json:"topProducts"`
	TopCountries        []analytics.Amount  `json:"topCountries"`
	LossByProduct       []analytics.Amount  `json:"lossByProduct"`
	SubscriptionRevenue []analytics.Amount  `json:"subscriptionRevenue"`
	SalesByCustomerType []analytics.Amount  `json:"salesByCustomerType"`
	SkippedRows         int                 `json:"skippedRows"`
}

type EffectivenessDashboard struct {
	Filter           analytics.Filter            `json:"filter"`
	KPIs             analytics.EffectivenessKPIs `json:"kpis"`
	StatusCounts     []analytics.StatusCount     `json:"statusCounts"`
	Ratings          []analytics.ProductRatings  `json:"ratingsForTopProducts"`
	RefundsByProduct []analytics.GroupStat       `json:"refundsByProduct"`
	ResponseTimes    []analytics.Bucket          `json:"responseTimes"`
	SkippedRows      int                         `json:"skippedRows"`
}

type AnalysisDashboard struct {
	Filter         analytics.Filter              `json:"filter"`
	CountryProduct []analytics.CountryProductRow `json:"countryProduct"`
	Daily          []analytics.PeriodTotal       `json:"daily"`
	Monthly        []analytics.PeriodTotal       `json:"monthly"`
	Yearly         []analytics.PeriodTotal       `json:"yearly"`
	Statistics     []analytics.ColumnStats       `json:"statistics"`
	SkippedRows    int                           `json:"skippedRows"`
}

func (d *DashboardController) Sales(c *gin.Context) {
	filter, all, skipped, ok := d.load(c)
	if !ok {
		return
	}
	recs := filter.Apply(all)

	c.JSON(http.StatusOK, SalesDashboard{
		Filter:              filter,
		Options:             analytics.Options(all),
		KPIs:                analytics.ComputeSalesKPIs(recs),
		MonthlyRevenue:      analytics.MonthlyRevenue(recs),
		TopProducts:         analytics.TopProducts(recs, topProducts),
		TopCountries:        analytics.TopCountries(recs, topCountries),
		LossByProduct:       analytics.LossByProduct(recs),
		SubscriptionRevenue: analytics.SubscriptionRevenue(recs),
		SalesByCustomerType: analytics.SalesByCustomerType(recs),
		SkippedRows:         skipped,
	})
}

func (d *DashboardController) Effectiveness(c *gin.Context) {
	filter, all, skipped, ok := d.load(c)
	if !ok {
		return
	}
	recs := filter.Apply(all)

	c.JSON(http.StatusOK, EffectivenessDashboard{
		Filter:           filter,
		KPIs:             analytics.ComputeEffectiveness(recs),
		StatusCounts:     analytics.StatusCounts(recs),
		Ratings:          analytics.RatingsForTopProducts(recs, topProducts),
		RefundsByProduct: analytics.RefundsByProduct(recs),
		ResponseTimes:    analytics.ResponseTimeHistogram(recs),
		SkippedRows:      skipped,
	})
}

func (d *DashboardController) Analysis(c *gin.Context) {
	filter, all, skipped, ok := d.load(c)
	if !ok {
		return
	}
	recs := filter.Apply(all)

	c.JSON(http.StatusOK, AnalysisDashboard{
		Filter:         filter,
		CountryProduct: analytics.CountryProductSummary(recs),
		Daily:          analytics.Last(analytics.ProfitLossByPeriod(recs, analytics.Daily), recentDays),
		Monthly:        analytics.Last(analytics.ProfitLossByPeriod(recs, analytics.Monthly), recentMonths),
		Yearly:         analytics.ProfitLossByPeriod(recs, analytics.Yearly),
		Statistics:     analytics.Describe(recs),
		SkippedRows:    skipped,
	})
}

// load binds the filter and reads the whole store. On failure the response
// has already been written.
func (d *DashboardController) load(c *gin.Context) (analytics.Filter, []models.Record, int, bool) {
	var filter analytics.Filter
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid filter: "+err.Error())
		return filter, nil, 0, false
	}
	recs, skipped, ok := readStore(c, d.Store, d.Log)
	return filter, recs, skipped, ok
}

func readStore(c *gin.Context, st *store.CSVStore, log *slog.Logger) ([]models.Record, int, bool) {
	recs, skipped, err := st.ReadAll()
	if errors.Is(err, store.ErrNoStore) {
		utils.RespondWithError(c, http.StatusNotFound, "No sales data yet")
		return nil, 0, false
	}
	if err != nil {
		log.Error("read store", "err", err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to read sales data")
		return nil, 0, false
	}
	if skipped > 0 {
		log.Warn("skipped malformed rows", "rows", skipped, "store", st.Path())
	}
	return recs, skipped, true
}
