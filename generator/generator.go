// Package generator fabricates synthetic AI Solutions sales transactions.
package generator

import (
	"fmt"
	"strings"
	"time"

	"aisolutions-backend/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Generator struct {
	cfg   Config
	faker *gofakeit.Faker
	phone *PhoneFormatter
}

type Option func(*Generator)

// WithSeed makes the record sequence reproducible. Seed 0 means random.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.faker = gofakeit.New(seed)
	}
}

func WithFaker(f *gofakeit.Faker) Option {
	return func(g *Generator) {
		g.faker = f
	}
}

func New(cfg Config, opts ...Option) *Generator {
	g := &Generator{cfg: cfg}
	for _, opt := range opts {
		opt(g)
	}
	if g.faker == nil {
		g.faker = gofakeit.New(0)
	}
	g.phone = NewPhoneFormatter(g.faker)
	return g
}

// Batch synthesizes n records.
func (g *Generator) Batch(n int) []models.Record {
	records := make([]models.Record, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, g.Record())
	}
	return records
}

// Record synthesizes one transaction. It never fails.
func (g *Generator) Record() models.Record {
	f := g.faker
	cfg := g.cfg

	country := f.Country()
	phone := g.phone.Format(country)

	customerID, err := uuid.Parse(f.UUID())
	if err != nil {
		customerID = uuid.New()
	}

	rec := models.Record{
		CustomerID:           customerID,
		CustomerName:         f.Name(),
		Email:                f.Email(),
		Phone:                phone,
		Country:              country,
		Gender:               pick(f, cfg.Genders),
		Age:                  f.IntRange(cfg.Age.Min, cfg.Age.Max),
		CompanyName:          f.Company(),
		CustomerType:         pick(f, cfg.CustomerTypes),
		MembershipBenefit:    pick(f, cfg.MembershipBenefits),
		SubscriptionDuration: pick(f, cfg.SubscriptionDurations),
		SubscriptionDate:     g.date(),
	}

	rec.SubscriptionType = pick(f, cfg.SubscriptionTypes)
	rec.SubscriptionPrice = cfg.SubscriptionPrices[rec.SubscriptionType]

	rec.ProductID = f.IntRange(cfg.ProductID.Min, cfg.ProductID.Max)
	rec.ProductType = pick(f, cfg.ProductTypes)
	rec.Inquiry = pick(f, cfg.Inquiries)

	rec.CostOfProduct = money(f.Float64Range(cfg.Cost.Min, cfg.Cost.Max))
	rec.SalesDate = g.date()
	rec.SalesTime = fmt.Sprintf("%02d:%02d:%02d", f.IntRange(0, 23), f.IntRange(0, 59), f.IntRange(0, 59))
	rec.DemoScheduled = pick(f, []models.YesNo{models.Yes, models.No})
	rec.PromoParticipation = pick(f, []models.YesNo{models.Yes, models.No})
	rec.PromoEvent = pick(f, cfg.PromoEvents)
	rec.SalesAmount = money(f.Float64Range(cfg.Price.Min, cfg.Price.Max))
	rec.ResponseTimeDays = f.IntRange(cfg.ResponseDays.Min, cfg.ResponseDays.Max)

	rec.ProductStatus = pick(f, cfg.Statuses)
	out := Derive(rec.ProductStatus, rec.CostOfProduct, rec.SalesAmount, cfg.CancellationFee)
	rec.RefundAmount = out.Refund
	rec.Profit = out.Profit
	rec.Loss = out.Loss

	if rec.ProductStatus == models.StatusCompleted {
		rec.ProductRating = f.IntRange(3, 5)
	} else {
		rec.ProductRating = f.IntRange(1, 2)
	}
	rec.Comments = g.comment(rec.ProductStatus, rec.ProductRating)

	rec.PaymentMethod = pick(f, cfg.PaymentMethods)
	return rec
}

// Outcome holds the financial fields derived from a product status.
type Outcome struct {
	Refund decimal.Decimal
	Profit decimal.Decimal
	Loss   decimal.Decimal
}

// Derive computes refund, profit and loss for one sale. A Completed sale
// below cost keeps its negative profit and also reports the loss.
func Derive(status models.ProductStatus, cost, price, cancellationFee decimal.Decimal) Outcome {
	var out Outcome
	switch status {
	case models.StatusCompleted:
		out.Refund = decimal.Zero
		out.Profit = price.Sub(cost)
		out.Loss = lossOf(out.Profit)
	case models.StatusCanceled:
		out.Refund = decimal.Max(decimal.Zero, price.Sub(cancellationFee))
		out.Profit = out.Refund.Sub(cost)
		out.Loss = lossOf(out.Profit)
	case models.StatusFailed:
		out.Refund = price
		out.Loss = cost.Add(out.Refund)
		out.Profit = decimal.Zero
	default:
		out.Refund, out.Profit, out.Loss = decimal.Zero, decimal.Zero, decimal.Zero
	}
	return out
}

func lossOf(profit decimal.Decimal) decimal.Decimal {
	if profit.IsNegative() {
		return profit.Neg()
	}
	return decimal.Zero
}

func (g *Generator) comment(status models.ProductStatus, rating int) string {
	pools := g.cfg.Comments
	var pool []string
	switch status {
	case models.StatusCompleted:
		switch {
		case rating >= 4:
			pool = pools.Positive
		case rating == 3:
			pool = pools.Neutral
		default:
			pool = pools.Negative
		}
	case models.StatusCanceled:
		pool = pools.Cancellation
	case models.StatusFailed:
		pool = pools.Failure
	}
	return sentence(g.faker, pool)
}

// sentence strings together 3 to 6 entries of the pool.
func sentence(f *gofakeit.Faker, pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	n := f.IntRange(3, 6)
	words := make([]string, n)
	for i := range words {
		words[i] = pick(f, pool)
	}
	s := strings.Join(words, " ")
	s = strings.ToUpper(s[:1]) + s[1:]
	if !strings.HasSuffix(s, ".") && !strings.HasSuffix(s, "!") {
		s += "."
	}
	return s
}

func (g *Generator) date() time.Time {
	d := g.faker.DateRange(g.cfg.DateFrom, g.cfg.DateTo.AddDate(0, 0, 1).Add(-time.Second))
	y, m, day := d.UTC().Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func pick[T any](f *gofakeit.Faker, values []T) T {
	var zero T
	if len(values) == 0 {
		return zero
	}
	return values[f.IntRange(0, len(values)-1)]
}

func money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}
