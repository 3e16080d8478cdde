package generator

import (
	"strings"
	"testing"
	"time"

	"aisolutions-backend/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestDerive(t *testing.T) {
	fee := d("20.00")

	t.Run("completed", func(t *testing.T) {
		out := Derive(models.StatusCompleted, d("30.00"), d("200.00"), fee)
		assert.True(t, out.Profit.Equal(d("170.00")), "profit %s", out.Profit)
		assert.True(t, out.Loss.IsZero(), "loss %s", out.Loss)
		assert.True(t, out.Refund.IsZero(), "refund %s", out.Refund)
	})

	t.Run("canceled", func(t *testing.T) {
		out := Derive(models.StatusCanceled, d("40.00"), d("100.00"), fee)
		assert.True(t, out.Refund.Equal(d("80.00")), "refund %s", out.Refund)
		assert.True(t, out.Profit.Equal(d("40.00")), "profit %s", out.Profit)
		assert.True(t, out.Loss.IsZero(), "loss %s", out.Loss)
	})

	t.Run("failed", func(t *testing.T) {
		out := Derive(models.StatusFailed, d("50.00"), d("250.00"), fee)
		assert.True(t, out.Refund.Equal(d("250.00")), "refund %s", out.Refund)
		assert.True(t, out.Loss.Equal(d("300.00")), "loss %s", out.Loss)
		assert.True(t, out.Profit.IsZero(), "profit %s", out.Profit)
	})

	t.Run("canceled refund floors at zero", func(t *testing.T) {
		out := Derive(models.StatusCanceled, d("40.00"), d("15.00"), fee)
		assert.True(t, out.Refund.IsZero())
		assert.True(t, out.Profit.Equal(d("-40.00")))
		assert.True(t, out.Loss.Equal(d("40.00")))
	})

	t.Run("completed below cost keeps both fields", func(t *testing.T) {
		out := Derive(models.StatusCompleted, d("90.00"), d("60.00"), fee)
		assert.True(t, out.Profit.Equal(d("-30.00")))
		assert.True(t, out.Loss.Equal(d("30.00")))
	})
}

func TestRecordInvariants(t *testing.T) {
	cfg := DefaultConfig()
	g := New(cfg, WithSeed(42))

	seen := map[models.ProductStatus]int{}
	for _, rec := range g.Batch(3000) {
		seen[rec.ProductStatus]++

		switch rec.ProductStatus {
		case models.StatusCompleted:
			assert.True(t, rec.RefundAmount.IsZero())
			assert.Contains(t, []int{3, 4, 5}, rec.ProductRating)
		case models.StatusCanceled:
			assert.Contains(t, []int{1, 2}, rec.ProductRating)
			want := decimal.Max(decimal.Zero, rec.SalesAmount.Sub(cfg.CancellationFee))
			assert.True(t, rec.RefundAmount.Equal(want))
			assert.False(t, rec.RefundAmount.IsNegative())
		case models.StatusFailed:
			assert.Contains(t, []int{1, 2}, rec.ProductRating)
			assert.True(t, rec.Loss.Equal(rec.CostOfProduct.Add(rec.SalesAmount)))
			assert.True(t, rec.Profit.IsZero())
		default:
			t.Fatalf("unexpected status %q", rec.ProductStatus)
		}

		assert.True(t, rec.CostOfProduct.GreaterThanOrEqual(d("20")) && rec.CostOfProduct.LessThanOrEqual(d("100")), "cost %s", rec.CostOfProduct)
		assert.True(t, rec.SalesAmount.GreaterThanOrEqual(d("150")) && rec.SalesAmount.LessThanOrEqual(d("300")), "price %s", rec.SalesAmount)
		assert.LessOrEqual(t, -rec.CostOfProduct.Exponent(), int32(2))

		assert.True(t, rec.SubscriptionPrice.Equal(cfg.SubscriptionPrices[rec.SubscriptionType]))

		assert.GreaterOrEqual(t, rec.Age, 18)
		assert.LessOrEqual(t, rec.Age, 65)
		assert.GreaterOrEqual(t, rec.ProductID, 100)
		assert.LessOrEqual(t, rec.ProductID, 200)
		assert.GreaterOrEqual(t, rec.ResponseTimeDays, 1)
		assert.LessOrEqual(t, rec.ResponseTimeDays, 10)

		for _, day := range []time.Time{rec.SubscriptionDate, rec.SalesDate} {
			assert.False(t, day.Before(cfg.DateFrom), "date %s", day)
			assert.False(t, day.After(cfg.DateTo), "date %s", day)
		}

		assert.NotEqual(t, "", rec.CustomerID.String())
		assert.NotEmpty(t, rec.Phone)
		assert.NotEmpty(t, rec.Comments)
		assert.Len(t, rec.SalesTime, 8)
	}

	for _, status := range cfg.Statuses {
		assert.Positive(t, seen[status], "status %s never sampled", status)
	}
}

func TestSubscriptionPriceTable(t *testing.T) {
	prices := DefaultConfig().SubscriptionPrices
	assert.True(t, prices[models.SubscriptionPremium].Equal(d("50.00")))
	assert.True(t, prices[models.SubscriptionStandard].Equal(d("25.00")))
	assert.True(t, prices[models.SubscriptionFree].IsZero())
}

func TestSeedIsReproducible(t *testing.T) {
	a := New(DefaultConfig(), WithSeed(7)).Batch(25)
	b := New(DefaultConfig(), WithSeed(7)).Batch(25)
	require.Len(t, b, len(a))
	for i := range a {
		assert.Equal(t, a[i].CustomerID, b[i].CustomerID)
		assert.Equal(t, a[i].Phone, b[i].Phone)
		assert.Equal(t, a[i].ProductStatus, b[i].ProductStatus)
		assert.True(t, a[i].Profit.Equal(b[i].Profit))
		assert.Equal(t, a[i].Comments, b[i].Comments)
	}
}

func TestCommentPools(t *testing.T) {
	cfg := DefaultConfig()
	g := New(cfg, WithSeed(3))

	inPool := func(comment string, pool []string) bool {
		for _, p := range pool {
			if strings.Contains(strings.ToLower(comment), strings.ToLower(p)) {
				return true
			}
		}
		return false
	}

	for _, tc := range []struct {
		status models.ProductStatus
		rating int
		pool   []string
	}{
		{models.StatusCompleted, 5, cfg.Comments.Positive},
		{models.StatusCompleted, 3, cfg.Comments.Neutral},
		{models.StatusCanceled, 1, cfg.Comments.Cancellation},
		{models.StatusFailed, 2, cfg.Comments.Failure},
	} {
		c := g.comment(tc.status, tc.rating)
		assert.True(t, inPool(c, tc.pool), "%s/%d: %q", tc.status, tc.rating, c)
		assert.True(t, strings.HasSuffix(c, ".") || strings.HasSuffix(c, "!"), c)
	}
}

func TestConfigOverrides(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Statuses = []models.ProductStatus{models.StatusFailed}
	cfg.Price = Range[float64]{Min: 199.99, Max: 199.99}

	rec := New(cfg, WithSeed(1)).Record()
	assert.Equal(t, models.StatusFailed, rec.ProductStatus)
	assert.True(t, rec.SalesAmount.Equal(d("199.99")))
	assert.True(t, rec.RefundAmount.Equal(d("199.99")))
}
