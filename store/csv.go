// Package store persists records in an append-only CSV file.
package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"aisolutions-backend/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// Columns is the fixed header of the store.
var Columns = []string{
	"Customer ID",
	"Customer Name",
	"Email",
	"Phone",
	"Country",
	"Gender",
	"Age",
	"Company Name",
	"Customer Type",
	"Subscription Type",
	"Benefits of Membership Type",
	"Subscription Duration",
	"Subscription Date",
	"Subscription Price",
	"Product ID",
	"Product Type",
	"Inquiries",
	"Cost of Product",
	"Sales Amount",
	"Sales Date",
	"Sales Time",
	"Payment Method",
	"Demo Scheduled",
	"Promotional Event Participation",
	"Promotional Event",
	"Response Time (days)",
	"Product Status",
	"Refund Amount",
	"Comments",
	"Product Rating",
	"Profit",
	"Loss",
}

// ErrNoStore is returned when reading a store file that was never written.
var ErrNoStore = errors.New("store does not exist")

// CSVStore appends records to a single CSV file. One process writes at a time.
type CSVStore struct {
	path string
	mu   sync.Mutex
}

func Open(path string) *CSVStore {
	return &CSVStore{path: path}
}

func (s *CSVStore) Path() string {
	return s.path
}

// Append writes the records after any existing rows, creating the file with
// a header row first when it does not exist yet.
func (s *CSVStore) Append(records ...models.Record) error {
	if len(records) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create store dir: %w", err)
		}
	}

	needHeader := false
	info, err := os.Stat(s.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		needHeader = true
	case err != nil:
		return fmt.Errorf("stat store: %w", err)
	case info.Size() == 0:
		needHeader = true
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if needHeader {
		if err := w.Write(Columns); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	for _, rec := range records {
		if err := w.Write(Row(rec)); err != nil {
			return fmt.Errorf("write record %s: %w", rec.CustomerID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush store: %w", err)
	}
	return f.Close()
}

// ReadAll loads every well-formed row. Malformed rows are skipped and counted.
func (s *CSVStore) ReadAll() ([]models.Record, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, 0, fmt.Errorf("%s: %w", s.path, ErrNoStore)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("open store: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// Count returns the number of readable rows.
func (s *CSVStore) Count() (int, error) {
	recs, _, err := s.ReadAll()
	if errors.Is(err, ErrNoStore) {
		return 0, nil
	}
	return len(recs), err
}

// Read parses a CSV stream with a header row. Header names are matched after
// trimming whitespace, so column order in the input may differ.
func Read(r io.Reader) ([]models.Record, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("read header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, col := range Columns {
		if _, ok := index[col]; !ok {
			return nil, 0, fmt.Errorf("missing column %q", col)
		}
	}

	var (
		records []models.Record
		skipped int
	)
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				skipped++
				continue
			}
			return records, skipped, fmt.Errorf("read row: %w", err)
		}
		rec, err := parseRow(row, index)
		if err != nil {
			skipped++
			continue
		}
		records = append(records, rec)
	}
	return records, skipped, nil
}

// WriteCSV serialises records with the store header.
func WriteCSV(w io.Writer, records []models.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, rec := range records {
		if err := cw.Write(Row(rec)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Row renders a record in column order.
func Row(r models.Record) []string {
	return []string{
		r.CustomerID.String(),
		r.CustomerName,
		r.Email,
		r.Phone,
		r.Country,
		string(r.Gender),
		strconv.Itoa(r.Age),
		r.CompanyName,
		string(r.CustomerType),
		string(r.SubscriptionType),
		r.MembershipBenefit,
		r.SubscriptionDuration,
		r.SubscriptionDate.Format(dateLayout),
		r.SubscriptionPrice.StringFixed(2),
		strconv.Itoa(r.ProductID),
		r.ProductType,
		r.Inquiry,
		r.CostOfProduct.StringFixed(2),
		r.SalesAmount.StringFixed(2),
		r.SalesDate.Format(dateLayout),
		r.SalesTime,
		r.PaymentMethod,
		string(r.DemoScheduled),
		string(r.PromoParticipation),
		r.PromoEvent,
		strconv.Itoa(r.ResponseTimeDays),
		string(r.ProductStatus),
		r.RefundAmount.StringFixed(2),
		r.Comments,
		strconv.Itoa(r.ProductRating),
		r.Profit.StringFixed(2),
		r.Loss.StringFixed(2),
	}
}

type rowParser struct {
	row   []string
	index map[string]int
	err   error
}

func (p *rowParser) str(col string) string {
	i := p.index[col]
	if i >= len(p.row) {
		if p.err == nil {
			p.err = fmt.Errorf("row too short for %q", col)
		}
		return ""
	}
	return p.row[i]
}

func (p *rowParser) integer(col string) int {
	v, err := strconv.Atoi(strings.TrimSpace(p.str(col)))
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("%s: %w", col, err)
	}
	return v
}

func (p *rowParser) money(col string) decimal.Decimal {
	v, err := decimal.NewFromString(strings.TrimSpace(p.str(col)))
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("%s: %w", col, err)
	}
	return v.Round(2)
}

func (p *rowParser) date(col string) time.Time {
	v, err := time.Parse(dateLayout, strings.TrimSpace(p.str(col)))
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("%s: %w", col, err)
	}
	return v
}

func parseRow(row []string, index map[string]int) (models.Record, error) {
	p := &rowParser{row: row, index: index}

	id, err := uuid.Parse(p.str("Customer ID"))
	if err != nil {
		return models.Record{}, fmt.Errorf("customer id: %w", err)
	}

	rec := models.Record{
		CustomerID:           id,
		CustomerName:         p.str("Customer Name"),
		Email:                p.str("Email"),
		Phone:                p.str("Phone"),
		Country:              p.str("Country"),
		Gender:               models.Gender(p.str("Gender")),
		Age:                  p.integer("Age"),
		CompanyName:          p.str("Company Name"),
		CustomerType:         models.CustomerType(p.str("Customer Type")),
		SubscriptionType:     models.SubscriptionType(p.str("Subscription Type")),
		MembershipBenefit:    p.str("Benefits of Membership Type"),
		SubscriptionDuration: p.str("Subscription Duration"),
		SubscriptionDate:     p.date("Subscription Date"),
		SubscriptionPrice:    p.money("Subscription Price"),
		ProductID:            p.integer("Product ID"),
		ProductType:          p.str("Product Type"),
		Inquiry:              p.str("Inquiries"),
		CostOfProduct:        p.money("Cost of Product"),
		SalesAmount:          p.money("Sales Amount"),
		SalesDate:            p.date("Sales Date"),
		SalesTime:            p.str("Sales Time"),
		PaymentMethod:        p.str("Payment Method"),
		DemoScheduled:        models.YesNo(p.str("Demo Scheduled")),
		PromoParticipation:   models.YesNo(p.str("Promotional Event Participation")),
		PromoEvent:           p.str("Promotional Event"),
		ResponseTimeDays:     p.integer("Response Time (days)"),
		ProductStatus:        models.ProductStatus(p.str("Product Status")),
		RefundAmount:         p.money("Refund Amount"),
		Comments:             p.str("Comments"),
		ProductRating:        p.integer("Product Rating"),
		Profit:               p.money("Profit"),
		Loss:                 p.money("Loss"),
	}
	return rec, p.err
}
