package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"aisolutions-backend/analytics"
	"aisolutions-backend/models"
	"aisolutions-backend/output"
	"aisolutions-backend/services"
	"aisolutions-backend/store"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const latestRows = 10

// WatchModel appends a batch on every tick and shows the live KPIs and the
// newest rows of the store.
type WatchModel struct {
	ingest     *services.IngestService
	store      *store.CSVStore
	interval   time.Duration
	batch      int
	iterations int

	done     int
	table    table.Model
	sales    analytics.SalesKPIs
	eff      analytics.EffectivenessKPIs
	statuses []analytics.StatusCount
	total    int
	err      error
	quitting bool
}

// NewWatchModel builds the model. iterations <= 0 runs until the user quits.
func NewWatchModel(ingest *services.IngestService, st *store.CSVStore, interval time.Duration, batch, iterations int) WatchModel {
	columns := []table.Column{
		{Title: "Date", Width: 10},
		{Title: "Time", Width: 8},
		{Title: "Customer", Width: 20},
		{Title: "Country", Width: 16},
		{Title: "Product", Width: 24},
		{Title: "Status", Width: 9},
		{Title: "Sales", Width: 10},
		{Title: "Profit", Width: 10},
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithHeight(latestRows),
		table.WithFocused(false),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorBorder).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.Foreground(colorText).Bold(false)
	t.SetStyles(s)

	return WatchModel{
		ingest:     ingest,
		store:      st,
		interval:   interval,
		batch:      batch,
		iterations: iterations,
		table:      t,
	}
}

type tickMsg time.Time

type batchMsg struct {
	records []models.Record
	err     error
}

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func runBatchCmd(ingest *services.IngestService, st *store.CSVStore, n int) tea.Cmd {
	return func() tea.Msg {
		if _, err := ingest.RunBatch(context.Background(), n); err != nil {
			return batchMsg{err: err}
		}
		recs, _, err := st.ReadAll()
		return batchMsg{records: recs, err: err}
	}
}

func (m WatchModel) Init() tea.Cmd {
	return tick(m.interval)
}

func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		}

	case tickMsg:
		return m, runBatchCmd(m.ingest, m.store, m.batch)

	case batchMsg:
		m.done++
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.err = nil
			m.refresh(msg.records)
		}
		if m.iterations > 0 && m.done >= m.iterations {
			m.quitting = true
			return m, tea.Quit
		}
		return m, tick(m.interval)
	}
	return m, nil
}

func (m *WatchModel) refresh(recs []models.Record) {
	m.total = len(recs)
	m.sales = analytics.ComputeSalesKPIs(recs)
	m.eff = analytics.ComputeEffectiveness(recs)
	m.statuses = analytics.StatusCounts(recs)

	latest := recs
	if len(latest) > latestRows {
		latest = latest[len(latest)-latestRows:]
	}
	rows := make([]table.Row, 0, len(latest))
	// Newest first.
	for i := len(latest) - 1; i >= 0; i-- {
		r := latest[i]
		rows = append(rows, table.Row{
			r.SalesDate.Format("2006-01-02"),
			r.SalesTime,
			r.CustomerName,
			r.Country,
			r.ProductType,
			string(r.ProductStatus),
			r.SalesAmount.StringFixed(2),
			r.Profit.StringFixed(2),
		})
	}
	m.table.SetRows(rows)
}

func (m WatchModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("AI Solutions · live sales feed"))
	b.WriteString("\n")

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		kpi("Records", fmt.Sprint(m.total)),
		kpi("Total Sales Revenue", output.Money(m.sales.TotalSalesRevenue)),
		kpi("Total Profit", profitStyle.Render(output.Money(m.sales.TotalProfit))),
		kpi("Total Loss", lossStyle.Render(output.Money(m.sales.TotalLoss))),
		kpi("Avg Rating", fmt.Sprintf("%.2f %s", m.eff.AvgRating, m.eff.Stars)),
	))
	b.WriteString("\n")

	var counts []string
	for _, sc := range m.statuses {
		style, ok := statusStyles[string(sc.Status)]
		if !ok {
			style = mutedStyle
		}
		counts = append(counts, style.Render(fmt.Sprintf("%s %d", sc.Status, sc.Count)))
	}
	if len(counts) > 0 {
		b.WriteString(strings.Join(counts, mutedStyle.Render("  ·  ")))
		b.WriteString("\n")
	}
	if m.sales.TopSellingProduct != "" {
		b.WriteString(mutedStyle.Render("Top product: " + m.sales.TopSellingProduct))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.table.View())
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render("Batch failed: " + m.err.Error()))
		b.WriteString("\n")
	}

	if m.iterations > 0 {
		b.WriteString(FormatProgressBar(m.done, m.iterations, 30))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(FormatKey("q", "quit")))
	b.WriteString("\n")
	return b.String()
}

// Done reports how many batches have completed.
func (m WatchModel) Done() int { return m.done }

// Run starts the feed in the terminal and blocks until it finishes.
func Run(m WatchModel) error {
	_, err := tea.NewProgram(m).Run()
	return err
}
