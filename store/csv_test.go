package store

import (
	"bytes"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"aisolutions-backend/generator"
	"aisolutions-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertSameRecord(t *testing.T, want, got models.Record) {
	t.Helper()
	assert.Equal(t, Row(want), Row(got))
	assert.True(t, want.SalesDate.Equal(got.SalesDate))
	assert.True(t, want.Profit.Equal(got.Profit), "profit %s != %s", want.Profit, got.Profit)
	assert.True(t, want.Loss.Equal(got.Loss), "loss %s != %s", want.Loss, got.Loss)
}

func TestAppendCreatesHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "sales.csv")
	s := Open(path)

	_, _, err := s.ReadAll()
	require.ErrorIs(t, err, ErrNoStore)

	rec := generator.New(generator.DefaultConfig(), generator.WithSeed(1)).Record()
	require.NoError(t, s.Append(rec))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(Columns, ","), lines[0])
}

func TestRoundTrip(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "sales.csv"))
	g := generator.New(generator.DefaultConfig(), generator.WithSeed(99))

	first := g.Batch(40)
	second := g.Batch(60)
	require.NoError(t, s.Append(first...))
	require.NoError(t, s.Append(second...))

	got, skipped, err := s.ReadAll()
	require.NoError(t, err)
	assert.Zero(t, skipped)

	want := append(first, second...)
	require.Len(t, got, len(want))
	for i := range want {
		assertSameRecord(t, want[i], got[i])
	}

	n, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, 100, n)
}

func TestAppendNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.csv")
	require.NoError(t, Open(path).Append())
	_, err := os.Stat(path)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestReadSkipsBadRows(t *testing.T) {
	rec := generator.New(generator.DefaultConfig(), generator.WithSeed(5)).Record()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []models.Record{rec}))
	bad := Row(rec)
	bad[6] = "forty"
	w := csv.NewWriter(&buf)
	require.NoError(t, w.Write([]string{"not-a-uuid", "broken"}))
	require.NoError(t, w.Write(bad))
	w.Flush()
	require.NoError(t, w.Error())

	got, skipped, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, 2, skipped)
	require.Len(t, got, 1)
	assertSameRecord(t, rec, got[0])
}

func TestReadTrimsHeader(t *testing.T) {
	rec := generator.New(generator.DefaultConfig(), generator.WithSeed(8)).Record()

	header := make([]string, len(Columns))
	copy(header, Columns)
	header[19] = "Sales Date "

	var buf bytes.Buffer
	buf.WriteString(strings.Join(header, ",") + "\n")
	var body bytes.Buffer
	require.NoError(t, WriteCSV(&body, []models.Record{rec}))
	_, rest, _ := strings.Cut(body.String(), "\n")
	buf.WriteString(rest)

	got, _, err := Read(&buf)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, rec.SalesDate.Equal(got[0].SalesDate))
}

func TestReadMissingColumn(t *testing.T) {
	_, _, err := Read(strings.NewReader("Customer ID,Email\n"))
	assert.Error(t, err)
}
