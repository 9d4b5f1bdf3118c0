package sheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varadha/habitd/internal/catalog"
)

// fakeSheet is an in-memory grid behind the two values endpoints the store
// uses. Rows and columns are zero-indexed internally, 1-based/A1 on the
// wire, same as the real API.
type fakeSheet struct {
	t        *testing.T
	rows     [][]any
	lastAuth string
}

var rangeRe = regexp.MustCompile(`^([A-Z])(\d*):([A-Z])(\d*)$`)

func colIndex(letter string) int {
	return int(letter[0] - 'A')
}

func (f *fakeSheet) cell(row, col int) any {
	if row >= len(f.rows) || col >= len(f.rows[row]) {
		return ""
	}
	return f.rows[row][col]
}

func (f *fakeSheet) setCell(row, col int, v any) {
	for len(f.rows) <= row {
		f.rows = append(f.rows, make([]any, percentColumn+1))
	}
	f.rows[row][col] = v
}

func (f *fakeSheet) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.lastAuth = r.Header.Get("Authorization")

		parts := strings.Split(r.URL.Path, "/values/")
		require.Len(f.t, parts, 2, "unexpected path %s", r.URL.Path)
		ref := parts[1]
		if i := strings.Index(ref, "!"); i >= 0 {
			ref = ref[i+1:]
		}
		m := rangeRe.FindStringSubmatch(ref)
		require.NotNil(f.t, m, "unparseable range %q", ref)

		startCol, endCol := colIndex(m[1]), colIndex(m[3])

		switch r.Method {
		case http.MethodGet:
			var values [][]any
			if m[2] == "" { // whole-column read, e.g. A:A
				for i := range f.rows {
					values = append(values, []any{f.cell(i, startCol)})
				}
			} else {
				row, _ := strconv.Atoi(m[2])
				if row-1 < len(f.rows) {
					out := make([]any, 0, endCol-startCol+1)
					for c := startCol; c <= endCol; c++ {
						out = append(out, f.cell(row-1, c))
					}
					values = append(values, out)
				}
			}
			json.NewEncoder(w).Encode(map[string]any{"values": values})

		case http.MethodPut:
			var vr struct {
				Values [][]any `json:"values"`
			}
			require.NoError(f.t, json.NewDecoder(r.Body).Decode(&vr))
			require.Len(f.t, vr.Values, 1)
			row, _ := strconv.Atoi(m[2])
			for i, v := range vr.Values[0] {
				f.setCell(row-1, startCol+i, v)
			}
			json.NewEncoder(w).Encode(map[string]any{"updatedCells": len(vr.Values[0])})

		default:
			http.Error(w, "bad method", http.StatusMethodNotAllowed)
		}
	})
}

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2-Jan-2006", s)
	require.NoError(t, err)
	return d
}

// newTestStore seeds header rows 1-4 and dated rows from 18-Jan-2026
// (Sunday) through 24-Jan-2026 (Saturday) starting at row 5.
func newTestStore(t *testing.T) (*Store, *fakeSheet) {
	t.Helper()
	fake := &fakeSheet{t: t}
	for i := 0; i < 4; i++ {
		fake.setCell(i, 0, "header")
	}
	for i, d := range []string{
		"18-Jan-2026", "19-Jan-2026", "20-Jan-2026", "21-Jan-2026",
		"22-Jan-2026", "23-Jan-2026", "24-Jan-2026",
	} {
		fake.setCell(4+i, dateColumn, d)
	}

	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)

	client := NewClient(Config{
		SpreadsheetID: "sheet-id",
		SheetName:     "Habits",
		BaseURL:       srv.URL,
	}, StaticTokenSource("sa-token"))
	return NewStore(client, catalog.Default()), fake
}

func TestFindRowForDate(t *testing.T) {
	store, fake := newTestStore(t)

	row, err := store.FindRowForDate(context.Background(), date(t, "24-Jan-2026"))
	require.NoError(t, err)
	assert.Equal(t, 11, row)
	assert.Equal(t, "Bearer sa-token", fake.lastAuth)
}

func TestFindRowForDate_Missing(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.FindRowForDate(context.Background(), date(t, "1-Mar-2026"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRowNotFound)
	assert.Contains(t, err.Error(), "1-Mar-2026")
}

func TestWriteThenReadHabits(t *testing.T) {
	store, fake := newTestStore(t)
	ctx := context.Background()

	habits := map[string]int{
		"Walking/Running":    45,
		"Sandhi - Morning":   10,
		"Sandhi - Evening":   5,
		"Cook Morning":       30,
		"Utensils":           15,
		"Clothes":            15,
		"Audiobooks/Reading": 20,
	}

	result, err := store.WriteHabits(ctx, date(t, "24-Jan-2026"), habits)
	require.NoError(t, err)
	assert.Equal(t, 135, result.TotalMinutes)
	assert.InDelta(t, 62.79, result.Percentage, 0.01)
	assert.Equal(t, 11, result.Row)

	// Derived cells land in the sheet, percentage formatted for humans.
	assert.Equal(t, float64(135), fake.cell(10, totalColumn))
	assert.Equal(t, "62.79%", fake.cell(10, percentColumn))

	got, err := store.ReadHabits(ctx, date(t, "24-Jan-2026"))
	require.NoError(t, err)
	assert.Equal(t, habits, got)
}

func TestWriteHabits_MergesWithExistingRow(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	_, err := store.WriteHabits(ctx, date(t, "23-Jan-2026"), map[string]int{"Yoga": 15})
	require.NoError(t, err)

	result, err := store.WriteHabits(ctx, date(t, "23-Jan-2026"), map[string]int{"Walking/Running": 45})
	require.NoError(t, err)
	assert.Equal(t, 60, result.TotalMinutes)

	got, err := store.ReadHabits(ctx, date(t, "23-Jan-2026"))
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Yoga": 15, "Walking/Running": 45}, got)
}

func TestReadHabits_EmptyRow(t *testing.T) {
	store, _ := newTestStore(t)

	got, err := store.ReadHabits(context.Background(), date(t, "20-Jan-2026"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReadWeek(t *testing.T) {
	store, fake := newTestStore(t)
	ctx := context.Background()

	_, err := store.WriteHabits(ctx, date(t, "19-Jan-2026"), map[string]int{"Walking/Running": 45, "Yoga": 15})
	require.NoError(t, err)

	// 21-Jan carries a day-level note in the first habit cell.
	fake.setCell(7, 2, "SICK")

	dates := []time.Time{
		date(t, "18-Jan-2026"), date(t, "19-Jan-2026"), date(t, "20-Jan-2026"),
		date(t, "21-Jan-2026"), date(t, "22-Jan-2026"), date(t, "23-Jan-2026"),
		date(t, "24-Jan-2026"), date(t, "25-Jan-2026"), // 25-Jan has no row
	}

	records, err := store.ReadWeek(ctx, dates)
	require.NoError(t, err)
	require.Len(t, records, 8)

	active := records[1]
	assert.Equal(t, "19-Jan-2026", active.Date)
	assert.Equal(t, "Monday", active.Day)
	assert.Equal(t, map[string]int{"Walking/Running": 45, "Yoga": 15}, active.Habits)
	assert.Equal(t, 60, active.Total)
	assert.InDelta(t, 27.91, active.Percentage, 0.01)
	assert.True(t, active.Active())

	sick := records[3]
	assert.True(t, sick.IsOffDay)
	assert.Equal(t, "SICK", sick.Note)

	empty := records[2]
	assert.False(t, empty.IsOffDay)
	assert.False(t, empty.Active())

	missing := records[7]
	assert.True(t, missing.IsOffDay)
	assert.Equal(t, "25-Jan-2026", missing.Date)
	assert.Empty(t, missing.Note)
}
