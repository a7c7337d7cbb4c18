package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/tipout/internal/history"
	"github.com/mmynk/tipout/internal/middleware"
	"github.com/mmynk/tipout/internal/storage"
	"github.com/mmynk/tipout/internal/storage/memory"
	"github.com/mmynk/tipout/internal/storage/sqlite"
	"github.com/mmynk/tipout/pkg/api"
)

// setupTestServer creates a test server backed by store.
func setupTestServer(t *testing.T, store storage.Store) (*api.TipoutServiceClient, func()) {
	t.Helper()

	session := newTestSession(t, store)
	path, handler := api.NewTipoutServiceHandler(
		NewTipoutService(session),
		connect.WithInterceptors(middleware.LoggingInterceptor()),
	)

	mux := http.NewServeMux()
	mux.Handle(path, handler)
	server := httptest.NewServer(mux)

	client := api.NewTipoutServiceClient(http.DefaultClient, server.URL)

	cleanup := func() {
		server.Close()
		store.Close()
	}
	return client, cleanup
}

// setupSQLiteServer creates a test server with a temp SQLite database
func setupSQLiteServer(t *testing.T) (*api.TipoutServiceClient, func()) {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return setupTestServer(t, store)
}

func TestCalculate_EqualSplit(t *testing.T) {
	client, cleanup := setupSQLiteServer(t)
	defer cleanup()

	resp, err := client.Calculate(context.Background(), connect.NewRequest(&api.CalculateRequest{
		TotalTips: "100",
		Method:    "equal",
		Employees: []api.Employee{{Name: "Ann"}, {Name: "Ben"}, {Name: "Cal"}, {Name: "Dee"}},
	}))
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}

	if len(resp.Msg.Results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(resp.Msg.Results))
	}
	for _, r := range resp.Msg.Results {
		if r.Amount != 25 {
			t.Errorf("expected %s amount to be 25, got %f", r.Name, r.Amount)
		}
		if r.Details != "Split equally among 4 people" {
			t.Errorf("unexpected details: %q", r.Details)
		}
	}
	if resp.Msg.TotalDistributed != 100 {
		t.Errorf("TotalDistributed: expected 100, got %f", resp.Msg.TotalDistributed)
	}
	if resp.Msg.Entry == nil || resp.Msg.Entry.Method != "equal" {
		t.Errorf("expected history entry in response, got %+v", resp.Msg.Entry)
	}
	if resp.Header().Get(middleware.RequestIDHeader) == "" {
		t.Error("expected request ID header")
	}
}

func TestCalculate_Hours(t *testing.T) {
	client, cleanup := setupSQLiteServer(t)
	defer cleanup()

	resp, err := client.Calculate(context.Background(), connect.NewRequest(&api.CalculateRequest{
		TotalTips: "150",
		Method:    "hours",
		Employees: []api.Employee{
			{Name: "Ann", Hours: "2"},
			{Name: "Ben", Hours: "3"},
			{Name: "Cal", Hours: "5"},
			{Name: "", Hours: "8"},
		},
	}))
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}

	want := []float64{30, 45, 75}
	if len(resp.Msg.Results) != len(want) {
		t.Fatalf("expected %d results, got %d", len(want), len(resp.Msg.Results))
	}
	for i, r := range resp.Msg.Results {
		if r.Amount != want[i] {
			t.Errorf("%s amount: expected %v, got %v", r.Name, want[i], r.Amount)
		}
	}
	if resp.Msg.Results[2].Details != "5 hours × $15.00/hour" {
		t.Errorf("unexpected details: %q", resp.Msg.Results[2].Details)
	}
}

func TestCalculate_PercentageWarning(t *testing.T) {
	client, cleanup := setupSQLiteServer(t)
	defer cleanup()

	resp, err := client.Calculate(context.Background(), connect.NewRequest(&api.CalculateRequest{
		TotalTips: "200",
		Method:    "percentage",
		Employees: []api.Employee{
			{Name: "Ann", Percentage: "50"},
			{Name: "Ben", Percentage: "30"},
			{Name: "Cal", Percentage: "10"},
		},
	}))
	if err != nil {
		t.Fatalf("Calculate failed: %v", err)
	}
	if resp.Msg.Warning != "Warning: Percentages add up to 90.0%, not 100%" {
		t.Errorf("unexpected warning: %q", resp.Msg.Warning)
	}
	if resp.Msg.Results[0].Amount != 100 {
		t.Errorf("Ann amount: expected 100, got %v", resp.Msg.Results[0].Amount)
	}
}

func TestCalculate_ValidationErrors(t *testing.T) {
	client, cleanup := setupSQLiteServer(t)
	defer cleanup()

	tests := []struct {
		name    string
		req     *api.CalculateRequest
		wantMsg string
	}{
		{
			name:    "invalid total",
			req:     &api.CalculateRequest{TotalTips: "abc", Method: "equal", Employees: []api.Employee{{Name: "Ann"}}},
			wantMsg: "Please enter a valid total tips amount",
		},
		{
			name:    "no hours",
			req:     &api.CalculateRequest{TotalTips: "10", Method: "hours", Employees: []api.Employee{{Name: "Ann"}}},
			wantMsg: "Please enter valid hours for at least one employee",
		},
		{
			name:    "spanish message",
			req:     &api.CalculateRequest{TotalTips: "10", Method: "percentage", Language: "es", Employees: []api.Employee{{Name: "Ann"}}},
			wantMsg: "Por favor ingresa porcentajes válidos para al menos un empleado",
		},
		{
			name: "unknown method",
			req:  &api.CalculateRequest{TotalTips: "10", Method: "lottery", Employees: []api.Employee{{Name: "Ann"}}},
		},
		{
			name: "unknown language",
			req:  &api.CalculateRequest{TotalTips: "10", Method: "equal", Language: "fr", Employees: []api.Employee{{Name: "Ann"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.Calculate(context.Background(), connect.NewRequest(tt.req))
			if connect.CodeOf(err) != connect.CodeInvalidArgument {
				t.Fatalf("expected InvalidArgument, got %v", err)
			}
			if tt.wantMsg == "" {
				return
			}
			var connectErr *connect.Error
			if !errors.As(err, &connectErr) {
				t.Fatalf("expected *connect.Error, got %T", err)
			}
			if connectErr.Message() != tt.wantMsg {
				t.Errorf("message = %q, want %q", connectErr.Message(), tt.wantMsg)
			}
		})
	}

	list, err := client.ListHistory(context.Background(), connect.NewRequest(&api.ListHistoryRequest{}))
	if err != nil {
		t.Fatalf("ListHistory failed: %v", err)
	}
	if len(list.Msg.Entries) != 0 {
		t.Errorf("rejected calculations were recorded: %d entries", len(list.Msg.Entries))
	}
}

func TestHistoryFlow(t *testing.T) {
	client, cleanup := setupSQLiteServer(t)
	defer cleanup()
	ctx := context.Background()

	var lastID int64
	for i := 0; i < history.MaxEntries+1; i++ {
		resp, err := client.Calculate(ctx, connect.NewRequest(&api.CalculateRequest{
			TotalTips: "60",
			Method:    "equal",
			Employees: []api.Employee{{Name: "Ann"}, {Name: "Ben"}},
		}))
		if err != nil {
			t.Fatalf("Calculate %d failed: %v", i, err)
		}
		lastID = resp.Msg.Entry.ID
	}

	list, err := client.ListHistory(ctx, connect.NewRequest(&api.ListHistoryRequest{}))
	if err != nil {
		t.Fatalf("ListHistory failed: %v", err)
	}
	if len(list.Msg.Entries) != history.MaxEntries {
		t.Fatalf("expected %d entries, got %d", history.MaxEntries, len(list.Msg.Entries))
	}
	if list.Msg.Entries[0].ID != lastID {
		t.Errorf("newest entry: expected %d, got %d", lastID, list.Msg.Entries[0].ID)
	}

	selected, err := client.SelectEntry(ctx, connect.NewRequest(&api.SelectEntryRequest{ID: lastID}))
	if err != nil {
		t.Fatalf("SelectEntry failed: %v", err)
	}
	if selected.Msg.Entry.TotalTips != 60 || len(selected.Msg.Entry.Results) != 2 {
		t.Errorf("unexpected selected entry: %+v", selected.Msg.Entry)
	}

	_, err = client.SelectEntry(ctx, connect.NewRequest(&api.SelectEntryRequest{ID: 12345}))
	if connect.CodeOf(err) != connect.CodeNotFound {
		t.Errorf("expected NotFound, got %v", err)
	}

	if _, err := client.ClearHistory(ctx, connect.NewRequest(&api.ClearHistoryRequest{})); err != nil {
		t.Fatalf("ClearHistory failed: %v", err)
	}
	list, err = client.ListHistory(ctx, connect.NewRequest(&api.ListHistoryRequest{}))
	if err != nil {
		t.Fatalf("ListHistory failed: %v", err)
	}
	if len(list.Msg.Entries) != 0 {
		t.Errorf("expected empty history after clear, got %d", len(list.Msg.Entries))
	}
}

func TestCalculate_PersistFailureReported(t *testing.T) {
	store := memory.New()
	store.FailWrites = errors.New("quota exceeded")
	client, cleanup := setupTestServer(t, store)
	defer cleanup()

	resp, err := client.Calculate(context.Background(), connect.NewRequest(&api.CalculateRequest{
		TotalTips: "40",
		Method:    "equal",
		Employees: []api.Employee{{Name: "Ann"}},
	}))
	if err != nil {
		t.Fatalf("Calculate should succeed despite storage failure: %v", err)
	}
	if resp.Msg.PersistError == "" {
		t.Error("expected PersistError to be reported")
	}
	if resp.Msg.Results[0].Amount != 40 {
		t.Errorf("amount: expected 40, got %v", resp.Msg.Results[0].Amount)
	}
}

func TestLanguageEndpoints(t *testing.T) {
	client, cleanup := setupSQLiteServer(t)
	defer cleanup()
	ctx := context.Background()

	got, err := client.GetLanguage(ctx, connect.NewRequest(&api.GetLanguageRequest{BrowserLanguage: "es-MX"}))
	if err != nil {
		t.Fatalf("GetLanguage failed: %v", err)
	}
	if got.Msg.Language != "es" {
		t.Errorf("detected language: expected es, got %s", got.Msg.Language)
	}

	if _, err := client.SetLanguage(ctx, connect.NewRequest(&api.SetLanguageRequest{Language: "en"})); err != nil {
		t.Fatalf("SetLanguage failed: %v", err)
	}

	got, err = client.GetLanguage(ctx, connect.NewRequest(&api.GetLanguageRequest{BrowserLanguage: "es-MX"}))
	if err != nil {
		t.Fatalf("GetLanguage failed: %v", err)
	}
	if got.Msg.Language != "en" {
		t.Errorf("saved preference should win: got %s", got.Msg.Language)
	}

	_, err = client.SetLanguage(ctx, connect.NewRequest(&api.SetLanguageRequest{Language: "de"}))
	if connect.CodeOf(err) != connect.CodeInvalidArgument {
		t.Errorf("expected InvalidArgument, got %v", err)
	}
}
