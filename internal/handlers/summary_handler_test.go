package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/itimpact/spendx/internal/errors"
	"github.com/itimpact/spendx/internal/models"
)

func sampleSummary(userID int64) *models.InvestmentSummary {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return models.NewInvestmentSummary(
		models.InvestmentTotals{
			TotalInvestment:   decimal.NewFromInt(300),
			TotalReturn:       decimal.NewFromInt(30),
			TotalCurrentValue: decimal.NewFromInt(330),
			TotalTransactions: 2,
		},
		[]models.InvestmentRecord{
			{InvestmentID: 1, UserID: userID, Type: "Stocks", Amount: decimal.NewFromInt(100), CurrentValue: decimal.NewFromInt(150), CreatedAt: created, Description: "Tech stocks"},
			{InvestmentID: 2, UserID: userID, Type: "Bonds", Amount: decimal.NewFromInt(200), CurrentValue: decimal.NewFromInt(180), CreatedAt: created},
		},
	)
}

func TestGetInvestmentSummary_Success(t *testing.T) {
	deps := newTestDeps()
	var gotUserID int64
	deps.investments.getFn = func(ctx context.Context, userID int64) (*models.InvestmentSummary, error) {
		gotUserID = userID
		return sampleSummary(userID), nil
	}

	rec := doRequest(deps.router(), http.MethodGet, "/investment?userId=42", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotUserID != 42 {
		t.Errorf("expected service to receive userId 42, got %d", gotUserID)
	}

	result := parseJSON(t, rec)
	if result["totalInvestment"] != float64(300) {
		t.Errorf("expected totalInvestment 300, got %v", result["totalInvestment"])
	}
	if result["totalReturn"] != float64(30) {
		t.Errorf("expected totalReturn 30, got %v", result["totalReturn"])
	}
	if result["totalCurrentValue"] != float64(330) {
		t.Errorf("expected totalCurrentValue 330, got %v", result["totalCurrentValue"])
	}
	if result["totalTransactions"] != float64(2) {
		t.Errorf("expected totalTransactions 2, got %v", result["totalTransactions"])
	}

	transactions, ok := result["transactions"].([]interface{})
	if !ok || len(transactions) != 2 {
		t.Fatalf("expected 2 transactions, got %v", result["transactions"])
	}
	for i, raw := range transactions {
		tx := raw.(map[string]interface{})
		if tx["returnRate"] != float64(10) {
			t.Errorf("transaction %d: expected returnRate 10, got %v", i, tx["returnRate"])
		}
		if tx["userId"] != float64(42) {
			t.Errorf("transaction %d: expected userId 42, got %v", i, tx["userId"])
		}
	}
	first := transactions[0].(map[string]interface{})
	if first["type"] != "Stocks" || first["description"] != "Tech stocks" {
		t.Errorf("unexpected first transaction: %v", first)
	}
}

func TestGetInvestmentSummary_NotFound(t *testing.T) {
	deps := newTestDeps()
	deps.investments.getFn = func(ctx context.Context, userID int64) (*models.InvestmentSummary, error) {
		return nil, apperrors.SummaryNotFound(userID)
	}

	rec := doRequest(deps.router(), http.MethodGet, "/investment?userId=42", "")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
	assertError(t, parseJSON(t, rec), "SUMMARY_NOT_FOUND", "Summary not found for userId=42")
}

func TestGetInvestmentSummary_InternalError(t *testing.T) {
	deps := newTestDeps()
	deps.investments.getFn = func(ctx context.Context, userID int64) (*models.InvestmentSummary, error) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, sql.ErrConnDone)
	}

	rec := doRequest(deps.router(), http.MethodGet, "/investment?userId=42", "")

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	result := parseJSON(t, rec)
	assertError(t, result, "INTERNAL_ERROR", "An internal error occurred")
	if _, ok := result["transactions"]; ok {
		t.Error("error response must not carry a partial summary")
	}
}

func TestGetInvestmentSummary_UnexpectedErrorIsInternal(t *testing.T) {
	deps := newTestDeps()
	deps.investments.getFn = func(ctx context.Context, userID int64) (*models.InvestmentSummary, error) {
		return nil, sql.ErrConnDone
	}

	rec := doRequest(deps.router(), http.MethodGet, "/investment?userId=42", "")

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	assertError(t, parseJSON(t, rec), "INTERNAL_ERROR", "")
}

func TestGetInvestmentSummary_InvalidUserID(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"missing", "/investment"},
		{"empty", "/investment?userId="},
		{"not a number", "/investment?userId=abc"},
		{"zero", "/investment?userId=0"},
		{"negative", "/investment?userId=-3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := newTestDeps()
			called := false
			deps.investments.getFn = func(ctx context.Context, userID int64) (*models.InvestmentSummary, error) {
				called = true
				return nil, nil
			}

			rec := doRequest(deps.router(), http.MethodGet, tt.path, "")

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", rec.Code)
			}
			assertError(t, parseJSON(t, rec), "INVALID_INPUT", "Invalid userId")
			if called {
				t.Error("service should not be called for an invalid userId")
			}
		})
	}
}

func TestGetUserSummary_Success(t *testing.T) {
	deps := newTestDeps()
	deps.summaries.getFn = func(ctx context.Context, userID int64) (*models.UserSummary, error) {
		return &models.UserSummary{
			UserID:             userID,
			TotalIncome:        decimal.RequireFromString("5000.00"),
			TotalSpent:         decimal.RequireFromString("1200.50"),
			TotalInvestment:    decimal.RequireFromString("300.00"),
			TotalSubscriptions: decimal.RequireFromString("45.99"),
			AvailableBalance:   decimal.RequireFromString("3453.51"),
		}, nil
	}

	rec := doRequest(deps.router(), http.MethodGet, "/summary?userId=7", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	if result["userId"] != float64(7) {
		t.Errorf("expected userId 7, got %v", result["userId"])
	}
	if result["totalSpent"] != 1200.5 {
		t.Errorf("expected totalSpent 1200.5, got %v", result["totalSpent"])
	}
	if result["availableBalance"] != 3453.51 {
		t.Errorf("expected availableBalance 3453.51, got %v", result["availableBalance"])
	}
}

func TestGetUserSummary_NotFound(t *testing.T) {
	deps := newTestDeps()
	deps.summaries.getFn = func(ctx context.Context, userID int64) (*models.UserSummary, error) {
		return nil, apperrors.SummaryNotFound(userID)
	}

	rec := doRequest(deps.router(), http.MethodGet, "/summary?userId=99", "")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
	assertError(t, parseJSON(t, rec), "SUMMARY_NOT_FOUND", "Summary not found for userId=99")
}

func TestGetUserSummary_InvalidUserID(t *testing.T) {
	deps := newTestDeps()

	rec := doRequest(deps.router(), http.MethodGet, "/summary?userId=x", "")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	assertError(t, parseJSON(t, rec), "INVALID_INPUT", "Invalid userId")
}

func TestHealth(t *testing.T) {
	deps := newTestDeps()

	rec := doRequest(deps.router(), http.MethodGet, "/health", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if parseJSON(t, rec)["status"] != "healthy" {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}
