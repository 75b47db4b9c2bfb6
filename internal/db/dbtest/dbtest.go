// Package dbtest provides sqlmock-backed connections and the column sets of
// the spendx queries for tests.
package dbtest

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

// NewMock returns a sqlmock-backed connection. Unmet expectations fail the
// test at cleanup.
func NewMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}

	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet sql expectations: %v", err)
		}
		conn.Close()
	})

	return conn, mock
}

// InvestmentColumns are the columns of the per-investment query, in order.
var InvestmentColumns = []string{
	"investmentId", "userId", "type", "amount", "currentValue", "createdAt", "description",
}

// TotalsColumns are the columns of the investment totals query, in order.
var TotalsColumns = []string{
	"totalInvestment", "totalReturn", "totalCurrentValue", "totalTransactions",
}

// UserColumns are the columns selected for a user, in order.
var UserColumns = []string{"userId", "username", "email", "passwordHash"}
