package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts are rendered as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

var hundred = decimal.NewFromInt(100)

// InvestmentTypes are the categories the dashboard offers.
var InvestmentTypes = []string{"Stocks", "Bonds", "Mutual Funds", "Real Estate", "Cryptocurrency", "Other"}

// InvestmentRecord is one row of the investments table.
type InvestmentRecord struct {
	InvestmentID int64           `json:"investmentId"`
	UserID       int64           `json:"userId"`
	Type         string          `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	CurrentValue decimal.Decimal `json:"currentValue"`
	CreatedAt    time.Time       `json:"createdAt"`
	Description  string          `json:"description"`
}

// InvestmentTransaction is a record annotated with its owner's return rate.
type InvestmentTransaction struct {
	InvestmentRecord
	ReturnRate decimal.Decimal `json:"returnRate"`
}

// InvestmentTotals are the aggregate scalars over one user's investments.
type InvestmentTotals struct {
	TotalInvestment   decimal.Decimal `json:"totalInvestment"`
	TotalReturn       decimal.Decimal `json:"totalReturn"`
	TotalCurrentValue decimal.Decimal `json:"totalCurrentValue"`
	TotalTransactions int64           `json:"totalTransactions"`
}

// ReturnRate is the totals' gain relative to the amount invested, in percent.
func (t InvestmentTotals) ReturnRate() decimal.Decimal {
	return ReturnRate(t.TotalInvestment, t.TotalCurrentValue)
}

// InvestmentSummary is the response of GET /investment.
type InvestmentSummary struct {
	InvestmentTotals
	Transactions []InvestmentTransaction `json:"transactions"`
}

// NewInvestmentSummary attaches records to totals. Every transaction gets the
// same return rate, the one computed over the user's totals.
func NewInvestmentSummary(totals InvestmentTotals, records []InvestmentRecord) *InvestmentSummary {
	rate := totals.ReturnRate()

	transactions := make([]InvestmentTransaction, 0, len(records))
	for _, r := range records {
		transactions = append(transactions, InvestmentTransaction{
			InvestmentRecord: r,
			ReturnRate:       rate,
		})
	}

	return &InvestmentSummary{
		InvestmentTotals: totals,
		Transactions:     transactions,
	}
}

// ReturnRate returns (current - invested) / invested * 100.
// Zero invested yields zero.
func ReturnRate(invested, current decimal.Decimal) decimal.Decimal {
	if invested.IsZero() {
		return decimal.Zero
	}
	return current.Sub(invested).Div(invested).Mul(hundred)
}

// CreateInvestmentRequest is the body of POST /investment.
type CreateInvestmentRequest struct {
	UserID       int64           `json:"userId" binding:"required,gt=0"`
	Type         string          `json:"type" binding:"required,investment_type"`
	Amount       decimal.Decimal `json:"amount" binding:"gte=0"`
	CurrentValue decimal.Decimal `json:"currentValue" binding:"gte=0"`
	Description  string          `json:"description" binding:"max=500"`
}

// CreateInvestmentResponse is returned once the recorder committed the row.
type CreateInvestmentResponse struct {
	InvestmentID int64     `json:"investmentId"`
	CreatedAt    time.Time `json:"createdAt"`
}
