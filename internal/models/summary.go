package models

import "github.com/shopspring/decimal"

// UserSummary is a precomputed row of the usersummary table.
type UserSummary struct {
	UserID             int64           `json:"userId"`
	TotalIncome        decimal.Decimal `json:"totalIncome"`
	TotalSpent         decimal.Decimal `json:"totalSpent"`
	TotalInvestment    decimal.Decimal `json:"totalInvestment"`
	TotalSubscriptions decimal.Decimal `json:"totalSubscriptions"`
	AvailableBalance   decimal.Decimal `json:"availableBalance"`
}
