package models

import "github.com/shopspring/decimal"

type DashboardStats struct {
	Users        int             `json:"users"`
	Categories   int             `json:"categories"`
	Colors       int             `json:"colors"`
	Designs      int             `json:"designs"`
	Galleries    int             `json:"galleries"`
	OutcomeCount int             `json:"outcome_count"`
	SalaryCount  int             `json:"salary_count"`
	Transactions int             `json:"transactions"`
	Period       string          `json:"period"`
	Income       decimal.Decimal `json:"income"`
	Outcomes     decimal.Decimal `json:"outcomes"`
	Salaries     decimal.Decimal `json:"salaries"`
	Net          decimal.Decimal `json:"net"`
}
