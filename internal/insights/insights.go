// Package insights derives human-readable observations from precomputed
// aggregates and period comparisons. Each rule is a pure function of its
// input that may emit zero or more insights; rules run in a fixed order and
// the output preserves generation order rather than any priority sort.
package insights

import (
	"time"

	"github.com/shopspring/decimal"
)

// Severity tags an insight for display emphasis.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

// Insight is one generated observation.
type Insight struct {
	Type     string                 `json:"type"`
	Icon     string                 `json:"icon"`
	Title    string                 `json:"title"`
	Message  string                 `json:"message"`
	Severity Severity               `json:"severity"`
	Payload  map[string]interface{} `json:"payload,omitempty"`
}

// CategoryShare is one entry of a category breakdown, with its share of the
// breakdown total.
type CategoryShare struct {
	Name    string
	Color   string
	Total   decimal.Decimal
	Percent decimal.Decimal
}

// CategoryDelta compares one category's spend against the same-named
// category in the previous period. Only categories with previous spend > 0
// are comparable.
type CategoryDelta struct {
	Name      string
	Color     string
	Current   decimal.Decimal
	Previous  decimal.Decimal
	ChangePct decimal.Decimal
}

// BudgetUsage is a budget's evaluated usage for the period.
type BudgetUsage struct {
	Name       string
	Spent      decimal.Decimal
	Amount     decimal.Decimal
	Percentage decimal.Decimal
	Threshold  int
}

// BudgetAlert is a threshold crossing collected separately from the general
// insight list.
type BudgetAlert struct {
	Type       string  `json:"type"`
	Name       string  `json:"name"`
	Spent      float64 `json:"spent"`
	Budget     float64 `json:"budget"`
	Percentage float64 `json:"percentage"`
}

// DayTotal is the highest single spending day in a range.
type DayTotal struct {
	Date  time.Time
	Total decimal.Decimal
}

// hundred is the percentage scale factor.
var hundred = decimal.NewFromInt(100)

// changePct returns (current-previous)/previous*100, or zero when previous
// is not positive.
func changePct(current, previous decimal.Decimal) decimal.Decimal {
	if !previous.IsPositive() {
		return decimal.Zero
	}
	return current.Sub(previous).Div(previous).Mul(hundred)
}
