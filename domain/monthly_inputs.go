package domain

import "math"

// MaxAmount caps every monthly amount and the savings balance after sanitizing.
const MaxAmount = 1e12

// MonthlyInputs is one household-month of income and expenses.
// Missing JSON fields decode to 0.
type MonthlyInputs struct {
	Income         float64 `json:"incomeMonthly"`
	Rent           float64 `json:"rentMonthly"`
	Utilities      float64 `json:"utilitiesMonthly"`
	Transport      float64 `json:"transportMonthly"`
	Food           float64 `json:"foodMonthly"`
	Debt           float64 `json:"debtMonthly"`
	Subscriptions  float64 `json:"subscriptionsMonthly"`
	SavingsBalance float64 `json:"savingsBalance"`
}

// TotalExpenses sums the six expense categories.
func (m MonthlyInputs) TotalExpenses() float64 {
	return m.Rent + m.Utilities + m.Transport + m.Food + m.Debt + m.Subscriptions
}

// MonthlyBalance is income minus total expenses.
func (m MonthlyInputs) MonthlyBalance() float64 {
	return m.Income - m.TotalExpenses()
}

// Sanitize replaces negative, NaN and infinite amounts with 0 and caps the
// rest at MaxAmount.
func (m MonthlyInputs) Sanitize() MonthlyInputs {
	return MonthlyInputs{
		Income:         nonNegative(m.Income),
		Rent:           nonNegative(m.Rent),
		Utilities:      nonNegative(m.Utilities),
		Transport:      nonNegative(m.Transport),
		Food:           nonNegative(m.Food),
		Debt:           nonNegative(m.Debt),
		Subscriptions:  nonNegative(m.Subscriptions),
		SavingsBalance: nonNegative(m.SavingsBalance),
	}
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return math.Min(v, MaxAmount)
}

// Category is an expense bucket that can show up as a pressure source.
type Category string

const (
	CategoryRent          Category = "Rent"
	CategoryUtilities     Category = "Utilities"
	CategoryTransport     Category = "Transport"
	CategoryFood          Category = "Food"
	CategoryDebt          Category = "Debt"
	CategorySubscriptions Category = "Subscriptions"
)

// CategoryAmount pairs a category with its monthly amount.
type CategoryAmount struct {
	Category Category
	Amount   float64
}

// Categories returns the expense categories in their fixed enumeration order.
func (m MonthlyInputs) Categories() []CategoryAmount {
	return []CategoryAmount{
		{CategoryRent, m.Rent},
		{CategoryUtilities, m.Utilities},
		{CategoryTransport, m.Transport},
		{CategoryFood, m.Food},
		{CategoryDebt, m.Debt},
		{CategorySubscriptions, m.Subscriptions},
	}
}

// MonthlyChanges holds what-if overrides. A nil field keeps the base value.
type MonthlyChanges struct {
	Income         *float64 `json:"incomeMonthly,omitempty"`
	Rent           *float64 `json:"rentMonthly,omitempty"`
	Utilities      *float64 `json:"utilitiesMonthly,omitempty"`
	Transport      *float64 `json:"transportMonthly,omitempty"`
	Food           *float64 `json:"foodMonthly,omitempty"`
	Debt           *float64 `json:"debtMonthly,omitempty"`
	Subscriptions  *float64 `json:"subscriptionsMonthly,omitempty"`
	SavingsBalance *float64 `json:"savingsBalance,omitempty"`
}

// Apply returns base with every non-nil override written over it.
func (c MonthlyChanges) Apply(base MonthlyInputs) MonthlyInputs {
	out := base
	override(&out.Income, c.Income)
	override(&out.Rent, c.Rent)
	override(&out.Utilities, c.Utilities)
	override(&out.Transport, c.Transport)
	override(&out.Food, c.Food)
	override(&out.Debt, c.Debt)
	override(&out.Subscriptions, c.Subscriptions)
	override(&out.SavingsBalance, c.SavingsBalance)
	return out
}

// Sanitize clamps every present override the same way MonthlyInputs.Sanitize does.
func (c MonthlyChanges) Sanitize() MonthlyChanges {
	return MonthlyChanges{
		Income:         sanitizePtr(c.Income),
		Rent:           sanitizePtr(c.Rent),
		Utilities:      sanitizePtr(c.Utilities),
		Transport:      sanitizePtr(c.Transport),
		Food:           sanitizePtr(c.Food),
		Debt:           sanitizePtr(c.Debt),
		Subscriptions:  sanitizePtr(c.Subscriptions),
		SavingsBalance: sanitizePtr(c.SavingsBalance),
	}
}

func override(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func sanitizePtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	s := nonNegative(*v)
	return &s
}
