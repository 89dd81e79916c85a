package core

// CategoryAmount represents an amount aggregated by category.
type CategoryAmount struct {
	Category Category `json:"name"`
	Amount   Money    `json:"amount"`
	Color    string   `json:"color"`
}

// MonthlyComparison is one calendar month of actual spending against the budget.
type MonthlyComparison struct {
	Month  string `json:"month"` // YYYY-MM, sortable
	Label  string `json:"label"` // e.g. "Jan 2024"
	Actual Money  `json:"actual"`
	Budget Money  `json:"budget"`
}

// Summary bundles every derived view of a collection.
type Summary struct {
	Count      int                 `json:"count"`
	Currency   string              `json:"currency"`
	Budget     Money               `json:"budget"`
	Total      Money               `json:"total"`
	Remaining  Money               `json:"remaining"`
	ByCategory []CategoryAmount    `json:"byCategory"`
	Monthly    []MonthlyComparison `json:"monthly"`
}
