package domain

// Category is an entry in the fixed category catalog.
type Category struct {
	ID    int             `json:"id"`
	Name  string          `json:"name"`
	Type  TransactionType `json:"type"`
	Color string          `json:"color"`
}

// DefaultCategories returns the built-in category catalog.
func DefaultCategories() []Category {
	return []Category{
		{ID: 1, Name: "Food & Dining", Type: TypeExpense, Color: "#FF6B6B"},
		{ID: 2, Name: "Transportation", Type: TypeExpense, Color: "#4ECDC4"},
		{ID: 3, Name: "Housing", Type: TypeExpense, Color: "#45B7D1"},
		{ID: 4, Name: "Entertainment", Type: TypeExpense, Color: "#96CEB4"},
		{ID: 5, Name: "Healthcare", Type: TypeExpense, Color: "#FFEAA7"},
		{ID: 6, Name: "Shopping", Type: TypeExpense, Color: "#DDA0DD"},
		{ID: 7, Name: "Salary", Type: TypeIncome, Color: "#98D8C8"},
		{ID: 8, Name: "Freelance", Type: TypeIncome, Color: "#F7DC6F"},
		{ID: 9, Name: "Investment", Type: TypeIncome, Color: "#BB8FCE"},
		{ID: 10, Name: "Other", Type: TypeExpense, Color: "#85C1E9"},
	}
}

// CategoryByID finds a category in the catalog, nil if absent.
func CategoryByID(categories []Category, id int) *Category {
	for i := range categories {
		if categories[i].ID == id {
			return &categories[i]
		}
	}
	return nil
}
