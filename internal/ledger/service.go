package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/finplan/internal/domain"
)

// Service owns the ledger aggregate. Every mutator re-serializes the
// whole state through the snapshot store after applying its change;
// persistence failures are logged, never surfaced to the caller. The
// engine assumes a single logical actor, so the service serializes all
// calls with a mutex — the pure derivation functions on State stay
// lock-free.
type Service struct {
	mu    sync.Mutex
	state *State
	store SnapshotStore
	ids   IDGenerator
	clock Clock
	log   zerolog.Logger
}

// New creates a Service over an empty ledger. Call Load to hydrate it
// from the snapshot store.
func New(store SnapshotStore, ids IDGenerator, clock Clock, log zerolog.Logger) *Service {
	return &Service{
		state: NewState(),
		store: store,
		ids:   ids,
		clock: clock,
		log:   log,
	}
}

// Load hydrates the ledger from the snapshot store. A missing snapshot,
// a blob that fails to decrypt or parse, or a snapshot with a broken
// currency table all degrade to defaults — the worst case is stale or
// empty data, never a failed start.
func (s *Service) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, err := s.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, ErrNoSnapshot) {
			s.log.Warn().Err(err).Msg("snapshot load failed, starting empty")
		}
		return
	}

	st := &State{}
	if err := json.Unmarshal(blob, st); err != nil {
		s.log.Warn().Err(err).Msg("snapshot malformed, starting empty")
		return
	}
	if err := st.Normalize(); err != nil {
		s.log.Warn().Err(err).Msg("snapshot currency table invalid, reset to defaults")
	}
	s.state = st
}

// persist writes the current state through the snapshot store.
// Must be called with the lock held.
func (s *Service) persist(ctx context.Context) {
	blob, err := json.Marshal(s.state)
	if err != nil {
		s.log.Error().Err(err).Msg("state serialization failed")
		return
	}
	if err := s.store.Save(ctx, blob); err != nil {
		s.log.Error().Err(err).Msg("snapshot save failed")
	}
}

func (s *Service) today() time.Time {
	return domain.DateOnly(s.clock.Now())
}

// --- Transactions ---

// TransactionInput carries the caller-settable transaction fields.
type TransactionInput struct {
	Description  string
	Amount       decimal.Decimal
	CurrencyCode string
	CategoryID   int
	Date         time.Time
	Type         domain.TransactionType
	Notes        string
}

// AddTransaction appends a transaction to the ledger.
func (s *Service) AddTransaction(ctx context.Context, in TransactionInput) (domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := domain.Transaction{
		ID:           s.ids.Generate(),
		Description:  in.Description,
		Amount:       in.Amount,
		CurrencyCode: in.CurrencyCode,
		CategoryID:   in.CategoryID,
		Date:         domain.DateOnly(in.Date),
		Type:         in.Type,
		Notes:        in.Notes,
	}
	if tx.Date.IsZero() {
		tx.Date = s.today()
	}
	if tx.CurrencyCode == "" {
		tx.CurrencyCode = domain.BaseCurrency(s.state.Currencies).Code
	}
	if err := tx.Validate(); err != nil {
		return domain.Transaction{}, err
	}

	s.state.Transactions = append(s.state.Transactions, tx)
	s.persist(ctx)
	return tx, nil
}

// UpdateTransaction applies the input to an existing transaction.
// An unknown id is a silent no-op.
func (s *Service) UpdateTransaction(ctx context.Context, id string, in TransactionInput) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := s.state.transaction(id)
	if tx == nil {
		return
	}
	tx.Description = in.Description
	if in.Amount.IsPositive() {
		tx.Amount = in.Amount
	}
	if in.CurrencyCode != "" {
		tx.CurrencyCode = in.CurrencyCode
	}
	tx.CategoryID = in.CategoryID
	if !in.Date.IsZero() {
		tx.Date = domain.DateOnly(in.Date)
	}
	tx.Type = in.Type
	tx.Notes = in.Notes
	s.persist(ctx)
}

// DeleteTransaction removes a transaction permanently.
// An unknown id is a silent no-op.
func (s *Service) DeleteTransaction(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Transactions {
		if s.state.Transactions[i].ID == id {
			s.state.Transactions = append(s.state.Transactions[:i], s.state.Transactions[i+1:]...)
			s.persist(ctx)
			return
		}
	}
}

// Transactions returns a copy of the transaction list.
func (s *Service) Transactions() []domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Transaction, len(s.state.Transactions))
	copy(out, s.state.Transactions)
	return out
}

// --- Budgets ---

// BudgetInput carries the caller-settable budget fields.
type BudgetInput struct {
	CategoryID int
	Amount     decimal.Decimal
	Period     domain.BudgetPeriod
}

// AddBudget creates a budget for a category.
func (s *Service) AddBudget(ctx context.Context, in BudgetInput) (domain.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := domain.Budget{
		ID:         s.ids.Generate(),
		CategoryID: in.CategoryID,
		Amount:     in.Amount,
		Period:     in.Period,
	}
	if err := b.Validate(); err != nil {
		return domain.Budget{}, err
	}

	s.state.Budgets = append(s.state.Budgets, b)
	s.persist(ctx)
	return b, nil
}

// UpdateBudget applies the input to an existing budget.
// An unknown id is a silent no-op.
func (s *Service) UpdateBudget(ctx context.Context, id string, in BudgetInput) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.state.budget(id)
	if b == nil {
		return
	}
	b.CategoryID = in.CategoryID
	if in.Amount.IsPositive() {
		b.Amount = in.Amount
	}
	b.Period = in.Period
	s.persist(ctx)
}

// DeleteBudget removes a budget. An unknown id is a silent no-op.
func (s *Service) DeleteBudget(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Budgets {
		if s.state.Budgets[i].ID == id {
			s.state.Budgets = append(s.state.Budgets[:i], s.state.Budgets[i+1:]...)
			s.persist(ctx)
			return
		}
	}
}

// Budgets returns a copy of the budget list.
func (s *Service) Budgets() []domain.Budget {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Budget, len(s.state.Budgets))
	copy(out, s.state.Budgets)
	return out
}

// Categories returns the category catalog.
func (s *Service) Categories() []domain.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Category, len(s.state.Categories))
	copy(out, s.state.Categories)
	return out
}

// --- Settings ---

// UpdateSettings replaces the ledger-wide user settings. The currency
// must be a configured code; unknown codes leave settings unchanged.
func (s *Service) UpdateSettings(ctx context.Context, settings domain.UserSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if domain.CurrencyByCode(s.state.Currencies, settings.Currency) == nil {
		settings.Currency = s.state.Settings.Currency
	}
	s.state.Settings = settings
	s.persist(ctx)
}

// Settings returns the current user settings.
func (s *Service) Settings() domain.UserSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Settings
}

// ClearAll resets the ledger to factory state and persists the reset.
func (s *Service) ClearAll(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = NewState()
	s.persist(ctx)
}

// --- Totals ---

// Totals is the converted sum view over the whole ledger.
type Totals struct {
	TotalIncome     decimal.Decimal `json:"total_income"`
	TotalExpenses   decimal.Decimal `json:"total_expenses"`
	NetWorth        decimal.Decimal `json:"net_worth"`
	MonthlyIncome   decimal.Decimal `json:"monthly_income"`
	MonthlyExpenses decimal.Decimal `json:"monthly_expenses"`
	Currency        string          `json:"currency"`
}

// Totals derives the income/expense/net-worth view, converting every
// transaction into the user's display currency.
func (s *Service) Totals() Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.totals(s.today())
}

func (st *State) totals(today time.Time) Totals {
	t := Totals{
		TotalIncome:     decimal.Zero,
		TotalExpenses:   decimal.Zero,
		MonthlyIncome:   decimal.Zero,
		MonthlyExpenses: decimal.Zero,
		Currency:        st.Settings.Currency,
	}
	for _, tx := range st.Transactions {
		amount := st.convert(tx.Amount, tx.CurrencyCode, st.Settings.Currency)
		switch tx.Type {
		case domain.TypeIncome:
			t.TotalIncome = t.TotalIncome.Add(amount)
			if domain.SameMonth(tx.Date, today) {
				t.MonthlyIncome = t.MonthlyIncome.Add(amount)
			}
		case domain.TypeExpense:
			t.TotalExpenses = t.TotalExpenses.Add(amount)
			if domain.SameMonth(tx.Date, today) {
				t.MonthlyExpenses = t.MonthlyExpenses.Add(amount)
			}
		}
	}
	t.NetWorth = st.Settings.StartingBalance.Add(t.TotalIncome).Sub(t.TotalExpenses)
	return t
}

// netWorth is the projection seed: starting balance plus all converted
// income minus all converted expenses.
func (st *State) netWorth(today time.Time) decimal.Decimal {
	return st.totals(today).NetWorth
}
