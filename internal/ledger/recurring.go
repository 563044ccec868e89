package ledger

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finplan/internal/domain"
)

// NextDueDate advances from by one cycle of the given frequency.
func NextDueDate(f domain.Frequency, from time.Time) time.Time {
	return f.Next(from)
}

// ObligationInput carries the caller-settable obligation fields.
type ObligationInput struct {
	Description string
	Amount      decimal.Decimal
	Type        domain.TransactionType
	CategoryID  int
	Frequency   domain.Frequency
	StartDate   time.Time
	IsActive    *bool
}

// AddObligation creates a recurring obligation. Its first due date is one
// cycle after the start date.
func (s *Service) AddObligation(ctx context.Context, in ObligationInput) (domain.RecurringObligation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	ob := domain.RecurringObligation{
		ID:          s.ids.Generate(),
		Description: in.Description,
		Amount:      in.Amount,
		Type:        in.Type,
		CategoryID:  in.CategoryID,
		Frequency:   in.Frequency,
		StartDate:   domain.DateOnly(in.StartDate),
		NextDue:     in.Frequency.Next(in.StartDate),
		IsActive:    active,
		CreatedAt:   s.clock.Now(),
	}
	if err := ob.Validate(); err != nil {
		return domain.RecurringObligation{}, err
	}

	s.state.Obligations = append(s.state.Obligations, ob)
	s.persist(ctx)
	return ob, nil
}

// UpdateObligation applies the input to an existing obligation. Changing
// the frequency or start date recomputes the next due date from the new
// cycle. An unknown id is a silent no-op.
func (s *Service) UpdateObligation(ctx context.Context, id string, in ObligationInput) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ob := s.state.obligation(id)
	if ob == nil {
		return
	}
	recycle := false
	if in.Frequency != "" && in.Frequency != ob.Frequency {
		ob.Frequency = in.Frequency
		recycle = true
	}
	if !in.StartDate.IsZero() && !domain.DateOnly(in.StartDate).Equal(ob.StartDate) {
		ob.StartDate = domain.DateOnly(in.StartDate)
		recycle = true
	}
	if recycle {
		ob.NextDue = ob.Frequency.Next(ob.StartDate)
	}
	if in.Description != "" {
		ob.Description = in.Description
	}
	if in.Amount.IsPositive() {
		ob.Amount = in.Amount
	}
	if in.Type != "" {
		ob.Type = in.Type
	}
	if in.CategoryID != 0 {
		ob.CategoryID = in.CategoryID
	}
	if in.IsActive != nil {
		ob.IsActive = *in.IsActive
	}
	s.persist(ctx)
}

// DeleteObligation removes an obligation. An unknown id is a silent no-op.
func (s *Service) DeleteObligation(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Obligations {
		if s.state.Obligations[i].ID == id {
			s.state.Obligations = append(s.state.Obligations[:i], s.state.Obligations[i+1:]...)
			s.persist(ctx)
			return
		}
	}
}

// Obligations returns a copy of the obligation list.
func (s *Service) Obligations() []domain.RecurringObligation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.RecurringObligation, len(s.state.Obligations))
	copy(out, s.state.Obligations)
	return out
}

// ProcessDueObligations materializes every active obligation whose next
// due date is on or before today: one transaction per obligation, dated
// at its due date and tagged with the obligation id, then the due date
// advances by one cycle. An obligation advances at most one cycle per
// invocation — missed cycles are not caught up; call again to drain a
// backlog one occurrence at a time.
func (s *Service) ProcessDueObligations(ctx context.Context) []domain.RecurringObligation {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.today()
	var processed []domain.RecurringObligation

	for i := range s.state.Obligations {
		ob := &s.state.Obligations[i]
		if !ob.DueOn(today) {
			continue
		}

		due := ob.NextDue
		tx := domain.Transaction{
			ID:           s.ids.Generate(),
			Description:  ob.Description,
			Amount:       ob.Amount,
			CurrencyCode: domain.BaseCurrency(s.state.Currencies).Code,
			CategoryID:   ob.CategoryID,
			Date:         due,
			Type:         ob.Type,
			Notes:        "Auto-generated from recurring: " + ob.Description,
			ObligationID: ob.ID,
		}
		s.state.Transactions = append(s.state.Transactions, tx)

		ob.LastProcessed = &due
		ob.NextDue = ob.Frequency.Next(due)
		processed = append(processed, *ob)

		s.log.Info().
			Str("obligation_id", ob.ID).
			Str("due", due.Format(domain.DateFormat)).
			Str("next_due", ob.NextDue.Format(domain.DateFormat)).
			Msg("obligation materialized")
	}

	if len(processed) > 0 {
		s.persist(ctx)
	}
	return processed
}

// ShouldIncludeInMonth reports whether an obligation contributes to the
// given future month's projection. An obligation starting after the
// month's end never contributes; otherwise daily through monthly cycles
// always land in the month, quarterly and yearly contribute from their
// start period onward.
func ShouldIncludeInMonth(ob domain.RecurringObligation, month time.Time) bool {
	if ob.StartDate.After(domain.MonthEnd(month)) {
		return false
	}
	switch ob.Frequency {
	case domain.Quarterly:
		quarter := int(month.Month()-1) / 3
		startQuarter := int(ob.StartDate.Month()-1) / 3
		return (month.Year()-ob.StartDate.Year())*4+(quarter-startQuarter) >= 0
	case domain.Yearly:
		return month.Year() >= ob.StartDate.Year()
	default:
		return true
	}
}

// UpcomingBills returns active obligations due within the next seven
// days, soonest first.
func (s *Service) UpcomingBills() []domain.RecurringObligation {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.today()
	horizon := today.AddDate(0, 0, 7)

	var bills []domain.RecurringObligation
	for _, ob := range s.state.Obligations {
		if !ob.IsActive {
			continue
		}
		if !ob.NextDue.Before(today) && !ob.NextDue.After(horizon) {
			bills = append(bills, ob)
		}
	}
	sort.Slice(bills, func(i, j int) bool { return bills[i].NextDue.Before(bills[j].NextDue) })
	return bills
}

// OverdueBills returns active obligations whose due date has passed,
// oldest first.
func (s *Service) OverdueBills() []domain.RecurringObligation {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.today()
	var bills []domain.RecurringObligation
	for _, ob := range s.state.Obligations {
		if ob.IsActive && ob.NextDue.Before(today) {
			bills = append(bills, ob)
		}
	}
	sort.Slice(bills, func(i, j int) bool { return bills[i].NextDue.Before(bills[j].NextDue) })
	return bills
}
