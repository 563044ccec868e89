package ledger

import (
	"context"
	"slices"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/finplan/internal/domain"
)

// GoalInput carries the caller-settable goal fields.
type GoalInput struct {
	Name          string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	TargetDate    time.Time
	Description   string
}

// AddGoal creates a savings goal. The initial amount is clamped into
// [0, target].
func (s *Service) AddGoal(ctx context.Context, in GoalInput) (domain.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := domain.Goal{
		ID:           s.ids.Generate(),
		Name:         in.Name,
		TargetAmount: in.TargetAmount,
		TargetDate:   domain.DateOnly(in.TargetDate),
		Description:  in.Description,
		CreatedAt:    s.clock.Now(),
	}
	if err := g.Validate(); err != nil {
		return domain.Goal{}, err
	}
	g.CurrentAmount = decimal.Max(decimal.Zero, decimal.Min(in.CurrentAmount, g.TargetAmount))

	s.state.Goals = append(s.state.Goals, g)
	s.evaluateAchievements(&s.state.Goals[len(s.state.Goals)-1])
	s.persist(ctx)
	return g, nil
}

// UpdateGoal applies the input to an existing goal, keeping the amount
// invariant. An unknown id is a silent no-op.
func (s *Service) UpdateGoal(ctx context.Context, id string, in GoalInput) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.state.goal(id)
	if g == nil {
		return
	}
	if in.Name != "" {
		g.Name = in.Name
	}
	if in.TargetAmount.IsPositive() {
		g.TargetAmount = in.TargetAmount
	}
	if !in.TargetDate.IsZero() {
		g.TargetDate = domain.DateOnly(in.TargetDate)
	}
	g.Description = in.Description
	g.CurrentAmount = decimal.Max(decimal.Zero, decimal.Min(g.CurrentAmount, g.TargetAmount))
	s.persist(ctx)
}

// DeleteGoal removes a goal and drops it from the auto-allocation
// priority order. An unknown id is a silent no-op.
func (s *Service) DeleteGoal(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Goals {
		if s.state.Goals[i].ID == id {
			s.state.Goals = append(s.state.Goals[:i], s.state.Goals[i+1:]...)
			if idx := slices.Index(s.state.AutoAllocation.PriorityOrder, id); idx >= 0 {
				s.state.AutoAllocation.PriorityOrder = slices.Delete(s.state.AutoAllocation.PriorityOrder, idx, idx+1)
			}
			s.persist(ctx)
			return
		}
	}
}

// Goals returns a copy of the goal list.
func (s *Service) Goals() []domain.Goal {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Goal, len(s.state.Goals))
	copy(out, s.state.Goals)
	return out
}

// AddMoneyToGoal contributes amount to a goal, clamped at the target,
// and returns the amount actually applied — possibly less than
// requested, zero for an unknown goal. Each contribution re-evaluates
// the achievement rules for that goal.
func (s *Service) AddMoneyToGoal(ctx context.Context, id string, amount decimal.Decimal) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	applied := s.addMoneyLocked(id, amount)
	if applied.IsPositive() {
		s.persist(ctx)
	}
	return applied
}

func (s *Service) addMoneyLocked(id string, amount decimal.Decimal) decimal.Decimal {
	g := s.state.goal(id)
	if g == nil {
		return decimal.Zero
	}
	applied := g.Contribute(amount)
	s.evaluateAchievements(g)
	return applied
}

// AutoAllocate distributes a share of surplus income across incomplete
// goals. Goals named in the priority order are funded first, in that
// order; the rest follow by ascending target date. Allocation is greedy
// and clamped per goal; it returns the total actually allocated, which
// may be less than the pool when every candidate reaches its target.
func (s *Service) AutoAllocate(ctx context.Context, surplus decimal.Decimal) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.AutoAllocation.Enabled || surplus.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	pool := surplus.Mul(s.state.AutoAllocation.Percentage).Div(decimal.NewFromInt(100))
	candidates := s.allocationOrder()
	if len(candidates) == 0 {
		return decimal.Zero
	}

	remaining := pool
	for _, id := range candidates {
		if remaining.LessThanOrEqual(decimal.Zero) {
			break
		}
		g := s.state.goal(id)
		applied := s.addMoneyLocked(id, decimal.Min(remaining, g.Remaining()))
		remaining = remaining.Sub(applied)
	}

	allocated := pool.Sub(remaining)
	if allocated.IsPositive() {
		s.log.Info().Str("allocated", allocated.String()).Msg("surplus auto-allocated")
		s.persist(ctx)
	}
	return allocated
}

// allocationOrder returns incomplete goal ids: priority-ordered goals
// first, then the rest by ascending target date.
func (s *Service) allocationOrder() []string {
	priority := s.state.AutoAllocation.PriorityOrder

	var prioritized, rest []string
	for _, id := range priority {
		if g := s.state.goal(id); g != nil && !g.Completed() {
			prioritized = append(prioritized, id)
		}
	}
	for _, g := range s.state.Goals {
		if !g.Completed() && !slices.Contains(priority, g.ID) {
			rest = append(rest, g.ID)
		}
	}
	sort.SliceStable(rest, func(i, j int) bool {
		return s.state.goal(rest[i]).TargetDate.Before(s.state.goal(rest[j]).TargetDate)
	})
	return append(prioritized, rest...)
}

// SetGoalPriority replaces the auto-allocation priority order.
func (s *Service) SetGoalPriority(ctx context.Context, goalIDs []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.AutoAllocation.PriorityOrder = slices.Clone(goalIDs)
	s.persist(ctx)
}

// UpdateAutoAllocation replaces the auto-allocation settings.
func (s *Service) UpdateAutoAllocation(ctx context.Context, settings domain.AutoAllocationSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if settings.Percentage.IsNegative() || settings.Percentage.GreaterThan(decimal.NewFromInt(100)) {
		return domain.ErrInvalidThreshold
	}
	if settings.PriorityOrder == nil {
		settings.PriorityOrder = []string{}
	}
	s.state.AutoAllocation = settings
	s.persist(ctx)
	return nil
}

// AutoAllocation returns the current allocation settings.
func (s *Service) AutoAllocation() domain.AutoAllocationSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.AutoAllocation
}
