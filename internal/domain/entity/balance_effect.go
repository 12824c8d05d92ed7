// Package entity defines the core business entities for the domain layer.
package entity

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EffectTarget names the balance a delta applies to.
type EffectTarget string

const (
	EffectTargetAccount    EffectTarget = "account"     // accounts.balance
	EffectTargetCreditCard EffectTarget = "credit_card" // credit_cards.current_used
	EffectTargetGoal       EffectTarget = "goal"        // goals.saved_amount
)

// BalanceEffect is one signed delta on one balance.
type BalanceEffect struct {
	Target EffectTarget
	ID     uuid.UUID
	Delta  decimal.Decimal
}

// BalanceEffects is a set of deltas applied together.
type BalanceEffects []BalanceEffect

// Negate returns the deltas that undo e.
func (e BalanceEffects) Negate() BalanceEffects {
	out := make(BalanceEffects, len(e))
	for i, effect := range e {
		out[i] = BalanceEffect{Target: effect.Target, ID: effect.ID, Delta: effect.Delta.Neg()}
	}
	return out
}

// Net folds deltas on the same balance together and drops the ones that cancel out.
// The result is ordered by target then id so writers lock rows in a stable order.
func (e BalanceEffects) Net() BalanceEffects {
	type key struct {
		target EffectTarget
		id     uuid.UUID
	}
	sums := make(map[key]decimal.Decimal, len(e))
	for _, effect := range e {
		k := key{effect.Target, effect.ID}
		sums[k] = sums[k].Add(effect.Delta)
	}

	out := make(BalanceEffects, 0, len(sums))
	for k, delta := range sums {
		if delta.IsZero() {
			continue
		}
		out = append(out, BalanceEffect{Target: k.target, ID: k.id, Delta: delta})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Target != out[j].Target {
			return out[i].Target < out[j].Target
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}

// Change returns the deltas that move balances from before to after.
// Either side may be nil for a create or a delete.
func Change(before, after *Transaction) BalanceEffects {
	var effects BalanceEffects
	if before != nil {
		effects = append(effects, before.BalanceEffects().Negate()...)
	}
	if after != nil {
		effects = append(effects, after.BalanceEffects()...)
	}
	return effects.Net()
}
