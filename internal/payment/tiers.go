// Package payment bridges FitLife subscriptions to Mercado Pago checkout.
package payment

import (
	"errors"
	"fmt"
	"strings"
)

// Plan identifiers as sent by the app.
const (
	PlanPremium = "premium"
	PlanAnnual  = "annual"
)

// CurrencyBRL is the currency every tier is priced in.
const CurrencyBRL = "BRL"

// Tier is a purchasable subscription plan.
type Tier struct {
	Plan  string
	Title string
	Price float64
}

var tiers = map[string]Tier{
	PlanPremium: {Plan: PlanPremium, Title: "FitLife Pro - Premium Mensal", Price: 29.90},
	PlanAnnual:  {Plan: PlanAnnual, Title: "FitLife Pro - Premium Anual", Price: 214.80},
}

// ErrUnknownPlan is returned for plan ids outside the tier table.
var ErrUnknownPlan = errors.New("unknown plan")

// LookupTier returns the tier for a plan id.
func LookupTier(plan string) (Tier, error) {
	t, ok := tiers[strings.ToLower(strings.TrimSpace(plan))]
	if !ok {
		return Tier{}, fmt.Errorf("%w: %q (supported: premium, annual)", ErrUnknownPlan, plan)
	}
	return t, nil
}

// PlanFromDescription recovers the plan from a payment description, which
// Mercado Pago fills from the item title.
func PlanFromDescription(description string) string {
	d := strings.ToLower(description)
	if strings.Contains(d, "anual") || strings.Contains(d, "annual") {
		return PlanAnnual
	}
	return PlanPremium
}
