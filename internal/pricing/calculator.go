package pricing

import (
	"math"

	"github.com/LilKangoo/cypruseye-backend/internal/money"
)

// childrenFactor weights children relative to adults in headcount math.
// Kept at 1.0 (children billed like adults for now); can be adjusted
// later without touching the callers.
const childrenFactor = 1.0

// Calculate computes a total and an itemized breakdown for one offering.
// PURE business logic: no I/O, deterministic, and it never panics.
// Invalid or missing input degrades to a 0 or minimal charge because this
// sits behind interactive price previews that must always render a number.
func Calculate(item Item, input PartyInput) Result {
	addons := money.NonNegative(input.Addons)

	switch item.Model {

	case PerPerson:
		ppl := headcount(input)
		perPerson := money.NonNegative(item.PricePerPerson)
		total := perPerson*ppl + addons

		return Result{
			Total: money.Round2(total),
			Breakdown: Breakdown{
				"model":            string(PerPerson),
				"ppl":              ppl,
				"price_per_person": perPerson,
				"addons":           addons,
			},
		}

	case BasePlusExtra:
		ppl := headcount(input)
		base := money.NonNegative(item.PriceBase)
		included := money.NonNegative(item.IncludedPeople)
		extraPeople := money.ClampMin(ppl-included, 0)
		perExtra := money.NonNegative(item.PriceExtraPerson)
		total := base + extraPeople*perExtra + addons

		return Result{
			Total: money.Round2(total),
			Breakdown: Breakdown{
				"model":              string(BasePlusExtra),
				"base":               base,
				"included":           included,
				"extra_people":       extraPeople,
				"price_extra_person": perExtra,
				"addons":             addons,
			},
		}

	case PerHour:
		minHours := money.NonNegative(item.MinHours)
		if minHours == 0 {
			minHours = 1
		}
		// The minimum-hours floor always applies, even for 0 requested hours.
		billableHours := math.Max(minHours, money.NonNegative(input.Hours))
		rate := money.NonNegative(item.PriceBase)
		total := billableHours*rate + addons

		return Result{
			Total: money.Round2(total),
			Breakdown: Breakdown{
				"model":          string(PerHour),
				"billable_hours": billableHours,
				"price_per_hour": rate,
				"addons":         addons,
			},
		}

	case PerDay:
		// At least one full day is always charged.
		billableDays := math.Max(1, money.NonNegative(input.Days))
		rate := money.NonNegative(item.PriceBase)
		total := billableDays*rate + addons

		return Result{
			Total: money.Round2(total),
			Breakdown: Breakdown{
				"model":         string(PerDay),
				"billable_days": billableDays,
				"price_per_day": rate,
				"addons":        addons,
			},
		}

	default:
		// Fallback for malformed or future pricing models: charge the base,
		// ignore party size and addons.
		return Result{
			Total: money.Round2(money.NonNegative(item.PriceBase)),
			Breakdown: Breakdown{
				"model": string(Unknown),
				"note":  "defaulted to base",
			},
		}
	}
}

// headcount resolves adults + weighted children. Absent adults default
// to 1 (a booking always has at least one party member unless the caller
// explicitly says otherwise).
func headcount(input PartyInput) float64 {
	adults := 1.0
	if input.Adults != nil && money.IsFinite(*input.Adults) {
		adults = money.ClampMin(*input.Adults, 0)
	}

	children := money.NonNegative(input.Children)

	return adults + children*childrenFactor
}
