package pricing

// --------------------------------------------------
// PRICING MODEL
// --------------------------------------------------

// Model names the rule that converts party/duration inputs into a total.
type Model string

const (
	PerPerson     Model = "per_person"
	BasePlusExtra Model = "base_plus_extra"
	PerHour       Model = "per_hour"
	PerDay        Model = "per_day"
	Unknown       Model = "unknown"
)

// Item describes a bookable offering's pricing rule. Which fields are
// meaningful depends on Model; the rest are ignored.
type Item struct {
	Model            Model   `json:"pricing_model"`
	PriceBase        float64 `json:"price_base"`         // flat base, per-hour rate, or per-day rate
	PricePerPerson   float64 `json:"price_per_person"`   // per_person only
	PriceExtraPerson float64 `json:"price_extra_person"` // base_plus_extra only
	IncludedPeople   float64 `json:"included_people"`    // base_plus_extra only
	MinHours         float64 `json:"min_hours"`          // per_hour only
}

// PartyInput carries the caller-supplied quantities. Adults is a pointer
// because an absent value defaults to 1 while an explicit 0 stays 0
// (children can carry the booking on their own).
type PartyInput struct {
	Adults   *float64 `json:"adults"`
	Children float64  `json:"children"`
	Hours    float64  `json:"hours"`
	Days     float64  `json:"days"`
	Addons   float64  `json:"addons"`
}

// Breakdown is the model-tagged record explaining how a total was derived.
// Its keys depend on which model matched; "model" is always present.
type Breakdown map[string]any

// Result is the calculator output. Total is rounded to cents; the
// breakdown keeps unrounded intermediates for display and audit.
type Result struct {
	Total     float64   `json:"total"`
	Breakdown Breakdown `json:"breakdown"`
}
