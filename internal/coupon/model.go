package coupon

import (
	"sort"
	"strings"
	"time"

	"github.com/LilKangoo/cypruseye-backend/internal/money"
)

// --------------------------------------------------
// QUOTE REQUEST
// --------------------------------------------------

// QuoteRequest is the coupon context for one booking. Casing and
// de-duplication are applied by normalized() before anything leaves the
// process, so callers can pass fields as-is.
type QuoteRequest struct {
	ServiceType  string     `json:"service_type"`
	CouponCode   string     `json:"coupon_code"`
	BaseTotal    float64    `json:"base_total"`
	ServiceAt    *time.Time `json:"service_at"`
	ResourceID   string     `json:"resource_id"`
	CategoryKeys []string   `json:"category_keys"`
	UserID       string     `json:"user_id"`
	UserEmail    string     `json:"user_email"`
}

func (r QuoteRequest) normalized() QuoteRequest {
	r.ServiceType = strings.ToLower(strings.TrimSpace(r.ServiceType))
	r.CouponCode = strings.ToUpper(strings.TrimSpace(r.CouponCode))
	r.ResourceID = strings.TrimSpace(r.ResourceID)
	r.UserID = strings.TrimSpace(r.UserID)
	r.UserEmail = strings.ToLower(strings.TrimSpace(r.UserEmail))
	r.CategoryKeys = normalizeKeys(r.CategoryKeys)
	return r
}

// normalizeKeys lower-cases, trims and de-duplicates category tags. The
// result is sorted so payloads are stable across calls.
func normalizeKeys(keys []string) []string {
	seen := make(map[string]bool, len(keys))
	out := make([]string, 0, len(keys))

	for _, k := range keys {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}

	sort.Strings(out)
	return out
}

// rpcArgs builds the wire payload. Argument keys are snake_case to match
// the remote function's parameter names; optional strings go out as null
// rather than "".
func (r QuoteRequest) rpcArgs() map[string]any {
	var serviceAt any
	if r.ServiceAt != nil {
		serviceAt = r.ServiceAt.UTC().Format(time.RFC3339)
	}

	keys := r.CategoryKeys
	if keys == nil {
		keys = []string{}
	}

	return map[string]any{
		"service_type":  r.ServiceType,
		"coupon_code":   r.CouponCode,
		"base_total":    money.Round2(r.BaseTotal),
		"service_at":    serviceAt,
		"resource_id":   nullable(r.ResourceID),
		"category_keys": keys,
		"user_id":       nullable(r.UserID),
		"user_email":    nullable(r.UserEmail),
	}
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// --------------------------------------------------
// QUOTE RESULT (NORMALIZED WIRE ROW)
// --------------------------------------------------

// QuoteResult is the normalized remote response. Every field has an
// explicit default so downstream code never sees a missing value, no
// matter how the wire row drifts.
type QuoteResult struct {
	IsValid                      bool     `json:"is_valid"`
	Message                      string   `json:"message"`
	CouponID                     *string  `json:"coupon_id"`
	CouponCode                   string   `json:"coupon_code"`
	DiscountType                 string   `json:"discount_type"`
	DiscountValue                float64  `json:"discount_value"`
	BaseTotal                    float64  `json:"base_total"`
	DiscountAmount               float64  `json:"discount_amount"`
	FinalTotal                   float64  `json:"final_total"`
	Currency                     string   `json:"currency"`
	PartnerID                    *string  `json:"partner_id"`
	PartnerCommissionBpsOverride *float64 `json:"partner_commission_bps_override"`
}

// wireRow mirrors the remote row shape. Pointers distinguish absent
// fields from explicit zero values.
type wireRow struct {
	IsValid                      *bool    `json:"is_valid"`
	Message                      string   `json:"message"`
	CouponID                     *string  `json:"coupon_id"`
	CouponCode                   string   `json:"coupon_code"`
	DiscountType                 string   `json:"discount_type"`
	DiscountValue                *float64 `json:"discount_value"`
	BaseTotal                    *float64 `json:"base_total"`
	DiscountAmount               *float64 `json:"discount_amount"`
	FinalTotal                   *float64 `json:"final_total"`
	Currency                     string   `json:"currency"`
	PartnerID                    *string  `json:"partner_id"`
	PartnerCommissionBpsOverride *float64 `json:"partner_commission_bps_override"`
}

// normalizeRow maps one wire row into a QuoteResult, filling defaults from
// the request where the row is silent.
func normalizeRow(row wireRow, req QuoteRequest) QuoteResult {
	res := QuoteResult{
		IsValid:                      row.IsValid != nil && *row.IsValid,
		Message:                      strings.TrimSpace(row.Message),
		CouponID:                     row.CouponID,
		CouponCode:                   strings.ToUpper(strings.TrimSpace(row.CouponCode)),
		DiscountType:                 strings.TrimSpace(row.DiscountType),
		Currency:                     strings.ToUpper(strings.TrimSpace(row.Currency)),
		PartnerID:                    row.PartnerID,
		PartnerCommissionBpsOverride: row.PartnerCommissionBpsOverride,
	}

	if res.CouponCode == "" {
		res.CouponCode = req.CouponCode
	}
	if res.Currency == "" {
		res.Currency = "EUR"
	}
	if res.Message == "" {
		if res.IsValid {
			res.Message = "Coupon applied"
		} else {
			res.Message = "Coupon is not valid"
		}
	}

	if row.DiscountValue != nil {
		res.DiscountValue = money.Sanitize(*row.DiscountValue)
	}

	res.BaseTotal = money.Round2(req.BaseTotal)
	if row.BaseTotal != nil {
		res.BaseTotal = money.Round2(*row.BaseTotal)
	}

	if row.DiscountAmount != nil {
		res.DiscountAmount = money.NonNegative(*row.DiscountAmount)
	}

	if row.FinalTotal != nil {
		res.FinalTotal = money.ClampMin(money.Sanitize(*row.FinalTotal), 0)
	} else {
		res.FinalTotal = money.ClampMin(res.BaseTotal-res.DiscountAmount, 0)
	}

	return res
}
