package coupon

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/LilKangoo/cypruseye-backend/internal/money"
	"github.com/LilKangoo/cypruseye-backend/internal/supabase"
)

// rpcQuoteServiceCoupon is the remote procedure that owns all coupon
// business rules (eligibility windows, usage caps, per-user / category /
// resource restrictions). The client never re-derives those rules locally.
const rpcQuoteServiceCoupon = "quote_service_coupon"

// RPCCaller executes a named remote procedure. Satisfied by
// *supabase.Client; tests swap in a recorder.
type RPCCaller interface {
	CallRPC(ctx context.Context, fn string, args map[string]any) (json.RawMessage, error)
}

// Outcome is the shape every quote resolves to. Quote never returns an
// error: it runs inline in form-submit flows that must not crash on a
// rejected promise-equivalent, so every path collapses to {ok, message,
// result}. Result is attached even for a rejected coupon so the UI can
// show discount-type details next to the rejection reason.
type Outcome struct {
	OK      bool         `json:"ok"`
	Message string       `json:"message"`
	Result  *QuoteResult `json:"result"`
}

type Quoter struct {
	rpc RPCCaller
}

func NewQuoter(rpc RPCCaller) *Quoter {
	return &Quoter{rpc: rpc}
}

// --------------------------------------------------
// COMPATIBILITY VARIANTS
// --------------------------------------------------

// The remote function's signature evolved across environments with
// different migration states, so a "function not found / schema cache"
// failure is retried with progressively reduced payloads. Variants are an
// ordered policy list over the ORIGINAL payload, not a chain: variant 4
// restores user identity and drops category filtering instead.
type payloadVariant struct {
	name  string
	apply func(map[string]any) map[string]any
}

var compatVariants = []payloadVariant{
	{name: "full", apply: func(p map[string]any) map[string]any {
		return p
	}},
	{name: "no_user_id", apply: func(p map[string]any) map[string]any {
		p = cloneArgs(p)
		p["user_id"] = nil
		return p
	}},
	{name: "no_user_identity", apply: func(p map[string]any) map[string]any {
		p = cloneArgs(p)
		p["user_id"] = nil
		p["user_email"] = nil
		return p
	}},
	{name: "no_category_keys", apply: func(p map[string]any) map[string]any {
		p = cloneArgs(p)
		p["category_keys"] = []string{}
		return p
	}},
}

func cloneArgs(p map[string]any) map[string]any {
	out := make(map[string]any, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// retriableCodes are the "function not found / schema cache stale"
// signatures: PGRST202 from PostgREST, 42883 (undefined_function) from
// Postgres itself.
var retriableCodes = map[string]bool{
	"PGRST202": true,
	"42883":    true,
}

func isRetriable(err error) bool {
	var rpcErr *supabase.RPCError
	if errors.As(err, &rpcErr) && retriableCodes[rpcErr.Code] {
		return true
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "schema cache") ||
		strings.Contains(msg, "could not find the function") ||
		strings.Contains(msg, rpcQuoteServiceCoupon)
}

// --------------------------------------------------
// QUOTE
// --------------------------------------------------

// Quote validates a coupon against a booking context. The remote side is
// the sole source of truth; locally we only pre-validate the request,
// walk the compatibility variants in order, and normalize the response.
// Attempts are strictly sequential: each error must be classified before
// the next variant may be sent.
func (q *Quoter) Quote(ctx context.Context, req QuoteRequest) Outcome {
	req = req.normalized()

	if req.ServiceType == "" {
		return Outcome{Message: "Missing service type"}
	}
	if req.CouponCode == "" {
		return Outcome{Message: "Enter a coupon code"}
	}
	if !money.IsFinite(req.BaseTotal) || req.BaseTotal <= 0 {
		return Outcome{Message: "Complete booking details first"}
	}

	base := req.rpcArgs()

	var lastErr error
	for _, variant := range compatVariants {
		raw, err := q.rpc.CallRPC(ctx, rpcQuoteServiceCoupon, variant.apply(base))
		if err != nil {
			if isRetriable(err) {
				lastErr = err
				continue
			}
			return Outcome{Message: err.Error()}
		}

		row, ok := decodeRow(raw)
		if !ok {
			return Outcome{Message: "Coupon validation returned empty response"}
		}

		result := normalizeRow(row, req)
		if !result.IsValid {
			return Outcome{Message: result.Message, Result: &result}
		}

		return Outcome{OK: true, Message: result.Message, Result: &result}
	}

	msg := "Coupon validation is unavailable right now"
	if lastErr != nil {
		msg = lastErr.Error()
	}
	return Outcome{Message: msg}
}

// decodeRow accepts either a single row object or an array-of-one, which
// is how PostgREST serves set-returning vs scalar-returning functions. A
// row without is_valid is treated as empty.
func decodeRow(raw json.RawMessage) (wireRow, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return wireRow{}, false
	}

	if raw[0] == '[' {
		var rows []wireRow
		if err := json.Unmarshal(raw, &rows); err != nil || len(rows) == 0 {
			return wireRow{}, false
		}
		if rows[0].IsValid == nil {
			return wireRow{}, false
		}
		return rows[0], true
	}

	var row wireRow
	if err := json.Unmarshal(raw, &row); err != nil || row.IsValid == nil {
		return wireRow{}, false
	}
	return row, true
}
