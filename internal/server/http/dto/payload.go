package dto

import (
	"encoding/json"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/sushibar/internal/domain/model"
)

// Payload is a decoded request body keyed by field name.
type Payload map[string]any

// FormPayload flattens form values; a "cart" field holding a JSON array is decoded.
func FormPayload(values url.Values) Payload {
	p := make(Payload, len(values))
	for k, v := range values {
		if len(v) > 0 {
			p[k] = v[0]
		}
	}
	if raw, ok := p["cart"].(string); ok {
		var cart []any
		if err := json.Unmarshal([]byte(raw), &cart); err != nil {
			p["cart"] = nil
		} else {
			p["cart"] = cart
		}
	}
	return p
}

// String returns the first non-empty value among keys rendered as text.
func (p Payload) String(keys ...string) string {
	for _, k := range keys {
		if s := stringify(p[k]); s != "" {
			return s
		}
	}
	return ""
}

func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

// Price parses a money value; unparseable input is zero and negatives clamp to zero.
func Price(v any) decimal.Decimal {
	var d decimal.Decimal
	switch val := v.(type) {
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return decimal.Zero
		}
		d = decimal.NewFromFloat(val)
	default:
		s := stringify(v)
		if s == "" {
			return decimal.Zero
		}
		parsed, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero
		}
		d = parsed
	}
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Quantity parses a count; absent, unparseable or non-positive input is one.
func Quantity(v any) int {
	s := stringify(v)
	if s == "" {
		return 1
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 {
			return 1
		}
		return n
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 1 || math.IsInf(f, 0) || f > math.MaxInt32 {
		return 1
	}
	return int(f)
}

func firstOf(p map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := p[k]; ok && stringify(v) != "" {
			return v
		}
	}
	return nil
}

// NormalizeOrderPayload resolves field aliases into one canonical submission.
// A non-empty "cart" array selects the cart flow; otherwise the top level is one item.
func NormalizeOrderPayload(p Payload) model.OrderSubmission {
	sub := model.OrderSubmission{
		Email:         p.String("email"),
		Mobile:        p.String("mobile", "phone"),
		Address:       p.String("address"),
		Delivery:      p.String("delivery"),
		Type:          model.OrderType(strings.ToLower(p.String("orderType", "order_type"))),
		ScheduledDate: p.String("orderDate", "scheduled_date"),
		ScheduledTime: p.String("orderTime", "scheduled_time"),
		DeviceToken:   p.String("device_token", "fcm_token"),
	}
	if sub.Type == "" {
		sub.Type = model.OrderTypeNow
	}
	if sub.Type != model.OrderTypeLater {
		sub.ScheduledDate, sub.ScheduledTime = "", ""
	}

	if cart, ok := p["cart"].([]any); ok && len(cart) > 0 {
		sub.Cart = true
		for _, raw := range cart {
			entry, _ := raw.(map[string]any)
			if entry == nil {
				entry = map[string]any{}
			}
			sub.Lines = append(sub.Lines, model.OrderLine{
				Name:     Payload(entry).String("name", "item", "item_name"),
				Price:    Price(firstOf(entry, "price", "amount")),
				Quantity: Quantity(firstOf(entry, "qty", "quantity")),
			})
		}
		return sub
	}

	name := p.String("item", "name", "item_name")
	if name != "" {
		sub.Lines = []model.OrderLine{{
			Name:     name,
			Price:    Price(firstOf(p, "price", "amount")),
			Quantity: Quantity(firstOf(p, "qty", "quantity")),
		}}
	}
	return sub
}
