package validation

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type payload struct {
	Type   string `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	Amount Amount `json:"amount" binding:"required,gt=0,money"`
	Note   string `json:"note" binding:"max=5"`
}

func bind(t *testing.T, body string) (payload, error) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var p payload
	err := BindJSON(c, &p)
	return p, err
}

func fields(vs []Violation) map[string]string {
	out := make(map[string]string, len(vs))
	for _, v := range vs {
		out[v.Field] = v.Message
	}
	return out
}

func TestAmountUnmarshal(t *testing.T) {
	tests := []struct {
		in      string
		present bool
		valid   bool
		want    string
	}{
		{`100`, true, true, "100"},
		{`"12.50"`, true, true, "12.5"},
		{`" 7 "`, true, true, "7"},
		{`"abc"`, true, false, ""},
		{`true`, true, false, ""},
		{`[1]`, true, false, ""},
		{`null`, false, false, ""},
	}
	for _, tt := range tests {
		var a Amount
		if err := json.Unmarshal([]byte(tt.in), &a); err != nil {
			t.Fatalf("Unmarshal(%s) returned error %v", tt.in, err)
		}
		if a.Present != tt.present || a.Valid != tt.valid {
			t.Errorf("Unmarshal(%s) = present %v valid %v, want %v %v", tt.in, a.Present, a.Valid, tt.present, tt.valid)
		}
		if tt.valid && !a.Value.Equal(decimal.RequireFromString(tt.want)) {
			t.Errorf("Unmarshal(%s) value = %s, want %s", tt.in, a.Value, tt.want)
		}
	}
}

func TestBindJSONValid(t *testing.T) {
	p, err := bind(t, `{"type":"INCOME","amount":100}`)
	if err != nil {
		t.Fatalf("BindJSON: %v", err)
	}
	if !p.Amount.Value.Equal(decimal.NewFromInt(100)) {
		t.Errorf("amount = %s, want 100", p.Amount.Value)
	}
}

func TestBindJSONReportsEveryViolation(t *testing.T) {
	_, err := bind(t, `{"type":"GIFT","amount":"abc","note":"too long"}`)
	if err == nil {
		t.Fatal("expected validation error")
	}

	got := fields(Violations(err))
	want := map[string]string{
		"type":   "must be one of: INCOME, EXPENSE",
		"amount": "must be a number",
		"note":   "must be at most 5 characters",
	}
	for field, msg := range want {
		if got[field] != msg {
			t.Errorf("%s: got %q, want %q", field, got[field], msg)
		}
	}
}

func TestBindJSONAmountRules(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{`{"type":"EXPENSE","amount":-5}`, "must be greater than 0"},
		{`{"type":"EXPENSE","amount":0}`, "must be greater than 0"},
		{`{"type":"EXPENSE"}`, "is required"},
	}
	for _, tt := range tests {
		_, err := bind(t, tt.body)
		if err == nil {
			t.Errorf("%s: expected error", tt.body)
			continue
		}
		if got := fields(Violations(err))["amount"]; got != tt.want {
			t.Errorf("%s: amount message = %q, want %q", tt.body, got, tt.want)
		}
	}
}

func TestBindJSONMoneyBound(t *testing.T) {
	const bound = "must have at most 2 decimal places and be less than 1000000000000"
	tests := []struct {
		body string
		want string
	}{
		{`{"type":"INCOME","amount":"1e50000000"}`, bound},
		{`{"type":"INCOME","amount":1e50000000}`, bound},
		{`{"type":"INCOME","amount":"-1e50000000"}`, bound},
		{`{"type":"INCOME","amount":"1e-400"}`, bound},
		{`{"type":"INCOME","amount":"12.345"}`, bound},
		{`{"type":"INCOME","amount":1000000000000}`, bound},
	}
	for _, tt := range tests {
		_, err := bind(t, tt.body)
		if err == nil {
			t.Errorf("%s: expected error", tt.body)
			continue
		}
		if got := fields(Violations(err))["amount"]; got != tt.want {
			t.Errorf("%s: amount message = %q, want %q", tt.body, got, tt.want)
		}
	}

	p, err := bind(t, `{"type":"INCOME","amount":"999999999999.990"}`)
	if err != nil {
		t.Fatalf("largest money amount rejected: %v", Violations(err))
	}
	if !p.Amount.IsMoney() {
		t.Error("IsMoney = false for an accepted amount")
	}
}

func TestBindJSONTypeMismatchStillValidatesRest(t *testing.T) {
	_, err := bind(t, `{"type":1,"amount":-5,"note":"too long"}`)
	if err == nil {
		t.Fatal("expected validation error")
	}
	vs := Violations(err)
	got := fields(vs)
	want := map[string]string{
		"type":   "must be a string",
		"amount": "must be greater than 0",
		"note":   "must be at most 5 characters",
	}
	for field, msg := range want {
		if got[field] != msg {
			t.Errorf("%s: got %q, want %q", field, got[field], msg)
		}
	}
	if len(vs) != len(want) {
		t.Errorf("violations = %+v, want one per field", vs)
	}
}

func TestBindJSONNonObjectBody(t *testing.T) {
	for _, body := range []string{`[1]`, `"INCOME"`, `42`} {
		_, err := bind(t, body)
		if err == nil {
			t.Errorf("%s: expected error", body)
			continue
		}
		vs := Violations(err)
		if len(vs) != 1 || vs[0].Field != "body" || vs[0].Message != "must be a valid JSON object" {
			t.Errorf("%s: violations = %+v", body, vs)
		}
	}
}

func TestBindJSONEmptyBody(t *testing.T) {
	_, err := bind(t, ``)
	if err == nil {
		t.Fatal("expected validation error")
	}
	got := fields(Violations(err))
	if got["type"] != "is required" || got["amount"] != "is required" {
		t.Errorf("violations = %v", got)
	}
}

func TestBindJSONMalformed(t *testing.T) {
	_, err := bind(t, `{"type":`)
	if err == nil {
		t.Fatal("expected error")
	}
	vs := Violations(err)
	if len(vs) != 1 || vs[0].Field != "body" {
		t.Errorf("violations = %+v", vs)
	}
}
