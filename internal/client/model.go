package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return v
}

type NotificationRequest struct {
	Title     string         `json:"title" validate:"required"`
	Body      string         `json:"body" validate:"required"`
	FCMTokens []string       `json:"fcm_tokens" validate:"required,min=1,dive,required"`
	Data      map[string]any `json:"data"`
}

// Validate returns the first rule the request breaks as a *ValidationError.
func (r NotificationRequest) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{Field: "request", Reason: err.Error()}
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "min":
		return &ValidationError{Field: fe.Field(), Reason: "must contain at least one token"}
	default:
		return &ValidationError{Field: fe.Field(), Reason: "is required and cannot be empty"}
	}
}

// NotificationResponse is the envelope the push backend answers with.
type NotificationResponse struct {
	Status Truthy          `json:"status"`
	Data   json.RawMessage `json:"data"`
}

// Truthy decodes any JSON value with JavaScript truthiness, so backends that
// answer "status": 1 or "status": "ok" are read the same as true.
type Truthy bool

func (t *Truthy) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch x := v.(type) {
	case nil:
		*t = false
	case bool:
		*t = Truthy(x)
	case float64:
		*t = Truthy(x != 0 && !math.IsNaN(x))
	case string:
		*t = Truthy(x != "")
	default:
		*t = true
	}
	return nil
}

// DeliveryData is the provider payload returned for a successful send. Raw
// holds the payload exactly as received.
type DeliveryData struct {
	SuccessCount int
	FailureCount int
	Responses    []TokenResponse
	Raw          json.RawMessage
}

type TokenResponse struct {
	Token     string          `json:"token,omitempty"`
	Success   bool            `json:"success"`
	MessageID string          `json:"messageId,omitempty"`
	Error     json.RawMessage `json:"error,omitempty"`
}

type deliveryPayload struct {
	SuccessCount float64         `json:"successCount"`
	FailureCount float64         `json:"failureCount"`
	Responses    []TokenResponse `json:"responses,omitempty"`
}

// decodeDeliveryData reads the known provider fields from raw. The payload is
// provider specific, so a field of another shape is left zero instead of
// failing the send. anySuccess reports successCount > 0 before it is
// narrowed to an int.
func decodeDeliveryData(raw json.RawMessage) (data DeliveryData, anySuccess bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return DeliveryData{}, false
	}

	data.Raw = raw

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return data, false
	}

	var successCount, failureCount float64
	if err := json.Unmarshal(fields["successCount"], &successCount); err == nil {
		data.SuccessCount = clampCount(successCount)
		anySuccess = successCount > 0
	}
	if err := json.Unmarshal(fields["failureCount"], &failureCount); err == nil {
		data.FailureCount = clampCount(failureCount)
	}

	var responses []TokenResponse
	if err := json.Unmarshal(fields["responses"], &responses); err == nil {
		data.Responses = responses
	}

	return data, anySuccess
}

// clampCount narrows a JSON number to an int. Fractions round up so that a
// positive count never reads as zero.
func clampCount(v float64) int {
	switch {
	case v <= 0:
		return 0
	case v >= math.MaxInt32:
		return math.MaxInt32
	default:
		return int(math.Ceil(v))
	}
}

// MarshalJSON re-emits the provider payload untouched when it is known.
func (d DeliveryData) MarshalJSON() ([]byte, error) {
	if len(bytes.TrimSpace(d.Raw)) > 0 {
		return d.Raw, nil
	}
	return json.Marshal(deliveryPayload{
		SuccessCount: float64(d.SuccessCount),
		FailureCount: float64(d.FailureCount),
		Responses:    d.Responses,
	})
}
