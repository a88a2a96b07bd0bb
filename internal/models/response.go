package models

import (
	"encoding/json"
	"fmt"
)

// Field names the remote endpoint always returns
const (
	FieldIsSuccess  = "is_success"
	FieldUserID     = "user_id"
	FieldEmail      = "email"
	FieldRollNumber = "roll_number"
)

// MandatoryFields are copied into every projection, in this order
var MandatoryFields = []string{FieldIsSuccess, FieldUserID, FieldEmail, FieldRollNumber}

// Response is the decoded object returned by the endpoint.
// Values stay raw so they are copied verbatim and key presence is explicit.
type Response map[string]json.RawMessage

// DecodeResponse parses a response body that must be a JSON object
func DecodeResponse(body []byte) (Response, error) {
	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if resp == nil {
		return nil, fmt.Errorf("response is not a JSON object")
	}
	return resp, nil
}

// Has reports whether the response defines key (a JSON null counts)
func (r Response) Has(key string) bool {
	_, ok := r[key]
	return ok
}

// Clone returns a shallow copy of the response
func (r Response) Clone() Response {
	if r == nil {
		return nil
	}
	out := make(Response, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
