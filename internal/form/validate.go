package form

import (
	"encoding/json"
)

// User-facing validation messages
const (
	MsgInvalidJSON  = "Invalid JSON format. Please check your input."
	MsgMissingArray = `Input must contain a "data" field with an array.`
)

// ValidationError reports input rejected before any request is made.
// Message is what the user sees; Err keeps the parser diagnostic for logs.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Validate parses raw as JSON and requires an object with an array-typed "data" field.
// Element types of the array are not checked.
func Validate(raw string) (map[string]interface{}, error) {
	var parsed interface{}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, &ValidationError{Message: MsgInvalidJSON, Err: err}
	}

	obj, ok := parsed.(map[string]interface{})
	if !ok {
		return nil, &ValidationError{Message: MsgMissingArray}
	}

	if _, ok := obj["data"].([]interface{}); !ok {
		return nil, &ValidationError{Message: MsgMissingArray}
	}

	return obj, nil
}
