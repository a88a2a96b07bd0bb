package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioResponse(t *testing.T) Response {
	t.Helper()
	resp, err := DecodeResponse([]byte(`{
		"is_success": true,
		"user_id": "x",
		"email": "a@b.com",
		"roll_number": "2237889",
		"numbers": ["334"],
		"alphabets": ["M","B"],
		"highest_alphabet": "M"
	}`))
	require.NoError(t, err)
	return resp
}

func TestProject(t *testing.T) {
	t.Run("only alphabets selected", func(t *testing.T) {
		p := Project(scenarioResponse(t), NewFilterSelection(FilterAlphabets))

		raw, err := json.Marshal(p)
		require.NoError(t, err)
		assert.JSONEq(t,
			`{"is_success": true, "user_id": "x", "email": "a@b.com", "roll_number": "2237889", "alphabets": ["M","B"]}`,
			string(raw))
	})

	t.Run("mandatory fields always present", func(t *testing.T) {
		p := Project(scenarioResponse(t), nil)
		assert.Equal(t, MandatoryFields, p.Keys())
	})

	t.Run("selected field absent from response is skipped", func(t *testing.T) {
		resp := Response{
			FieldIsSuccess: json.RawMessage(`false`),
			"numbers":      json.RawMessage(`[]`),
		}
		p := Project(resp, NewFilterSelection(FilterHighestAlphabet, FilterNumbers))

		assert.Equal(t, []string{"is_success", "user_id", "email", "roll_number", "numbers"}, p.Keys())
		assert.False(t, p.Has("highest_alphabet"))
	})

	t.Run("absent mandatory fields are listed but not serialized", func(t *testing.T) {
		p := Project(Response{FieldEmail: json.RawMessage(`"a@b.com"`)}, nil)

		value, ok := p.Get(FieldUserID)
		assert.True(t, ok)
		assert.Nil(t, value)

		raw, err := json.Marshal(p)
		require.NoError(t, err)
		assert.JSONEq(t, `{"email":"a@b.com"}`, string(raw))
	})

	t.Run("null counts as defined", func(t *testing.T) {
		resp := scenarioResponse(t)
		resp["highest_alphabet"] = json.RawMessage(`null`)
		p := Project(resp, NewFilterSelection(FilterHighestAlphabet))

		value, ok := p.Get("highest_alphabet")
		require.True(t, ok)
		assert.Equal(t, "null", string(value))
	})

	t.Run("optional keys follow selection order", func(t *testing.T) {
		p := Project(scenarioResponse(t), NewFilterSelection(FilterHighestAlphabet, FilterNumbers))
		assert.Equal(t, []string{"is_success", "user_id", "email", "roll_number", "highest_alphabet", "numbers"}, p.Keys())
	})
}

func TestProjectionFormat(t *testing.T) {
	p := Project(scenarioResponse(t), NewFilterSelection(FilterNumbers))

	out, err := p.Format()
	require.NoError(t, err)

	expected := `{
  "is_success": true,
  "user_id": "x",
  "email": "a@b.com",
  "roll_number": "2237889",
  "numbers": [
    "334"
  ]
}`
	assert.Equal(t, expected, out)
}

func TestDecodeResponse(t *testing.T) {
	_, err := DecodeResponse([]byte(`[1,2]`))
	assert.Error(t, err)

	_, err = DecodeResponse([]byte(`null`))
	assert.Error(t, err)

	_, err = DecodeResponse([]byte(`<html>`))
	assert.Error(t, err)
}

func TestFilterSelection(t *testing.T) {
	sel := NewFilterSelection(FilterNumbers, FilterAlphabets, FilterNumbers)
	assert.Equal(t, FilterSelection{FilterNumbers, FilterAlphabets}, sel)

	sel = sel.Toggle(FilterNumbers)
	assert.Equal(t, FilterSelection{FilterAlphabets}, sel)

	sel = sel.Toggle(FilterHighestAlphabet)
	assert.Equal(t, FilterSelection{FilterAlphabets, FilterHighestAlphabet}, sel)
	assert.True(t, sel.Contains(FilterHighestAlphabet))
	assert.False(t, sel.Contains(FilterNumbers))
}

func TestParseFilterOption(t *testing.T) {
	opt, err := ParseFilterOption(" highest_alphabet ")
	require.NoError(t, err)
	assert.Equal(t, FilterHighestAlphabet, opt)
	assert.Equal(t, "Highest alphabet", opt.Label())

	_, err = ParseFilterOption("letters")
	assert.Error(t, err)
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "idle", PhaseIdle.String())
	assert.Equal(t, "loading", PhaseLoading.String())
	assert.Equal(t, "error", PhaseError.String())
	assert.Equal(t, "submitted", PhaseSubmitted.String())
}
