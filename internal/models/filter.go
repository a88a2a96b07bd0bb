package models

import (
	"fmt"
	"strings"
)

// FilterOption is one of the optional response fields the user can reveal
type FilterOption string

const (
	FilterNumbers         FilterOption = "numbers"
	FilterAlphabets       FilterOption = "alphabets"
	FilterHighestAlphabet FilterOption = "highest_alphabet"
)

// FilterOptions returns the fixed option list in display order
func FilterOptions() []FilterOption {
	return []FilterOption{FilterNumbers, FilterAlphabets, FilterHighestAlphabet}
}

// Label returns the human-readable name shown in the multi-select
func (o FilterOption) Label() string {
	switch o {
	case FilterNumbers:
		return "Numbers"
	case FilterAlphabets:
		return "Alphabets"
	case FilterHighestAlphabet:
		return "Highest alphabet"
	default:
		return string(o)
	}
}

// ParseFilterOption maps a field name to its option
func ParseFilterOption(value string) (FilterOption, error) {
	value = strings.TrimSpace(value)
	for _, opt := range FilterOptions() {
		if string(opt) == value {
			return opt, nil
		}
	}
	return "", fmt.Errorf("unknown filter %q (valid: numbers, alphabets, highest_alphabet)", value)
}

// FilterSelection is the ordered set of options the user picked.
// Order follows selection order and drives the projection key order.
type FilterSelection []FilterOption

// NewFilterSelection builds a selection, dropping repeated options
func NewFilterSelection(options ...FilterOption) FilterSelection {
	selection := make(FilterSelection, 0, len(options))
	for _, opt := range options {
		if !selection.Contains(opt) {
			selection = append(selection, opt)
		}
	}
	return selection
}

// Contains reports whether opt is selected
func (s FilterSelection) Contains(opt FilterOption) bool {
	for _, selected := range s {
		if selected == opt {
			return true
		}
	}
	return false
}

// Toggle returns a new selection with opt added to the end or removed
func (s FilterSelection) Toggle(opt FilterOption) FilterSelection {
	next := make(FilterSelection, 0, len(s)+1)
	found := false
	for _, selected := range s {
		if selected == opt {
			found = true
			continue
		}
		next = append(next, selected)
	}
	if !found {
		next = append(next, opt)
	}
	return next
}

// Clone returns a copy that does not share the backing array
func (s FilterSelection) Clone() FilterSelection {
	return append(FilterSelection(nil), s...)
}
