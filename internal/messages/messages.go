package messages

import "github.com/cheerioskun/reqninja/internal/models"

// SubmitCompletedMsg is sent when the outstanding POST returns or fails
type SubmitCompletedMsg struct {
	Response models.Response // Decoded response, nil on failure
	Err      error           // RequestError or transport failure
}

// FilterSelectionChangedMsg is sent when the user toggles a filter option
type FilterSelectionChangedMsg struct {
	Selection       models.FilterSelection // Complete ordered selection
	SourceComponent string                 // Which component sent this
}
