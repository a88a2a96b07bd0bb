package form

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/cheerioskun/reqninja/internal/client"
	"github.com/cheerioskun/reqninja/internal/models"
	"github.com/cheerioskun/reqninja/internal/utils"
)

// ErrSubmitInProgress is returned when a submit arrives while another is loading
var ErrSubmitInProgress = errors.New("a submission is already in progress")

// Sender delivers a validated payload to the remote endpoint
type Sender interface {
	Send(ctx context.Context, body string) (models.Response, error)
}

// State is everything the form shows. Phase decides which parts are visible.
type State struct {
	Input     string                 // raw, unparsed payload text
	Phase     models.Phase           // current lifecycle phase
	Err       string                 // user-facing message, set only in PhaseError
	Response  models.Response        // last successful response, nil otherwise
	Selection models.FilterSelection // optional fields picked by the user
}

// ErrorVisible reports whether the error region is shown
func (s State) ErrorVisible() bool {
	return s.Phase == models.PhaseError && s.Err != ""
}

// FiltersVisible reports whether the filter multi-select is shown
func (s State) FiltersVisible() bool {
	return s.Phase == models.PhaseSubmitted
}

// ProjectionVisible reports whether the filtered response block is shown
func (s State) ProjectionVisible() bool {
	return s.Phase == models.PhaseSubmitted && len(s.Selection) > 0
}

// Controller owns the form state and drives its transitions:
//
//	idle|error|submitted --submit--> loading
//	loading --invalid input--> error
//	loading --request failed--> error
//	loading --request ok--> submitted
//	error --edit--> idle
type Controller struct {
	sender Sender
	logger *utils.Logger

	mu    sync.Mutex
	state State
}

// NewController creates a controller in the idle phase
func NewController(sender Sender) *Controller {
	return &Controller{
		sender: sender,
		logger: utils.GetLogger(),
		state:  State{Phase: models.PhaseIdle},
	}
}

// SetLogger overrides the logger used for lifecycle events
func (c *Controller) SetLogger(logger *utils.Logger) {
	c.logger = logger
}

// Snapshot returns a copy of the current state
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.state
	s.Response = c.state.Response.Clone()
	s.Selection = c.state.Selection.Clone()
	return s
}

// Phase returns the current phase
func (c *Controller) Phase() models.Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Phase
}

// SetInput replaces the raw input and dismisses any visible error
func (c *Controller) SetInput(raw string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Input = raw
	if c.state.Phase == models.PhaseError {
		c.state.Phase = models.PhaseIdle
		c.state.Err = ""
	}
}

// CanSubmit reports whether the submit control is enabled
func (c *Controller) CanSubmit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Phase != models.PhaseLoading && strings.TrimSpace(c.state.Input) != ""
}

// BeginSubmit enters the loading phase for raw and validates it.
// A validation failure moves the form to the error phase and is returned;
// the caller must not send anything in that case.
func (c *Controller) BeginSubmit(raw string) error {
	c.mu.Lock()
	if c.state.Phase == models.PhaseLoading {
		c.mu.Unlock()
		c.logger.Warning("submit ignored: %v", ErrSubmitInProgress)
		return ErrSubmitInProgress
	}

	c.state = State{
		Input: raw,
		Phase: models.PhaseLoading,
	}
	c.mu.Unlock()

	if _, err := Validate(raw); err != nil {
		if cause := errors.Unwrap(err); cause != nil {
			c.logger.Debug("validation failed: %v", cause)
		}
		c.FinishSubmit(nil, err)
		return err
	}

	return nil
}

// FinishSubmit leaves the loading phase with the outcome of the request.
// It is a no-op when no submission is loading.
func (c *Controller) FinishSubmit(resp models.Response, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Phase != models.PhaseLoading {
		return
	}

	if err == nil && resp == nil {
		err = &client.RequestError{Message: client.MsgRequestFailed}
	}

	if err != nil {
		c.state.Phase = models.PhaseError
		c.state.Err = err.Error()
		c.state.Response = nil
		c.state.Selection = nil
		c.logger.Error("submit failed: %v", err)
		return
	}

	c.state.Phase = models.PhaseSubmitted
	c.state.Err = ""
	c.state.Response = resp
	c.state.Selection = nil
	c.logger.Info("submit succeeded with %d fields", len(resp))
}

// Submit validates raw, posts it and stores the response.
// The loading phase is always left before Submit returns.
func (c *Controller) Submit(ctx context.Context, raw string) (resp models.Response, err error) {
	if err = c.BeginSubmit(raw); err != nil {
		return nil, err
	}
	defer func() { c.FinishSubmit(resp, err) }()

	return c.sender.Send(ctx, raw)
}

// Sender returns the sender used by Submit
func (c *Controller) Sender() Sender {
	return c.sender
}

// UpdateFilterSelection replaces the selection wholesale
func (c *Controller) UpdateFilterSelection(selected []models.FilterOption) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Selection = models.NewFilterSelection(selected...)
}

// ToggleFilter adds or removes a single option
func (c *Controller) ToggleFilter(opt models.FilterOption) models.FilterSelection {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Selection = c.state.Selection.Toggle(opt)
	return c.state.Selection.Clone()
}

// ProjectResponse returns the stored response restricted to the mandatory
// fields plus the selected ones. ok is false before any successful submit.
func (c *Controller) ProjectResponse() (p *models.Projection, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Response == nil {
		return nil, false
	}
	return models.Project(c.state.Response, c.state.Selection), true
}
