// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package login

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/text/language"
	"k8s.io/utils/clock"

	"github.com/taibuivan/signin/internal/notify"
	"github.com/taibuivan/signin/internal/platform/constants"
	"github.com/taibuivan/signin/internal/platform/i18n"
)

// # Errors

var (
	// ErrMissingCollaborator is returned by [NewController] when a required dependency is nil.
	ErrMissingCollaborator = errors.New("login: required collaborator missing")

	// ErrSubmissionInFlight is returned while a submission or simulation is pending.
	ErrSubmissionInFlight = errors.New("login: submission already in flight")

	// ErrSessionComplete is returned once the controller has signed in.
	ErrSessionComplete = errors.New("login: session already signed in")

	// ErrInputsDisabled is returned for field interaction outside Idle and Failed.
	ErrInputsDisabled = errors.New("login: form inputs are disabled")

	// ErrUnknownField is returned for a field name the form does not have.
	ErrUnknownField = errors.New("login: unknown field")
)

// # Collaborators

// Authenticator is the backend the controller signs in against.
type Authenticator interface {
	Authenticate(ctx context.Context, credentials Credentials) (Identity, error)
	SocialRedirect(ctx context.Context, platform Platform) error
	RequestPasswordReset(ctx context.Context, identifier string) error
}

// Presenter renders transient notifications. [notify.Stack] implements it.
type Presenter interface {
	Present(message string, severity notify.Severity) string
}

// IdentityStore is the remembered-identity slot. remember.Store implements it.
type IdentityStore interface {
	Get(ctx context.Context) (string, bool, error)
	Set(ctx context.Context, identifier string) error
	Clear(ctx context.Context) error
}

// Navigator performs the post-login hand-off to another page.
type Navigator interface {
	Navigate(destination string)
}

// NavigatorFunc adapts a function to [Navigator].
type NavigatorFunc func(destination string)

// Navigate implements [Navigator].
func (f NavigatorFunc) Navigate(destination string) { f(destination) }

// Metrics receives controller events. metrics.Recorder implements it.
type Metrics interface {
	ObserveSubmission(outcome string, elapsed time.Duration)
	ObserveBlocked()
	ObserveAction(action string)
}

// Dependencies are the collaborators of a [Controller].
//
// Auth and Presenter are required. Store, Navigator and Metrics are optional
// capabilities; a nil value disables the behaviour that needs them.
type Dependencies struct {
	Auth      Authenticator
	Presenter Presenter
	Store     IdentityStore
	Navigator Navigator
	Metrics   Metrics
	Clock     clock.WithDelayedExecution
	Logger    *slog.Logger
}

// # Options

// Timings are the UI delays of the controller.
type Timings struct {
	RedirectDelay       time.Duration
	SignupRedirectDelay time.Duration
	ValidationDebounce  time.Duration
}

// DefaultTimings returns the page delays used in production.
func DefaultTimings() Timings {
	return Timings{
		RedirectDelay:       constants.RedirectDelay,
		SignupRedirectDelay: constants.SignupRedirectDelay,
		ValidationDebounce:  constants.ValidationDebounce,
	}
}

// TransitionObserver is notified after every state change.
type TransitionObserver func(from, to State)

// Option customizes a [Controller].
type Option func(*Controller)

// WithTransitionObserver registers observer. Observers run outside the
// controller lock, in transition order.
func WithTransitionObserver(observer TransitionObserver) Option {
	return func(c *Controller) {
		c.observers = append(c.observers, observer)
	}
}

// WithLanguage sets the language of user-facing messages.
func WithLanguage(tag language.Tag) Option {
	return func(c *Controller) { c.lang = tag }
}

// WithTimings overrides the UI delays.
func WithTimings(timings Timings) Option {
	return func(c *Controller) { c.timings = timings }
}

// # Views

// Outcome is the result class of a submit.
type Outcome string

const (
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeFailed    Outcome = "failed"
	OutcomeBlocked   Outcome = "blocked"
)

// Result describes how a submit resolved.
type Result struct {
	Outcome     Outcome               `json:"outcome"`
	Identity    *Identity             `json:"identity,omitempty"`
	Reason      FailureReason         `json:"reason,omitempty"`
	Message     string                `json:"message,omitempty"`
	Destination string                `json:"destination,omitempty"`
	Fields      map[Field]FieldResult `json:"fields,omitempty"`
}

// FieldStatus is a field result with its localized annotation.
type FieldStatus struct {
	FieldResult
	Message string `json:"message,omitempty"`
}

// Redirect is a scheduled page hand-off.
type Redirect struct {
	Destination string    `json:"destination"`
	Due         time.Time `json:"due"`
	Navigated   bool      `json:"navigated"`
}

// Form is a point-in-time view of the page. The secret itself is never exposed.
type Form struct {
	State             State                 `json:"state"`
	Identifier        string                `json:"identifier"`
	SecretSet         bool                  `json:"secret_set"`
	Remember          bool                  `json:"remember"`
	SecretVisible     bool                  `json:"secret_visible"`
	SecretToggleLabel string                `json:"secret_toggle_label"`
	SubmitLabel       string                `json:"submit_label"`
	Busy              bool                  `json:"busy"`
	InputsEnabled     bool                  `json:"inputs_enabled"`
	Focus             Field                 `json:"focus,omitempty"`
	Fields            map[Field]FieldStatus `json:"fields"`
	Confirmation      string                `json:"confirmation,omitempty"`
	Identity          *Identity             `json:"identity,omitempty"`
	Redirect          *Redirect             `json:"redirect,omitempty"`
}

// # Controller

// Controller is the sign-in form state machine. It is safe for concurrent use;
// at most one submission is in flight at a time.
type Controller struct {
	auth      Authenticator
	presenter Presenter
	store     IdentityStore
	navigator Navigator
	metrics   Metrics
	clock     clock.WithDelayedExecution
	logger    *slog.Logger
	lang      language.Tag
	timings   Timings
	observers []TransitionObserver

	debouncers map[Field]*Debouncer

	mu            sync.Mutex
	state         State
	values        map[Field]string
	remember      bool
	secretVisible bool
	focus         Field
	results       map[Field]FieldResult
	confirmation  string
	identity      *Identity
	redirect      *Redirect
	timers        []clock.Timer
	closed        bool
}

type transition struct {
	from, to State
}

/*
NewController validates the dependencies and builds an Idle controller.

Returns:
  - *Controller: Ready to [Controller.Init]
  - error: ErrMissingCollaborator when Auth or Presenter is nil
*/
func NewController(deps Dependencies, opts ...Option) (*Controller, error) {
	if deps.Auth == nil {
		return nil, fmt.Errorf("%w: authenticator", ErrMissingCollaborator)
	}
	if deps.Presenter == nil {
		return nil, fmt.Errorf("%w: presenter", ErrMissingCollaborator)
	}
	if deps.Clock == nil {
		deps.Clock = clock.RealClock{}
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	controller := &Controller{
		auth:      deps.Auth,
		presenter: deps.Presenter,
		store:     deps.Store,
		navigator: deps.Navigator,
		metrics:   deps.Metrics,
		clock:     deps.Clock,
		logger:    deps.Logger,
		lang:      language.English,
		timings:   DefaultTimings(),
		state:     StateIdle,
		values:    make(map[Field]string, len(Fields)),
		results:   make(map[Field]FieldResult, len(Fields)),
	}

	for _, opt := range opts {
		opt(controller)
	}

	controller.debouncers = make(map[Field]*Debouncer, len(Fields))
	for _, field := range Fields {
		controller.debouncers[field] = NewDebouncer(controller.clock, controller.timings.ValidationDebounce)
	}

	return controller, nil
}

// Init pre-fills the form from the remembered-identity store. A failing store
// leaves the form empty.
func (c *Controller) Init(ctx context.Context) {
	if c.store == nil {
		return
	}

	identifier, ok, err := c.store.Get(ctx)
	if err != nil {
		c.logger.WarnContext(ctx, "remembered_identity_read_failed", slog.Any("error", err))
		return
	}
	if !ok || identifier == "" {
		return
	}

	c.mu.Lock()
	c.values[FieldIdentifier] = identifier
	c.remember = true
	c.focus = FieldSecret
	c.mu.Unlock()

	c.logger.DebugContext(ctx, "remembered_identity_prefilled",
		slog.String("identifier", MaskIdentifier(identifier)),
	)
}

// # Field Interaction

// ChangeField records typed input and schedules validation after the debounce period.
func (c *Controller) ChangeField(field Field, value string) error {
	if _, ok := ParseField(string(field)); !ok {
		return ErrUnknownField
	}

	c.mu.Lock()
	if !c.state.InputsEnabled() {
		c.mu.Unlock()
		return ErrInputsDisabled
	}
	c.values[field] = value
	c.mu.Unlock()

	c.debouncers[field].Trigger(func() { c.validate(field) })
	return nil
}

// ExitField validates field immediately, superseding any pending debounced run.
func (c *Controller) ExitField(field Field) (FieldResult, error) {
	if _, ok := ParseField(string(field)); !ok {
		return FieldResult{}, ErrUnknownField
	}

	c.mu.Lock()
	enabled := c.state.InputsEnabled()
	c.mu.Unlock()
	if !enabled {
		return FieldResult{}, ErrInputsDisabled
	}

	// A pending debounced run validates the same value; run it now.
	if c.debouncers[field].Flush() {
		return c.resultOf(field), nil
	}
	return c.validate(field), nil
}

// SetRemember sets the "remember me" toggle.
func (c *Controller) SetRemember(remember bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.state.InputsEnabled() {
		return ErrInputsDisabled
	}
	c.remember = remember
	return nil
}

// TogglePasswordVisibility flips whether the secret is shown in clear text
// and returns the new visibility.
func (c *Controller) TogglePasswordVisibility() (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.state.InputsEnabled() {
		return c.secretVisible, ErrInputsDisabled
	}
	c.secretVisible = !c.secretVisible
	return c.secretVisible, nil
}

// resultOf returns the last recorded result of field.
func (c *Controller) resultOf(field Field) FieldResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.results[field]
}

// validate runs the validator of field on its current value and records the result.
func (c *Controller) validate(field Field) FieldResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	result := validateField(field, c.values[field])
	c.results[field] = result
	return result
}

// # Submission

/*
Submit validates the form and, when nothing blocks, authenticates.

Description: Runs both validators synchronously. A blocking result keeps the
controller Idle and never calls the backend. Otherwise the controller enters
Submitting and waits for the backend; ctx cancellation does not abort it.

Returns:
  - Result: Succeeded, Failed (with reason) or Blocked (with field results)
  - error: ErrSubmissionInFlight while Submitting, ErrSessionComplete after success
*/
func (c *Controller) Submit(ctx context.Context) (Result, error) {

	// Synchronous validation supersedes any pending debounced run.
	for _, field := range Fields {
		c.debouncers[field].Cancel()
	}

	c.mu.Lock()
	if err := c.guardLocked(); err != nil {
		c.mu.Unlock()
		return Result{}, err
	}

	fields := make(map[Field]FieldResult, len(Fields))
	blocked := false
	for _, field := range Fields {
		result := validateField(field, c.values[field])
		c.results[field] = result
		fields[field] = result
		blocked = blocked || result.Blocking()
	}

	// Guard failed: stay put, surface a blocking notification.
	if blocked {
		c.mu.Unlock()

		message := i18n.T(c.lang, i18n.MsgFixErrors)
		c.presenter.Present(message, notify.SeverityError)
		c.observeBlocked()
		c.logger.InfoContext(ctx, "login_submission_blocked")

		return Result{Outcome: OutcomeBlocked, Message: message, Fields: fields}, nil
	}

	credentials := Credentials{
		Identifier: normalizeIdentifier(c.values[FieldIdentifier]),
		Secret:     c.values[FieldSecret],
		Remember:   c.remember,
	}
	moved := c.moveLocked(StateSubmitting)
	c.mu.Unlock()
	c.emit(moved)

	c.logger.InfoContext(ctx, "login_submission_started",
		slog.String("identifier", MaskIdentifier(credentials.Identifier)),
		slog.Bool("remember", credentials.Remember),
	)

	started := c.clock.Now()
	identity, err := c.auth.Authenticate(context.WithoutCancel(ctx), credentials)
	elapsed := c.clock.Since(started)

	if err != nil {
		return c.fail(ctx, err, elapsed), nil
	}
	return c.succeed(ctx, credentials, identity, elapsed), nil
}

// succeed applies transition Submitting -> Succeeded.
func (c *Controller) succeed(ctx context.Context, credentials Credentials, identity Identity, elapsed time.Duration) Result {

	// Still Submitting here, so store writes stay serialized. The write must
	// land even when the caller went away during authentication.
	c.persistIdentity(context.WithoutCancel(ctx), credentials)

	message := i18n.T(c.lang, i18n.MsgLoginSuccess)
	c.presenter.Present(message, notify.SeveritySuccess)

	due := c.clock.Now().Add(c.timings.RedirectDelay)

	c.mu.Lock()
	c.identity = &identity
	c.confirmation = message
	c.redirect = &Redirect{Destination: constants.DestinationDashboard, Due: due}
	moved := c.moveLocked(StateSucceeded)
	c.mu.Unlock()
	c.emit(moved)

	c.schedule(c.timings.RedirectDelay, constants.DestinationDashboard)
	c.observeSubmission("success", elapsed)

	c.logger.InfoContext(ctx, "login_submission_succeeded",
		slog.String("identifier", MaskIdentifier(identity.Identifier)),
		slog.Duration("elapsed", elapsed),
	)

	return Result{
		Outcome:     OutcomeSucceeded,
		Identity:    &identity,
		Message:     message,
		Destination: constants.DestinationDashboard,
	}
}

// fail applies transitions Submitting -> Failed -> Idle.
func (c *Controller) fail(ctx context.Context, err error, elapsed time.Duration) Result {
	reason := ReasonOf(err)
	message := i18n.T(c.lang, reason.MessageKey())

	c.presenter.Present(message, notify.SeverityError)

	c.mu.Lock()
	failed := c.moveLocked(StateFailed)
	idle := c.moveLocked(StateIdle)
	c.mu.Unlock()
	c.emit(failed, idle)

	c.observeSubmission(string(reason), elapsed)

	level := slog.LevelInfo
	if reason == FailureUnexpected {
		level = slog.LevelError
	}
	c.logger.Log(ctx, level, "login_submission_failed",
		slog.String("reason", string(reason)),
		slog.Any("error", err),
	)

	return Result{Outcome: OutcomeFailed, Reason: reason, Message: message}
}

// persistIdentity writes or clears the remembered identifier. Store failures
// are logged and otherwise ignored.
func (c *Controller) persistIdentity(ctx context.Context, credentials Credentials) {
	if c.store == nil {
		return
	}

	var err error
	if credentials.Remember {
		err = c.store.Set(ctx, credentials.Identifier)
	} else {
		err = c.store.Clear(ctx)
	}

	if err != nil {
		c.logger.WarnContext(ctx, "remembered_identity_write_failed", slog.Any("error", err))
	}
}

// # Auxiliary Actions

// SocialLogin simulates the hand-off to a social provider. The form is busy
// for the duration and returns to Idle afterwards.
func (c *Controller) SocialLogin(ctx context.Context, platform Platform) error {
	c.mu.Lock()
	if err := c.guardLocked(); err != nil {
		c.mu.Unlock()
		return err
	}
	moved := c.moveLocked(StateSubmitting)
	c.mu.Unlock()
	c.emit(moved)

	if err := c.auth.SocialRedirect(context.WithoutCancel(ctx), platform); err != nil {
		c.logger.ErrorContext(ctx, "social_redirect_failed", slog.Any("error", err))
		c.presenter.Present(i18n.T(c.lang, i18n.ErrUnexpected), notify.SeverityError)
	} else {
		c.presenter.Present(i18n.T(c.lang, i18n.MsgSocialRedirect, platform.Title()), notify.SeverityInfo)
	}

	c.release()
	c.observeAction("social")
	return nil
}

// ForgotPassword requests reset instructions for the current identifier.
// An invalid identifier only produces a warning and focuses the field.
func (c *Controller) ForgotPassword(ctx context.Context) error {
	c.mu.Lock()
	if err := c.guardLocked(); err != nil {
		c.mu.Unlock()
		return err
	}

	identifier := normalizeIdentifier(c.values[FieldIdentifier])
	result := ValidateIdentifier(identifier)
	c.results[FieldIdentifier] = result

	if result.Verdict != VerdictValid {
		c.focus = FieldIdentifier
		c.mu.Unlock()

		c.presenter.Present(i18n.T(c.lang, i18n.MsgResetNeedEmail), notify.SeverityWarning)
		return nil
	}

	moved := c.moveLocked(StateSubmitting)
	c.mu.Unlock()
	c.emit(moved)

	if err := c.auth.RequestPasswordReset(context.WithoutCancel(ctx), identifier); err != nil {
		c.logger.ErrorContext(ctx, "password_reset_failed", slog.Any("error", err))
		c.presenter.Present(i18n.T(c.lang, i18n.ErrUnexpected), notify.SeverityError)
	} else {
		c.presenter.Present(i18n.T(c.lang, i18n.MsgResetSent, identifier), notify.SeveritySuccess)
	}

	c.release()
	c.observeAction("reset")
	return nil
}

// Signup announces and schedules the hand-off to the registration page.
func (c *Controller) Signup() error {
	due := c.clock.Now().Add(c.timings.SignupRedirectDelay)

	c.mu.Lock()
	if c.state == StateSucceeded {
		c.mu.Unlock()
		return ErrSessionComplete
	}
	c.redirect = &Redirect{Destination: constants.DestinationSignup, Due: due}
	c.mu.Unlock()

	c.presenter.Present(i18n.T(c.lang, i18n.MsgSignupRedirect), notify.SeverityInfo)
	c.schedule(c.timings.SignupRedirectDelay, constants.DestinationSignup)
	c.observeAction("signup")
	return nil
}

// # Views

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// InputsEnabled reports whether the form accepts interaction.
func (c *Controller) InputsEnabled() bool {
	return c.State().InputsEnabled()
}

// Snapshot returns the current form view with localized annotations.
func (c *Controller) Snapshot() Form {
	c.mu.Lock()
	defer c.mu.Unlock()

	toggleLabel := i18n.LabelShowPassword
	if c.secretVisible {
		toggleLabel = i18n.LabelHidePassword
	}

	submitLabel := i18n.LabelSignIn
	if c.state == StateSubmitting {
		submitLabel = i18n.LabelSigningIn
	}

	fields := make(map[Field]FieldStatus, len(c.results))
	for field, result := range c.results {
		status := FieldStatus{FieldResult: result}
		if key := result.MessageKey(field); key != "" {
			status.Message = i18n.T(c.lang, key)
		}
		fields[field] = status
	}

	form := Form{
		State:             c.state,
		Identifier:        c.values[FieldIdentifier],
		SecretSet:         c.values[FieldSecret] != "",
		Remember:          c.remember,
		SecretVisible:     c.secretVisible,
		SecretToggleLabel: i18n.T(c.lang, toggleLabel),
		SubmitLabel:       i18n.T(c.lang, submitLabel),
		Busy:              c.state == StateSubmitting,
		InputsEnabled:     c.state.InputsEnabled(),
		Focus:             c.focus,
		Fields:            fields,
		Confirmation:      c.confirmation,
	}

	if c.identity != nil {
		identity := *c.identity
		form.Identity = &identity
	}
	if c.redirect != nil {
		redirect := *c.redirect
		form.Redirect = &redirect
	}

	return form
}

// Close stops pending validations and scheduled redirects.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	timers := c.timers
	c.timers = nil
	c.mu.Unlock()

	for _, debouncer := range c.debouncers {
		debouncer.Stop()
	}
	for _, timer := range timers {
		timer.Stop()
	}
}

// # Internals

// guardLocked rejects actions outside Idle and Failed. Callers hold c.mu.
func (c *Controller) guardLocked() error {
	switch c.state {
	case StateSubmitting:
		return ErrSubmissionInFlight
	case StateSucceeded:
		return ErrSessionComplete
	default:
		return nil
	}
}

// moveLocked changes state. Callers hold c.mu and pass the result to emit.
func (c *Controller) moveLocked(to State) transition {
	from := c.state
	c.state = to
	return transition{from: from, to: to}
}

// release returns a busy controller to Idle.
func (c *Controller) release() {
	c.mu.Lock()
	moved := c.moveLocked(StateIdle)
	c.mu.Unlock()
	c.emit(moved)
}

// emit notifies observers. It must be called without c.mu held.
func (c *Controller) emit(transitions ...transition) {
	for _, t := range transitions {
		c.logger.Debug("login_state_changed",
			slog.String("from", string(t.from)),
			slog.String("to", string(t.to)),
		)
		for _, observer := range c.observers {
			observer(t.from, t.to)
		}
	}
}

// schedule hands destination to the navigator after delay.
func (c *Controller) schedule(delay time.Duration, destination string) {
	timer := c.clock.AfterFunc(delay, func() { c.navigate(destination) })

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		timer.Stop()
		return
	}
	c.timers = append(c.timers, timer)
	c.mu.Unlock()
}

// navigate is a timer callback. It must not touch the clock or any timer.
func (c *Controller) navigate(destination string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if c.redirect != nil && c.redirect.Destination == destination {
		c.redirect.Navigated = true
	}
	navigator := c.navigator
	c.mu.Unlock()

	c.logger.Info("login_navigation_handed_off", slog.String("destination", destination))

	if navigator != nil {
		navigator.Navigate(destination)
	}
}

func (c *Controller) observeSubmission(outcome string, elapsed time.Duration) {
	if c.metrics != nil {
		c.metrics.ObserveSubmission(outcome, elapsed)
	}
}

func (c *Controller) observeBlocked() {
	if c.metrics != nil {
		c.metrics.ObserveBlocked()
	}
}

func (c *Controller) observeAction(action string) {
	if c.metrics != nil {
		c.metrics.ObserveAction(action)
	}
}
