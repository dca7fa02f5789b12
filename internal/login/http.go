// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package login

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/text/language"
	"k8s.io/utils/clock"

	"github.com/taibuivan/signin/internal/notify"
	"github.com/taibuivan/signin/internal/platform/apperr"
	"github.com/taibuivan/signin/internal/platform/constants"
	"github.com/taibuivan/signin/internal/platform/ctxutil"
	requestutil "github.com/taibuivan/signin/internal/platform/request"
	"github.com/taibuivan/signin/internal/platform/respond"
	"github.com/taibuivan/signin/internal/platform/validate"
	"github.com/taibuivan/signin/pkg/uuid"
)

// # Definitions & Constructors

// HandlerConfig carries the shared collaborators of every page session.
type HandlerConfig struct {
	Auth            Authenticator
	Store           IdentityStore
	Metrics         Metrics
	Clock           clock.WithTickerAndDelayedExecution
	Timings         Timings
	NotificationTTL time.Duration
	SessionTTL      time.Duration
	DefaultLanguage language.Tag
	Logger          *slog.Logger
}

// Handler exposes sign-in page sessions over JSON.
//
// # Scope
//
// Each session owns one [Controller] and one [notify.Stack]. The browser page
// forwards its events (typing, blur, clicks) and renders the returned view.
type Handler struct {
	config   HandlerConfig
	sessions *SessionRegistry
}

// NewHandler constructs a new [Handler].
func NewHandler(cfg HandlerConfig) *Handler {
	if cfg.Clock == nil {
		cfg.Clock = clock.RealClock{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.DefaultLanguage == language.Und {
		cfg.DefaultLanguage = language.English
	}

	return &Handler{
		config:   cfg,
		sessions: NewSessionRegistry(cfg.Clock, cfg.SessionTTL, cfg.Logger),
	}
}

// Run evicts idle sessions until ctx is done.
func (handler *Handler) Run(ctx context.Context) {
	handler.sessions.Run(ctx, constants.SessionCleanupInterval)
}

// Sessions exposes the registry for shutdown reporting.
func (handler *Handler) Sessions() *SessionRegistry {
	return handler.sessions
}

// Routes returns a [chi.Router] configured with the page-session routes.
//
// # Endpoints
//   - POST /sessions             : Opens a page session (pre-filled from the remembered identity).
//   - GET  /sessions/{id}        : Current view.
//   - POST /sessions/{id}/submit : Validates and signs in.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/sessions", handler.createSession)

	router.Route("/sessions/{sessionID}", func(r chi.Router) {
		r.Use(handler.loadSession)

		r.Get("/", handler.getSession)
		r.Delete("/", handler.closeSession)
		r.Put("/fields/{field}", handler.changeField)
		r.Post("/fields/{field}/exit", handler.exitField)
		r.Put("/remember", handler.setRemember)
		r.Post("/secret-visibility", handler.toggleSecretVisibility)
		r.Post("/submit", handler.submit)
		r.Post("/social/{platform}", handler.socialLogin)
		r.Post("/forgot-password", handler.forgotPassword)
		r.Post("/signup", handler.signup)
		r.Delete("/notifications/{notificationID}", handler.dismissNotification)
	})

	return router
}

// # Request Payloads

type fieldRequest struct {
	Value string `json:"value"`
}

type rememberRequest struct {
	Remember *bool `json:"remember"`
}

// # Response Payloads

type sessionView struct {
	ID            string                `json:"id"`
	Form          Form                  `json:"form"`
	Notifications []notify.Notification `json:"notifications"`
}

type submitView struct {
	sessionView
	Result Result `json:"result"`
}

type fieldView struct {
	sessionView
	Field  Field       `json:"field"`
	Result FieldStatus `json:"result"`
}

// # Session Middleware

type sessionKey struct{}

// loadSession resolves {sessionID} and stores the session in the context.
func (handler *Handler) loadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		id := requestutil.ID(request, "sessionID")

		validator := &validate.Validator{}
		if err := validator.UUID("session_id", id).Err(); err != nil {
			respond.Error(writer, request, err)
			return
		}

		session, ok := handler.sessions.Get(id)
		if !ok {
			respond.Error(writer, request, apperr.NotFound("Session"))
			return
		}

		ctx := context.WithValue(request.Context(), sessionKey{}, session)
		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

func sessionFrom(request *http.Request) *Session {
	session, _ := request.Context().Value(sessionKey{}).(*Session)
	return session
}

/*
createSession opens a page session.

POST /api/v1/login/sessions

Description: Builds a controller in the negotiated language and pre-fills it
from the remembered-identity store.

Response:
  - 201: sessionView
*/
func (handler *Handler) createSession(writer http.ResponseWriter, request *http.Request) {
	logger := ctxutil.GetLogger(request.Context())
	lang := requestutil.Language(request, handler.config.DefaultLanguage)
	id := uuid.New()

	stack := notify.NewStack(handler.config.Clock, handler.config.NotificationTTL, logger)

	controller, err := NewController(Dependencies{
		Auth:      handler.config.Auth,
		Presenter: stack,
		Store:     handler.config.Store,
		Navigator: NavigatorFunc(func(destination string) {
			logger.Info("login_redirect_due", slog.String("session_id", id), slog.String("destination", destination))
		}),
		Metrics: handler.config.Metrics,
		Clock:   handler.config.Clock,
		Logger:  logger.With(slog.String("session_id", id)),
	}, WithLanguage(lang), WithTimings(handler.config.Timings))
	if err != nil {
		stack.Close()
		respond.Error(writer, request, apperr.Internal(err))
		return
	}

	controller.Init(request.Context())

	session := &Session{ID: id, Controller: controller, Notifications: stack}
	handler.sessions.Add(session)

	respond.Created(writer, viewOf(session))
}

// getSession handles GET /api/v1/login/sessions/{sessionID}.
func (handler *Handler) getSession(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, viewOf(sessionFrom(request)))
}

// closeSession handles DELETE /api/v1/login/sessions/{sessionID}.
func (handler *Handler) closeSession(writer http.ResponseWriter, request *http.Request) {
	handler.sessions.Remove(sessionFrom(request).ID)
	respond.NoContent(writer)
}

/*
changeField records typed input.

PUT /api/v1/login/sessions/{sessionID}/fields/{field}

Request:
  - Body: fieldRequest (Value)

Response:
  - 200: sessionView (validation lands after the debounce period)
  - 409: CONFLICT: Inputs are disabled
*/
func (handler *Handler) changeField(writer http.ResponseWriter, request *http.Request) {
	session := sessionFrom(request)

	field, err := fieldParam(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input fieldRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	if err := validator.MaxLen("value", input.Value, constants.MaxFieldLength).Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := session.Controller.ChangeField(field, input.Value); err != nil {
		respond.Error(writer, request, toAppError(err))
		return
	}

	respond.OK(writer, viewOf(session))
}

// exitField handles POST /api/v1/login/sessions/{sessionID}/fields/{field}/exit.
func (handler *Handler) exitField(writer http.ResponseWriter, request *http.Request) {
	session := sessionFrom(request)

	field, err := fieldParam(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if _, err := session.Controller.ExitField(field); err != nil {
		respond.Error(writer, request, toAppError(err))
		return
	}

	view := viewOf(session)
	respond.OK(writer, fieldView{sessionView: view, Field: field, Result: view.Form.Fields[field]})
}

// setRemember handles PUT /api/v1/login/sessions/{sessionID}/remember.
func (handler *Handler) setRemember(writer http.ResponseWriter, request *http.Request) {
	session := sessionFrom(request)

	var input rememberRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	if input.Remember == nil {
		respond.Error(writer, request, validate.RequiredError("remember", "This field is required"))
		return
	}

	if err := session.Controller.SetRemember(*input.Remember); err != nil {
		respond.Error(writer, request, toAppError(err))
		return
	}

	respond.OK(writer, viewOf(session))
}

// toggleSecretVisibility handles POST /api/v1/login/sessions/{sessionID}/secret-visibility.
func (handler *Handler) toggleSecretVisibility(writer http.ResponseWriter, request *http.Request) {
	session := sessionFrom(request)

	if _, err := session.Controller.TogglePasswordVisibility(); err != nil {
		respond.Error(writer, request, toAppError(err))
		return
	}

	respond.OK(writer, viewOf(session))
}

/*
submit validates the form and signs in.

POST /api/v1/login/sessions/{sessionID}/submit

Description: Blocks for the simulated latency. The response carries the
resolution and the page view after it.

Response:
  - 200: submitView: Signed in, redirect scheduled
  - 400: VALIDATION_ERROR: A field blocks submission (details per field)
  - 401: UNAUTHORIZED: The backend rejected the credentials
  - 409: CONFLICT: A submission is already in flight, or the session is complete
*/
func (handler *Handler) submit(writer http.ResponseWriter, request *http.Request) {
	session := sessionFrom(request)

	result, err := session.Controller.Submit(request.Context())
	if err != nil {
		respond.Error(writer, request, toAppError(err))
		return
	}

	view := submitView{sessionView: viewOf(session), Result: result}

	switch result.Outcome {
	case OutcomeBlocked:
		validator := &validate.Validator{}
		for _, field := range Fields {
			status := view.Form.Fields[field]
			validator.Custom(string(field), status.Blocking(), status.Message)
		}
		respond.ErrorWithData(writer, request, validator.ErrWithMessage(result.Message), view)

	case OutcomeFailed:
		respond.ErrorWithData(writer, request, apperr.Unauthorized(result.Message), view)

	default:
		respond.OK(writer, view)
	}
}

// socialLogin handles POST /api/v1/login/sessions/{sessionID}/social/{platform}.
func (handler *Handler) socialLogin(writer http.ResponseWriter, request *http.Request) {
	session := sessionFrom(request)
	platform := ParsePlatform(requestutil.Param(request, "platform"))

	if err := session.Controller.SocialLogin(request.Context(), platform); err != nil {
		respond.Error(writer, request, toAppError(err))
		return
	}

	respond.OK(writer, viewOf(session))
}

// forgotPassword handles POST /api/v1/login/sessions/{sessionID}/forgot-password.
func (handler *Handler) forgotPassword(writer http.ResponseWriter, request *http.Request) {
	session := sessionFrom(request)

	if err := session.Controller.ForgotPassword(request.Context()); err != nil {
		respond.Error(writer, request, toAppError(err))
		return
	}

	respond.OK(writer, viewOf(session))
}

// signup handles POST /api/v1/login/sessions/{sessionID}/signup.
func (handler *Handler) signup(writer http.ResponseWriter, request *http.Request) {
	session := sessionFrom(request)

	if err := session.Controller.Signup(); err != nil {
		respond.Error(writer, request, toAppError(err))
		return
	}

	respond.OK(writer, viewOf(session))
}

// dismissNotification handles DELETE /api/v1/login/sessions/{sessionID}/notifications/{notificationID}.
func (handler *Handler) dismissNotification(writer http.ResponseWriter, request *http.Request) {
	session := sessionFrom(request)

	if !session.Notifications.Dismiss(requestutil.ID(request, "notificationID")) {
		respond.Error(writer, request, apperr.NotFound("Notification"))
		return
	}

	respond.NoContent(writer)
}

// # Helpers

func viewOf(session *Session) sessionView {
	return sessionView{
		ID:            session.ID,
		Form:          session.Controller.Snapshot(),
		Notifications: session.Notifications.Active(),
	}
}

// fieldParam validates the {field} path parameter.
func fieldParam(request *http.Request) (Field, error) {
	name := requestutil.Param(request, "field")

	validator := &validate.Validator{}
	validator.OneOf("field", name, string(FieldIdentifier), string(FieldSecret))
	if err := validator.Err(); err != nil {
		return "", err
	}

	field, _ := ParseField(name)
	return field, nil
}

// toAppError maps controller sentinels to HTTP errors.
func toAppError(err error) error {
	switch {
	case errors.Is(err, ErrSubmissionInFlight):
		return apperr.Conflict("A submission is already in progress").WithCause(err)
	case errors.Is(err, ErrSessionComplete):
		return apperr.Conflict("Already signed in").WithCause(err)
	case errors.Is(err, ErrInputsDisabled):
		return apperr.Conflict("The form is busy").WithCause(err)
	case errors.Is(err, ErrUnknownField):
		return apperr.ValidationError("Unknown field").WithCause(err)
	default:
		return err
	}
}
