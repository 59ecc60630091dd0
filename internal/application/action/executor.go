package action

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/orgdesk/backend/internal/domain/organization"
	"github.com/orgdesk/backend/internal/domain/shared"
	"github.com/orgdesk/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// MembershipChecker looks up the membership authorizing an actor
type MembershipChecker interface {
	Find(ctx context.Context, orgID, userID uuid.UUID) (*organization.Membership, error)
}

// Observer records the outcome of each action
type Observer interface {
	ObserveAction(ctx context.Context, action, status string, elapsed time.Duration)
}

// Scope is what a step sees once the actor is authorized
type Scope struct {
	Actor          *Actor
	OrganizationID uuid.UUID
	Role           organization.Role
	Logger         *zap.Logger
}

// Step is the persistence work of an action
type Step[T any] func(ctx context.Context, s Scope) (T, error)

// Op describes one invocation of the pipeline
type Op[T any] struct {
	// Name identifies the action in logs and metrics, e.g. client.create
	Name string
	// OrganizationID scopes the action; uuid.Nil skips the membership check
	OrganizationID uuid.UUID
	// MinRole is the lowest role allowed; empty means any member
	MinRole organization.Role
	// Input is sanitized and validated before the step runs
	Input any
	// Tags are invalidated after success, together with TagsFor(result)
	Tags    []string
	TagsFor func(T) []string
	// Public skips authentication
	Public bool
}

// Executor runs actions
type Executor struct {
	members   MembershipChecker
	cache     Cache
	validate  *validator.Validate
	sanitizer *Sanitizer
	observer  Observer
	events    shared.EventPublisher
	logger    *zap.Logger
}

// Option configures an Executor
type Option func(*Executor)

// WithCache sets the tag cache to invalidate
func WithCache(c Cache) Option {
	return func(e *Executor) { e.cache = c }
}

// WithObserver sets the action metrics observer
func WithObserver(o Observer) Option {
	return func(e *Executor) { e.observer = o }
}

// WithEvents sets the publisher domain events are handed to after a write
func WithEvents(p shared.EventPublisher) Option {
	return func(e *Executor) { e.events = p }
}

// WithLogger sets the fallback logger used when the context carries none
func WithLogger(l *zap.Logger) Option {
	return func(e *Executor) { e.logger = l }
}

// NewExecutor creates an Executor
func NewExecutor(members MembershipChecker, opts ...Option) *Executor {
	e := &Executor{
		members:   members,
		validate:  NewValidator(),
		sanitizer: NewSanitizer(),
		events:    shared.NopEventPublisher{},
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Cache returns the configured tag cache, possibly nil
func (e *Executor) Cache() Cache {
	return e.cache
}

// Validate sanitizes and validates input outside of a full pipeline run
func (e *Executor) Validate(input any) error {
	e.sanitizer.Struct(input)
	return e.validate.Struct(input)
}

// Publish hands the aggregate's pending events to the event bus and clears them.
// Publishing failures are logged; the write they describe has already happened.
func (e *Executor) Publish(ctx context.Context, aggregates ...shared.AggregateRoot) {
	for _, agg := range aggregates {
		events := agg.GetDomainEvents()
		agg.ClearDomainEvents()
		e.PublishEvents(ctx, events...)
	}
}

// PublishEvents hands standalone events, such as deletions, to the event bus
func (e *Executor) PublishEvents(ctx context.Context, events ...shared.DomainEvent) {
	if len(events) == 0 {
		return
	}
	if err := e.events.Publish(ctx, events...); err != nil {
		logger.FromContextOr(ctx, e.logger).Warn("event publish failed",
			zap.String("event_type", events[0].EventType()), zap.Error(err))
	}
}

// Execute runs op through the pipeline and returns its tagged result
func Execute[T any](ctx context.Context, e *Executor, op Op[T], step Step[T]) (res Result[T]) {
	start := time.Now()
	log := logger.FromContextOr(ctx, e.logger).With(zap.String("action", op.Name))

	defer func() {
		if r := recover(); r != nil {
			log.Error("action panicked", zap.Any("panic", r), zap.Stack("stack"))
			res = Fail[T](StatusError, "INTERNAL_ERROR", internalErrorMessage)
		}
		if e.observer != nil {
			e.observer.ObserveAction(ctx, op.Name, string(res.Status), time.Since(start))
		}
	}()

	actor := ActorFrom(ctx)
	if actor == nil && !op.Public {
		return Fail[T](StatusUnauthorized, shared.ErrUnauthorized.Code, shared.ErrUnauthorized.Message)
	}

	if actor != nil {
		ctx = logger.WithUserID(ctx, actor.UserID.String())
	}
	scope := Scope{Actor: actor, OrganizationID: op.OrganizationID, Logger: log}
	if op.OrganizationID != uuid.Nil {
		role, err := e.authorize(ctx, actor, op.OrganizationID, op.MinRole)
		if err != nil {
			r, expected := FromError[T](err)
			if !expected {
				log.Error("membership lookup failed", zap.Error(err))
			}
			return r
		}
		scope.Role = role
		ctx = logger.WithOrganizationID(ctx, op.OrganizationID.String())
		scope.Logger = log.With(zap.String("organization_id", op.OrganizationID.String()))
	}

	if op.Input != nil {
		if err := e.Validate(op.Input); err != nil {
			var invalid *validator.InvalidValidationError
			if errors.As(err, &invalid) {
				log.Error("input is not validatable", zap.Error(err))
				return Fail[T](StatusError, "INTERNAL_ERROR", internalErrorMessage)
			}
			r, _ := FromError[T](err)
			return r
		}
	}

	data, err := step(ctx, scope)
	if err != nil {
		r, expected := FromError[T](err)
		if expected {
			scope.Logger.Debug("action rejected", zap.String("code", r.Code), zap.Error(err))
		} else {
			scope.Logger.Error("action failed", zap.Error(err))
		}
		return r
	}

	tags := op.Tags
	if op.TagsFor != nil {
		tags = append(append([]string(nil), tags...), op.TagsFor(data)...)
	}
	e.invalidate(ctx, scope.Logger, tags)
	return Success(data)
}

// authorize resolves the actor's role in the organization. Non-members and
// members below minRole are FORBIDDEN; an unknown organization looks the same.
func (e *Executor) authorize(ctx context.Context, actor *Actor, orgID uuid.UUID, minRole organization.Role) (organization.Role, error) {
	if actor == nil {
		return "", shared.ErrUnauthorized
	}
	m, err := e.members.Find(ctx, orgID, actor.UserID)
	if errors.Is(err, shared.ErrNotFound) {
		return "", shared.ErrForbidden
	}
	if err != nil {
		return "", fmt.Errorf("find membership: %w", err)
	}
	if minRole != "" && !m.Role.AtLeast(minRole) {
		return "", shared.NewDomainError(shared.ErrForbidden.Code,
			fmt.Sprintf("This action requires the %s role", minRole))
	}
	return m.Role, nil
}

// invalidate drops cached entries after a successful write. Failures are logged, not returned.
func (e *Executor) invalidate(ctx context.Context, log *zap.Logger, tags []string) {
	if e.cache == nil || len(tags) == 0 {
		return
	}
	if err := e.cache.InvalidateTags(ctx, tags...); err != nil {
		log.Warn("cache invalidation failed", zap.Strings("tags", tags), zap.Error(err))
	}
}
