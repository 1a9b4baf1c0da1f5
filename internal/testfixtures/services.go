package testfixtures

import (
	"log/slog"
	"time"

	"github.com/example/workout-tracker/internal/application"
	"github.com/example/workout-tracker/internal/persistence"
)

// ServiceFactory assists tests with constructing application services using
// deterministic identifiers and clocks.
type ServiceFactory struct {
	Clock          *Clock
	IDGenerator    *IDGenerator
	TokenGenerator *IDGenerator
}

// ServiceFactoryOption configures a ServiceFactory instance.
type ServiceFactoryOption func(*ServiceFactory)

// NewServiceFactory constructs a ServiceFactory with defaults.
func NewServiceFactory(opts ...ServiceFactoryOption) *ServiceFactory {
	factory := &ServiceFactory{
		Clock:          NewClock(time.Time{}),
		IDGenerator:    NewIDGenerator("id"),
		TokenGenerator: NewIDGenerator("token"),
	}
	for _, opt := range opts {
		opt(factory)
	}
	if factory.Clock == nil {
		factory.Clock = NewClock(time.Time{})
	}
	if factory.IDGenerator == nil {
		factory.IDGenerator = NewIDGenerator("id")
	}
	if factory.TokenGenerator == nil {
		factory.TokenGenerator = NewIDGenerator("token")
	}
	return factory
}

// WithClock overrides the clock used by the factory.
func WithClock(clock *Clock) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.Clock = clock
	}
}

// WithIDGenerator overrides the identifier generator used by the factory.
func WithIDGenerator(generator *IDGenerator) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.IDGenerator = generator
	}
}

// AuthServiceDeps captures dependencies for constructing an auth service.
type AuthServiceDeps struct {
	Users          persistence.UserRepository
	Sessions       persistence.SessionRepository
	Verify         application.PasswordVerifier
	Hash           application.PasswordHasher
	IDGenerator    func() string
	TokenGenerator func() string
	Now            func() time.Time
	SessionTTL     time.Duration
	Logger         *slog.Logger
}

// NewAuthService builds an auth service using the supplied dependencies
// combined with the factory defaults. Unless overridden, password hashing and
// verification use a plain-text scheme to keep tests fast.
func (f *ServiceFactory) NewAuthService(deps AuthServiceDeps) *application.AuthService {
	idGen := deps.IDGenerator
	if idGen == nil {
		idGen = f.IDGenerator.NextFunc()
	}
	tokenGen := deps.TokenGenerator
	if tokenGen == nil {
		tokenGen = f.TokenGenerator.NextFunc()
	}
	now := deps.Now
	if now == nil {
		now = f.Clock.NowFunc()
	}
	verify := deps.Verify
	if verify == nil {
		verify = PlainPasswordVerifier
	}
	hash := deps.Hash
	if hash == nil {
		hash = PlainPasswordHasher
	}
	ttl := deps.SessionTTL
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	return application.NewAuthServiceWithLogger(
		deps.Users,
		deps.Sessions,
		verify,
		hash,
		idGen,
		tokenGen,
		now,
		ttl,
		deps.Logger,
	)
}

// WorkoutServiceDeps captures dependencies for constructing a workout service.
type WorkoutServiceDeps struct {
	Workouts    persistence.WorkoutRepository
	IDGenerator func() string
	Now         func() time.Time
	Logger      *slog.Logger
}

// NewWorkoutService builds a workout service using the supplied dependencies
// combined with the factory defaults.
func (f *ServiceFactory) NewWorkoutService(deps WorkoutServiceDeps) *application.WorkoutService {
	idGen := deps.IDGenerator
	if idGen == nil {
		idGen = f.IDGenerator.NextFunc()
	}
	now := deps.Now
	if now == nil {
		now = f.Clock.NowFunc()
	}
	return application.NewWorkoutServiceWithLogger(
		deps.Workouts,
		idGen,
		now,
		deps.Logger,
	)
}

// PlainPasswordHasher stores passwords verbatim. Tests that do not exercise
// the argon2id scheme use it to avoid the hashing cost.
func PlainPasswordHasher(password string) (string, error) {
	return password, nil
}

// PlainPasswordVerifier compares passwords stored by PlainPasswordHasher.
func PlainPasswordVerifier(hash, password string) error {
	if hash != password {
		return application.ErrInvalidCredentials
	}
	return nil
}
