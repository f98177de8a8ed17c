package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pensacomp/lms-service/internal/auth"
	"github.com/pensacomp/lms-service/internal/cache"
	"github.com/pensacomp/lms-service/internal/events"
	"github.com/pensacomp/lms-service/internal/mail"
	"github.com/pensacomp/lms-service/internal/repositories"
	"github.com/pensacomp/lms-service/internal/validator"
)

// ServiceManager wires and exposes all application services.
type ServiceManager interface {
	User() UserService
	Course() CourseService
	Order() OrderService
	Post() PostService
	Report() ReportService

	Sessions() *cache.SessionStore

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// ServiceManagerDeps holds everything the services need.
type ServiceManagerDeps struct {
	Repo      repositories.Repository
	Tokens    *auth.TokenManager
	Sessions  *cache.SessionStore
	Courses   *cache.CourseStore
	Mailer    mail.Mailer
	Publisher events.EventPublisher
	Logger    *slog.Logger
	Validator *validator.Validator
}

type serviceManager struct {
	deps ServiceManagerDeps

	userService   UserService
	courseService CourseService
	orderService  OrderService
	postService   PostService
	reportService ReportService

	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

func NewServiceManager(deps ServiceManagerDeps) ServiceManager {
	return &serviceManager{deps: deps}
}

// Initialize sets up all services and their dependencies
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if sm.deps.Repo == nil {
		return fmt.Errorf("repository is required")
	}

	d := sm.deps
	sm.userService = NewUserService(d.Repo, d.Tokens, d.Sessions, d.Mailer, d.Publisher, d.Logger, d.Validator)
	sm.courseService = NewCourseService(d.Repo, d.Courses, d.Mailer, d.Publisher, d.Logger, d.Validator)
	sm.orderService = NewOrderService(d.Repo, d.Sessions, d.Mailer, d.Publisher, d.Logger, d.Validator)
	sm.postService = NewPostService(d.Repo, d.Logger, d.Validator)
	sm.reportService = NewReportService(d.Repo, d.Logger)

	sm.initialized = true
	sm.deps.Logger.Info("service manager initialized")

	return nil
}

func (sm *serviceManager) User() UserService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.userService
}

func (sm *serviceManager) Course() CourseService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.courseService
}

func (sm *serviceManager) Order() OrderService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.orderService
}

func (sm *serviceManager) Post() PostService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.postService
}

func (sm *serviceManager) Report() ReportService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}
	return sm.reportService
}

func (sm *serviceManager) Sessions() *cache.SessionStore {
	return sm.deps.Sessions
}

func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}
	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}

	return sm.deps.Repo.Ping(ctx)
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.deps.Logger.Info("shutting down service manager")

	if sm.deps.Publisher != nil {
		if err := sm.deps.Publisher.Close(); err != nil {
			sm.deps.Logger.Error("failed to close event publisher", "error", err)
		}
	}

	if err := sm.deps.Repo.Close(); err != nil {
		sm.deps.Logger.Error("failed to close repository", "error", err)
	}

	sm.shutdown = true
	sm.deps.Logger.Info("service manager shut down completed")

	return nil
}
