package rbac

import (
	"context"
	"sync"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	LoadPolicy(ctx context.Context) error
	Enforce(req EnforceRequest) (bool, error)
	ListPolicies() ([]PolicyResponse, error)
}

type service struct {
	repo     Repository
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   *zap.Logger
}

func NewService(repo Repository, enforcer *casbin.Enforcer, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	return &service{
		repo:     repo,
		enforcer: enforcer,
		logger:   l,
	}
}

// LoadPolicy replaces the in-memory policy with the role_permissions table,
// seeding DefaultPermissions on first run.
func (s *service) LoadPolicy(ctx context.Context) error {
	rows, err := s.repo.GetRolePermissions(ctx)
	if err != nil {
		s.logger.Error("failed to load role permissions", zap.Error(err))
		return err
	}
	if len(rows) == 0 {
		if err := s.repo.SeedDefaults(ctx, DefaultPermissions); err != nil {
			s.logger.Error("failed to seed role permissions", zap.Error(err))
			return err
		}
		rows = DefaultPermissions
		s.logger.Info("seeded default role permissions", zap.Int("count", len(rows)))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.enforcer.ClearPolicy()
	for _, rp := range rows {
		if _, err := s.enforcer.AddPolicy(rp.Role, rp.Resource, rp.Action); err != nil {
			return err
		}
	}

	s.logger.Info("rbac policy loaded", zap.Int("role_permissions", len(rows)))
	return nil
}

func (s *service) Enforce(req EnforceRequest) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	allowed, err := s.enforcer.Enforce(req.Role, req.Resource, req.Action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("employee_id", req.EmployeeID),
			zap.String("role", req.Role),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("employee_id", req.EmployeeID),
		zap.String("role", req.Role),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

func (s *service) ListPolicies() ([]PolicyResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	policies, err := s.enforcer.GetPolicy()
	if err != nil {
		return nil, err
	}

	resp := make([]PolicyResponse, 0, len(policies))
	for _, p := range policies {
		if len(p) < 3 {
			continue
		}
		resp = append(resp, PolicyResponse{Role: p[0], Resource: p[1], Action: p[2]})
	}
	return resp, nil
}
