package rbac

import (
	"context"
	"errors"
	"testing"

	"go-attendance/internal/rbac/infra"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	rows    []RolePermission
	seeded  []RolePermission
	loadErr error
}

func (f *fakeRepo) GetRolePermissions(ctx context.Context) ([]RolePermission, error) {
	return f.rows, f.loadErr
}

func (f *fakeRepo) SeedDefaults(ctx context.Context, rows []RolePermission) error {
	f.seeded = rows
	return nil
}

func newTestService(t *testing.T, repo Repository) Service {
	enforcer, err := infra.NewEnforcer("")
	require.NoError(t, err)
	return NewService(repo, enforcer)
}

func TestRBACService_Enforce(t *testing.T) {
	repo := &fakeRepo{rows: []RolePermission{
		{Role: "admin", Resource: Wildcard, Action: Wildcard},
		{Role: "employee", Resource: "leave", Action: "create"},
	}}
	svc := newTestService(t, repo)
	require.NoError(t, svc.LoadPolicy(context.Background()))

	t.Run("employee allowed", func(t *testing.T) {
		ok, err := svc.Enforce(EnforceRequest{EmployeeID: "3", Role: "employee", Resource: "leave", Action: "create"})
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("employee denied", func(t *testing.T) {
		ok, err := svc.Enforce(EnforceRequest{EmployeeID: "3", Role: "employee", Resource: "leave", Action: "approve"})
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("admin wildcard", func(t *testing.T) {
		ok, err := svc.Enforce(EnforceRequest{EmployeeID: "1", Role: "admin", Resource: "holiday", Action: "delete"})
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("unknown role", func(t *testing.T) {
		ok, err := svc.Enforce(EnforceRequest{EmployeeID: "9", Role: "guest", Resource: "leave", Action: "read"})
		assert.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestRBACService_LoadPolicy_SeedsDefaults(t *testing.T) {
	repo := &fakeRepo{}
	svc := newTestService(t, repo)

	require.NoError(t, svc.LoadPolicy(context.Background()))
	assert.Equal(t, DefaultPermissions, repo.seeded)

	policies, err := svc.ListPolicies()
	assert.NoError(t, err)
	assert.Len(t, policies, len(DefaultPermissions))

	ok, err := svc.Enforce(EnforceRequest{Role: "employee", Resource: "attendance", Action: "create"})
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestRBACService_LoadPolicy_Error(t *testing.T) {
	repo := &fakeRepo{loadErr: errors.New("db down")}
	svc := newTestService(t, repo)

	err := svc.LoadPolicy(context.Background())
	assert.EqualError(t, err, "db down")
}
