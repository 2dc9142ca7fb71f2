package rbac

import (
	"testing"

	"go-payroll/internal/rbac/infra"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testModel = `[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

func newTestService(t *testing.T) Service {
	t.Helper()

	enforcer, err := infra.NewEnforcerFromText(testModel,
		[][]string{
			{RoleEmployee, "leave", "apply"},
			{RoleHR, "payroll", "process"},
			{RoleAdmin, "payroll", "pay"},
		},
		[][]string{
			{RoleHR, RoleEmployee},
			{RoleAdmin, RoleHR},
		},
	)
	require.NoError(t, err)

	return NewService(enforcer)
}

func TestRBACService_Enforce(t *testing.T) {
	svc := newTestService(t)

	cases := []struct {
		name    string
		role    string
		obj     string
		act     string
		allowed bool
	}{
		{"employee applies leave", RoleEmployee, "leave", "apply", true},
		{"employee cannot process payroll", RoleEmployee, "payroll", "process", false},
		{"hr inherits employee", RoleHR, "leave", "apply", true},
		{"hr cannot pay", RoleHR, "payroll", "pay", false},
		{"admin inherits hr", RoleAdmin, "payroll", "process", true},
		{"admin pays", RoleAdmin, "payroll", "pay", true},
		{"missing role", "", "leave", "apply", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			allowed, err := svc.Authorize(tc.role, tc.obj, tc.act)
			assert.NoError(t, err)
			assert.Equal(t, tc.allowed, allowed)
		})
	}
}

func TestRBACService_PermissionsForRole(t *testing.T) {
	svc := newTestService(t)

	perms, err := svc.PermissionsForRole(RoleHR)
	require.NoError(t, err)

	assert.ElementsMatch(t, []PermissionResponse{
		{Resource: "payroll", Action: "process"},
		{Resource: "leave", Action: "apply"},
	}, perms)
}
