package permissions_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"oasis/permissions"
	"oasis/shared/constant"
)

func TestGet(t *testing.T) {
	data := permissions.Get()

	assert.NotNil(t, data)
	assert.False(t, data.Skip)
	assert.NotEmpty(t, data.Endpoints)
}

func TestPermissionData_FindPermissions(t *testing.T) {
	data := permissions.Get()
	assert.NotNil(t, data)

	tests := []struct {
		name        string
		path        string
		method      string
		wantSkip    bool
		wantRoles   []string
		wantMissing bool
	}{
		{
			name:     "login is public",
			path:     "/v1/auth/login",
			method:   "POST",
			wantSkip: true,
		},
		{
			name:     "cabin listing is public",
			path:     "/v1/cabins",
			method:   "GET",
			wantSkip: true,
		},
		{
			name:      "cabin creation is admin only",
			path:      "/v1/cabins",
			method:    "POST",
			wantRoles: []string{constant.RoleAdmin},
		},
		{
			name:      "booking creation is open to both roles",
			path:      "/v1/bookings",
			method:    "POST",
			wantRoles: []string{constant.RoleAdmin, constant.RoleUser},
		},
		{
			name:      "booking status change is admin only",
			path:      "/v1/bookings/{id}/status",
			method:    "PATCH",
			wantRoles: []string{constant.RoleAdmin},
		},
		{
			name:      "payment verification is open to both roles",
			path:      "/v1/payments/verify",
			method:    "GET",
			wantRoles: []string{constant.RoleAdmin, constant.RoleUser},
		},
		{
			name:      "user administration is admin only",
			path:      "/v1/users",
			method:    "GET",
			wantRoles: []string{constant.RoleAdmin},
		},
		{
			name:        "unknown endpoint yields no match",
			path:        "/v1/unknown",
			method:      "GET",
			wantMissing: true,
		},
		{
			name:        "method must match as well",
			path:        "/v1/cabins",
			method:      "PUT",
			wantMissing: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			perm := data.FindPermissions(tt.path, tt.method)

			if tt.wantMissing {
				assert.Empty(t, perm.Path)

				return
			}

			assert.Equal(t, tt.path, perm.Path)
			assert.Equal(t, tt.wantSkip, perm.Skip)

			if tt.wantRoles != nil {
				assert.ElementsMatch(t, tt.wantRoles, perm.Permissions)
			}
		})
	}
}
