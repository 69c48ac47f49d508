package auth

import (
	"testing"

	"github.com/spec-kit/account-gateway/internal/domain"
)

func user(id string, role domain.Role) *domain.User {
	return &domain.User{ID: id, Role: role}
}

func TestCanChangeRole(t *testing.T) {
	cases := []struct {
		name   string
		actor  *domain.User
		target *domain.User
		want   bool
	}{
		{"superadmin on other user", user("s1", domain.RoleSuperadmin), user("u1", domain.RoleUser), true},
		{"superadmin on other admin", user("s1", domain.RoleSuperadmin), user("a1", domain.RoleAdmin), true},
		{"superadmin on other superadmin", user("s1", domain.RoleSuperadmin), user("s2", domain.RoleSuperadmin), true},
		{"superadmin on self", user("s1", domain.RoleSuperadmin), user("s1", domain.RoleSuperadmin), false},
		{"admin on plain user", user("a1", domain.RoleAdmin), user("u1", domain.RoleUser), true},
		{"admin on admin", user("a1", domain.RoleAdmin), user("a2", domain.RoleAdmin), false},
		{"admin on superadmin", user("a1", domain.RoleAdmin), user("s1", domain.RoleSuperadmin), false},
		{"admin on self", user("a1", domain.RoleAdmin), user("a1", domain.RoleAdmin), false},
		{"plain user on anyone", user("u1", domain.RoleUser), user("u2", domain.RoleUser), false},
		{"nil actor", nil, user("u1", domain.RoleUser), false},
	}

	for _, tc := range cases {
		if got := CanChangeRole(tc.actor, tc.target); got != tc.want {
			t.Fatalf("%s: CanChangeRole = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestAvailableRoles(t *testing.T) {
	superadmin := user("s1", domain.RoleSuperadmin)
	admin := user("a1", domain.RoleAdmin)
	plain := user("u1", domain.RoleUser)

	got := AvailableRoles(superadmin, plain)
	want := []domain.Role{domain.RoleUser, domain.RoleAdmin, domain.RoleSuperadmin}
	assertRoles(t, got, want)

	got = AvailableRoles(admin, plain)
	assertRoles(t, got, []domain.Role{domain.RoleUser, domain.RoleAdmin})
	for _, r := range got {
		if r == domain.RoleSuperadmin {
			t.Fatalf("admin must never be offered superadmin")
		}
	}

	// No change possible: the set collapses to the target's current role.
	assertRoles(t, AvailableRoles(admin, user("a2", domain.RoleAdmin)), []domain.Role{domain.RoleAdmin})
	assertRoles(t, AvailableRoles(plain, user("u2", domain.RoleUser)), []domain.Role{domain.RoleUser})
}

func TestCanDelete(t *testing.T) {
	superadmin := user("s1", domain.RoleSuperadmin)

	if !CanDelete(superadmin, user("u1", domain.RoleUser)) {
		t.Fatalf("superadmin should delete plain user")
	}
	if !CanDelete(superadmin, user("s2", domain.RoleSuperadmin)) {
		t.Fatalf("superadmin should delete other superadmin")
	}
	if CanDelete(superadmin, superadmin) {
		t.Fatalf("superadmin must not delete self")
	}

	// Admins can never delete, regardless of target.
	admin := user("a1", domain.RoleAdmin)
	for _, target := range []*domain.User{
		user("u1", domain.RoleUser),
		user("a2", domain.RoleAdmin),
		user("s1", domain.RoleSuperadmin),
	} {
		if CanDelete(admin, target) {
			t.Fatalf("admin deleted %s", target.ID)
		}
	}
	if CanDelete(user("u1", domain.RoleUser), user("u2", domain.RoleUser)) {
		t.Fatalf("plain user must not delete")
	}
}

func TestRoleAssignable(t *testing.T) {
	admin := user("a1", domain.RoleAdmin)
	plain := user("u1", domain.RoleUser)

	if !RoleAssignable(admin, plain, domain.RoleAdmin) {
		t.Fatalf("admin should be able to promote user to admin")
	}
	if RoleAssignable(admin, plain, domain.RoleSuperadmin) {
		t.Fatalf("admin must not grant superadmin")
	}
}

func assertRoles(t *testing.T, got, want []domain.Role) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("roles = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("roles = %v, want %v", got, want)
		}
	}
}
