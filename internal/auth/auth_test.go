package auth

import "testing"

func TestCurrent(t *testing.T) {
	u := Current("ana", "admin")
	if u.Name != "ana" || u.Role != RoleAdmin {
		t.Errorf("got %+v", u)
	}
	u = Current("", "bogus")
	if u.Name == "" {
		t.Error("name should fall back to the OS account or anonymous")
	}
	if u.Role != RoleAuthor {
		t.Errorf("invalid role should fall back to author, got %q", u.Role)
	}
}

func TestCanImport(t *testing.T) {
	for _, tc := range []struct {
		role Role
		want bool
	}{
		{RoleAuthor, true},
		{RoleAdmin, true},
		{RoleViewer, false},
		{Role("x"), false},
	} {
		if got := tc.role.CanImport(); got != tc.want {
			t.Errorf("%q.CanImport() = %v, want %v", tc.role, got, tc.want)
		}
	}
}
