package adminclient

import "testing"

func TestDecide(t *testing.T) {
	admin := adminIdentity()
	reader := Identity{ID: "u2", IsActive: true, IsAdmin: false}

	tests := []struct {
		name      string
		state     State
		want      Action
		wantClear bool
		wantMsg   string
	}{
		{
			name:  "validating holds navigation",
			state: State{Status: StatusValidating},
			want:  ActionShowLoading,
		},
		{
			name:  "anonymous redirects",
			state: State{Status: StatusAnonymous},
			want:  ActionRedirectLogin,
		},
		{
			name:    "rejected redirects with message",
			state:   State{Status: StatusRejected, LastKind: KindTokenExpired},
			want:    ActionRedirectLogin,
			wantMsg: "Please log in again.",
		},
		{
			name:    "rejected admin-required shows access denied",
			state:   State{Status: StatusRejected, LastKind: KindAdminRequired},
			want:    ActionRedirectLogin,
			wantMsg: "Access denied.",
		},
		{
			name:  "authenticated admin renders",
			state: State{Status: StatusAuthenticated, Identity: &admin, Credential: "t"},
			want:  ActionRenderProtected,
		},
		{
			name:      "authenticated non-admin clears and redirects silently",
			state:     State{Status: StatusAuthenticated, Identity: &reader, Credential: "t"},
			want:      ActionRedirectLogin,
			wantClear: true,
		},
		{
			name:      "authenticated without identity clears and redirects",
			state:     State{Status: StatusAuthenticated, Credential: "t"},
			want:      ActionRedirectLogin,
			wantClear: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := Decide(tt.state)
			if decision.Action != tt.want {
				t.Errorf("action = %v, want %v", decision.Action, tt.want)
			}
			if decision.ClearCredential != tt.wantClear {
				t.Errorf("clear = %v, want %v", decision.ClearCredential, tt.wantClear)
			}
			if decision.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", decision.Message, tt.wantMsg)
			}
		})
	}
}
