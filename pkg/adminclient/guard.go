package adminclient

// Action is what the navigation layer should do for the current state.
type Action int

const (
	// ActionShowLoading suspends navigation while validation runs.
	ActionShowLoading Action = iota
	// ActionRedirectLogin sends the operator to the login view.
	ActionRedirectLogin
	// ActionRenderProtected renders the admin subtree.
	ActionRenderProtected
)

// Decision is the route guard's verdict. ClearCredential instructs the
// caller to drop the stored credential before redirecting; Message is
// operator-facing copy, empty when nothing should be shown.
type Decision struct {
	Action          Action
	ClearCredential bool
	Message         string
}

// Decide is a pure function of the auth state. While validating it
// holds navigation; a logged-in but non-admin identity is redirected
// with its credential cleared and no error shown, since the admin app
// is admin-only.
func Decide(state State) Decision {
	switch state.Status {
	case StatusValidating:
		return Decision{Action: ActionShowLoading}
	case StatusAuthenticated:
		if state.Identity == nil || !state.Identity.IsAdmin {
			return Decision{Action: ActionRedirectLogin, ClearCredential: true}
		}
		return Decision{Action: ActionRenderProtected}
	case StatusRejected:
		return Decision{Action: ActionRedirectLogin, Message: UserMessage(state.LastKind)}
	default:
		return Decision{Action: ActionRedirectLogin}
	}
}

// ApplyGuard evaluates the guard against the session's current state
// and applies any credential clearing it mandates.
func (s *Session) ApplyGuard() Decision {
	decision := Decide(s.store.Snapshot())
	if decision.ClearCredential {
		_ = s.storage.Clear()
		s.store.toAnonymous()
	}
	return decision
}
