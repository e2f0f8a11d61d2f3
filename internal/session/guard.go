package session

// Decision is the guard's verdict for a protected view.
type Decision int

const (
	// Wait means the stored session is still being resolved; show nothing yet.
	Wait Decision = iota
	// Allow means the protected view may render.
	Allow
	// RedirectLogin means there is no session; send the user to login.
	RedirectLogin
)

func (d Decision) String() string {
	switch d {
	case Wait:
		return "wait"
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect-login"
	default:
		return "unknown"
	}
}

// Guard decides access to protected views from the store's state.
type Guard struct {
	store *Store
}

// NewGuard creates a guard over the given store.
func NewGuard(store *Store) *Guard {
	return &Guard{store: store}
}

// Check maps the store state to a decision. While loading, the answer is
// Wait, never a premature redirect.
func (g *Guard) Check() Decision {
	switch g.store.State() {
	case StateLoading:
		return Wait
	case StateAuthenticated:
		return Allow
	default:
		return RedirectLogin
	}
}
