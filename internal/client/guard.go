package client

// Route names a navigable screen of the client.
type Route string

const (
	// RouteAuth is the sign-in and registration screen, the app's root.
	RouteAuth Route = "/"
	// RouteWelcome is the workflow entry point after authentication.
	RouteWelcome Route = "/welcome"
	// RoutePrompt is the daily did-you-work-out question.
	RoutePrompt Route = "/prompt"
	// RouteCalendar is the month calendar with streak statistics.
	RouteCalendar Route = "/calendar"
)

// sessionReader is the slice of the session store the guard consults.
type sessionReader interface {
	IsAuthenticated() bool
}

// Guard decides, per navigation attempt, whether the requested route may be
// entered or where to redirect instead. It is a pure predicate over the
// session store and holds no state of its own.
type Guard struct {
	sessions sessionReader
}

// NewGuard constructs a Guard over the given session store.
func NewGuard(sessions sessionReader) *Guard {
	return &Guard{sessions: sessions}
}

// Resolve maps a requested route to the route that should actually render.
// Protected routes require authentication and fall back to the auth root.
// The auth route, when already authenticated, redirects forward to the
// workflow entry point so a signed-in user cannot loop back into sign-in.
// Unknown routes resolve to the auth root.
func (g *Guard) Resolve(requested Route) Route {
	authenticated := g.sessions.IsAuthenticated()

	switch requested {
	case RouteAuth:
		if authenticated {
			return RouteWelcome
		}
		return RouteAuth
	case RouteWelcome, RoutePrompt, RouteCalendar:
		if !authenticated {
			return RouteAuth
		}
		return requested
	default:
		return RouteAuth
	}
}
