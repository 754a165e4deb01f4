package guard

import (
	"github.com/hacklens/hacklens-go/internal/identity"
)

// AuthRoute is where every rejected navigation lands. The platform does not
// distinguish "forbidden but authenticated" from "unauthenticated"; both
// route back to authentication.
const AuthRoute = "/auth"

// Decision is the outcome of a navigation check. Zero network I/O goes into
// producing one, so it is safe to evaluate on every render of a protected
// view.
type Decision struct {
	Allowed  bool
	Redirect string
}

var allow = Decision{Allowed: true}

func redirect(target string) Decision {
	return Decision{Redirect: target}
}

// Authorize gates a view that requires a specific role. Anonymous users and
// role mismatches are redirected to authentication.
func Authorize(id *identity.Identity, required identity.Role) Decision {
	if id == nil {
		return redirect(AuthRoute)
	}
	if id.Role != required {
		return redirect(AuthRoute)
	}
	return allow
}

// AuthorizeAny gates a view that only requires a signed-in user.
func AuthorizeAny(id *identity.Identity) Decision {
	if id == nil {
		return redirect(AuthRoute)
	}
	return allow
}

// LandingRoute maps each role to its post-login dashboard.
func LandingRoute(role identity.Role) string {
	switch role {
	case identity.RoleParticipant:
		return "/participant-dashboard"
	case identity.RoleJudge:
		return "/judge-dashboard"
	case identity.RoleAdmin:
		return "/admin"
	}
	return AuthRoute
}
