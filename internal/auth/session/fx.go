package session

import "go.uber.org/fx"

// Module provides the cookie-backed session manager.
var Module = fx.Module("auth.session",
	fx.Provide(NewManager),
)
