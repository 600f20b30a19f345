package affiliate

import "go.uber.org/fx"

// Module exposes the affiliate service via Fx.
var Module = fx.Options(
	fx.Provide(NewService),
)
