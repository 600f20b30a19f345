package content

import "go.uber.org/fx"

// Module exposes the content service via Fx.
var Module = fx.Options(
	fx.Provide(NewService),
)
