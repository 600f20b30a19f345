package billinglog

import "go.uber.org/fx"

// Module exposes the billing event log service via Fx.
var Module = fx.Options(
	fx.Provide(New),
)
