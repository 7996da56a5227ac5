package config

import "go.uber.org/fx"

var Module = fx.Module("config", fx.Provide(
	// The process environment is the sole ambient configuration source.
	// Providing it as an Environ lets command tests substitute a fixed map.
	func() Environ {
		return OSEnviron()
	},
))
