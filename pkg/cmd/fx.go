package cmd

import "go.uber.org/fx"

var Module = fx.Module("cli",
	fx.Provide(
		fx.Annotate(execCmd, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(infoCmd, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(specCmd, fx.ResultTags(`group:"commands"`)),
		fx.Annotate(tileCmd, fx.ResultTags(`group:"commands"`)),
	),
	fx.Invoke(Run),
)
