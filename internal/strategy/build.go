package strategy

// The build blob is opaque to the pipeline: copied verbatim in both
// directions, never interpreted.
var buildStrategy = Strategy{
	Name: "build",
	ToManifest: func(ctx *Context) error {
		ctx.Manifest.Name = ctx.Config.Name
		if len(ctx.Config.Build) == 0 {
			return nil
		}
		out := make(map[string]any, len(ctx.Config.Build))
		for k, v := range ctx.Config.Build {
			out[k] = v
		}
		ctx.Manifest.Build = out
		return nil
	},
	ToConfig: func(ctx *Context) error {
		ctx.Config.Name = ctx.Manifest.Name
		if len(ctx.Manifest.Build) == 0 {
			return nil
		}
		out := make(map[string]any, len(ctx.Manifest.Build))
		for k, v := range ctx.Manifest.Build {
			out[k] = v
		}
		ctx.Config.Build = out
		return nil
	},
}
