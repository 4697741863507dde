package strategy

import (
	"github.com/wudi/edgeconfig/config"
	"github.com/wudi/edgeconfig/manifest"
)

var functionsStrategy = Strategy{
	Name: "functions",
	ToManifest: func(ctx *Context) error {
		if ctx.Config.Functions == nil {
			return nil
		}
		out := make([]manifest.Function, 0, len(ctx.Config.Functions))
		for _, f := range ctx.Config.Functions {
			args := f.Args
			if args == nil {
				args = map[string]any{}
			}
			out = append(out, manifest.Function{
				Name:          f.Name,
				Path:          f.Path,
				Args:          args,
				InitiatorType: "edge_application",
				Active:        boolOr(f.Active, true),
			})
		}
		ctx.Manifest.Functions = out
		return nil
	},
	ToConfig: func(ctx *Context) error {
		if ctx.Manifest.Functions == nil {
			return nil
		}
		out := make([]config.Function, 0, len(ctx.Manifest.Functions))
		for _, f := range ctx.Manifest.Functions {
			entry := config.Function{
				Name: f.Name,
				Path: f.Path,
			}
			if len(f.Args) > 0 {
				entry.Args = f.Args
			}
			if !f.Active {
				entry.Active = boolPtr(false)
			}
			out = append(out, entry)
		}
		ctx.Config.Functions = out
		return nil
	},
}
