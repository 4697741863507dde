package strategy

import (
	"fmt"
	"strings"

	"github.com/wudi/edgeconfig/config"
	"github.com/wudi/edgeconfig/manifest"
)

var purgeTypes = map[string]bool{"url": true, "cachekey": true, "wildcard": true}

var purgeStrategy = Strategy{
	Name: "purge",
	ToManifest: func(ctx *Context) error {
		if ctx.Config.Purge == nil {
			return nil
		}
		out := make([]manifest.Purge, 0, len(ctx.Config.Purge))
		for _, p := range ctx.Config.Purge {
			entry, err := purgeToManifest(p)
			if err != nil {
				return err
			}
			out = append(out, entry)
		}
		ctx.Manifest.Purge = out
		return nil
	},
	ToConfig: func(ctx *Context) error {
		if ctx.Manifest.Purge == nil {
			return nil
		}
		out := make([]config.Purge, 0, len(ctx.Manifest.Purge))
		for _, p := range ctx.Manifest.Purge {
			out = append(out, config.Purge{
				Type:   p.Type,
				URLs:   p.URLs,
				Method: p.Method,
				Layer:  p.Layer,
			})
		}
		ctx.Config.Purge = out
		return nil
	},
}

func purgeToManifest(p config.Purge) (manifest.Purge, error) {
	if !purgeTypes[p.Type] {
		return manifest.Purge{}, fmt.Errorf("purge: unsupported purge type %q", p.Type)
	}
	for _, u := range p.URLs {
		if !strings.Contains(u, "http://") && !strings.Contains(u, "https://") {
			return manifest.Purge{}, fmt.Errorf("purge: url %q must include the protocol (http:// or https://)", u)
		}
		if p.Type == "wildcard" && !strings.Contains(u, "*") {
			return manifest.Purge{}, fmt.Errorf("purge: wildcard url %q must contain a wildcard character", u)
		}
	}
	entry := manifest.Purge{
		Type:   p.Type,
		URLs:   emptyIfNil(p.URLs),
		Method: stringOr(p.Method, "delete"),
	}
	// Layer only applies to cache key purges.
	if p.Type == "cachekey" {
		entry.Layer = stringOr(p.Layer, "edge_caching")
	}
	return entry, nil
}
