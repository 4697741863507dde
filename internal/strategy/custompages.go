package strategy

import (
	"fmt"

	"github.com/wudi/edgeconfig/config"
	"github.com/wudi/edgeconfig/manifest"
)

var customPagesStrategy = Strategy{
	Name: "customPages",
	ToManifest: func(ctx *Context) error {
		if ctx.Config.CustomPages == nil {
			return nil
		}
		connectors := make(map[string]bool, len(ctx.Config.Connectors))
		for _, c := range ctx.Config.Connectors {
			connectors[c.Name] = true
		}

		out := make([]manifest.CustomPage, 0, len(ctx.Config.CustomPages))
		for _, cp := range ctx.Config.CustomPages {
			entry := manifest.CustomPage{
				Name:   cp.Name,
				Active: boolOr(cp.Active, true),
			}
			for _, p := range cp.Pages {
				page, err := pageToManifest(cp.Name, p, connectors)
				if err != nil {
					return err
				}
				entry.Pages = append(entry.Pages, page)
			}
			out = append(out, entry)
		}
		ctx.Manifest.CustomPages = out
		return nil
	},
	ToConfig: func(ctx *Context) error {
		if ctx.Manifest.CustomPages == nil {
			return nil
		}
		out := make([]config.CustomPage, 0, len(ctx.Manifest.CustomPages))
		for _, cp := range ctx.Manifest.CustomPages {
			entry := config.CustomPage{Name: cp.Name}
			if !cp.Active {
				entry.Active = boolPtr(false)
			}
			for _, p := range cp.Pages {
				page := config.Page{
					Code: p.Code,
					Page: config.PageSettings{
						Connector:        p.Page.Connector,
						CustomStatusCode: p.Page.CustomStatusCode,
					},
				}
				if p.Page.TTL != 0 {
					page.Page.TTL = intPtr(p.Page.TTL)
				}
				if p.Page.URI != nil {
					page.Page.URI = *p.Page.URI
				}
				entry.Pages = append(entry.Pages, page)
			}
			out = append(out, entry)
		}
		ctx.Config.CustomPages = out
		return nil
	},
}

// pageToManifest validates connector references by name; numeric
// references are assumed pre-resolved IDs and pass through.
func pageToManifest(pageSet string, p config.Page, connectors map[string]bool) (manifest.Page, error) {
	if name, ok := p.Page.Connector.(string); ok && !connectors[name] {
		return manifest.Page{}, fmt.Errorf("custom page %q (code %q): connector %q is not defined in the connectors section", pageSet, p.Code, name)
	}
	settings := manifest.PageSettings{
		Type:             "page_connector",
		Connector:        p.Page.Connector,
		TTL:              0,
		URI:              nil,
		CustomStatusCode: p.Page.CustomStatusCode,
	}
	if p.Page.TTL != nil {
		settings.TTL = *p.Page.TTL
	}
	if p.Page.URI != "" {
		uri := p.Page.URI
		settings.URI = &uri
	}
	return manifest.Page{Code: p.Code, Page: settings}, nil
}
