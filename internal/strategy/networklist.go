package strategy

import (
	"fmt"

	"github.com/wudi/edgeconfig/config"
	"github.com/wudi/edgeconfig/manifest"
)

var networkListTypes = map[string]bool{"ip_cidr": true, "asn": true, "countries": true}

var networkListStrategy = Strategy{
	Name: "networkList",
	ToManifest: func(ctx *Context) error {
		if ctx.Config.NetworkList == nil {
			return nil
		}
		out := make([]manifest.NetworkList, 0, len(ctx.Config.NetworkList))
		for _, nl := range ctx.Config.NetworkList {
			if !networkListTypes[nl.ListType] {
				return fmt.Errorf("networkList: unsupported list type %q", nl.ListType)
			}
			items := nl.ListContent
			if items == nil {
				items = []any{}
			}
			out = append(out, manifest.NetworkList{
				ID:          nl.ID,
				ListType:    nl.ListType,
				ItemsValues: items,
			})
		}
		ctx.Manifest.NetworkList = out
		return nil
	},
	ToConfig: func(ctx *Context) error {
		if ctx.Manifest.NetworkList == nil {
			return nil
		}
		out := make([]config.NetworkList, 0, len(ctx.Manifest.NetworkList))
		for _, nl := range ctx.Manifest.NetworkList {
			out = append(out, config.NetworkList{
				ID:          nl.ID,
				ListType:    nl.ListType,
				ListContent: nl.ItemsValues,
			})
		}
		ctx.Config.NetworkList = out
		return nil
	},
}
