package strategy

import (
	"fmt"

	"github.com/wudi/edgeconfig/config"
	"github.com/wudi/edgeconfig/manifest"
)

var connectorTypes = map[string]bool{
	config.ConnectorHTTP:       true,
	config.ConnectorStorage:    true,
	config.ConnectorLiveIngest: true,
}

var connectorsStrategy = Strategy{
	Name: "connectors",
	ToManifest: func(ctx *Context) error {
		if ctx.Config.Connectors == nil {
			return nil
		}
		out := make([]manifest.Connector, 0, len(ctx.Config.Connectors))
		for _, c := range ctx.Config.Connectors {
			entry, err := connectorToManifest(c)
			if err != nil {
				return err
			}
			out = append(out, entry)
		}
		ctx.Manifest.Connectors = out
		return nil
	},
	ToConfig: func(ctx *Context) error {
		if ctx.Manifest.Connectors == nil {
			return nil
		}
		out := make([]config.Connector, 0, len(ctx.Manifest.Connectors))
		for _, c := range ctx.Manifest.Connectors {
			out = append(out, connectorToConfig(c))
		}
		ctx.Config.Connectors = out
		return nil
	},
}

func connectorToManifest(c config.Connector) (manifest.Connector, error) {
	if !connectorTypes[c.Type] {
		return manifest.Connector{}, fmt.Errorf("connector %q: unsupported connector type %q", c.Name, c.Type)
	}
	entry := manifest.Connector{Name: c.Name, Type: c.Type}

	if c.Type == config.ConnectorStorage {
		entry.Attributes = manifest.ConnectorAttributes{
			Bucket: c.Attributes.Bucket,
			Prefix: c.Attributes.Prefix,
		}
		return entry, nil
	}

	// http and live_ingest connectors get fully materialized network
	// attributes.
	attrs := manifest.ConnectorAttributes{
		ConnectionOptions: connectionOptionsToManifest(c.Attributes.ConnectionOptions),
		Modules:           modulesToManifest(c.Attributes.Modules),
	}
	for _, a := range c.Attributes.Addresses {
		attrs.Addresses = append(attrs.Addresses, manifest.ConnectorAddress{
			Address:    a.Address,
			HTTPPort:   intPtrOr(a.HTTPPort, 80),
			HTTPSPort:  intPtrOr(a.HTTPSPort, 443),
			ServerRole: stringOr(a.ServerRole, "primary"),
			Weight:     intPtrOr(a.Weight, 1),
			Active:     boolOr(a.Active, true),
		})
	}
	entry.Attributes = attrs
	return entry, nil
}

func connectionOptionsToManifest(o *config.ConnectionOptions) *manifest.ConnectionOptions {
	out := &manifest.ConnectionOptions{
		DNSResolution:     "preserve",
		TransportPolicy:   "preserve",
		HTTPVersionPolicy: "http1_1",
		Host:              "${host}",
		PathPrefix:        "",
		FollowingRedirect: false,
		RealIPHeader:      "X-Real-IP",
		RealPortHeader:    "X-Real-PORT",
	}
	if o == nil {
		return out
	}
	out.DNSResolution = stringOr(o.DNSResolution, out.DNSResolution)
	out.TransportPolicy = stringOr(o.TransportPolicy, out.TransportPolicy)
	out.HTTPVersionPolicy = stringOr(o.HTTPVersionPolicy, out.HTTPVersionPolicy)
	out.Host = stringOr(o.Host, out.Host)
	out.PathPrefix = o.PathPrefix
	out.FollowingRedirect = boolOr(o.FollowingRedirect, false)
	out.RealIPHeader = stringOr(o.RealIPHeader, out.RealIPHeader)
	out.RealPortHeader = stringOr(o.RealPortHeader, out.RealPortHeader)
	return out
}

func modulesToManifest(m *config.ConnectorModules) *manifest.ConnectorModules {
	out := &manifest.ConnectorModules{}
	if m == nil {
		return out
	}
	if m.LoadBalancer != nil {
		out.LoadBalancer = manifest.ModuleFlag{Enabled: m.LoadBalancer.Enabled, Config: m.LoadBalancer.Config}
	}
	if m.OriginShield != nil {
		out.OriginShield = manifest.ModuleFlag{Enabled: m.OriginShield.Enabled, Config: m.OriginShield.Config}
	}
	return out
}

func connectorToConfig(c manifest.Connector) config.Connector {
	entry := config.Connector{Name: c.Name, Type: c.Type}

	if c.Type == config.ConnectorStorage {
		entry.Attributes = config.ConnectorAttributes{
			Bucket: c.Attributes.Bucket,
			Prefix: c.Attributes.Prefix,
		}
		return entry
	}

	attrs := config.ConnectorAttributes{}
	for _, a := range c.Attributes.Addresses {
		addr := config.ConnectorAddress{
			Address:    a.Address,
			HTTPPort:   intPtr(a.HTTPPort),
			HTTPSPort:  intPtr(a.HTTPSPort),
			ServerRole: a.ServerRole,
			Weight:     intPtr(a.Weight),
		}
		if !a.Active {
			addr.Active = boolPtr(false)
		}
		attrs.Addresses = append(attrs.Addresses, addr)
	}
	if o := c.Attributes.ConnectionOptions; o != nil {
		attrs.ConnectionOptions = &config.ConnectionOptions{
			DNSResolution:     o.DNSResolution,
			TransportPolicy:   o.TransportPolicy,
			HTTPVersionPolicy: o.HTTPVersionPolicy,
			Host:              o.Host,
			PathPrefix:        o.PathPrefix,
			FollowingRedirect: boolPtr(o.FollowingRedirect),
			RealIPHeader:      o.RealIPHeader,
			RealPortHeader:    o.RealPortHeader,
		}
	}
	if m := c.Attributes.Modules; m != nil {
		attrs.Modules = &config.ConnectorModules{
			LoadBalancer: &config.ModuleFlag{Enabled: m.LoadBalancer.Enabled, Config: m.LoadBalancer.Config},
			OriginShield: &config.ModuleFlag{Enabled: m.OriginShield.Enabled, Config: m.OriginShield.Config},
		}
	}
	entry.Attributes = attrs
	return entry
}

func intPtrOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}
