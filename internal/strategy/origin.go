package strategy

import (
	"fmt"

	"github.com/wudi/edgeconfig/config"
	"github.com/wudi/edgeconfig/manifest"
)

var originTypes = map[string]bool{
	config.OriginSingle:        true,
	config.OriginObjectStorage: true,
	config.OriginLoadBalancer:  true,
	config.OriginLiveIngest:    true,
}

var originStrategy = Strategy{
	Name: "origin",
	ToManifest: func(ctx *Context) error {
		if ctx.Config.Origin == nil {
			return nil
		}
		out := make([]manifest.Origin, 0, len(ctx.Config.Origin))
		for _, o := range ctx.Config.Origin {
			entry, err := originToManifest(o)
			if err != nil {
				return err
			}
			out = append(out, entry)
		}
		ctx.Manifest.Origin = out
		return nil
	},
	ToConfig: func(ctx *Context) error {
		if ctx.Manifest.Origin == nil {
			return nil
		}
		out := make([]config.Origin, 0, len(ctx.Manifest.Origin))
		for _, o := range ctx.Manifest.Origin {
			out = append(out, originToConfig(o))
		}
		ctx.Config.Origin = out
		return nil
	},
}

func originToManifest(o config.Origin) (manifest.Origin, error) {
	if !originTypes[o.Type] {
		return manifest.Origin{}, fmt.Errorf("origin %q: unsupported origin type %q", o.Name, o.Type)
	}

	entry := manifest.Origin{
		Name:       o.Name,
		OriginType: o.Type,
	}

	if o.Type == config.OriginObjectStorage {
		entry.Bucket = o.Bucket
		entry.Prefix = o.Prefix
		return entry, nil
	}

	if len(o.Addresses) == 0 {
		return manifest.Origin{}, fmt.Errorf("origin %q: type %q requires a non-empty addresses list", o.Name, o.Type)
	}
	if o.Path == "/" {
		return manifest.Origin{}, fmt.Errorf("origin %q: origin path cannot be \"/\", use an empty string or a non-root path", o.Name)
	}

	addresses := make([]manifest.Address, 0, len(o.Addresses))
	for _, a := range o.Addresses {
		if a.Weight != nil && (*a.Weight < 0 || *a.Weight > 10) {
			return manifest.Origin{}, fmt.Errorf("origin %q address %q: weight must be between 0 and 10", o.Name, a.Address)
		}
		addresses = append(addresses, manifest.Address{Address: a.Address, Weight: a.Weight})
	}

	entry.Addresses = addresses
	entry.OriginProtocolPolicy = stringOr(o.ProtocolPolicy, "preserve")
	entry.HostHeader = stringOr(o.HostHeader, "${host}")
	entry.OriginPath = o.Path
	entry.Method = stringOr(o.Method, "ip_hash")
	entry.IsOriginRedirectionEnabled = boolPtr(boolOr(o.Redirection, false))
	entry.ConnectionTimeout = intPtr(intOr(o.ConnectionTimeout, 60))
	entry.TimeoutBetweenBytes = intPtr(intOr(o.TimeoutBetweenBytes, 120))

	if o.HMAC != nil {
		entry.HMACAuthentication = true
		entry.HMACRegionName = o.HMAC.Region
		entry.HMACAccessKey = o.HMAC.AccessKey
		entry.HMACSecretKey = o.HMAC.SecretKey
	}
	return entry, nil
}

// originToConfig is the inverse mapping. Bare-string addresses from the
// original document come back as address objects; that asymmetry is part
// of the contract.
func originToConfig(o manifest.Origin) config.Origin {
	entry := config.Origin{
		Name: o.Name,
		Type: o.OriginType,
	}
	if o.OriginType == config.OriginObjectStorage {
		entry.Bucket = o.Bucket
		entry.Prefix = o.Prefix
		return entry
	}

	entry.Addresses = make([]config.Address, 0, len(o.Addresses))
	for _, a := range o.Addresses {
		entry.Addresses = append(entry.Addresses, config.Address{Address: a.Address, Weight: a.Weight})
	}
	entry.Path = o.OriginPath
	entry.ProtocolPolicy = o.OriginProtocolPolicy
	entry.HostHeader = o.HostHeader
	entry.Method = o.Method
	if o.IsOriginRedirectionEnabled != nil && *o.IsOriginRedirectionEnabled {
		entry.Redirection = boolPtr(true)
	}
	if o.ConnectionTimeout != nil {
		entry.ConnectionTimeout = *o.ConnectionTimeout
	}
	if o.TimeoutBetweenBytes != nil {
		entry.TimeoutBetweenBytes = *o.TimeoutBetweenBytes
	}
	if o.HMACAuthentication {
		entry.HMAC = &config.HMAC{
			Region:    o.HMACRegionName,
			AccessKey: o.HMACAccessKey,
			SecretKey: o.HMACSecretKey,
		}
	}
	return entry
}
