package strategy

import (
	"go.uber.org/zap"

	"github.com/wudi/edgeconfig/config"
	"github.com/wudi/edgeconfig/internal/behaviors"
	"github.com/wudi/edgeconfig/manifest"
)

var firewallStrategy = Strategy{
	Name: "firewall",
	ToManifest: func(ctx *Context) error {
		if ctx.Config.Firewall == nil {
			return nil
		}
		out := make([]manifest.Firewall, 0, len(ctx.Config.Firewall))
		for _, fw := range ctx.Config.Firewall {
			entry, err := firewallToManifest(ctx, fw)
			if err != nil {
				return err
			}
			out = append(out, entry)
		}
		ctx.Manifest.Firewall = out
		return nil
	},
	ToConfig: func(ctx *Context) error {
		if ctx.Manifest.Firewall == nil {
			return nil
		}
		out := make([]config.Firewall, 0, len(ctx.Manifest.Firewall))
		for _, fw := range ctx.Manifest.Firewall {
			out = append(out, firewallToConfig(fw))
		}
		ctx.Config.Firewall = out
		return nil
	},
}

func firewallToManifest(ctx *Context, fw config.Firewall) (manifest.Firewall, error) {
	entry := manifest.Firewall{
		Name:                     fw.Name,
		Domains:                  emptyIfNil(fw.Domains),
		IsActive:                 boolOr(fw.Active, true),
		DebugRules:               boolOr(fw.DebugRules, false),
		EdgeFunctionsEnabled:     boolOr(fw.EdgeFunctionsEnabled, false),
		NetworkProtectionEnabled: boolOr(fw.NetworkProtectionEnabled, false),
		WAFEnabled:               boolOr(fw.WAFEnabled, false),
	}
	for i, r := range fw.Rules {
		rule, err := firewallRuleToManifest(ctx, r, i)
		if err != nil {
			return manifest.Firewall{}, err
		}
		entry.Rules = append(entry.Rules, rule)
	}
	return entry, nil
}

func firewallRuleToManifest(ctx *Context, r config.Rule, idx int) (manifest.FirewallRule, error) {
	criteria, err := criteriaFromRule(r)
	if err != nil {
		return manifest.FirewallRule{}, err
	}
	records, dropped, err := behaviors.ResolveFirewall(r.Behavior, behaviors.NewRefs(ctx.Config), r.Name)
	if err != nil {
		return manifest.FirewallRule{}, err
	}
	if len(dropped) > 0 {
		ctx.Logger.Debug("dropped unknown firewall behavior keys",
			zap.String("rule", r.Name),
			zap.Strings("keys", dropped))
	}
	if records == nil {
		records = []manifest.Behavior{}
	}
	return manifest.FirewallRule{
		Name:        r.Name,
		Description: r.Description,
		IsActive:    r.IsActive(),
		Order:       idx + 2,
		Criteria:    criteria,
		Behaviors:   records,
	}, nil
}

func firewallToConfig(fw manifest.Firewall) config.Firewall {
	entry := config.Firewall{
		Name:    fw.Name,
		Domains: fw.Domains,
	}
	if !fw.IsActive {
		entry.Active = boolPtr(false)
	}
	if fw.DebugRules {
		entry.DebugRules = boolPtr(true)
	}
	if fw.EdgeFunctionsEnabled {
		entry.EdgeFunctionsEnabled = boolPtr(true)
	}
	if fw.NetworkProtectionEnabled {
		entry.NetworkProtectionEnabled = boolPtr(true)
	}
	if fw.WAFEnabled {
		entry.WAFEnabled = boolPtr(true)
	}
	for _, r := range fw.Rules {
		rule := config.Rule{
			Name:        r.Name,
			Description: r.Description,
			Criteria:    criteriaToConfig(r.Criteria),
			Behavior:    behaviors.ReverseFirewall(r.Behaviors),
		}
		if !r.IsActive {
			rule.Active = boolPtr(false)
		}
		entry.Rules = append(entry.Rules, rule)
	}
	return entry
}
