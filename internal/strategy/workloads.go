package strategy

import (
	"fmt"

	"github.com/wudi/edgeconfig/config"
	"github.com/wudi/edgeconfig/manifest"
)

var workloadsStrategy = Strategy{
	Name: "workloads",
	ToManifest: func(ctx *Context) error {
		if ctx.Config.Workloads == nil {
			return nil
		}
		firewalls := make(map[string]bool, len(ctx.Config.Firewall))
		for _, fw := range ctx.Config.Firewall {
			firewalls[fw.Name] = true
		}
		customPages := make(map[string]bool, len(ctx.Config.CustomPages))
		for _, cp := range ctx.Config.CustomPages {
			customPages[cp.Name] = true
		}

		out := make([]manifest.Workload, 0, len(ctx.Config.Workloads))
		for _, w := range ctx.Config.Workloads {
			entry, err := workloadToManifest(ctx.Config, w, firewalls, customPages)
			if err != nil {
				return err
			}
			out = append(out, entry)
		}
		ctx.Manifest.Workloads = out
		return nil
	},
	ToConfig: func(ctx *Context) error {
		if ctx.Manifest.Workloads == nil {
			return nil
		}
		out := make([]config.Workload, 0, len(ctx.Manifest.Workloads))
		for _, w := range ctx.Manifest.Workloads {
			out = append(out, workloadToConfig(w))
		}
		ctx.Config.Workloads = out
		return nil
	},
}

func workloadToManifest(cfg *config.Config, w config.Workload, firewalls, customPages map[string]bool) (manifest.Workload, error) {
	entry := manifest.Workload{
		Name:           w.Name,
		Active:         boolOr(w.Active, true),
		Infrastructure: 1,
		Domains:        emptyIfNil(w.Domains),
		Deployments:    []manifest.Deployment{},
		TLS: &manifest.WorkloadTLS{
			Certificate:    nil,
			Ciphers:        nil,
			MinimumVersion: "tls_1_2",
		},
		Protocols: &manifest.WorkloadProtocols{
			HTTP: &manifest.WorkloadHTTP{
				Versions:   []string{"http1", "http2"},
				HTTPPorts:  []int{80},
				HTTPSPorts: []int{443},
				QuicPorts:  nil,
			},
		},
	}
	if w.Infrastructure != nil {
		entry.Infrastructure = *w.Infrastructure
	}
	if w.TLS != nil {
		entry.TLS.Certificate = w.TLS.Certificate
		entry.TLS.Ciphers = w.TLS.Ciphers
		entry.TLS.MinimumVersion = stringOr(w.TLS.MinimumVersion, "tls_1_2")
	}
	if w.Protocols != nil && w.Protocols.HTTP != nil {
		h := w.Protocols.HTTP
		if len(h.Versions) > 0 {
			entry.Protocols.HTTP.Versions = h.Versions
		}
		if len(h.HTTPPorts) > 0 {
			entry.Protocols.HTTP.HTTPPorts = h.HTTPPorts
		}
		if len(h.HTTPSPorts) > 0 {
			entry.Protocols.HTTP.HTTPSPorts = h.HTTPSPorts
		}
		if len(h.QuicPorts) > 0 {
			entry.Protocols.HTTP.QuicPorts = h.QuicPorts
		}
	}
	if w.MTLS != nil {
		entry.MTLS = &manifest.WorkloadMTLS{
			Verification: stringOr(w.MTLS.Verification, "enforce"),
			Certificate:  w.MTLS.Certificate,
			CRL:          w.MTLS.CRL,
		}
	}

	for _, d := range w.Deployments {
		dep, err := deploymentToManifest(cfg, w.Name, d, firewalls, customPages)
		if err != nil {
			return manifest.Workload{}, err
		}
		entry.Deployments = append(entry.Deployments, dep)
	}
	return entry, nil
}

// deploymentToManifest validates by-name references against the entities
// declared in the same document; numeric references are assumed
// pre-resolved IDs and pass through.
func deploymentToManifest(cfg *config.Config, workload string, d config.Deployment, firewalls, customPages map[string]bool) (manifest.Deployment, error) {
	attrs := d.Strategy.Attributes
	if name, ok := attrs.Application.(string); ok && name != cfg.ApplicationName() {
		return manifest.Deployment{}, fmt.Errorf("workload %q deployment %q: application %q is not declared by this configuration", workload, d.Name, name)
	}
	if name, ok := attrs.Firewall.(string); ok && !firewalls[name] {
		return manifest.Deployment{}, fmt.Errorf("workload %q deployment %q: firewall %q is not defined in the firewall section", workload, d.Name, name)
	}
	if name, ok := attrs.CustomPage.(string); ok && !customPages[name] {
		return manifest.Deployment{}, fmt.Errorf("workload %q deployment %q: custom page %q is not defined in the customPages section", workload, d.Name, name)
	}
	return manifest.Deployment{
		Name:    d.Name,
		Current: boolOr(d.Current, true),
		Strategy: manifest.DeploymentStrategy{
			Type: stringOr(d.Strategy.Type, "default"),
			Attributes: manifest.DeploymentAttributes{
				Application: attrs.Application,
				Firewall:    attrs.Firewall,
				CustomPage:  attrs.CustomPage,
			},
		},
	}, nil
}

func workloadToConfig(w manifest.Workload) config.Workload {
	entry := config.Workload{
		Name:    w.Name,
		Domains: w.Domains,
	}
	if !w.Active {
		entry.Active = boolPtr(false)
	}
	if w.Infrastructure != 0 {
		entry.Infrastructure = intPtr(w.Infrastructure)
	}
	if w.TLS != nil {
		entry.TLS = &config.WorkloadTLS{
			Certificate:    w.TLS.Certificate,
			Ciphers:        w.TLS.Ciphers,
			MinimumVersion: w.TLS.MinimumVersion,
		}
	}
	if w.Protocols != nil && w.Protocols.HTTP != nil {
		entry.Protocols = &config.WorkloadProtocols{
			HTTP: &config.WorkloadHTTP{
				Versions:   w.Protocols.HTTP.Versions,
				HTTPPorts:  w.Protocols.HTTP.HTTPPorts,
				HTTPSPorts: w.Protocols.HTTP.HTTPSPorts,
				QuicPorts:  w.Protocols.HTTP.QuicPorts,
			},
		}
	}
	if w.MTLS != nil {
		entry.MTLS = &config.WorkloadMTLS{
			Verification: w.MTLS.Verification,
			Certificate:  w.MTLS.Certificate,
			CRL:          w.MTLS.CRL,
		}
	}
	for _, d := range w.Deployments {
		dep := config.Deployment{
			Name: d.Name,
			Strategy: config.DeploymentStrategy{
				Type: d.Strategy.Type,
				Attributes: config.DeploymentAttributes{
					Application: d.Strategy.Attributes.Application,
					Firewall:    d.Strategy.Attributes.Firewall,
					CustomPage:  d.Strategy.Attributes.CustomPage,
				},
			},
		}
		if !d.Current {
			dep.Current = boolPtr(false)
		}
		entry.Deployments = append(entry.Deployments, dep)
	}
	return entry
}
