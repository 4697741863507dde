package strategy

import (
	"fmt"

	"github.com/wudi/edgeconfig/config"
	"github.com/wudi/edgeconfig/manifest"
)

var mtlsVerifications = map[string]bool{"enforce": true, "permissive": true}

var domainStrategy = Strategy{
	Name: "domain",
	ToManifest: func(ctx *Context) error {
		d := ctx.Config.Domain
		if d == nil {
			return nil
		}
		certID, err := normalizeCertificateID(d.DigitalCertificateID)
		if err != nil {
			return err
		}
		out := &manifest.Domain{
			Name:                 d.Name,
			Cnames:               emptyIfNil(d.Cnames),
			CnameAccessOnly:      boolOr(d.CnameAccessOnly, false),
			DigitalCertificateID: certID,
			EdgeApplicationID:    d.EdgeApplicationID,
			EdgeFirewallID:       d.EdgeFirewallID,
		}
		if d.MTLS != nil {
			if !mtlsVerifications[d.MTLS.Verification] {
				return fmt.Errorf("domain %q: mtls verification must be \"enforce\" or \"permissive\", got %q", d.Name, d.MTLS.Verification)
			}
			out.IsMTLSEnabled = true
			out.MTLSVerification = d.MTLS.Verification
			out.MTLSTrustedCACertificateID = d.MTLS.TrustedCaCertificateID
		}
		ctx.Manifest.Domain = out
		return nil
	},
	ToConfig: func(ctx *Context) error {
		d := ctx.Manifest.Domain
		if d == nil {
			return nil
		}
		out := &config.Domain{
			Name:                 d.Name,
			Cnames:               d.Cnames,
			DigitalCertificateID: d.DigitalCertificateID,
			EdgeApplicationID:    d.EdgeApplicationID,
			EdgeFirewallID:       d.EdgeFirewallID,
		}
		if d.CnameAccessOnly {
			out.CnameAccessOnly = boolPtr(true)
		}
		if d.IsMTLSEnabled {
			out.MTLS = &config.MTLS{
				Verification:           d.MTLSVerification,
				TrustedCaCertificateID: d.MTLSTrustedCACertificateID,
			}
		}
		ctx.Config.Domain = out
		return nil
	},
}

// normalizeCertificateID accepts null, a number or the literal string
// "lets_encrypt". Numeric JSON values arrive as float64 and are narrowed
// to int when integral.
func normalizeCertificateID(v any) (any, error) {
	switch id := v.(type) {
	case nil:
		return nil, nil
	case int:
		return id, nil
	case int64:
		return int(id), nil
	case float64:
		if id == float64(int(id)) {
			return int(id), nil
		}
		return id, nil
	case string:
		if id == "lets_encrypt" {
			return id, nil
		}
	}
	return nil, fmt.Errorf("digitalCertificateId must be null, a number, or \"lets_encrypt\", got %v", v)
}
