package strategy

import (
	"github.com/wudi/edgeconfig/config"
	"github.com/wudi/edgeconfig/manifest"
)

var wafStrategy = Strategy{
	Name: "waf",
	ToManifest: func(ctx *Context) error {
		if ctx.Config.WAF == nil {
			return nil
		}
		out := make([]manifest.WAF, 0, len(ctx.Config.WAF))
		for _, w := range ctx.Config.WAF {
			out = append(out, wafToManifest(w))
		}
		ctx.Manifest.WAF = out
		return nil
	},
	ToConfig: func(ctx *Context) error {
		if ctx.Manifest.WAF == nil {
			return nil
		}
		out := make([]config.WAF, 0, len(ctx.Manifest.WAF))
		for _, w := range ctx.Manifest.WAF {
			out = append(out, wafToConfig(w))
		}
		ctx.Config.WAF = out
		return nil
	},
}

// threat materializes one threat family: presence of the sub-object
// enables it; sensitivity defaults to medium either way.
func threat(t *config.WAFThreat) (bool, string) {
	if t == nil {
		return false, "medium"
	}
	return true, stringOr(t.Sensitivity, "medium")
}

func wafToManifest(w config.WAF) manifest.WAF {
	entry := manifest.WAF{
		Name:            w.Name,
		Mode:            stringOr(w.Mode, "counting"),
		Active:          boolOr(w.Active, true),
		BypassAddresses: emptyIfNil(w.BypassAddresses),
	}
	entry.SQLInjection, entry.SQLInjectionSensitivity = threat(w.SQLInjection)
	entry.RemoteFileInclusion, entry.RemoteFileInclusionSensitivity = threat(w.RemoteFileInclusion)
	entry.DirectoryTraversal, entry.DirectoryTraversalSensitivity = threat(w.DirectoryTraversal)
	entry.CrossSiteScripting, entry.CrossSiteScriptingSensitivity = threat(w.CrossSiteScripting)
	entry.EvadingTricks, entry.EvadingTricksSensitivity = threat(w.EvadingTricks)
	entry.FileUpload, entry.FileUploadSensitivity = threat(w.FileUpload)
	entry.UnwantedAccess, entry.UnwantedAccessSensitivity = threat(w.UnwantedAccess)
	entry.IdentifiedAttack, entry.IdentifiedAttackSensitivity = threat(w.IdentifiedAttack)
	return entry
}

func reverseThreat(enabled bool, sensitivity string) *config.WAFThreat {
	if !enabled {
		return nil
	}
	return &config.WAFThreat{Sensitivity: sensitivity}
}

func wafToConfig(w manifest.WAF) config.WAF {
	entry := config.WAF{
		Name:                w.Name,
		Mode:                w.Mode,
		SQLInjection:        reverseThreat(w.SQLInjection, w.SQLInjectionSensitivity),
		RemoteFileInclusion: reverseThreat(w.RemoteFileInclusion, w.RemoteFileInclusionSensitivity),
		DirectoryTraversal:  reverseThreat(w.DirectoryTraversal, w.DirectoryTraversalSensitivity),
		CrossSiteScripting:  reverseThreat(w.CrossSiteScripting, w.CrossSiteScriptingSensitivity),
		EvadingTricks:       reverseThreat(w.EvadingTricks, w.EvadingTricksSensitivity),
		FileUpload:          reverseThreat(w.FileUpload, w.FileUploadSensitivity),
		UnwantedAccess:      reverseThreat(w.UnwantedAccess, w.UnwantedAccessSensitivity),
		IdentifiedAttack:    reverseThreat(w.IdentifiedAttack, w.IdentifiedAttackSensitivity),
		BypassAddresses:     w.BypassAddresses,
	}
	if !w.Active {
		entry.Active = boolPtr(false)
	}
	return entry
}
