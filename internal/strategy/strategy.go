// Package strategy implements the per-section transformation strategies
// and the dispatcher that runs them.
//
// Each strategy converts one configuration section to its manifest
// counterpart and back. Strategies are independent and side-effect-free;
// the only ordering constraint is that the rules strategy runs last, since
// behavior resolution cross-checks entity names declared by other sections.
package strategy

import (
	"go.uber.org/zap"

	"github.com/wudi/edgeconfig/config"
	"github.com/wudi/edgeconfig/manifest"
)

// Context carries the documents a pipeline run reads and builds. Exactly
// one of the two documents is the source; the other is the accumulator
// being populated.
type Context struct {
	Config   *config.Config
	Manifest *manifest.Manifest
	Logger   *zap.Logger
}

// Strategy transforms one section in both directions. ToManifest reads
// ctx.Config and populates ctx.Manifest; ToConfig does the inverse. Both
// leave the accumulator untouched when the source section is absent.
type Strategy struct {
	Name       string
	ToManifest func(ctx *Context) error
	ToConfig   func(ctx *Context) error
}

// strategies is the dispatch order. Rules runs last: behavior resolution
// validates setOrigin, setCache and runFunction references against
// entities declared by the sections before it.
var strategies = []Strategy{
	buildStrategy,
	domainStrategy,
	originStrategy,
	cacheStrategy,
	purgeStrategy,
	firewallStrategy,
	wafStrategy,
	networkListStrategy,
	functionsStrategy,
	connectorsStrategy,
	customPagesStrategy,
	workloadsStrategy,
	rulesStrategy,
}

// Dispatch runs every strategy's forward direction over cfg and returns
// the assembled manifest. The first strategy error aborts the run; no
// partial manifest is returned.
func Dispatch(cfg *config.Config, logger *zap.Logger) (*manifest.Manifest, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx := &Context{Config: cfg, Manifest: &manifest.Manifest{}, Logger: logger}
	for _, s := range strategies {
		if err := s.ToManifest(ctx); err != nil {
			return nil, err
		}
	}
	return ctx.Manifest, nil
}

// DispatchReverse runs every strategy's reverse direction over m and
// returns the reconstructed configuration.
func DispatchReverse(m *manifest.Manifest, logger *zap.Logger) (*config.Config, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx := &Context{Config: &config.Config{}, Manifest: m, Logger: logger}
	for _, s := range strategies {
		if err := s.ToConfig(ctx); err != nil {
			return nil, err
		}
	}
	return ctx.Config, nil
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func intOr(v int, def int) int {
	if v == 0 {
		return def
	}
	return v
}

func stringOr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func boolPtr(v bool) *bool { return &v }
func intPtr(v int) *int    { return &v }

// emptyIfNil materializes nil slices as empty arrays; manifest sections
// never carry null where an array is expected.
func emptyIfNil(ss []string) []string {
	if ss == nil {
		return []string{}
	}
	return ss
}
