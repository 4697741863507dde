package strategy

import (
	"fmt"

	"github.com/wudi/edgeconfig/config"
	"github.com/wudi/edgeconfig/internal/expression"
	"github.com/wudi/edgeconfig/manifest"
)

var cacheStrategy = Strategy{
	Name: "cache",
	ToManifest: func(ctx *Context) error {
		if ctx.Config.Cache == nil {
			return nil
		}
		out := make([]manifest.CacheSetting, 0, len(ctx.Config.Cache))
		for _, c := range ctx.Config.Cache {
			entry, err := cacheToManifest(c)
			if err != nil {
				return err
			}
			out = append(out, entry)
		}
		ctx.Manifest.Cache = out
		return nil
	},
	ToConfig: func(ctx *Context) error {
		if ctx.Manifest.Cache == nil {
			return nil
		}
		out := make([]config.Cache, 0, len(ctx.Manifest.Cache))
		for _, c := range ctx.Manifest.Cache {
			out = append(out, cacheToConfig(c))
		}
		ctx.Config.Cache = out
		return nil
	},
}

func cacheToManifest(c config.Cache) (manifest.CacheSetting, error) {
	entry := manifest.CacheSetting{
		Name:                           c.Name,
		BrowserCacheSettings:           "honor",
		BrowserCacheSettingsMaximumTTL: 0,
		CDNCacheSettings:               "honor",
		CDNCacheSettingsMaximumTTL:     60,
		CacheByQueryString:             "ignore",
		QueryStringFields:              []string{},
		CacheByCookies:                 "ignore",
		CookieNames:                    []string{},
		EnableQueryStringSort:          boolOr(c.QueryStringSort, false),
		EnableStaleCache:               boolOr(c.Stale, false),
	}
	if c.Methods != nil {
		entry.EnableCachingForPost = c.Methods.Post
		entry.EnableCachingForOptions = c.Methods.Options
	}

	// Presence of the sub-object switches honor to override, regardless of
	// the TTL value inside it.
	if c.Browser != nil {
		ttl, err := evaluateTTL(c.Browser.MaxAgeSeconds)
		if err != nil {
			return manifest.CacheSetting{}, fmt.Errorf("cache %q: %w", c.Name, err)
		}
		entry.BrowserCacheSettings = "override"
		entry.BrowserCacheSettingsMaximumTTL = ttl
	}
	if c.Edge != nil {
		ttl, err := evaluateTTL(c.Edge.MaxAgeSeconds)
		if err != nil {
			return manifest.CacheSetting{}, fmt.Errorf("cache %q: %w", c.Name, err)
		}
		entry.CDNCacheSettings = "override"
		entry.CDNCacheSettingsMaximumTTL = ttl
	}

	if c.CacheByQueryString != nil {
		entry.CacheByQueryString = normalizeCacheByOption(c.CacheByQueryString.Option)
		entry.QueryStringFields = emptyIfNil(c.CacheByQueryString.List)
	}
	if c.CacheByCookie != nil {
		entry.CacheByCookies = normalizeCacheByOption(c.CacheByCookie.Option)
		entry.CookieNames = emptyIfNil(c.CacheByCookie.List)
	}
	return entry, nil
}

func evaluateTTL(ttl config.TTL) (int, error) {
	if ttl.IsLiteral {
		return int(ttl.Number), nil
	}
	n, err := expression.Evaluate(ttl.Expression)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// normalizeCacheByOption renames the config's "varies" to the manifest's
// "all"; everything else passes through.
func normalizeCacheByOption(opt string) string {
	if opt == "varies" {
		return "all"
	}
	return opt
}

func cacheToConfig(c manifest.CacheSetting) config.Cache {
	entry := config.Cache{Name: c.Name}
	if c.EnableStaleCache {
		entry.Stale = boolPtr(true)
	}
	if c.EnableQueryStringSort {
		entry.QueryStringSort = boolPtr(true)
	}
	if c.EnableCachingForPost || c.EnableCachingForOptions {
		entry.Methods = &config.CacheMethods{
			Post:    c.EnableCachingForPost,
			Options: c.EnableCachingForOptions,
		}
	}
	if c.BrowserCacheSettings == "override" {
		entry.Browser = &config.CacheTTL{MaxAgeSeconds: config.Literal(float64(c.BrowserCacheSettingsMaximumTTL))}
	}
	if c.CDNCacheSettings == "override" {
		entry.Edge = &config.CacheTTL{MaxAgeSeconds: config.Literal(float64(c.CDNCacheSettingsMaximumTTL))}
	}
	if opt := reverseCacheByOption(c.CacheByQueryString); opt != "" {
		entry.CacheByQueryString = &config.CacheBy{Option: opt, List: c.QueryStringFields}
	}
	if opt := reverseCacheByOption(c.CacheByCookies); opt != "" {
		entry.CacheByCookie = &config.CacheBy{Option: opt, List: c.CookieNames}
	}
	return entry
}

// reverseCacheByOption maps the manifest option back to the config form,
// returning "" for the default "ignore" so the sub-object is omitted.
func reverseCacheByOption(opt string) string {
	switch opt {
	case "", "ignore":
		return ""
	case "all":
		return "varies"
	default:
		return opt
	}
}
