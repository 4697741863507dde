// Package config defines the developer-authored configuration document.
//
// The shapes here are deliberately permissive: fields use camelCase names,
// several accept more than one equivalent form (a bare address string vs an
// address object, a TTL number vs an arithmetic expression string), and
// unknown keys inside behavior bags are tolerated. The strict counterpart
// consumed by the backend API lives in the manifest package.
package config

// Config is the complete user-facing configuration document.
//
// Name identifies the edge application declared by this document; workload
// deployments reference it. It defaults to "default" when empty.
type Config struct {
	Name        string        `json:"name,omitempty" yaml:"name,omitempty"`
	Build       Build         `json:"build,omitempty" yaml:"build,omitempty"`
	Domain      *Domain       `json:"domain,omitempty" yaml:"domain,omitempty"`
	Origin      []Origin      `json:"origin,omitempty" yaml:"origin,omitempty"`
	Cache       []Cache       `json:"cache,omitempty" yaml:"cache,omitempty"`
	Rules       *Rules        `json:"rules,omitempty" yaml:"rules,omitempty"`
	Purge       []Purge       `json:"purge,omitempty" yaml:"purge,omitempty"`
	Firewall    []Firewall    `json:"firewall,omitempty" yaml:"firewall,omitempty"`
	WAF         []WAF         `json:"waf,omitempty" yaml:"waf,omitempty"`
	NetworkList []NetworkList `json:"networkList,omitempty" yaml:"networkList,omitempty"`
	Functions   []Function    `json:"functions,omitempty" yaml:"functions,omitempty"`
	Connectors  []Connector   `json:"connectors,omitempty" yaml:"connectors,omitempty"`
	CustomPages []CustomPage  `json:"customPages,omitempty" yaml:"customPages,omitempty"`
	Workloads   []Workload    `json:"workloads,omitempty" yaml:"workloads,omitempty"`
}

// ApplicationName returns the declared application name.
func (c *Config) ApplicationName() string {
	if c.Name != "" {
		return c.Name
	}
	return "default"
}

// Build is the bundler configuration blob. It is copied into the manifest
// verbatim; the transformation pipeline never interprets it.
type Build map[string]any

// Domain configures the domain attached to the application.
type Domain struct {
	Name                 string   `json:"name" yaml:"name"`
	Cnames               []string `json:"cnames,omitempty" yaml:"cnames,omitempty"`
	CnameAccessOnly      *bool    `json:"cnameAccessOnly,omitempty" yaml:"cnameAccessOnly,omitempty"`
	DigitalCertificateID any      `json:"digitalCertificateId,omitempty" yaml:"digitalCertificateId,omitempty"`
	EdgeApplicationID    int      `json:"edgeApplicationId,omitempty" yaml:"edgeApplicationId,omitempty"`
	EdgeFirewallID       int      `json:"edgeFirewallId,omitempty" yaml:"edgeFirewallId,omitempty"`
	MTLS                 *MTLS    `json:"mtls,omitempty" yaml:"mtls,omitempty"`
}

// MTLS configures mutual TLS verification on a domain.
type MTLS struct {
	Verification           string `json:"verification" yaml:"verification"`
	TrustedCaCertificateID int    `json:"trustedCaCertificateId" yaml:"trustedCaCertificateId"`
}

// Origin types accepted by the pipeline.
const (
	OriginSingle        = "single_origin"
	OriginObjectStorage = "object_storage"
	OriginLoadBalancer  = "load_balancer"
	OriginLiveIngest    = "live_ingest"
)

// Origin declares a content origin. object_storage origins use Bucket and
// Prefix; every other type requires a non-empty Addresses list.
type Origin struct {
	Name                string    `json:"name" yaml:"name"`
	Type                string    `json:"type" yaml:"type"`
	Bucket              string    `json:"bucket,omitempty" yaml:"bucket,omitempty"`
	Prefix              string    `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Addresses           []Address `json:"addresses,omitempty" yaml:"addresses,omitempty"`
	Path                string    `json:"path,omitempty" yaml:"path,omitempty"`
	ProtocolPolicy      string    `json:"protocolPolicy,omitempty" yaml:"protocolPolicy,omitempty"`
	HostHeader          string    `json:"hostHeader,omitempty" yaml:"hostHeader,omitempty"`
	Method              string    `json:"method,omitempty" yaml:"method,omitempty"`
	Redirection         *bool     `json:"redirection,omitempty" yaml:"redirection,omitempty"`
	ConnectionTimeout   int       `json:"connectionTimeout,omitempty" yaml:"connectionTimeout,omitempty"`
	TimeoutBetweenBytes int       `json:"timeoutBetweenBytes,omitempty" yaml:"timeoutBetweenBytes,omitempty"`
	HMAC                *HMAC     `json:"hmac,omitempty" yaml:"hmac,omitempty"`
}

// HMAC carries origin HMAC authentication credentials.
type HMAC struct {
	Region    string `json:"region" yaml:"region"`
	AccessKey string `json:"accessKey" yaml:"accessKey"`
	SecretKey string `json:"secretKey" yaml:"secretKey"`
}

// Cache declares a cache settings entry. Presence of the Browser or Edge
// sub-object switches the corresponding manifest flag from "honor" to
// "override"; the TTL value itself does not.
type Cache struct {
	Name               string        `json:"name" yaml:"name"`
	Stale              *bool         `json:"stale,omitempty" yaml:"stale,omitempty"`
	QueryStringSort    *bool         `json:"queryStringSort,omitempty" yaml:"queryStringSort,omitempty"`
	Methods            *CacheMethods `json:"methods,omitempty" yaml:"methods,omitempty"`
	Browser            *CacheTTL     `json:"browser,omitempty" yaml:"browser,omitempty"`
	Edge               *CacheTTL     `json:"edge,omitempty" yaml:"edge,omitempty"`
	CacheByCookie      *CacheBy      `json:"cacheByCookie,omitempty" yaml:"cacheByCookie,omitempty"`
	CacheByQueryString *CacheBy      `json:"cacheByQueryString,omitempty" yaml:"cacheByQueryString,omitempty"`
}

// CacheMethods enables caching for non-GET methods.
type CacheMethods struct {
	Post    bool `json:"post,omitempty" yaml:"post,omitempty"`
	Options bool `json:"options,omitempty" yaml:"options,omitempty"`
}

// CacheTTL holds a TTL that may be a literal number or a formula string.
type CacheTTL struct {
	MaxAgeSeconds TTL `json:"maxAgeSeconds" yaml:"maxAgeSeconds"`
}

// CacheBy selects cache key composition for cookies or query strings.
// Option is one of ignore, varies, whitelist, blacklist; List is required
// exactly when Option is whitelist or blacklist.
type CacheBy struct {
	Option string   `json:"option" yaml:"option"`
	List   []string `json:"list,omitempty" yaml:"list,omitempty"`
}

// Purge declares a purge operation.
type Purge struct {
	Type   string   `json:"type" yaml:"type"`
	URLs   []string `json:"urls" yaml:"urls"`
	Method string   `json:"method,omitempty" yaml:"method,omitempty"`
	Layer  string   `json:"layer,omitempty" yaml:"layer,omitempty"`
}

// Firewall declares an edge firewall and its rules. Firewall rules share
// the Rule shape with application rules but draw from the firewall
// behavior vocabulary (deny, drop, setRateLimit, ...).
type Firewall struct {
	Name                     string   `json:"name" yaml:"name"`
	Domains                  []string `json:"domains,omitempty" yaml:"domains,omitempty"`
	Active                   *bool    `json:"active,omitempty" yaml:"active,omitempty"`
	DebugRules               *bool    `json:"debugRules,omitempty" yaml:"debugRules,omitempty"`
	EdgeFunctionsEnabled     *bool    `json:"edgeFunctionsEnabled,omitempty" yaml:"edgeFunctionsEnabled,omitempty"`
	NetworkProtectionEnabled *bool    `json:"networkProtectionEnabled,omitempty" yaml:"networkProtectionEnabled,omitempty"`
	WAFEnabled               *bool    `json:"wafEnabled,omitempty" yaml:"wafEnabled,omitempty"`
	Rules                    []Rule   `json:"rules,omitempty" yaml:"rules,omitempty"`
}

// WAF declares a WAF ruleset. Presence of a threat sub-object enables that
// threat family; its sensitivity defaults to medium.
type WAF struct {
	Name                string     `json:"name" yaml:"name"`
	Mode                string     `json:"mode,omitempty" yaml:"mode,omitempty"`
	Active              *bool      `json:"active,omitempty" yaml:"active,omitempty"`
	SQLInjection        *WAFThreat `json:"sqlInjection,omitempty" yaml:"sqlInjection,omitempty"`
	RemoteFileInclusion *WAFThreat `json:"remoteFileInclusion,omitempty" yaml:"remoteFileInclusion,omitempty"`
	DirectoryTraversal  *WAFThreat `json:"directoryTraversal,omitempty" yaml:"directoryTraversal,omitempty"`
	CrossSiteScripting  *WAFThreat `json:"crossSiteScripting,omitempty" yaml:"crossSiteScripting,omitempty"`
	EvadingTricks       *WAFThreat `json:"evadingTricks,omitempty" yaml:"evadingTricks,omitempty"`
	FileUpload          *WAFThreat `json:"fileUpload,omitempty" yaml:"fileUpload,omitempty"`
	UnwantedAccess      *WAFThreat `json:"unwantedAccess,omitempty" yaml:"unwantedAccess,omitempty"`
	IdentifiedAttack    *WAFThreat `json:"identifiedAttack,omitempty" yaml:"identifiedAttack,omitempty"`
	BypassAddresses     []string   `json:"bypassAddresses,omitempty" yaml:"bypassAddresses,omitempty"`
}

// WAFThreat sets the sensitivity for one threat family.
type WAFThreat struct {
	Sensitivity string `json:"sensitivity,omitempty" yaml:"sensitivity,omitempty"`
}

// NetworkList declares a reusable network list.
type NetworkList struct {
	ID          int    `json:"id,omitempty" yaml:"id,omitempty"`
	ListType    string `json:"listType" yaml:"listType"`
	ListContent []any  `json:"listContent" yaml:"listContent"`
}

// Function declares an edge function.
type Function struct {
	Name   string         `json:"name" yaml:"name"`
	Path   string         `json:"path,omitempty" yaml:"path,omitempty"`
	Args   map[string]any `json:"args,omitempty" yaml:"args,omitempty"`
	Active *bool          `json:"active,omitempty" yaml:"active,omitempty"`
}

// Connector types accepted by the pipeline.
const (
	ConnectorHTTP       = "http"
	ConnectorStorage    = "storage"
	ConnectorLiveIngest = "live_ingest"
)

// Connector declares an edge connector.
type Connector struct {
	Name       string              `json:"name" yaml:"name"`
	Type       string              `json:"type" yaml:"type"`
	Attributes ConnectorAttributes `json:"attributes" yaml:"attributes"`
}

// ConnectorAttributes carries the type-specific connector payload. Bucket
// and Prefix apply to storage connectors; the remaining fields to http and
// live_ingest connectors.
type ConnectorAttributes struct {
	Bucket            string             `json:"bucket,omitempty" yaml:"bucket,omitempty"`
	Prefix            string             `json:"prefix,omitempty" yaml:"prefix,omitempty"`
	Addresses         []ConnectorAddress `json:"addresses,omitempty" yaml:"addresses,omitempty"`
	ConnectionOptions *ConnectionOptions `json:"connectionOptions,omitempty" yaml:"connectionOptions,omitempty"`
	Modules           *ConnectorModules  `json:"modules,omitempty" yaml:"modules,omitempty"`
}

// ConnectorAddress is one upstream address of an http or live_ingest
// connector.
type ConnectorAddress struct {
	Address    string `json:"address" yaml:"address"`
	HTTPPort   *int   `json:"httpPort,omitempty" yaml:"httpPort,omitempty"`
	HTTPSPort  *int   `json:"httpsPort,omitempty" yaml:"httpsPort,omitempty"`
	ServerRole string `json:"serverRole,omitempty" yaml:"serverRole,omitempty"`
	Weight     *int   `json:"weight,omitempty" yaml:"weight,omitempty"`
	Active     *bool  `json:"active,omitempty" yaml:"active,omitempty"`
}

// ConnectionOptions tunes how a connector reaches its upstream.
type ConnectionOptions struct {
	DNSResolution     string `json:"dnsResolution,omitempty" yaml:"dnsResolution,omitempty"`
	TransportPolicy   string `json:"transportPolicy,omitempty" yaml:"transportPolicy,omitempty"`
	HTTPVersionPolicy string `json:"httpVersionPolicy,omitempty" yaml:"httpVersionPolicy,omitempty"`
	Host              string `json:"host,omitempty" yaml:"host,omitempty"`
	PathPrefix        string `json:"pathPrefix,omitempty" yaml:"pathPrefix,omitempty"`
	FollowingRedirect *bool  `json:"followingRedirect,omitempty" yaml:"followingRedirect,omitempty"`
	RealIPHeader      string `json:"realIpHeader,omitempty" yaml:"realIpHeader,omitempty"`
	RealPortHeader    string `json:"realPortHeader,omitempty" yaml:"realPortHeader,omitempty"`
}

// ConnectorModules toggles optional connector modules.
type ConnectorModules struct {
	LoadBalancer *ModuleFlag `json:"loadBalancer,omitempty" yaml:"loadBalancer,omitempty"`
	OriginShield *ModuleFlag `json:"originShield,omitempty" yaml:"originShield,omitempty"`
}

// ModuleFlag enables a connector module with an optional opaque config.
type ModuleFlag struct {
	Enabled bool           `json:"enabled" yaml:"enabled"`
	Config  map[string]any `json:"config,omitempty" yaml:"config,omitempty"`
}

// CustomPage declares a set of custom error pages.
type CustomPage struct {
	Name   string `json:"name" yaml:"name"`
	Active *bool  `json:"active,omitempty" yaml:"active,omitempty"`
	Pages  []Page `json:"pages" yaml:"pages"`
}

// Page binds one error code to a page definition.
type Page struct {
	Code string       `json:"code" yaml:"code"`
	Page PageSettings `json:"page" yaml:"page"`
}

// PageSettings describes where a custom page is served from. Connector is
// either a connector name (validated against declared connectors) or a
// numeric, already-resolved connector ID (validation skipped).
type PageSettings struct {
	Connector        any    `json:"connector,omitempty" yaml:"connector,omitempty"`
	TTL              *int   `json:"ttl,omitempty" yaml:"ttl,omitempty"`
	URI              string `json:"uri,omitempty" yaml:"uri,omitempty"`
	CustomStatusCode *int   `json:"customStatusCode,omitempty" yaml:"customStatusCode,omitempty"`
}

// Workload declares a workload and its deployments.
type Workload struct {
	Name           string             `json:"name" yaml:"name"`
	Active         *bool              `json:"active,omitempty" yaml:"active,omitempty"`
	Infrastructure *int               `json:"infrastructure,omitempty" yaml:"infrastructure,omitempty"`
	Domains        []string           `json:"domains,omitempty" yaml:"domains,omitempty"`
	TLS            *WorkloadTLS       `json:"tls,omitempty" yaml:"tls,omitempty"`
	Protocols      *WorkloadProtocols `json:"protocols,omitempty" yaml:"protocols,omitempty"`
	MTLS           *WorkloadMTLS      `json:"mtls,omitempty" yaml:"mtls,omitempty"`
	Deployments    []Deployment       `json:"deployments,omitempty" yaml:"deployments,omitempty"`
}

// WorkloadTLS configures workload TLS termination.
type WorkloadTLS struct {
	Certificate    any    `json:"certificate,omitempty" yaml:"certificate,omitempty"`
	Ciphers        any    `json:"ciphers,omitempty" yaml:"ciphers,omitempty"`
	MinimumVersion string `json:"minimumVersion,omitempty" yaml:"minimumVersion,omitempty"`
}

// WorkloadProtocols configures the protocols a workload serves.
type WorkloadProtocols struct {
	HTTP *WorkloadHTTP `json:"http,omitempty" yaml:"http,omitempty"`
}

// WorkloadHTTP lists HTTP versions and ports for a workload.
type WorkloadHTTP struct {
	Versions   []string `json:"versions,omitempty" yaml:"versions,omitempty"`
	HTTPPorts  []int    `json:"httpPorts,omitempty" yaml:"httpPorts,omitempty"`
	HTTPSPorts []int    `json:"httpsPorts,omitempty" yaml:"httpsPorts,omitempty"`
	QuicPorts  []int    `json:"quicPorts,omitempty" yaml:"quicPorts,omitempty"`
}

// WorkloadMTLS configures workload mutual TLS.
type WorkloadMTLS struct {
	Verification string `json:"verification,omitempty" yaml:"verification,omitempty"`
	Certificate  any    `json:"certificate,omitempty" yaml:"certificate,omitempty"`
	CRL          []int  `json:"crl,omitempty" yaml:"crl,omitempty"`
}

// Deployment binds a workload to an application, firewall and custom page.
type Deployment struct {
	Name     string             `json:"name" yaml:"name"`
	Current  *bool              `json:"current,omitempty" yaml:"current,omitempty"`
	Strategy DeploymentStrategy `json:"strategy" yaml:"strategy"`
}

// DeploymentStrategy selects the deployment strategy and its bindings.
type DeploymentStrategy struct {
	Type       string               `json:"type,omitempty" yaml:"type,omitempty"`
	Attributes DeploymentAttributes `json:"attributes" yaml:"attributes"`
}

// DeploymentAttributes references the entities a deployment wires together.
// Each reference is either an entity name (validated against the entities
// declared in the same document) or a numeric, pre-resolved ID.
type DeploymentAttributes struct {
	Application any `json:"application" yaml:"application"`
	Firewall    any `json:"firewall,omitempty" yaml:"firewall,omitempty"`
	CustomPage  any `json:"customPage,omitempty" yaml:"customPage,omitempty"`
}
