// Package manifest defines the backend-API-facing document produced by the
// transformation pipeline. Shapes here are strict: snake_case field names,
// fixed enumerations and materialized defaults. Sections absent from the
// source configuration are omitted entirely.
package manifest

// Manifest is the complete backend-facing document.
type Manifest struct {
	Name        string         `json:"name,omitempty"`
	Build       map[string]any `json:"build,omitempty"`
	Domain      *Domain        `json:"domain,omitempty"`
	Origin      []Origin       `json:"origin,omitempty"`
	Cache       []CacheSetting `json:"cache,omitempty"`
	Rules       []Rule         `json:"rules,omitempty"`
	Purge       []Purge        `json:"purge,omitempty"`
	Firewall    []Firewall     `json:"firewall,omitempty"`
	WAF         []WAF          `json:"waf,omitempty"`
	NetworkList []NetworkList  `json:"network_list,omitempty"`
	Functions   []Function     `json:"functions,omitempty"`
	Connectors  []Connector    `json:"connectors,omitempty"`
	CustomPages []CustomPage   `json:"custom_pages,omitempty"`
	Workloads   []Workload     `json:"workloads,omitempty"`
}

// Domain is the normalized domain payload.
type Domain struct {
	Name                       string   `json:"name"`
	Cnames                     []string `json:"cnames"`
	CnameAccessOnly            bool     `json:"cname_access_only"`
	DigitalCertificateID       any      `json:"digital_certificate_id"`
	EdgeApplicationID          int      `json:"edge_application_id,omitempty"`
	EdgeFirewallID             int      `json:"edge_firewall_id,omitempty"`
	IsMTLSEnabled              bool     `json:"is_mtls_enabled"`
	MTLSVerification           string   `json:"mtls_verification,omitempty"`
	MTLSTrustedCACertificateID int      `json:"mtls_trusted_ca_certificate_id,omitempty"`
}

// Origin is the normalized origin payload. Network fields are only
// materialized for non-object_storage types; bucket fields only for
// object_storage.
type Origin struct {
	Name                       string    `json:"name"`
	OriginType                 string    `json:"origin_type"`
	Bucket                     string    `json:"bucket,omitempty"`
	Prefix                     string    `json:"prefix,omitempty"`
	Addresses                  []Address `json:"addresses,omitempty"`
	OriginProtocolPolicy       string    `json:"origin_protocol_policy,omitempty"`
	HostHeader                 string    `json:"host_header,omitempty"`
	OriginPath                 string    `json:"origin_path,omitempty"`
	Method                     string    `json:"method,omitempty"`
	IsOriginRedirectionEnabled *bool     `json:"is_origin_redirection_enabled,omitempty"`
	ConnectionTimeout          *int      `json:"connection_timeout,omitempty"`
	TimeoutBetweenBytes        *int      `json:"timeout_between_bytes,omitempty"`
	HMACAuthentication         bool      `json:"hmac_authentication"`
	HMACRegionName             string    `json:"hmac_region_name,omitempty"`
	HMACAccessKey              string    `json:"hmac_access_key,omitempty"`
	HMACSecretKey              string    `json:"hmac_secret_key,omitempty"`
}

// Address is a normalized origin address. The bare-string config form is
// always expanded to this object form.
type Address struct {
	Address string `json:"address"`
	Weight  *int   `json:"weight,omitempty"`
}

// CacheSetting is the normalized cache payload with every default
// materialized.
type CacheSetting struct {
	Name                           string   `json:"name"`
	BrowserCacheSettings           string   `json:"browser_cache_settings"`
	BrowserCacheSettingsMaximumTTL int      `json:"browser_cache_settings_maximum_ttl"`
	CDNCacheSettings               string   `json:"cdn_cache_settings"`
	CDNCacheSettingsMaximumTTL     int      `json:"cdn_cache_settings_maximum_ttl"`
	CacheByQueryString             string   `json:"cache_by_query_string"`
	QueryStringFields              []string `json:"query_string_fields"`
	CacheByCookies                 string   `json:"cache_by_cookies"`
	CookieNames                    []string `json:"cookie_names"`
	EnableQueryStringSort          bool     `json:"enable_query_string_sort"`
	EnableCachingForPost           bool     `json:"enable_caching_for_post"`
	EnableCachingForOptions        bool     `json:"enable_caching_for_options"`
	EnableStaleCache               bool     `json:"enable_stale_cache"`
}

// Purge is the normalized purge payload. Layer is only materialized for
// cachekey purges.
type Purge struct {
	Type   string   `json:"type"`
	URLs   []string `json:"urls"`
	Method string   `json:"method"`
	Layer  string   `json:"layer,omitempty"`
}

// Firewall is the normalized firewall payload.
type Firewall struct {
	Name                     string         `json:"name"`
	Domains                  []string       `json:"domains"`
	IsActive                 bool           `json:"is_active"`
	DebugRules               bool           `json:"debug_rules"`
	EdgeFunctionsEnabled     bool           `json:"edge_functions_enabled"`
	NetworkProtectionEnabled bool           `json:"network_protection_enabled"`
	WAFEnabled               bool           `json:"waf_enabled"`
	Rules                    []FirewallRule `json:"rules,omitempty"`
}

// FirewallRule is one normalized firewall rule.
type FirewallRule struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	IsActive    bool          `json:"is_active"`
	Order       int           `json:"order"`
	Criteria    [][]Criterion `json:"criteria"`
	Behaviors   []Behavior    `json:"behaviors"`
}

// WAF is the normalized WAF payload: one enabled flag plus one sensitivity
// per threat family.
type WAF struct {
	Name                           string   `json:"name"`
	Mode                           string   `json:"mode"`
	Active                         bool     `json:"active"`
	SQLInjection                   bool     `json:"sql_injection"`
	SQLInjectionSensitivity        string   `json:"sql_injection_sensitivity"`
	RemoteFileInclusion            bool     `json:"remote_file_inclusion"`
	RemoteFileInclusionSensitivity string   `json:"remote_file_inclusion_sensitivity"`
	DirectoryTraversal             bool     `json:"directory_traversal"`
	DirectoryTraversalSensitivity  string   `json:"directory_traversal_sensitivity"`
	CrossSiteScripting             bool     `json:"cross_site_scripting"`
	CrossSiteScriptingSensitivity  string   `json:"cross_site_scripting_sensitivity"`
	EvadingTricks                  bool     `json:"evading_tricks"`
	EvadingTricksSensitivity       string   `json:"evading_tricks_sensitivity"`
	FileUpload                     bool     `json:"file_upload"`
	FileUploadSensitivity          string   `json:"file_upload_sensitivity"`
	UnwantedAccess                 bool     `json:"unwanted_access"`
	UnwantedAccessSensitivity      string   `json:"unwanted_access_sensitivity"`
	IdentifiedAttack               bool     `json:"identified_attack"`
	IdentifiedAttackSensitivity    string   `json:"identified_attack_sensitivity"`
	BypassAddresses                []string `json:"bypass_addresses"`
}

// NetworkList is the normalized network list payload.
type NetworkList struct {
	ID          int    `json:"id,omitempty"`
	ListType    string `json:"list_type"`
	ItemsValues []any  `json:"items_values"`
}

// Function is the normalized edge function payload.
type Function struct {
	Name          string         `json:"name"`
	Path          string         `json:"path,omitempty"`
	Args          map[string]any `json:"args"`
	InitiatorType string         `json:"initiator_type"`
	Active        bool           `json:"active"`
}

// Connector is the normalized connector payload.
type Connector struct {
	Name       string              `json:"name"`
	Type       string              `json:"type"`
	Attributes ConnectorAttributes `json:"attributes"`
}

// ConnectorAttributes is the type-discriminated connector payload.
type ConnectorAttributes struct {
	Bucket            string             `json:"bucket,omitempty"`
	Prefix            string             `json:"prefix,omitempty"`
	Addresses         []ConnectorAddress `json:"addresses,omitempty"`
	ConnectionOptions *ConnectionOptions `json:"connection_options,omitempty"`
	Modules           *ConnectorModules  `json:"modules,omitempty"`
}

// ConnectorAddress is one normalized connector address.
type ConnectorAddress struct {
	Address    string `json:"address"`
	HTTPPort   int    `json:"http_port"`
	HTTPSPort  int    `json:"https_port"`
	ServerRole string `json:"server_role"`
	Weight     int    `json:"weight"`
	Active     bool   `json:"active"`
}

// ConnectionOptions carries the fully defaulted connection options.
type ConnectionOptions struct {
	DNSResolution     string `json:"dns_resolution"`
	TransportPolicy   string `json:"transport_policy"`
	HTTPVersionPolicy string `json:"http_version_policy"`
	Host              string `json:"host"`
	PathPrefix        string `json:"path_prefix"`
	FollowingRedirect bool   `json:"following_redirect"`
	RealIPHeader      string `json:"real_ip_header"`
	RealPortHeader    string `json:"real_port_header"`
}

// ConnectorModules carries the fully defaulted module flags.
type ConnectorModules struct {
	LoadBalancer ModuleFlag `json:"load_balancer"`
	OriginShield ModuleFlag `json:"origin_shield"`
}

// ModuleFlag is one connector module toggle.
type ModuleFlag struct {
	Enabled bool           `json:"enabled"`
	Config  map[string]any `json:"config,omitempty"`
}

// CustomPage is the normalized custom pages payload.
type CustomPage struct {
	Name   string `json:"name"`
	Active bool   `json:"active"`
	Pages  []Page `json:"pages"`
}

// Page binds one error code to its normalized page definition.
type Page struct {
	Code string       `json:"code"`
	Page PageSettings `json:"page"`
}

// PageSettings is the normalized page definition. TTL, URI and
// CustomStatusCode carry explicit defaults (0, null, null).
type PageSettings struct {
	Type             string  `json:"type"`
	Connector        any     `json:"connector,omitempty"`
	TTL              int     `json:"ttl"`
	URI              *string `json:"uri"`
	CustomStatusCode *int    `json:"custom_status_code"`
}

// Workload is the normalized workload payload.
type Workload struct {
	Name           string             `json:"name"`
	Active         bool               `json:"active"`
	Infrastructure int                `json:"infrastructure"`
	Domains        []string           `json:"domains"`
	TLS            *WorkloadTLS       `json:"tls,omitempty"`
	Protocols      *WorkloadProtocols `json:"protocols,omitempty"`
	MTLS           *WorkloadMTLS      `json:"mtls,omitempty"`
	Deployments    []Deployment       `json:"deployments"`
}

// WorkloadTLS is the normalized workload TLS payload.
type WorkloadTLS struct {
	Certificate    any    `json:"certificate"`
	Ciphers        any    `json:"ciphers"`
	MinimumVersion string `json:"minimum_version"`
}

// WorkloadProtocols is the normalized protocols payload.
type WorkloadProtocols struct {
	HTTP *WorkloadHTTP `json:"http,omitempty"`
}

// WorkloadHTTP lists normalized HTTP versions and ports.
type WorkloadHTTP struct {
	Versions   []string `json:"versions"`
	HTTPPorts  []int    `json:"http_ports"`
	HTTPSPorts []int    `json:"https_ports"`
	QuicPorts  []int    `json:"quic_ports"`
}

// WorkloadMTLS is the normalized workload mutual TLS payload.
type WorkloadMTLS struct {
	Verification string `json:"verification"`
	Certificate  any    `json:"certificate,omitempty"`
	CRL          []int  `json:"crl,omitempty"`
}

// Deployment is one normalized workload deployment.
type Deployment struct {
	Name     string             `json:"name"`
	Current  bool               `json:"current"`
	Strategy DeploymentStrategy `json:"strategy"`
}

// DeploymentStrategy is the normalized strategy payload.
type DeploymentStrategy struct {
	Type       string               `json:"type"`
	Attributes DeploymentAttributes `json:"attributes"`
}

// DeploymentAttributes references the entities a deployment binds.
type DeploymentAttributes struct {
	Application any `json:"application"`
	Firewall    any `json:"firewall,omitempty"`
	CustomPage  any `json:"custom_page,omitempty"`
}
