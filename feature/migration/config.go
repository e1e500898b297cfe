package migration

// Config holds behavioral settings for the migration engine.
// The legacy_* and retry_all options select behaviors that earlier revisions
// of the engine hard-coded; they exist so partially-migrated deployments can
// keep the semantics they started with.
type Config struct {
	// DryRun previews all changes without issuing any mutating call.
	DryRun bool `mapstructure:"dry_run" default:"false"`
	// ScopeType is the target scope discriminator a section maps onto
	// (e.g. "dcim.site").
	ScopeType string `mapstructure:"scope_type" default:"dcim.site"`
	// LegacySiteField emits the older single "site" reference on prefixes
	// instead of the scope_type/scope_id pair.
	LegacySiteField bool `mapstructure:"legacy_site_field" default:"false"`
	// RequestDelayMS is the minimum interval between remote calls.
	RequestDelayMS int `mapstructure:"request_delay_ms" default:"100"`
	// BatchSize is the progress-log interval, in records.
	BatchSize int `mapstructure:"batch_size" default:"100"`
	// RetryAttempts is the attempt ceiling for mutating calls.
	RetryAttempts int `mapstructure:"retry_attempts" default:"5"`
	// RetryDelaySeconds is the linear backoff base delay.
	RetryDelaySeconds int `mapstructure:"retry_delay_seconds" default:"10"`
	// RetryAll retries every failure instead of transient ones only.
	RetryAll bool `mapstructure:"retry_all" default:"false"`
	// UpdatePrefixes updates an existing prefix with the freshly computed
	// payload instead of leaving it untouched.
	UpdatePrefixes bool `mapstructure:"update_prefixes" default:"false"`
	// ErrorLogCap bounds per-kind individual error log lines; the error
	// counter keeps incrementing past it.
	ErrorLogCap int `mapstructure:"error_log_cap" default:"20"`
	// SectionMapFile is a YAML file mapping source section names to target
	// site names. When absent, section names are used verbatim.
	SectionMapFile string `mapstructure:"section_map_file" default:""`
}
