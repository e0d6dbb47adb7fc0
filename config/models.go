package config

// Config holds the configuration of the application
// Use config.LoadConfig to create a new instance
type Config struct {
	LLM           LLM                 `mapstructure:"llm"           yaml:"llm"`
	Flows         FlowsConfig         `mapstructure:"flows"         yaml:"flows"`
	Analysis      AnalysisConfig      `mapstructure:"analysis"      yaml:"analysis"`
	Store         StoreConfig         `mapstructure:"store"         yaml:"store"`
	TermCache     TermCacheConfig     `mapstructure:"term_cache"    yaml:"term_cache"`
	Tasks         TasksConfig         `mapstructure:"tasks"         yaml:"tasks"`
	Server        ServerConfig        `mapstructure:"server"        yaml:"server"`
	Log           LogConfig           `mapstructure:"log"           yaml:"log"`
	Auth          AuthConfig          `mapstructure:"auth"          yaml:"auth"`
	Observability ObservabilityConfig `mapstructure:"observability" yaml:"observability"`
}

type LLM struct {
	Service string `mapstructure:"service" yaml:"service" validate:"omitempty,oneof=openai anthropic gemini"`
	Model   string `mapstructure:"model"   yaml:"model"`
	// API keys are loaded from ENV not config file.
	OpenAIAPIKey        string            `mapstructure:"openai_api_key"        yaml:"-"                     json:"-"`
	AnthropicAPIKey     string            `mapstructure:"anthropic_api_key"     yaml:"-"                     json:"-"`
	GeminiAPIKey        string            `mapstructure:"gemini_api_key"        yaml:"-"                     json:"-"`
	OpenAIEndpoint      string            `mapstructure:"openai_endpoint"       yaml:"openai_endpoint"`
	OpenAIOrgID         string            `mapstructure:"openai_org_id"         yaml:"openai_org_id"`
	AzureOpenAIEndpoint string            `mapstructure:"azure_openai_endpoint" yaml:"azure_openai_endpoint"`
	AzureOpenAIModel    AzureOpenAIConfig `mapstructure:"azure_openai"          yaml:"azure_openai"`
	GeminiEndpoint      string            `mapstructure:"gemini_endpoint"       yaml:"gemini_endpoint"`
	// Timeout for a single LLM call, in seconds.
	Timeout    int `mapstructure:"timeout"     yaml:"timeout"     validate:"gte=0"`
	MaxRetries int `mapstructure:"max_retries" yaml:"max_retries" validate:"gte=0"`
}

type AzureOpenAIConfig struct {
	LLMDeployment string `mapstructure:"llm_deployment" yaml:"llm_deployment"`
}

// FlowsConfig controls how prompt flows handle malformed model output.
type FlowsConfig struct {
	MaxRetries int `mapstructure:"max_retries" yaml:"max_retries" validate:"gte=0"`
	// RetryBackoff is the initial backoff between attempts, in milliseconds.
	RetryBackoff int `mapstructure:"retry_backoff" yaml:"retry_backoff" validate:"gte=0"`
	MaxTokens    int `mapstructure:"max_tokens"    yaml:"max_tokens"    validate:"gte=0"`
}

type AnalysisConfig struct {
	MaxInputChars  int `mapstructure:"max_input_chars"  yaml:"max_input_chars"  validate:"gte=0"`
	MaxInputTokens int `mapstructure:"max_input_tokens" yaml:"max_input_tokens" validate:"gte=0"`
	// Summarize runs the usage summary flow alongside slang identification in the web UI.
	Summarize bool `mapstructure:"summarize" yaml:"summarize"`
}

type StoreConfig struct {
	Type       string         `mapstructure:"type"        yaml:"type"        validate:"omitempty,oneof=memory postgres"`
	History    bool           `mapstructure:"history"     yaml:"history"`
	MaxRecords int            `mapstructure:"max_records" yaml:"max_records" validate:"gte=0"`
	Postgres   PostgresConfig `mapstructure:"postgres"    yaml:"postgres"`
}

type PostgresConfig struct {
	DSN string `mapstructure:"dsn" yaml:"dsn" json:"-"`
}

type TermCacheConfig struct {
	Type string `mapstructure:"type" yaml:"type" validate:"omitempty,oneof=none memory redis"`
	// TTL in minutes. 0 means entries never expire.
	TTL   int         `mapstructure:"ttl"   yaml:"ttl" validate:"gte=0"`
	Redis RedisConfig `mapstructure:"redis" yaml:"redis"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"  yaml:"address"`
	Password string `mapstructure:"password" yaml:"-"       json:"-"`
	DB       int    `mapstructure:"db"       yaml:"db"`
}

// TasksConfig configures the queue that processes page scans.
type TasksConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	// Throttle is the maximum number of scans processed per second.
	Throttle   int `mapstructure:"throttle"    yaml:"throttle"    validate:"gte=0"`
	MaxRetries int `mapstructure:"max_retries" yaml:"max_retries" validate:"gte=0"`
	// Timeout for a single scan, in seconds.
	Timeout int `mapstructure:"timeout" yaml:"timeout" validate:"gte=0"`
}

type ServerConfig struct {
	Host           string            `mapstructure:"host"             yaml:"host"`
	Port           int               `mapstructure:"port"             yaml:"port"             validate:"gte=0,lte=65535"`
	WebEnabled     bool              `mapstructure:"web_enabled"      yaml:"web_enabled"`
	MaxRequestSize int64             `mapstructure:"max_request_size" yaml:"max_request_size" validate:"gte=0"`
	AllowedOrigins []string          `mapstructure:"allowed_origins"  yaml:"allowed_origins"`
	CustomHeaders  map[string]string `mapstructure:"custom_headers"   yaml:"custom_headers"`
}

type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

type AuthConfig struct {
	Secret   string `mapstructure:"secret"   yaml:"-"        json:"-"`
	Required bool   `mapstructure:"required" yaml:"required"`
}

type ObservabilityConfig struct {
	// OTLPEndpoint enables tracing when set, e.g. localhost:4318
	OTLPEndpoint string `mapstructure:"otlp_endpoint" yaml:"otlp_endpoint"`
	Insecure     bool   `mapstructure:"insecure"      yaml:"insecure"`
	ServiceName  string `mapstructure:"service_name"  yaml:"service_name"`
}
