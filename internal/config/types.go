package config

// ProviderType identifies an LLM provider.
type ProviderType string

const (
	ProviderGroq   ProviderType = "groq"
	ProviderOpenAI ProviderType = "openai"
	ProviderOllama ProviderType = "ollama"
)

// Config is the top-level triage server configuration, corresponding to .triage.yml.
type Config struct {
	Port            int            `yaml:"port" koanf:"port"`
	DataDir         string         `yaml:"data_dir" koanf:"data_dir"`
	AllowAllOrigins bool           `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	Provider        ProviderType   `yaml:"provider" koanf:"provider"`
	Model           string         `yaml:"model" koanf:"model"`
	Temperature     float64        `yaml:"temperature" koanf:"temperature"`
	Geocoder        GeocoderConfig `yaml:"geocoder" koanf:"geocoder"`
}

// GeocoderConfig holds settings for the Nominatim geocoding client.
type GeocoderConfig struct {
	BaseURL        string `yaml:"base_url" koanf:"base_url"`
	UserAgent      string `yaml:"user_agent" koanf:"user_agent"`
	TimeoutSeconds int    `yaml:"timeout_seconds" koanf:"timeout_seconds"`
}
