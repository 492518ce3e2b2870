package conf

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the config structure.
type Config struct {
	Server  Server  `yaml:"server"`
	GitHub  GitHub  `yaml:"github"`
	Session Session `yaml:"session"`
	AI      AI      `yaml:"ai"`
}

// Server is the server config.
type Server struct {
	Addr    string `yaml:"addr"`
	BaseURL string `yaml:"base_url"`
}

// GitHub holds the OAuth application credentials and provider endpoints.
// The endpoint URLs default to github.com and only need to be set when
// pointing the flow at a stand-in provider.
type GitHub struct {
	ClientID     string   `yaml:"client_id"`
	ClientSecret string   `yaml:"client_secret"`
	Scopes       []string `yaml:"scopes"`
	AuthURL      string   `yaml:"auth_url"`
	TokenURL     string   `yaml:"token_url"`
	UserInfoURL  string   `yaml:"user_info_url"`
	APIBaseURL   string   `yaml:"api_base_url"`
}

// Session is the session cookie config.
type Session struct {
	Secret     string `yaml:"secret"`
	TTLMinutes int    `yaml:"ttl_minutes"`
}

// TTL returns the session lifetime.
func (s *Session) TTL() time.Duration {
	return time.Duration(s.TTLMinutes) * time.Minute
}

// AI is the generative AI config.
type AI struct {
	Enabled      bool              `yaml:"enabled"`
	DefaultModel string            `yaml:"default_model"`
	Clients      map[string]Client `yaml:"clients"`
}

// Client holds per-provider API credentials.
type Client struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
}

// GetRedirectURL returns the OAuth callback URL. GitHub redirects the
// browser here after consent; the path is fixed and registered with the
// OAuth application.
func (g *GitHub) GetRedirectURL(serverBaseURL string) string {
	return serverBaseURL + "/signin-github"
}

// Load loads config from file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	cfg.applyEnv()

	if cfg.GitHub.ClientID == "" || cfg.GitHub.ClientSecret == "" {
		return nil, fmt.Errorf("github client_id and client_secret are required")
	}
	if cfg.Session.Secret == "" {
		return nil, fmt.Errorf("session secret is required")
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = "http://localhost:8080"
	}
	if len(c.GitHub.Scopes) == 0 {
		c.GitHub.Scopes = []string{"repo"}
	}
	if c.GitHub.UserInfoURL == "" {
		c.GitHub.UserInfoURL = "https://api.github.com/user"
	}
	if c.GitHub.APIBaseURL == "" {
		c.GitHub.APIBaseURL = "https://api.github.com"
	}
	if c.Session.TTLMinutes == 0 {
		c.Session.TTLMinutes = 480
	}
}

// applyEnv overrides secrets and addresses from env vars if present.
func (c *Config) applyEnv() {
	if addr := os.Getenv("SERVER_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if baseURL := os.Getenv("SERVER_BASE_URL"); baseURL != "" {
		c.Server.BaseURL = baseURL
	}
	if id := os.Getenv("GITHUB_CLIENT_ID"); id != "" {
		c.GitHub.ClientID = id
	}
	if secret := os.Getenv("GITHUB_CLIENT_SECRET"); secret != "" {
		c.GitHub.ClientSecret = secret
	}
	if secret := os.Getenv("SESSION_SECRET"); secret != "" {
		c.Session.Secret = secret
	}
}
