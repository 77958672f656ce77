package testrepo

// Config holds the settings addressing the remote test-management repository.
type Config struct {
	// Host is the repository host, used as a display label in logs and reports.
	Host string `mapstructure:"host" default:""`
	// URL is the repository URL, logged on connect.
	URL string `mapstructure:"url" default:""`
	// Domain scopes the project.
	Domain string `mapstructure:"domain" default:"DEFAULT"`
	// Project is the project holding the test sets.
	Project string `mapstructure:"project" default:""`
	// LoginName authenticates the session and is recorded as the tester.
	LoginName string `mapstructure:"login_name" default:""`
	// Password authenticates LoginName.
	Password string `mapstructure:"password" default:""`
	// Path is the test-set folder under which test sets are searched.
	Path string `mapstructure:"path" default:"Root"`
	// TestSetName overrides the per-file test-set name for every file.
	TestSetName string `mapstructure:"test_set_name" default:""`
	// TestName is accepted for compatibility; reconciliation does not use it.
	TestName string `mapstructure:"test_name" default:""`
	// CacheTTLSeconds caches test-set lookups; zero disables caching.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"0"`
}

// Credentials identify and authenticate a repository session.
type Credentials struct {
	URL       string
	Domain    string
	Project   string
	LoginName string
	Password  string
}

// Credentials returns the session credentials held by the configuration.
func (c Config) Credentials() Credentials {
	return Credentials{
		URL:       c.URL,
		Domain:    c.Domain,
		Project:   c.Project,
		LoginName: c.LoginName,
		Password:  c.Password,
	}
}
