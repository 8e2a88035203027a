package config

const (
	defaultDataDir          = "~/.local/share/partsite"
	defaultRepoDirName      = "parts-repo"
	defaultDatabaseName     = "parts-site.sqlite"
	defaultLogDirName       = "logs"
	defaultRepositoryOrigin = "http://github.com/eldstal/replacement-parts"
	defaultRepositoryBranch = "master"
	defaultWebBind          = "127.0.0.1:5000"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultConfigPath       = "~/.config/partsite/config.toml"
	projectConfigName       = "partsite.toml"
)

// Default returns a Config populated with repository defaults. Derived paths
// (repo_dir, database_path, log_dir) stay empty until normalization places
// them under data_dir.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
		},
		Repository: Repository{
			Origin: defaultRepositoryOrigin,
			Branch: defaultRepositoryBranch,
		},
		Web: Web{
			Bind: defaultWebBind,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
