package tui

import (
	"github.com/charmbracelet/huh"
)

func CreateAuthForm(values *ConfigValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("token").
				Title("Personal Access Token").
				Description("Stored in the config file; AZURE_DEVOPS_EXT_PAT overrides it").
				Value(&values.Token).
				EchoMode(huh.EchoModePassword),
		),
	).WithTheme(GetTheme())
}

func CreateAPIForm(values *ConfigValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("version").
				Title("API Version").
				Description("Value of the api-version query parameter").
				Value(&values.APIVersion).
				Placeholder("7.1-preview.1").
				Validate(ValidateAPIVersion),
		),
	).WithTheme(GetTheme())
}

func CreateHTTPForm(values *ConfigValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("timeout").
				Title("Request Timeout").
				Description("HTTP request timeout (e.g., 30s, 1m)").
				Value(&values.Timeout).
				Placeholder("90s").
				Validate(ValidateDuration),

			huh.NewInput().
				Key("max_retries").
				Title("Max Retries").
				Description("Retries for 429 and 5xx responses (0-10, 0 disables)").
				Value(&values.MaxRetries).
				Placeholder("0").
				Validate(ValidateIntRange(0, 10)),

			huh.NewInput().
				Key("user_agent").
				Title("User Agent").
				Description("Custom User-Agent header (leave empty for default)").
				Value(&values.UserAgent),

			huh.NewInput().
				Key("proxy_url").
				Title("Proxy URL").
				Description("http, https, or socks5 proxy (leave empty for none)").
				Value(&values.ProxyURL).
				Placeholder("http://proxy:8080").
				Validate(ValidateProxyURL),
		),
	).WithTheme(GetTheme())
}

func CreateCacheForm(values *ConfigValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("enabled").
				Title("Enable Cache").
				Description("Cache fetched pages to reduce API calls").
				Value(&values.CacheEnabled),

			huh.NewInput().
				Key("ttl").
				Title("Cache TTL").
				Description("How long to keep cached pages (e.g., 1h, 24h)").
				Value(&values.CacheTTL).
				Placeholder("1h").
				Validate(ValidateDuration),

			huh.NewInput().
				Key("directory").
				Title("Cache Directory").
				Description("Directory for cache storage").
				Value(&values.CacheDirectory).
				Placeholder("~/.ado2tf/cache"),
		),
	).WithTheme(GetTheme())
}

func CreateOutputForm(values *ConfigValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("progress").
				Title("Show Progress").
				Description("Display a spinner on stderr while pages are fetched").
				Value(&values.Progress),
		),
	).WithTheme(GetTheme())
}

func CreateLoggingForm(values *ConfigValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("level").
				Title("Log Level").
				Description("Minimum log level to display").
				Options(
					huh.NewOption("Debug", "debug"),
					huh.NewOption("Info", "info"),
					huh.NewOption("Warn", "warn"),
					huh.NewOption("Error", "error"),
				).
				Value(&values.LogLevel),

			huh.NewSelect[string]().
				Key("format").
				Title("Log Format").
				Description("Output format for logs").
				Options(
					huh.NewOption("Pretty (human-readable)", "pretty"),
					huh.NewOption("JSON (structured)", "json"),
				).
				Value(&values.LogFormat),
		),
	).WithTheme(GetTheme())
}

func GetFormForCategory(category string, values *ConfigValues) *huh.Form {
	switch category {
	case "auth":
		return CreateAuthForm(values)
	case "api":
		return CreateAPIForm(values)
	case "http":
		return CreateHTTPForm(values)
	case "cache":
		return CreateCacheForm(values)
	case "output":
		return CreateOutputForm(values)
	case "logging":
		return CreateLoggingForm(values)
	default:
		return nil
	}
}
