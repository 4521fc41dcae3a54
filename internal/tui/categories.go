package tui

type Category struct {
	ID          string
	Name        string
	Description string
}

var Categories = []Category{
	{ID: "auth", Name: "Authentication", Description: "Personal access token for Azure DevOps"},
	{ID: "api", Name: "API", Description: "REST API version sent with every request"},
	{ID: "http", Name: "HTTP", Description: "Timeout, retries, user agent, and proxy"},
	{ID: "cache", Name: "Cache", Description: "Page cache toggle, TTL, and location"},
	{ID: "output", Name: "Output", Description: "Progress display"},
	{ID: "logging", Name: "Logging", Description: "Log level and format"},
}

func GetCategoryByID(id string) *Category {
	for i := range Categories {
		if Categories[i].ID == id {
			return &Categories[i]
		}
	}
	return nil
}

func GetCategoryNames() []string {
	names := make([]string, len(Categories))
	for i, c := range Categories {
		names[i] = c.Name
	}
	return names
}
