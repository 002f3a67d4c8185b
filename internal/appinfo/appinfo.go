// Package appinfo describes the application metadata served by the info
// endpoint.
package appinfo

const (
	Name        = "Simple Spring Boot App"
	Version     = "1.0.0"
	Description = "A simple web application"
)

// AppInfo is the fixed metadata record. Values are built per request and
// never modified afterwards.
type AppInfo struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
}

// New returns a fresh AppInfo holding the application's metadata.
func New() AppInfo {
	return AppInfo{
		Name:        Name,
		Version:     Version,
		Description: Description,
	}
}

func (a AppInfo) String() string {
	return a.Name + " " + a.Version
}
