package config

import "os"

// Server captures process-level configuration for the supplier frontend.
type Server struct {
	Addr            string
	ContentRoot     string
	DataAPIURL      string
	DataAPIToken    string
	DocumentsBucket string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("DM_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	contentRoot := os.Getenv("DM_CONTENT_ROOT")
	if contentRoot == "" {
		contentRoot = "frameworks"
	}
	apiURL := os.Getenv("DM_API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:5000"
	}

	return Server{
		Addr:            addr,
		ContentRoot:     contentRoot,
		DataAPIURL:      apiURL,
		DataAPIToken:    os.Getenv("DM_API_AUTH_TOKEN"),
		DocumentsBucket: os.Getenv("DM_DOCUMENTS_BUCKET"),
	}
}
