package minio

type ClientConfig struct {
	AccessKey string
	SecretKey string
	Endpoint  string `yaml:"endpoint"`
	Secure    bool   `yaml:"secure"`
	Region    string `yaml:"region"`
}

type UploaderConfig struct {
	Timeout int64  `yaml:"timeout_in_ms"`
	Bucket  string `yaml:"bucket"`
	// PublicBaseURL prefixes returned URLs; empty means the client endpoint.
	PublicBaseURL string `yaml:"public_base_url"`
	// Visibility is one of "policy", "acl" or "none".
	Visibility   string `yaml:"visibility"`
	PublicPrefix string `yaml:"public_prefix"`
}

type RemoverConfig struct {
	Timeout int64  `yaml:"timeout_in_ms"`
	Bucket  string `yaml:"bucket"`
}
