package broker

type Config struct {
	URI        string
	StreamName string `yaml:"stream_name"`
	// GroupName is created up front so downstream consumers never miss
	// entries written before they first connect.
	GroupName string `yaml:"group_name"`
}

type PublisherConfig struct {
	Timeout int   `yaml:"timeout_in_ms"`
	MaxLen  int64 `yaml:"max_len"`
}
