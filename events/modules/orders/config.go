package orders

import (
	"os"

	"gopkg.in/yaml.v2"
)

// NotifyConfig configures outbound order notifications.
type NotifyConfig struct {
	// Brokers and Topic target the Kafka cluster; empty means events are
	// logged instead of published.
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`

	// Channels the consumer fans notifications out to.
	Channels []ChannelConfig `yaml:"channels"`
}

// ChannelConfig describes one delivery channel for the consumer side.
type ChannelConfig struct {
	Name    string   `yaml:"name"`
	Kind    string   `yaml:"kind"` // "email" or "webhook"
	Target  string   `yaml:"target"`
	Events  []string `yaml:"events"`
	Enabled bool     `yaml:"enabled"`
}

// LoadNotifyConfig reads the notification config from a YAML file. A missing
// path yields the zero config, which disables publishing.
func LoadNotifyConfig(path string) (NotifyConfig, error) {
	var cfg NotifyConfig
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.Topic == "" {
		cfg.Topic = "order-events"
	}
	return cfg, nil
}
