package edunet

import (
	"os"
	"time"

	"github.com/juju/errors"
	"gopkg.in/yaml.v3"
)

const (
	DefaultMaxRequestRetries = 3
	DefaultRetryDelay        = time.Second
)

type ArpConfig struct {
	// MaxRequestRetries is the number of requests sent before a resolution gives up.
	MaxRequestRetries int           `yaml:"maxRequestRetries"`
	RetryDelay        time.Duration `yaml:"retryDelay"`
	// SenderAddress is the sender protocol address of outgoing requests.
	SenderAddress Ip4Address `yaml:"senderAddress"`
}

type Config struct {
	// Interface has the format of InterfaceConfigFormatString.
	Interface string    `yaml:"interface"`
	Arp       ArpConfig `yaml:"arp"`
}

func DefaultConfig() Config {
	return Config{
		Arp: ArpConfig{
			MaxRequestRetries: DefaultMaxRequestRetries,
			RetryDelay:        DefaultRetryDelay,
			SenderAddress:     UnspecifiedIp4Address,
		},
	}
}

// LoadConfig reads a YAML config file. Missing keys keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Annotatef(err, "failed to read config %s", path)
	}

	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, errors.Annotatef(err, "failed to parse config %s", path)
	}
	return cfg, nil
}

func (a *Ip4Address) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}

	ip, err := ParseIp4Address(s)
	if err != nil {
		return err
	}
	*a = ip
	return nil
}

func (a Ip4Address) MarshalYAML() (interface{}, error) {
	return a.String(), nil
}
