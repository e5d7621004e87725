package edunet_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/davidkroell/edunet"
	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "edunet.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	tests := map[string]struct {
		content string
		want    edunet.Config
		wantErr bool
	}{
		"Full": {
			content: "interface: eth0:192.168.100.1/24\narp:\n  maxRequestRetries: 5\n  retryDelay: 250ms\n  senderAddress: 192.168.100.1\n",
			want: edunet.Config{
				Interface: "eth0:192.168.100.1/24",
				Arp: edunet.ArpConfig{
					MaxRequestRetries: 5,
					RetryDelay:        250 * time.Millisecond,
					SenderAddress:     deviceIp,
				},
			},
		},
		"Defaults": {
			content: "interface: eth1:10.0.0.1/8\n",
			want: edunet.Config{
				Interface: "eth1:10.0.0.1/8",
				Arp: edunet.ArpConfig{
					MaxRequestRetries: edunet.DefaultMaxRequestRetries,
					RetryDelay:        edunet.DefaultRetryDelay,
				},
			},
		},
		"InvalidSenderAddress": {
			content: "arp:\n  senderAddress: nowhere\n",
			wantErr: true,
		},
		"NotYaml": {
			content: "arp: [",
			wantErr: true,
		},
	}

	for name, v := range tests {
		t.Run(name, func(t *testing.T) {
			config, err := edunet.LoadConfig(writeConfig(t, v.content))
			if v.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, v.want, config)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := edunet.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, os.IsNotExist(errors.Cause(err)))
}

func TestIp4Address_MarshalYAML(t *testing.T) {
	b, err := yaml.Marshal(edunet.ArpConfig{SenderAddress: deviceIp})
	require.NoError(t, err)
	assert.Contains(t, string(b), "senderAddress: 192.168.100.1")
}
