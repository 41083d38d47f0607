package push

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Defaults(t *testing.T) {
	cfg := NewDefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 5*time.Second, cfg.KeepAliveInterval)
	assert.Equal(t, 64, cfg.ChannelCapacity)
	assert.Equal(t, RejectNew, cfg.Overflow)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid reject", Config{KeepAliveInterval: time.Second, ChannelCapacity: 1, Overflow: RejectNew}, false},
		{"valid drop-oldest", Config{KeepAliveInterval: time.Second, ChannelCapacity: 1, Overflow: DropOldest}, false},
		{"zero interval", Config{KeepAliveInterval: 0, ChannelCapacity: 1, Overflow: RejectNew}, true},
		{"negative interval", Config{KeepAliveInterval: -time.Second, ChannelCapacity: 1, Overflow: RejectNew}, true},
		{"zero capacity", Config{KeepAliveInterval: time.Second, ChannelCapacity: 0, Overflow: RejectNew}, true},
		{"unknown policy", Config{KeepAliveInterval: time.Second, ChannelCapacity: 1, Overflow: "lossy"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
