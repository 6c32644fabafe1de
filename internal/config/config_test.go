package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := &Config{}
	cfg.Tokens.Backend = TokenBackendFirestore
	cfg.Dispatch.SenderNameMode = SenderNameModeLookup
	cfg.Dispatch.PushProvider = PushProviderFCM
	return cfg
}

func TestValidateOK(t *testing.T) {
	require.NoError(t, validConfig().validate())
}

func TestValidateTokenBackend(t *testing.T) {
	cfg := validConfig()
	cfg.Tokens.Backend = "memcached"
	assert.Error(t, cfg.validate())

	// redis-бэкенд требует адрес
	cfg = validConfig()
	cfg.Tokens.Backend = TokenBackendRedis
	assert.Error(t, cfg.validate())

	cfg.Redis.Addr = "localhost:6379"
	assert.NoError(t, cfg.validate())
}

func TestValidateSenderNameMode(t *testing.T) {
	cfg := validConfig()
	cfg.Dispatch.SenderNameMode = "psychic"
	assert.Error(t, cfg.validate())

	cfg.Dispatch.SenderNameMode = SenderNameModeTrustCaller
	assert.NoError(t, cfg.validate())
}

func TestValidatePushProvider(t *testing.T) {
	cfg := validConfig()
	cfg.Dispatch.PushProvider = "carrier-pigeon"
	assert.Error(t, cfg.validate())

	cfg.Dispatch.PushProvider = PushProviderStub
	assert.NoError(t, cfg.validate())
}
