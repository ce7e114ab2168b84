package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.Set("jwt_secret", "secret")
	return v
}

func TestFromViperDefaults(t *testing.T) {
	cfg, err := fromViper(newTestViper())
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, DialectMySQL, cfg.Database.Type)
	assert.Equal(t, time.UTC.String(), cfg.Location.String())
	assert.Equal(t, 5*time.Minute, cfg.FilterCacheTTL)
	assert.Equal(t, 15*time.Second, cfg.Billing.Timeout)
	assert.Equal(t, "admin", cfg.Auth.DefaultAdminUser)
	assert.True(t, cfg.Auth.Required)
	assert.False(t, cfg.Billing.Enabled())
	assert.Equal(t, 100, cfg.MaxPageSize)
}

func TestFromViperValidation(t *testing.T) {
	t.Run("unknown dialect", func(t *testing.T) {
		v := newTestViper()
		v.Set("database_type", "oracle")
		_, err := fromViper(v)
		assert.Error(t, err)
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		v := newTestViper()
		v.Set("jwt_secret", "")
		_, err := fromViper(v)
		assert.Error(t, err)
	})

	t.Run("jwt secret optional without auth", func(t *testing.T) {
		v := newTestViper()
		v.Set("jwt_secret", "")
		v.Set("auth_required", false)
		_, err := fromViper(v)
		assert.NoError(t, err)
	})

	t.Run("billing url needs secrets", func(t *testing.T) {
		v := newTestViper()
		v.Set("billing_api_url", "https://billing.example.com/api")
		_, err := fromViper(v)
		assert.Error(t, err)

		v.Set("billing_key_secret", "k")
		v.Set("billing_iv_secret", "i")
		cfg, err := fromViper(v)
		require.NoError(t, err)
		assert.True(t, cfg.Billing.Enabled())
	})

	t.Run("bootstrap admin needs password", func(t *testing.T) {
		v := newTestViper()
		v.Set("admin_email", "ops@example.com")
		_, err := fromViper(v)
		assert.Error(t, err)

		v.Set("admin_password", "s3cret")
		cfg, err := fromViper(v)
		require.NoError(t, err)
		assert.Equal(t, "Administrator", cfg.Auth.BootstrapName)
	})

	t.Run("bad timezone", func(t *testing.T) {
		v := newTestViper()
		v.Set("timezone", "Mars/Olympus")
		_, err := fromViper(v)
		assert.Error(t, err)
	})
}
