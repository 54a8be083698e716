package fulfillment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:    "missing api key",
			config:  Config{BaseURL: "https://api.example.com/v1", StaticToken: "tok"},
			wantErr: ErrConfigMissingAPIKey,
		},
		{
			name:    "missing base url",
			config:  Config{APIKey: "key", StaticToken: "tok"},
			wantErr: ErrConfigMissingBaseURL,
		},
		{
			name:    "no credentials and no static token",
			config:  Config{APIKey: "key", BaseURL: "https://api.example.com/v1"},
			wantErr: ErrConfigMissingAuth,
		},
		{
			name: "partial credentials rejected",
			config: Config{
				APIKey:    "key",
				BaseURL:   "https://api.example.com/v1",
				AuthEmail: "ops@example.com",
			},
			wantErr: ErrConfigMissingAuth,
		},
		{
			name: "static token suffices",
			config: Config{
				APIKey:      "key",
				BaseURL:     "https://api.example.com/v1",
				StaticToken: "tok",
			},
		},
		{
			name: "full credentials suffice",
			config: Config{
				APIKey:       "key",
				BaseURL:      "https://api.example.com/v1",
				AuthEmail:    "ops@example.com",
				AuthPassword: "secret",
				LocationKey:  "loc_1",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestConfigValidateDefaults(t *testing.T) {
	cfg := Config{
		APIKey:      "key",
		BaseURL:     "https://api.example.com/v1",
		StaticToken: "tok",
	}
	require.NoError(t, cfg.Validate())

	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, 1, cfg.DefaultShippingMethod)
	assert.Equal(t, 2, cfg.ExpressLeadDays)
	assert.Equal(t, 5, cfg.StandardLeadDays)
	assert.Equal(t, "20", cfg.TaxRate)
	assert.Equal(t, "Standard", cfg.TaxRuleName)
}
