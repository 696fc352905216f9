package secrets

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeVault struct {
	values map[string]string
	calls  int
}

func (f *fakeVault) GetSecret(_ context.Context, name string) (string, error) {
	f.calls++
	if v, ok := f.values[name]; ok {
		return v, nil
	}
	return "", errors.New("secret not found")
}

func TestResolveSource(t *testing.T) {
	assert.Equal(t, SourceEnvironment, ResolveSource(SourceAuto, "development"))
	assert.Equal(t, SourceEnvironment, ResolveSource(SourceAuto, ""))
	assert.Equal(t, SourceVault, ResolveSource(SourceAuto, "production"))
	assert.Equal(t, SourceEnvironment, ResolveSource(SourceEnvironment, "production"))
}

func TestProvider_EnvironmentSource(t *testing.T) {
	t.Setenv("OUTREACH_TEST_SECRET", "hunter2")

	p, err := NewProvider(&ProviderConfig{Source: SourceEnvironment}, zap.NewNop())
	require.NoError(t, err)

	v, err := p.GetSecret(context.Background(), "OUTREACH_TEST_SECRET")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", v)

	_, err = p.GetSecret(context.Background(), "OUTREACH_TEST_MISSING")
	assert.Error(t, err)
}

func TestProvider_VaultRequiresName(t *testing.T) {
	_, err := NewProvider(&ProviderConfig{Source: SourceVault}, zap.NewNop())
	assert.Error(t, err)
}

func TestProvider_GetSecretOrEnvPrefersEnvironment(t *testing.T) {
	vault := &fakeVault{values: map[string]string{AppPassword: "from-vault", SessionSecret: "vault-session"}}
	p := newProviderWith(vault, zap.NewNop())
	ctx := context.Background()

	t.Setenv("APP_PASSWORD", "from-env")

	v, err := p.GetSecretOrEnv(ctx, AppPassword, "APP_PASSWORD")
	require.NoError(t, err)
	assert.Equal(t, "from-env", v)
	assert.Equal(t, 0, vault.calls)

	v, err = p.GetSecretOrEnv(ctx, SessionSecret, "OUTREACH_TEST_UNSET")
	require.NoError(t, err)
	assert.Equal(t, "vault-session", v)

	assert.Equal(t, "fallback", p.GetSecretOrEnvWithDefault(ctx, SendGridAPIKey, "OUTREACH_TEST_UNSET", "fallback"))
}

func TestSecretCache_Expires(t *testing.T) {
	now := time.Date(2024, 1, 17, 9, 0, 0, 0, time.UTC)
	cache := newSecretCache(time.Minute, func() time.Time { return now })

	cache.put("app-password", "s3cret")
	v, ok := cache.get("app-password")
	assert.True(t, ok)
	assert.Equal(t, "s3cret", v)

	now = now.Add(2 * time.Minute)
	_, ok = cache.get("app-password")
	assert.False(t, ok)

	cache.put("app-password", "rotated")
	cache.clear()
	_, ok = cache.get("app-password")
	assert.False(t, ok)
}
