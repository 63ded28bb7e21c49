package storage

import (
	"testing"

	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withProviders(t *testing.T, providers ...credentials.Provider) {
	t.Helper()
	orig := providerChain
	providerChain = func() []credentials.Provider { return providers }
	t.Cleanup(func() { providerChain = orig })
}

func TestResolveCredentials(t *testing.T) {
	t.Run("StaticWins", func(t *testing.T) {
		withProviders(t, &credentials.Static{Value: credentials.Value{AccessKeyID: "env", SecretAccessKey: "env"}})

		creds, source := ResolveCredentials(Config{AccessKey: "key", SecretKey: "secret"})
		require.Equal(t, CredentialsStatic, source)

		v, err := creds.Get()
		require.NoError(t, err)
		assert.Equal(t, "key", v.AccessKeyID)
	})

	t.Run("BlankKeyFallsBack", func(t *testing.T) {
		withProviders(t, &credentials.Static{Value: credentials.Value{
			AccessKeyID:     "env",
			SecretAccessKey: "env-secret",
			SignerType:      credentials.SignatureV4,
		}})

		creds, source := ResolveCredentials(Config{AccessKey: "key", SecretKey: "   "})
		require.Equal(t, CredentialsProvider, source)

		v, err := creds.Get()
		require.NoError(t, err)
		assert.Equal(t, "env", v.AccessKeyID)
	})

	t.Run("EnvironmentProvider", func(t *testing.T) {
		t.Setenv("AWS_ACCESS_KEY_ID", "from-env")
		t.Setenv("AWS_SECRET_ACCESS_KEY", "from-env-secret")
		withProviders(t, &credentials.EnvAWS{})

		_, source := ResolveCredentials(Config{})
		assert.Equal(t, CredentialsProvider, source)
	})

	t.Run("Anonymous", func(t *testing.T) {
		for _, k := range []string{"AWS_ACCESS_KEY_ID", "AWS_ACCESS_KEY", "AWS_SECRET_ACCESS_KEY", "AWS_SECRET_KEY"} {
			t.Setenv(k, "")
		}
		withProviders(t, &credentials.EnvAWS{})

		creds, source := ResolveCredentials(Config{})
		require.Equal(t, CredentialsAnonymous, source)

		v, err := creds.Get()
		require.NoError(t, err)
		assert.Empty(t, v.AccessKeyID)
	})
}

func TestParseEndpoint(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		useSSL   bool
		endpoint string
		secure   bool
	}{
		{"Default", "", false, DefaultEndpoint, true},
		{"HTTPS", "https://minio.example.com", false, "minio.example.com", true},
		{"HTTP", "http://localhost:9000", true, "localhost:9000", false},
		{"Bare", "localhost:9000", false, "localhost:9000", false},
		{"BareSSL", "storage.example.com", true, "storage.example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			endpoint, secure, err := parseEndpoint(tt.raw, tt.useSSL)
			require.NoError(t, err)
			assert.Equal(t, tt.endpoint, endpoint)
			assert.Equal(t, tt.secure, secure)
		})
	}
}
