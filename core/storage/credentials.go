package storage

import (
	"strings"

	"github.com/minio/minio-go/v7/pkg/credentials"
)

// CredentialSource tells where the client credentials came from.
type CredentialSource string

const (
	// CredentialsStatic means access and secret key were both configured.
	CredentialsStatic CredentialSource = "static"
	// CredentialsProvider means the environment/profile chain produced a key pair.
	CredentialsProvider CredentialSource = "provider"
	// CredentialsAnonymous means nothing was found; requests go out unsigned.
	CredentialsAnonymous CredentialSource = "anonymous"
)

// providerChain is the fallback used when the configuration has no key pair.
// Overridden in tests.
var providerChain = func() []credentials.Provider {
	return []credentials.Provider{
		&credentials.EnvAWS{},
		&credentials.FileAWSCredentials{},
		&credentials.EnvMinio{},
	}
}

// ResolveCredentials picks credentials in order: configured key pair,
// environment/profile providers, then anonymous.
func ResolveCredentials(cfg Config) (*credentials.Credentials, CredentialSource) {
	if strings.TrimSpace(cfg.AccessKey) != "" && strings.TrimSpace(cfg.SecretKey) != "" {
		return credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""), CredentialsStatic
	}

	chain := credentials.NewChainCredentials(providerChain())
	if v, err := chain.Get(); err == nil && v.AccessKeyID != "" && v.SignerType != credentials.SignatureAnonymous {
		return chain, CredentialsProvider
	}

	return credentials.NewStaticV4("", "", ""), CredentialsAnonymous
}
