// Package keyvault resolves Azure Key Vault secret references, letting
// configuration carry a reference instead of a literal secret.
package keyvault

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
)

var (
	secretURIPattern = regexp.MustCompile(`^@Microsoft\.KeyVault\(SecretUri=(.+)\)$`)
	akvsPattern      = regexp.MustCompile(`^akvs://([^/]+)/([^/]+)/([^/]+)(?:/([^/]+))?$`)
)

// IsReference reports whether the value matches a supported Key Vault
// reference format.
func IsReference(value string) bool {
	value = strings.TrimSpace(value)
	if secretURIPattern.MatchString(value) {
		return true
	}
	if strings.HasPrefix(value, "akvs://") {
		return akvsPattern.MatchString(value)
	}
	return false
}

// Resolver resolves Key Vault references to secret values.
type Resolver struct {
	credential *azidentity.DefaultAzureCredential
	clients    map[string]*azsecrets.Client
	mu         sync.Mutex
}

// NewResolver builds a resolver using DefaultAzureCredential.
func NewResolver() (*Resolver, error) {
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create DefaultAzureCredential: %w", err)
	}

	return &Resolver{
		credential: cred,
		clients:    make(map[string]*azsecrets.Client),
	}, nil
}

// Resolve resolves a single Key Vault reference to its secret value.
func (r *Resolver) Resolve(ctx context.Context, reference string) (string, error) {
	reference = strings.TrimSpace(reference)

	if matches := secretURIPattern.FindStringSubmatch(reference); matches != nil {
		return r.resolveBySecretURI(ctx, strings.TrimSpace(matches[1]))
	}

	if matches := akvsPattern.FindStringSubmatch(reference); matches != nil {
		vaultName := matches[2]
		secretName := matches[3]
		version := ""
		if len(matches) > 4 {
			version = matches[4]
		}
		return r.getSecret(ctx, vaultURL(vaultName), secretName, version)
	}

	return "", fmt.Errorf("invalid Key Vault reference format")
}

func (r *Resolver) resolveBySecretURI(ctx context.Context, secretURI string) (string, error) {
	base, secretPath, ok := strings.Cut(secretURI, "/secrets/")
	if !ok {
		return "", fmt.Errorf("invalid secret URI format")
	}

	name := secretPath
	version := ""
	if n, v, ok := strings.Cut(secretPath, "/"); ok {
		name, version = n, v
	}

	return r.getSecret(ctx, base, name, version)
}

func (r *Resolver) getSecret(ctx context.Context, vaultURL, name, version string) (string, error) {
	client, err := r.getClient(vaultURL)
	if err != nil {
		return "", err
	}

	resp, err := client.GetSecret(ctx, name, version, nil)
	if err != nil {
		return "", fmt.Errorf("failed to get secret %s: %w", name, err)
	}
	if resp.Value == nil {
		return "", fmt.Errorf("secret %s has no value", name)
	}
	return *resp.Value, nil
}

func (r *Resolver) getClient(vaultURL string) (*azsecrets.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if client, ok := r.clients[vaultURL]; ok {
		return client, nil
	}

	client, err := azsecrets.NewClient(vaultURL, r.credential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Key Vault client: %w", err)
	}

	r.clients[vaultURL] = client
	return client, nil
}

func vaultURL(vaultName string) string {
	return fmt.Sprintf("https://%s.vault.azure.net", vaultName)
}
