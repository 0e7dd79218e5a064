package keyvault

import "testing"

func TestIsReference(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"@Microsoft.KeyVault(SecretUri=https://myvault.vault.azure.net/secrets/github-token)", true},
		{"@Microsoft.KeyVault(SecretUri=https://myvault.vault.azure.net/secrets/github-token/abc123)", true},
		{"akvs://00000000-0000-0000-0000-000000000000/myvault/github-token", true},
		{"akvs://00000000-0000-0000-0000-000000000000/myvault/github-token/abc123", true},
		{"ghp_plainToken123", false},
		{"", false},
		{"akvs://only-one-segment", false},
		{"@Microsoft.KeyVault(VaultUri=wrong)", false},
	}

	for _, tt := range tests {
		if got := IsReference(tt.value); got != tt.want {
			t.Errorf("IsReference(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestVaultURL(t *testing.T) {
	if got, want := vaultURL("myvault"), "https://myvault.vault.azure.net"; got != want {
		t.Errorf("vaultURL() = %q, want %q", got, want)
	}
}
