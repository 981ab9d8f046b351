package shared

import (
	"testing"

	"go.uber.org/zap"
)

func TestNormalizeNetworkCaseInsensitive(t *testing.T) {
	cases := []struct {
		input    string
		expected string
	}{
		{"MAINNET", NetworkMainnet},
		{"Testnet", NetworkTestnet},
		{"  devnet  ", NetworkDevnet},
		{"local", NetworkLocal},
		{"localnet", NetworkLocal},
	}

	for _, tc := range cases {
		result, err := NormalizeNetwork(tc.input)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", tc.input, err)
		}
		if result != tc.expected {
			t.Fatalf("expected %q for input %q, got %q", tc.expected, tc.input, result)
		}
	}
}

func TestNormalizeNetworkEmptyDefaultsToDevnet(t *testing.T) {
	for _, input := range []string{"", "   "} {
		result, err := NormalizeNetwork(input)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result != NetworkDevnet {
			t.Fatalf("expected %q for %q, got %q", NetworkDevnet, input, result)
		}
	}
}

func TestNormalizeNetworkUnsupported(t *testing.T) {
	if _, err := NormalizeNetwork("previewnet"); err == nil {
		t.Fatal("expected error for unsupported network")
	}
}

func TestEndpointsFor(t *testing.T) {
	devnet, err := EndpointsFor("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if devnet.NodeURL != "https://api.devnet.aptoslabs.com/v1" || devnet.FaucetURL == "" {
		t.Fatalf("unexpected devnet endpoints: %+v", devnet)
	}

	mainnet, err := EndpointsFor("mainnet")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mainnet.FaucetURL != "" {
		t.Fatalf("expected no mainnet faucet, got %q", mainnet.FaucetURL)
	}

	if _, err := EndpointsFor("badnet"); err == nil {
		t.Fatal("expected error for unsupported network")
	}
}

func TestValidateBaseURL(t *testing.T) {
	if err := ValidateBaseURL("https://node.example.com/v1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, input := range []string{"ftp://node.example.com", "https://", "::"} {
		if err := ValidateBaseURL(input); err == nil {
			t.Fatalf("expected error for %q", input)
		}
	}
}

func TestResolveLogger(t *testing.T) {
	if ResolveLogger(nil) == nil {
		t.Fatal("expected a no-op logger for nil")
	}
	logger := zap.NewExample()
	if ResolveLogger(logger) != logger {
		t.Fatal("expected the provided logger to be returned")
	}
}
