package shared

import (
	"fmt"
	"strings"
)

const (
	NetworkDevnet  = "devnet"
	NetworkTestnet = "testnet"
	NetworkMainnet = "mainnet"
	NetworkLocal   = "local"
)

// Endpoints are the REST node and faucet base URLs of a network. NodeURL
// includes the API version path.
type Endpoints struct {
	NodeURL   string
	FaucetURL string
}

var networkEndpoints = map[string]Endpoints{
	NetworkDevnet: {
		NodeURL:   "https://api.devnet.aptoslabs.com/v1",
		FaucetURL: "https://faucet.devnet.aptoslabs.com",
	},
	NetworkTestnet: {
		NodeURL:   "https://api.testnet.aptoslabs.com/v1",
		FaucetURL: "https://faucet.testnet.aptoslabs.com",
	},
	NetworkMainnet: {
		NodeURL: "https://api.mainnet.aptoslabs.com/v1",
	},
	NetworkLocal: {
		NodeURL:   "http://127.0.0.1:8080/v1",
		FaucetURL: "http://127.0.0.1:8081",
	},
}

// NormalizeNetwork lower-cases network and defaults it to devnet.
func NormalizeNetwork(network string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(network))
	if normalized == "" {
		return NetworkDevnet, nil
	}
	if normalized == "localnet" {
		return NetworkLocal, nil
	}
	if _, ok := networkEndpoints[normalized]; !ok {
		return "", fmt.Errorf("unsupported network %q", network)
	}
	return normalized, nil
}

// EndpointsFor returns the default endpoints of network. Mainnet has no
// faucet, so its FaucetURL is empty.
func EndpointsFor(network string) (Endpoints, error) {
	normalized, err := NormalizeNetwork(network)
	if err != nil {
		return Endpoints{}, err
	}
	return networkEndpoints[normalized], nil
}
