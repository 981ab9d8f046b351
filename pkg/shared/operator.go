package shared

import (
	"bufio"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/hashgraph-online/move-sdk-go/pkg/account"
)

// OperatorConfig holds the two required inputs of the coin flow plus the
// network selection.
type OperatorConfig struct {
	PrivateKey       string
	RecipientAddress string
	Network          string
	NodeURL          string
	FaucetURL        string
}

// Operator is a validated OperatorConfig.
type Operator struct {
	Account   *account.Account
	Recipient account.Address
	Network   string
	Endpoints Endpoints
}

var dotenvLoadOnce sync.Once

// OperatorConfigFromEnv reads the operator configuration from the
// environment, loading the nearest .env file first. Missing values are
// reported together as a *ConfigError.
func OperatorConfigFromEnv() (OperatorConfig, error) {
	config := operatorConfigFromEnvironment()

	problems := &ConfigError{}
	if config.PrivateKey == "" {
		problems.add("MY_LOCAL_ACCOUNT_PRIVATE_KEY is required")
	}
	if config.RecipientAddress == "" {
		problems.add("MY_WEB_ACCOUNT_ADDRESS is required")
	}
	if err := problems.orNil(); err != nil {
		return OperatorConfig{}, err
	}
	return config, nil
}

// OperatorFromEnv reads and resolves the operator configuration in one
// step, so missing and malformed values land in the same *ConfigError.
func OperatorFromEnv() (Operator, error) {
	return operatorConfigFromEnvironment().Resolve()
}

func operatorConfigFromEnvironment() OperatorConfig {
	loadDotEnvIfPresent()
	return OperatorConfig{
		PrivateKey:       firstNonEmptyEnv("MY_LOCAL_ACCOUNT_PRIVATE_KEY", "MOVE_PRIVATE_KEY"),
		RecipientAddress: firstNonEmptyEnv("MY_WEB_ACCOUNT_ADDRESS", "MOVE_RECIPIENT_ADDRESS"),
		Network:          firstNonEmptyEnv("MOVE_NETWORK", "APTOS_NETWORK", "NETWORK"),
		NodeURL:          firstNonEmptyEnv("MOVE_NODE_URL", "APTOS_NODE_URL"),
		FaucetURL:        firstNonEmptyEnv("MOVE_FAUCET_URL", "APTOS_FAUCET_URL"),
	}
}

// Resolve parses and validates every field, returning all problems in one
// *ConfigError.
func (c OperatorConfig) Resolve() (Operator, error) {
	problems := &ConfigError{}
	operator := Operator{}

	if strings.TrimSpace(c.PrivateKey) == "" {
		problems.add("MY_LOCAL_ACCOUNT_PRIVATE_KEY is required")
	} else if acct, err := account.LoadKey(c.PrivateKey); err != nil {
		problems.add("private key: %v", err)
	} else {
		operator.Account = acct
	}

	if strings.TrimSpace(c.RecipientAddress) == "" {
		problems.add("MY_WEB_ACCOUNT_ADDRESS is required")
	} else if recipient, err := account.ParseAddress(c.RecipientAddress); err != nil {
		problems.add("recipient address: %v", err)
	} else {
		operator.Recipient = recipient
	}

	network, err := NormalizeNetwork(c.Network)
	if err != nil {
		problems.add("%v", err)
	} else {
		operator.Network = network
		operator.Endpoints = networkEndpoints[network]
	}

	if c.NodeURL != "" {
		if err := ValidateBaseURL(c.NodeURL); err != nil {
			problems.add("node URL: %v", err)
		} else {
			operator.Endpoints.NodeURL = strings.TrimRight(c.NodeURL, "/")
		}
	}
	if c.FaucetURL != "" {
		if err := ValidateBaseURL(c.FaucetURL); err != nil {
			problems.add("faucet URL: %v", err)
		} else {
			operator.Endpoints.FaucetURL = strings.TrimRight(c.FaucetURL, "/")
		}
	}

	if err := problems.orNil(); err != nil {
		return Operator{}, err
	}
	return operator, nil
}

// ValidateBaseURL checks that raw is an absolute http(s) URL.
func ValidateBaseURL(raw string) error {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return err
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return errScheme
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return errHost
	}
	return nil
}

func loadDotEnvIfPresent() {
	dotenvLoadOnce.Do(func() {
		startPaths := make([]string, 0, 2)
		if cwd, err := os.Getwd(); err == nil {
			startPaths = append(startPaths, cwd)
		}
		if _, currentFile, _, ok := runtime.Caller(0); ok {
			startPaths = append(startPaths, filepath.Dir(currentFile))
		}

		for _, start := range startPaths {
			if candidate := findUpward(start, ".env"); candidate != "" {
				loadDotEnvFile(candidate)
				return
			}
		}
	})
}

func findUpward(start string, name string) string {
	current := start
	for {
		candidate := filepath.Join(current, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(current)
		if parent == current {
			return ""
		}
		current = parent
	}
}

func loadDotEnvFile(path string) bool {
	file, err := os.Open(path)
	if err != nil {
		return false
	}
	defer file.Close()

	loadedAny := false
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		key, value, ok := parseDotEnvLine(scanner.Text())
		if !ok {
			continue
		}
		if _, alreadySet := os.LookupEnv(key); alreadySet {
			continue
		}
		if setErr := os.Setenv(key, value); setErr == nil {
			loadedAny = true
		}
	}

	return loadedAny
}

func parseDotEnvLine(raw string) (string, string, bool) {
	line := strings.TrimSpace(raw)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	line = strings.TrimSpace(strings.TrimPrefix(line, "export "))

	key, value, found := strings.Cut(line, "=")
	key = strings.TrimSpace(key)
	if !found || !isValidEnvKey(key) {
		return "", "", false
	}

	value = strings.TrimSpace(value)
	if len(value) >= 2 {
		first := value[0]
		last := value[len(value)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			value = value[1 : len(value)-1]
		}
	}
	return key, value, true
}

func isValidEnvKey(key string) bool {
	if key == "" {
		return false
	}
	for index, character := range key {
		if (character >= 'A' && character <= 'Z') ||
			(character >= 'a' && character <= 'z') ||
			(index > 0 && character >= '0' && character <= '9') ||
			character == '_' {
			continue
		}
		return false
	}
	return true
}

func firstNonEmptyEnv(keys ...string) string {
	for _, key := range keys {
		value := strings.TrimSpace(os.Getenv(key))
		if value != "" {
			return value
		}
	}
	return ""
}
