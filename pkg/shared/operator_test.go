package shared

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

const testPrivateKey = "0x9bf49a6a0755f953811fce125f2683d50429c3bb49e074147e0089a52eae155f"

var operatorEnvKeys = []string{
	"MY_LOCAL_ACCOUNT_PRIVATE_KEY",
	"MOVE_PRIVATE_KEY",
	"MY_WEB_ACCOUNT_ADDRESS",
	"MOVE_RECIPIENT_ADDRESS",
	"MOVE_NETWORK",
	"APTOS_NETWORK",
	"NETWORK",
	"MOVE_NODE_URL",
	"APTOS_NODE_URL",
	"MOVE_FAUCET_URL",
	"APTOS_FAUCET_URL",
}

func resetOperatorEnv(t *testing.T) {
	t.Helper()
	dotenvLoadOnce = sync.Once{}
	dotenvLoadOnce.Do(func() {})
	for _, key := range operatorEnvKeys {
		t.Setenv(key, "")
	}
}

func TestIsValidEnvKey(t *testing.T) {
	for _, key := range []string{"A", "a_b", "MY_VAR", "A1", "_LEADING_UNDERSCORE"} {
		if !isValidEnvKey(key) {
			t.Fatalf("expected %q to be valid", key)
		}
	}
	for _, key := range []string{"", "1ABC", "A B", "A-B", "A.B", "A=B"} {
		if isValidEnvKey(key) {
			t.Fatalf("expected %q to be invalid", key)
		}
	}
}

func TestFirstNonEmptyEnv(t *testing.T) {
	t.Setenv("_TEST_FIRST_A", "   ")
	t.Setenv("_TEST_FIRST_B", "hello")

	if result := firstNonEmptyEnv("_TEST_FIRST_A", "_TEST_FIRST_B"); result != "hello" {
		t.Fatalf("expected 'hello', got %q", result)
	}
	if result := firstNonEmptyEnv("_TEST_NONEXISTENT_1"); result != "" {
		t.Fatalf("expected empty string, got %q", result)
	}
}

func TestOperatorConfigFromEnvReportsAllMissing(t *testing.T) {
	resetOperatorEnv(t)

	_, err := OperatorConfigFromEnv()
	var configErr *ConfigError
	if !errors.As(err, &configErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
	if len(configErr.Problems) != 2 {
		t.Fatalf("expected both inputs reported, got %v", configErr.Problems)
	}
	if !strings.Contains(err.Error(), "MY_LOCAL_ACCOUNT_PRIVATE_KEY") || !strings.Contains(err.Error(), "MY_WEB_ACCOUNT_ADDRESS") {
		t.Fatalf("expected both variable names in %q", err.Error())
	}
}

func TestOperatorConfigFromEnvAliases(t *testing.T) {
	resetOperatorEnv(t)
	t.Setenv("MOVE_PRIVATE_KEY", testPrivateKey)
	t.Setenv("MOVE_RECIPIENT_ADDRESS", "0xb0b")
	t.Setenv("MOVE_NETWORK", "testnet")

	config, err := OperatorConfigFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.PrivateKey != testPrivateKey || config.RecipientAddress != "0xb0b" || config.Network != "testnet" {
		t.Fatalf("unexpected config: %+v", config)
	}
}

func TestOperatorFromEnvResolves(t *testing.T) {
	resetOperatorEnv(t)
	t.Setenv("MY_LOCAL_ACCOUNT_PRIVATE_KEY", testPrivateKey)
	t.Setenv("MY_WEB_ACCOUNT_ADDRESS", "0xb0b")
	t.Setenv("APTOS_NODE_URL", "http://127.0.0.1:9000/v1/")

	operator, err := OperatorFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if operator.Account == nil || operator.Recipient.String() != "0x0000000000000000000000000000000000000000000000000000000000000b0b" {
		t.Fatalf("unexpected operator: %+v", operator)
	}
	if operator.Network != NetworkDevnet {
		t.Fatalf("expected default network devnet, got %q", operator.Network)
	}
	if operator.Endpoints.NodeURL != "http://127.0.0.1:9000/v1" {
		t.Fatalf("expected node URL override, got %q", operator.Endpoints.NodeURL)
	}
	if operator.Endpoints.FaucetURL != "https://faucet.devnet.aptoslabs.com" {
		t.Fatalf("expected devnet faucet, got %q", operator.Endpoints.FaucetURL)
	}
}

func TestResolveAggregatesMalformedValues(t *testing.T) {
	config := OperatorConfig{
		PrivateKey:       "notakey",
		RecipientAddress: "0xzz",
		Network:          "badnet",
		NodeURL:          "ftp://node",
	}

	_, err := config.Resolve()
	var configErr *ConfigError
	if !errors.As(err, &configErr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
	if len(configErr.Problems) != 4 {
		t.Fatalf("expected four problems, got %v", configErr.Problems)
	}
}

func TestLoadDotEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	content := "# comment\n\n_TEST_DOTENV_LOAD=loaded_value\nexport _TEST_DOTENV_EXPORT=exported\n_TEST_DOTENV_DQ=\"double-quoted\"\n"
	if err := os.WriteFile(envPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}
	defer os.Unsetenv("_TEST_DOTENV_LOAD")
	defer os.Unsetenv("_TEST_DOTENV_EXPORT")
	defer os.Unsetenv("_TEST_DOTENV_DQ")

	if !loadDotEnvFile(envPath) {
		t.Fatal("expected loadDotEnvFile to return true")
	}
	if os.Getenv("_TEST_DOTENV_LOAD") != "loaded_value" {
		t.Fatalf("expected 'loaded_value', got %q", os.Getenv("_TEST_DOTENV_LOAD"))
	}
	if os.Getenv("_TEST_DOTENV_EXPORT") != "exported" {
		t.Fatalf("expected 'exported', got %q", os.Getenv("_TEST_DOTENV_EXPORT"))
	}
	if os.Getenv("_TEST_DOTENV_DQ") != "double-quoted" {
		t.Fatalf("expected 'double-quoted', got %q", os.Getenv("_TEST_DOTENV_DQ"))
	}
}

func TestLoadDotEnvFileSkipsAlreadySet(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	t.Setenv("_TEST_DOTENV_PREEXIST", "original")
	if err := os.WriteFile(envPath, []byte("_TEST_DOTENV_PREEXIST=overridden\n1BAD=value\n=nokey\n"), 0644); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}

	if loadDotEnvFile(envPath) {
		t.Fatal("expected nothing to be loaded")
	}
	if os.Getenv("_TEST_DOTENV_PREEXIST") != "original" {
		t.Fatalf("expected 'original', got %q", os.Getenv("_TEST_DOTENV_PREEXIST"))
	}
}

func TestFindUpward(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("failed to create dirs: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, ".env.test"), []byte("X=1\n"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	if found := findUpward(nested, ".env.test"); found != filepath.Join(root, ".env.test") {
		t.Fatalf("unexpected match: %q", found)
	}
	if found := findUpward(nested, ".does-not-exist-12345"); found != "" {
		t.Fatalf("expected no match, got %q", found)
	}
	if loadDotEnvFile("/tmp/_nonexistent_test_env_file_12345") {
		t.Fatal("expected false for nonexistent file")
	}
}
