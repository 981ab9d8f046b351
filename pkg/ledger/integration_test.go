package ledger

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/hashgraph-online/move-sdk-go/pkg/shared"
)

func TestLedgerIntegration_LedgerInfoAndAccount(t *testing.T) {
	if os.Getenv("RUN_INTEGRATION") != "1" {
		t.Skip("set RUN_INTEGRATION=1 to run live integration tests")
	}

	operator, err := shared.OperatorFromEnv()
	if err != nil {
		t.Skipf("skipping integration test: %v", err)
	}

	client, err := NewClient(Config{
		Network: operator.Network,
		BaseURL: operator.Endpoints.NodeURL,
	})
	if err != nil {
		t.Fatalf("failed to create ledger client: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	info, err := client.LedgerInfo(ctx)
	if err != nil {
		t.Fatalf("failed to read ledger info: %v", err)
	}
	if info.ChainID == 0 || info.LedgerVersion == "" {
		t.Fatalf("unexpected ledger info: %+v", info)
	}

	if _, err := client.Account(ctx, operator.Account.Address()); err != nil && !IsNotFound(err) {
		t.Fatalf("failed to read operator account: %v", err)
	}
}
