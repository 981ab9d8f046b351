package publisher

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hashgraph-online/move-sdk-go/pkg/account"
	"github.com/hashgraph-online/move-sdk-go/pkg/ledger"
	"github.com/hashgraph-online/move-sdk-go/pkg/ledger/ledgertest"
	"github.com/hashgraph-online/move-sdk-go/pkg/payload"
	"github.com/hashgraph-online/move-sdk-go/pkg/transaction"
)

func newTestPublisher(t *testing.T) (*Client, *ledgertest.Server, *account.Account) {
	t.Helper()
	server := ledgertest.New(ledgertest.WithPendingPolls(1))
	t.Cleanup(server.Close)

	ledgerClient, err := ledger.NewClient(ledger.Config{BaseURL: server.NodeURL()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	submitter, err := transaction.NewSubmitter(transaction.SubmitterConfig{Ledger: ledgerClient})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tracker, err := transaction.NewTracker(transaction.TrackerConfig{Ledger: ledgerClient, PollInterval: 5 * time.Millisecond})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	client, err := NewClient(Config{Submitter: submitter, Tracker: tracker})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	owner, err := account.Generate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	server.CreateAccount(owner.Address(), 1_000_000_000)
	return client, server, owner
}

func TestPublishAndWait(t *testing.T) {
	client, server, owner := newTestPublisher(t)
	modules := [][]byte{
		ledgertest.ModuleBytes(owner.Address(), "stable_coin1", "StableCoin1"),
		ledgertest.ModuleBytes(owner.Address(), "helpers"),
	}

	receipt, err := client.PublishAndWait(context.Background(), owner, []byte("metadata"), modules)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if receipt.Status != transaction.StatusCommitted {
		t.Fatalf("unexpected receipt: %+v", receipt)
	}
	if !server.ModulePublished(owner.Address(), "stable_coin1") || !server.ModulePublished(owner.Address(), "helpers") {
		t.Fatal("expected both modules to be published")
	}
}

func TestPublishArtifactRejectsMalformedModule(t *testing.T) {
	client, server, owner := newTestPublisher(t)
	artifact := Artifact{
		Metadata: []byte("metadata"),
		Modules: [][]byte{
			ledgertest.ModuleBytes(owner.Address(), "stable_coin1", "StableCoin1"),
			[]byte("not bytecode"),
		},
	}

	_, err := client.PublishArtifact(context.Background(), owner, artifact)
	var formatErr *PackageFormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("expected PackageFormatError, got %v", err)
	}
	if server.ModulePublished(owner.Address(), "stable_coin1") {
		t.Fatal("expected no module to be published")
	}

	register, err := payload.Natural(
		"0x1::"+payload.ManagedCoinModule,
		"register",
		[]string{owner.Address().String() + "::stable_coin1::StableCoin1"},
		nil,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = transaction.SubmitAndWait(context.Background(), client.submitter, client.tracker, owner, payload.Wrap(register))
	if !transaction.IsExecutionKind(err, transaction.KindResolution) {
		t.Fatalf("expected the coin type to stay unresolved, got %v", err)
	}
}

func TestPublishRejectsForeignAddress(t *testing.T) {
	client, _, owner := newTestPublisher(t)
	modules := [][]byte{ledgertest.ModuleBytes(account.MustParseAddress("0xbeef"), "stable_coin1", "StableCoin1")}

	_, err := client.PublishAndWait(context.Background(), owner, []byte("metadata"), modules)
	var formatErr *PackageFormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("expected PackageFormatError, got %v", err)
	}
	if !transaction.IsExecutionKind(err, transaction.KindPackageFormat) {
		t.Fatal("expected the execution error to be wrapped")
	}
}

func TestPublishValidatesInput(t *testing.T) {
	client, server, owner := newTestPublisher(t)
	ctx := context.Background()

	if _, err := client.Publish(ctx, owner, nil, [][]byte{{0x01}}); err == nil {
		t.Fatal("expected error for empty metadata")
	}
	if _, err := client.Publish(ctx, owner, []byte("metadata"), nil); err == nil {
		t.Fatal("expected error without modules")
	}
	if _, err := client.Publish(ctx, owner, []byte("metadata"), [][]byte{{}}); err == nil {
		t.Fatal("expected error for an empty module")
	}
	if _, err := client.Publish(ctx, nil, []byte("metadata"), [][]byte{{0x01}}); err == nil {
		t.Fatal("expected error without account")
	}
	if server.Submissions() != 0 {
		t.Fatalf("expected nothing submitted, got %d", server.Submissions())
	}
}
