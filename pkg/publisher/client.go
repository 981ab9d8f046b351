package publisher

import (
	"context"
	"fmt"
	"time"

	"github.com/hashgraph-online/move-sdk-go/pkg/account"
	"github.com/hashgraph-online/move-sdk-go/pkg/payload"
	"github.com/hashgraph-online/move-sdk-go/pkg/shared"
	"github.com/hashgraph-online/move-sdk-go/pkg/transaction"
	"go.uber.org/zap"
)

// Client publishes compiled Move packages.
type Client struct {
	submitter *transaction.Submitter
	tracker   *transaction.Tracker
	logger    *zap.Logger
	timeout   time.Duration
}

// NewClient creates a new publisher client.
func NewClient(config Config) (*Client, error) {
	if config.Submitter == nil {
		return nil, fmt.Errorf("submitter is required")
	}
	if config.Tracker == nil {
		return nil, fmt.Errorf("tracker is required")
	}
	return &Client{
		submitter: config.Submitter,
		tracker:   config.Tracker,
		logger:    shared.ResolveLogger(config.Logger),
		timeout:   config.ConfirmationTimeout,
	}, nil
}

// Publish submits one transaction publishing metadata and modules under
// the sender's address and returns its hash. The ledger publishes every
// module or none of them.
func (client *Client) Publish(
	ctx context.Context,
	acct *account.Account,
	metadata []byte,
	modules [][]byte,
) (string, error) {
	if acct == nil {
		return "", fmt.Errorf("account is required")
	}
	if len(metadata) == 0 {
		return "", fmt.Errorf("package metadata is required")
	}
	if len(modules) == 0 {
		return "", fmt.Errorf("at least one module is required")
	}
	for index, module := range modules {
		if len(module) == 0 {
			return "", fmt.Errorf("module %d is empty", index)
		}
	}

	entry := payload.PublishPackage(metadata, modules)
	hash, err := client.submitter.Submit(ctx, acct, payload.Wrap(entry))
	if err != nil {
		return "", fmt.Errorf("failed to submit package: %w", err)
	}
	client.logger.Info("submitted package",
		zap.Stringer("sender", acct.Address()),
		zap.Int("modules", len(modules)),
		zap.Int("metadata_bytes", len(metadata)),
		zap.String("hash", hash),
	)
	return hash, nil
}

// PublishAndWait publishes the package and waits for the outcome. Failures
// caused by the package contents are returned as *PackageFormatError.
func (client *Client) PublishAndWait(
	ctx context.Context,
	acct *account.Account,
	metadata []byte,
	modules [][]byte,
) (transaction.Receipt, error) {
	hash, err := client.Publish(ctx, acct, metadata, modules)
	if err != nil {
		return transaction.Receipt{}, err
	}
	receipt, err := client.tracker.Wait(ctx, hash, client.timeout)
	if transaction.IsExecutionKind(err, transaction.KindPackageFormat) {
		return receipt, &PackageFormatError{Sender: acct.Address(), Err: err}
	}
	if err != nil {
		return receipt, err
	}
	client.logger.Info("published package",
		zap.Stringer("sender", acct.Address()),
		zap.String("hash", receipt.Hash),
		zap.Uint64("version", receipt.Version),
	)
	return receipt, nil
}

// PublishArtifact publishes a compiled package and waits for the outcome.
func (client *Client) PublishArtifact(
	ctx context.Context,
	acct *account.Account,
	artifact Artifact,
) (transaction.Receipt, error) {
	return client.PublishAndWait(ctx, acct, artifact.Metadata, artifact.Modules)
}
