package coin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/hashgraph-online/move-sdk-go/pkg/account"
	"github.com/hashgraph-online/move-sdk-go/pkg/ledger"
	"github.com/hashgraph-online/move-sdk-go/pkg/payload"
	"github.com/hashgraph-online/move-sdk-go/pkg/shared"
	"github.com/hashgraph-online/move-sdk-go/pkg/transaction"
	"github.com/hashgraph-online/move-sdk-go/pkg/typetag"
	"go.uber.org/zap"
)

// Client registers, mints, transfers and reads balances of managed coins.
type Client struct {
	ledger    ResourceReader
	submitter *transaction.Submitter
	tracker   *transaction.Tracker
	logger    *zap.Logger
	timeout   time.Duration
}

// NewClient creates a new coin client.
func NewClient(config Config) (*Client, error) {
	if config.Ledger == nil {
		return nil, fmt.Errorf("ledger is required")
	}
	if config.Submitter == nil {
		return nil, fmt.Errorf("submitter is required")
	}
	if config.Tracker == nil {
		return nil, fmt.Errorf("tracker is required")
	}
	return &Client{
		ledger:    config.Ledger,
		submitter: config.Submitter,
		tracker:   config.Tracker,
		logger:    shared.ResolveLogger(config.Logger),
		timeout:   config.ConfirmationTimeout,
	}, nil
}

// CoinType returns the struct tag owner::module::name.
func CoinType(owner account.Address, module string, name string) (*typetag.StructTag, error) {
	return typetag.NewStructTag(owner, module, name)
}

// CoinStoreType returns the resource type holding balances of coinType.
func CoinStoreType(coinType *typetag.StructTag) string {
	return account.AddressOne.String() + "::" + CoinStoreModule + "::" + CoinStoreName + "<" + coinType.String() + ">"
}

// Register publishes a coin store for coinType under acct. A store that
// already exists fails with *AlreadyRegisteredError.
func (client *Client) Register(
	ctx context.Context,
	acct *account.Account,
	coinType *typetag.StructTag,
) (transaction.Receipt, error) {
	if acct == nil {
		return transaction.Receipt{}, fmt.Errorf("account is required")
	}
	entry, err := client.build(payload.ManagedCoinModule, RegisterFunction, coinType, nil)
	if err != nil {
		return transaction.Receipt{}, err
	}

	receipt, err := client.execute(ctx, acct, entry)
	if transaction.IsExecutionKind(err, transaction.KindAlreadyRegistered) {
		return receipt, &AlreadyRegisteredError{Account: acct.Address(), CoinType: coinType.String(), Err: err}
	}
	if err != nil {
		return receipt, err
	}
	client.logger.Info("registered coin store",
		zap.Stringer("account", acct.Address()),
		zap.Stringer("coin_type", coinType),
		zap.String("hash", receipt.Hash),
	)
	return receipt, nil
}

// EnsureRegistered is Register without the already-registered failure.
// It reports whether a new store was created.
func (client *Client) EnsureRegistered(
	ctx context.Context,
	acct *account.Account,
	coinType *typetag.StructTag,
) (bool, error) {
	_, err := client.Register(ctx, acct, coinType)
	var alreadyRegistered *AlreadyRegisteredError
	if errors.As(err, &alreadyRegistered) {
		client.logger.Debug("coin store already registered",
			zap.Stringer("account", acct.Address()),
			zap.Stringer("coin_type", coinType),
		)
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Mint mints amount of coinType to recipient. Only the account that
// published the coin module may mint. Every call mints again; a caller
// retrying after an ambiguous failure must check the balance first.
func (client *Client) Mint(
	ctx context.Context,
	minter *account.Account,
	recipient account.Address,
	coinType *typetag.StructTag,
	amount uint64,
) (transaction.Receipt, error) {
	if minter == nil {
		return transaction.Receipt{}, fmt.Errorf("minter account is required")
	}
	entry, err := client.build(payload.ManagedCoinModule, MintFunction, coinType, []payload.Argument{
		{Value: recipient, Encoder: payload.Address},
		{Value: amount, Encoder: payload.U64},
	})
	if err != nil {
		return transaction.Receipt{}, err
	}

	receipt, err := client.execute(ctx, minter, entry)
	switch {
	case transaction.IsExecutionKind(err, transaction.KindPermission):
		return receipt, &PermissionError{Account: minter.Address(), CoinType: coinType.String(), Err: err}
	case transaction.IsExecutionKind(err, transaction.KindNotRegistered):
		return receipt, &NotRegisteredError{Account: recipient, CoinType: coinType.String(), Err: err}
	case err != nil:
		return receipt, err
	}
	client.logger.Info("minted coins",
		zap.Stringer("recipient", recipient),
		zap.Stringer("coin_type", coinType),
		zap.Uint64("amount", amount),
		zap.String("hash", receipt.Hash),
	)
	return receipt, nil
}

// Transfer moves amount of coinType from sender to recipient. A recipient
// without a coin store gets one created by the transfer.
func (client *Client) Transfer(
	ctx context.Context,
	sender *account.Account,
	recipient account.Address,
	coinType *typetag.StructTag,
	amount uint64,
) (transaction.Receipt, error) {
	if sender == nil {
		return transaction.Receipt{}, fmt.Errorf("sender account is required")
	}
	entry, err := client.build(payload.AptosAccountModule, TransferFunction, coinType, []payload.Argument{
		{Value: recipient, Encoder: payload.Address},
		{Value: amount, Encoder: payload.U64},
	})
	if err != nil {
		return transaction.Receipt{}, err
	}

	receipt, err := client.execute(ctx, sender, entry)
	if transaction.IsExecutionKind(err, transaction.KindNotRegistered) {
		return receipt, &NotRegisteredError{Account: sender.Address(), CoinType: coinType.String(), Err: err}
	}
	if err != nil {
		return receipt, err
	}
	client.logger.Info("transferred coins",
		zap.Stringer("sender", sender.Address()),
		zap.Stringer("recipient", recipient),
		zap.Stringer("coin_type", coinType),
		zap.Uint64("amount", amount),
		zap.String("hash", receipt.Hash),
	)
	return receipt, nil
}

// Balance reads the current balance of coinType held by owner. An owner
// without a coin store fails with *NotRegisteredError, never zero.
func (client *Client) Balance(
	ctx context.Context,
	owner account.Address,
	coinType *typetag.StructTag,
) (uint64, error) {
	if coinType == nil {
		return 0, fmt.Errorf("coin type is required")
	}
	resource, err := client.ledger.AccountResource(ctx, owner, CoinStoreType(coinType))
	if ledger.IsNotFound(err) {
		return 0, &NotRegisteredError{Account: owner, CoinType: coinType.String()}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read coin store of %s: %w", owner, err)
	}

	var store coinStoreData
	if err := json.Unmarshal(resource.Data, &store); err != nil {
		return 0, fmt.Errorf("failed to decode coin store of %s: %w", owner, err)
	}
	value, err := strconv.ParseUint(store.Coin.Value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid coin value %q for %s: %w", store.Coin.Value, owner, err)
	}
	return value, nil
}

func (client *Client) build(
	module string,
	function string,
	coinType *typetag.StructTag,
	args []payload.Argument,
) (payload.EntryFunction, error) {
	if coinType == nil {
		return payload.EntryFunction{}, fmt.Errorf("coin type is required")
	}
	return payload.Build(account.AddressOne, module, function, []typetag.TypeTag{coinType}, args)
}

func (client *Client) execute(
	ctx context.Context,
	acct *account.Account,
	entry payload.EntryFunction,
) (transaction.Receipt, error) {
	hash, err := client.submitter.Submit(ctx, acct, payload.Wrap(entry))
	if err != nil {
		return transaction.Receipt{}, fmt.Errorf("failed to submit %s: %w", entry, err)
	}
	return client.tracker.Wait(ctx, hash, client.timeout)
}
