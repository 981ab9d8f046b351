package coinflow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hashgraph-online/move-sdk-go/pkg/account"
	"github.com/hashgraph-online/move-sdk-go/pkg/coin"
	"github.com/hashgraph-online/move-sdk-go/pkg/faucet"
	"github.com/hashgraph-online/move-sdk-go/pkg/ledger"
	"github.com/hashgraph-online/move-sdk-go/pkg/publisher"
	"github.com/hashgraph-online/move-sdk-go/pkg/shared"
	"github.com/hashgraph-online/move-sdk-go/pkg/transaction"
	"github.com/hashgraph-online/move-sdk-go/pkg/typetag"
	"go.uber.org/zap"
)

type clients struct {
	faucet    *faucet.Client
	coin      *coin.Client
	publisher *publisher.Client
}

// Run funds both accounts, publishes the coin package from the local
// account, registers it, mints to itself and transfers to the recipient.
// Every step completes before the next one starts; the first failure
// halts the walkthrough with a *StepError naming the step. The returned
// report holds everything completed up to that point.
func Run(ctx context.Context, options Options) (Report, error) {
	options = withDefaults(options)
	logger := shared.ResolveLogger(options.Logger)
	report := Report{}

	begin(options, StepValidate, "validating configuration")
	operator, err := validate(options)
	if err != nil {
		return report, &StepError{Step: StepValidate, Err: err}
	}
	local := operator.Account
	report.LocalAddress = local.Address()
	report.RecipientAddress = operator.Recipient

	coinType, err := coin.CoinType(local.Address(), options.ModuleName, options.CoinName)
	if err != nil {
		return report, &StepError{Step: StepValidate, Err: err}
	}
	report.CoinType = coinType.String()

	built, err := newClients(options, operator)
	if err != nil {
		return report, &StepError{Step: StepValidate, Err: err}
	}
	finish(options, StepValidate, fmt.Sprintf("local account %s, recipient %s", local.Address(), operator.Recipient))

	begin(options, StepFund, "funding both accounts")
	report.Funding = built.faucet.FundMany(ctx, []faucet.Request{
		{Address: local.Address(), Amount: options.LocalFunding},
		{Address: operator.Recipient, Amount: options.RecipientFunding},
	})
	if failed := faucet.Failed(report.Funding); len(failed) > 0 {
		errs := make([]error, 0, len(failed))
		for _, result := range failed {
			errs = append(errs, result.Err)
		}
		return report, &StepError{Step: StepFund, Err: errors.Join(errs...)}
	}
	finish(options, StepFund, "funded both accounts")

	begin(options, StepCompile, "compiling package")
	packageName := options.PackageName
	if options.Compiler.Exists() {
		paths, err := options.Compiler.Compile(ctx, options.PackageDir, map[string]account.Address{
			options.NamedAddress: local.Address(),
		})
		if err != nil {
			return report, &StepError{Step: StepCompile, Err: err}
		}
		report.Compiled = true
		if packageName == "" {
			packageName = paths.PackageName
		}
	} else {
		if options.Prompt == nil {
			return report, &StepError{Step: StepCompile, Err: fmt.Errorf("compiler not found and no prompt configured")}
		}
		message := fmt.Sprintf(
			"Update the module with the local account address %s, compile, and confirm.",
			local.Address(),
		)
		if err := options.Prompt(ctx, message); err != nil {
			return report, &StepError{Step: StepCompile, Err: err}
		}
	}
	finish(options, StepCompile, "compiled package")

	begin(options, StepReadArtifact, "reading compiled package")
	artifact, err := publisher.ReadArtifact(options.PackageDir, packageName, options.ModuleName)
	if err != nil {
		return report, &StepError{Step: StepReadArtifact, Err: err}
	}
	finish(options, StepReadArtifact, fmt.Sprintf("read %d module(s)", len(artifact.Modules)))

	begin(options, StepPublish, "publishing package")
	report.PublishReceipt, err = built.publisher.PublishArtifact(ctx, local, artifact)
	if err != nil {
		return report, &StepError{Step: StepPublish, Err: err}
	}
	finish(options, StepPublish, "published "+report.PublishReceipt.Hash)

	begin(options, StepRegister, "registering coin store")
	report.Registered, err = built.coin.EnsureRegistered(ctx, local, coinType)
	if err != nil {
		return report, &StepError{Step: StepRegister, Err: err}
	}
	finish(options, StepRegister, "registered "+report.CoinType)

	begin(options, StepMint, "minting coins")
	report.MintReceipt, err = built.coin.Mint(ctx, local, local.Address(), coinType, options.MintAmount)
	if err != nil {
		return report, &StepError{Step: StepMint, Err: err}
	}
	finish(options, StepMint, fmt.Sprintf("minted %d", options.MintAmount))

	begin(options, StepBalance, "reading balance")
	report.MintedBalance, err = built.coin.Balance(ctx, local.Address(), coinType)
	if err != nil {
		return report, &StepError{Step: StepBalance, Err: err}
	}
	finish(options, StepBalance, fmt.Sprintf("local balance %d", report.MintedBalance))

	begin(options, StepTransfer, "transferring coins")
	report.TransferReceipt, err = built.coin.Transfer(ctx, local, operator.Recipient, coinType, options.TransferAmount)
	if err != nil {
		return report, &StepError{Step: StepTransfer, Err: err}
	}
	finish(options, StepTransfer, fmt.Sprintf("transferred %d", options.TransferAmount))

	begin(options, StepFinalBalances, "reading final balances")
	report.LocalBalance, err = built.coin.Balance(ctx, local.Address(), coinType)
	if err != nil {
		return report, &StepError{Step: StepFinalBalances, Err: err}
	}
	report.RecipientBalance, err = built.coin.Balance(ctx, operator.Recipient, coinType)
	if err != nil {
		return report, &StepError{Step: StepFinalBalances, Err: err}
	}
	finish(options, StepFinalBalances, fmt.Sprintf("local %d, recipient %d", report.LocalBalance, report.RecipientBalance))

	logger.Info("coin walkthrough complete",
		zap.String("coin_type", report.CoinType),
		zap.Uint64("local_balance", report.LocalBalance),
		zap.Uint64("recipient_balance", report.RecipientBalance),
	)
	return report, nil
}

func withDefaults(options Options) Options {
	if options.ModuleName == "" {
		options.ModuleName = DefaultModuleName
	}
	if options.CoinName == "" {
		options.CoinName = DefaultCoinName
	}
	if options.NamedAddress == "" {
		options.NamedAddress = DefaultNamedAddress
	}
	if options.LocalFunding == 0 {
		options.LocalFunding = DefaultLocalFunding
	}
	if options.RecipientFunding == 0 {
		options.RecipientFunding = DefaultRecipientFunding
	}
	if options.MintAmount == 0 {
		options.MintAmount = DefaultMintAmount
	}
	if options.TransferAmount == 0 {
		options.TransferAmount = DefaultTransferAmount
	}
	if options.Compiler == nil {
		options.Compiler = &publisher.CLICompiler{Logger: options.Logger}
	}
	return options
}

// validate resolves the operator and checks the walkthrough inputs,
// reporting every problem in one *shared.ConfigError.
func validate(options Options) (shared.Operator, error) {
	problems := &shared.ConfigError{}
	operator, err := options.Config.Resolve()
	if err != nil {
		var configErr *shared.ConfigError
		if !errors.As(err, &configErr) {
			return shared.Operator{}, err
		}
		problems.Problems = append(problems.Problems, configErr.Problems...)
	}
	if strings.TrimSpace(options.PackageDir) == "" {
		problems.Problems = append(problems.Problems, "package directory is required")
	}
	if !typetag.IsIdentifier(options.ModuleName) {
		problems.Problems = append(problems.Problems, fmt.Sprintf("module name %q is not a valid identifier", options.ModuleName))
	}
	if !typetag.IsIdentifier(options.CoinName) {
		problems.Problems = append(problems.Problems, fmt.Sprintf("coin name %q is not a valid identifier", options.CoinName))
	}
	if err == nil && operator.Endpoints.FaucetURL == "" {
		problems.Problems = append(problems.Problems, fmt.Sprintf("network %s has no faucet; set MOVE_FAUCET_URL", operator.Network))
	}
	if len(problems.Problems) > 0 {
		return shared.Operator{}, problems
	}
	return operator, nil
}

func newClients(options Options, operator shared.Operator) (clients, error) {
	ledgerClient, err := ledger.NewClient(ledger.Config{
		Network:    operator.Network,
		BaseURL:    operator.Endpoints.NodeURL,
		HTTPClient: options.HTTPClient,
		Logger:     options.Logger,
	})
	if err != nil {
		return clients{}, err
	}
	submitter, err := transaction.NewSubmitter(transaction.SubmitterConfig{
		Ledger:  ledgerClient,
		Logger:  options.Logger,
		Metrics: options.Metrics,
	})
	if err != nil {
		return clients{}, err
	}
	tracker, err := transaction.NewTracker(transaction.TrackerConfig{
		Ledger:       ledgerClient,
		Logger:       options.Logger,
		Metrics:      options.Metrics,
		PollInterval: options.PollInterval,
		Timeout:      options.ConfirmationTimeout,
	})
	if err != nil {
		return clients{}, err
	}
	faucetClient, err := faucet.NewClient(faucet.Config{
		Network:    operator.Network,
		BaseURL:    operator.Endpoints.FaucetURL,
		HTTPClient: options.HTTPClient,
		Tracker:    tracker,
		Logger:     options.Logger,
	})
	if err != nil {
		return clients{}, err
	}
	coinClient, err := coin.NewClient(coin.Config{
		Ledger:    ledgerClient,
		Submitter: submitter,
		Tracker:   tracker,
		Logger:    options.Logger,
	})
	if err != nil {
		return clients{}, err
	}
	publisherClient, err := publisher.NewClient(publisher.Config{
		Submitter: submitter,
		Tracker:   tracker,
		Logger:    options.Logger,
	})
	if err != nil {
		return clients{}, err
	}
	return clients{
		faucet:    faucetClient,
		coin:      coinClient,
		publisher: publisherClient,
	}, nil
}

func begin(options Options, step Step, message string) {
	if options.ProgressCallback != nil {
		options.ProgressCallback(Progress{Step: step, Message: message})
	}
}

func finish(options Options, step Step, message string) {
	if options.ProgressCallback != nil {
		options.ProgressCallback(Progress{Step: step, Done: true, Message: message})
	}
}
