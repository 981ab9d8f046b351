package coinflow

import (
	"context"
	"net/http"
	"time"

	"github.com/hashgraph-online/move-sdk-go/pkg/account"
	"github.com/hashgraph-online/move-sdk-go/pkg/faucet"
	"github.com/hashgraph-online/move-sdk-go/pkg/publisher"
	"github.com/hashgraph-online/move-sdk-go/pkg/shared"
	"github.com/hashgraph-online/move-sdk-go/pkg/transaction"
	"go.uber.org/zap"
)

// Defaults of the walkthrough, matching the StableCoin1 example package.
const (
	DefaultModuleName       = "stable_coin1"
	DefaultCoinName         = "StableCoin1"
	DefaultNamedAddress     = "StableCoin1"
	DefaultLocalFunding     = uint64(20_000_000)
	DefaultRecipientFunding = uint64(20_000_000_000)
	DefaultMintAmount       = uint64(1_000_000)
	DefaultTransferAmount   = uint64(1_000_000)
)

// Step names a stage of the walkthrough.
type Step string

const (
	StepValidate      Step = "validate"
	StepFund          Step = "fund"
	StepCompile       Step = "compile"
	StepReadArtifact  Step = "read_artifact"
	StepPublish       Step = "publish"
	StepRegister      Step = "register"
	StepMint          Step = "mint"
	StepBalance       Step = "balance"
	StepTransfer      Step = "transfer"
	StepFinalBalances Step = "final_balances"
)

// Prompt asks a person to compile the package by hand and returns once
// they confirm.
type Prompt func(ctx context.Context, message string) error

// Progress is reported when a step starts and when it completes.
type Progress struct {
	Step    Step
	Done    bool
	Message string
}

type Options struct {
	Config      shared.OperatorConfig
	PackageDir  string
	PackageName string

	ModuleName   string
	CoinName     string
	NamedAddress string

	LocalFunding     uint64
	RecipientFunding uint64
	MintAmount       uint64
	TransferAmount   uint64

	Compiler publisher.Compiler
	Prompt   Prompt

	HTTPClient          *http.Client
	Logger              *zap.Logger
	Metrics             *transaction.Metrics
	PollInterval        time.Duration
	ConfirmationTimeout time.Duration
	ProgressCallback    func(Progress)
}

// Report collects what the walkthrough did.
type Report struct {
	LocalAddress     account.Address
	RecipientAddress account.Address
	CoinType         string

	Funding         []faucet.Result
	Compiled        bool
	PublishReceipt  transaction.Receipt
	Registered      bool
	MintReceipt     transaction.Receipt
	MintedBalance   uint64
	TransferReceipt transaction.Receipt

	LocalBalance     uint64
	RecipientBalance uint64
}
