package coin

import (
	"context"
	"time"

	"github.com/hashgraph-online/move-sdk-go/pkg/account"
	"github.com/hashgraph-online/move-sdk-go/pkg/ledger"
	"github.com/hashgraph-online/move-sdk-go/pkg/transaction"
	"go.uber.org/zap"
)

// Framework modules and resources used by managed coins.
const (
	RegisterFunction = "register"
	MintFunction     = "mint"
	TransferFunction = "transfer_coins"
	CoinStoreModule  = "coin"
	CoinStoreName    = "CoinStore"
)

// ResourceReader reads account resources. *ledger.Client implements it.
type ResourceReader interface {
	AccountResource(ctx context.Context, address account.Address, resourceType string) (ledger.Resource, error)
}

// Config configures a Client. Submitter and Tracker are shared with the
// rest of the program so sequence numbers stay consistent per account.
type Config struct {
	Ledger              ResourceReader
	Submitter           *transaction.Submitter
	Tracker             *transaction.Tracker
	Logger              *zap.Logger
	ConfirmationTimeout time.Duration
}

type coinStoreData struct {
	Coin struct {
		Value string `json:"value"`
	} `json:"coin"`
	Frozen bool `json:"frozen"`
}
