package ledgertest

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/hashgraph-online/move-sdk-go/pkg/account"
	"github.com/hashgraph-online/move-sdk-go/pkg/ledger"
	"github.com/hashgraph-online/move-sdk-go/pkg/transaction"
	"github.com/hashgraph-online/move-sdk-go/pkg/typetag"
)

// NativeCoin is the gas coin type funded by the faucet.
const NativeCoin = "0x1::aptos_coin::AptosCoin"

const defaultChainID uint8 = 4

type accountState struct {
	sequence uint64
	authKey  account.Address
	coins    map[string]uint64
}

type transactionRecord struct {
	view           ledger.Transaction
	pollsRemaining int
}

type Option func(*Server)

// WithChainID sets the chain id the node reports and enforces.
func WithChainID(chainID uint8) Option {
	return func(s *Server) {
		s.chainID = chainID
	}
}

// WithPendingPolls makes every transaction report pending for n by-hash
// lookups before its outcome becomes visible.
func WithPendingPolls(n int) Option {
	return func(s *Server) {
		s.pendingPolls = n
	}
}

// WithClock replaces the clock used to check transaction expiration.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// WithCompression encodes node responses with "br" or "gzip".
func WithCompression(encoding string) Option {
	return func(s *Server) {
		s.compression = encoding
	}
}

// Server is an in-memory Move ledger node and faucet served over
// httptest. Submitted transactions are validated and executed on
// acceptance; the by-hash view reports them as pending for a configurable
// number of polls, which models eventual finality.
type Server struct {
	mu           sync.Mutex
	chainID      uint8
	pendingPolls int
	now          func() time.Time
	compression  string

	version       uint64
	accounts      map[account.Address]*accountState
	modules       map[string]CompiledModule
	transactions  map[string]*transactionRecord
	failFunding   map[account.Address]bool
	failSubmits   int
	submissions   int
	fundingCalls  int
	faucetCounter uint64

	node   *httptest.Server
	faucet *httptest.Server
}

// New starts a node and a faucet. Call Close when done.
func New(options ...Option) *Server {
	server := &Server{
		chainID:      defaultChainID,
		now:          time.Now,
		accounts:     map[account.Address]*accountState{},
		modules:      map[string]CompiledModule{},
		transactions: map[string]*transactionRecord{},
		failFunding:  map[account.Address]bool{},
	}
	for _, option := range options {
		option(server)
	}

	nodeMux := http.NewServeMux()
	nodeMux.HandleFunc("GET /v1", server.handleLedgerInfo)
	nodeMux.HandleFunc("GET /v1/{$}", server.handleLedgerInfo)
	nodeMux.HandleFunc("GET /v1/accounts/{address}", server.handleAccount)
	nodeMux.HandleFunc("GET /v1/accounts/{address}/resource/{resource}", server.handleResource)
	nodeMux.HandleFunc("POST /v1/transactions", server.handleSubmit)
	nodeMux.HandleFunc("GET /v1/transactions/by_hash/{hash}", server.handleTransaction)
	server.node = httptest.NewServer(nodeMux)

	faucetMux := http.NewServeMux()
	faucetMux.HandleFunc("POST /mint", server.handleMint)
	server.faucet = httptest.NewServer(faucetMux)

	return server
}

// NodeURL is the REST base URL, including the version path.
func (s *Server) NodeURL() string {
	return s.node.URL + "/v1"
}

// FaucetURL is the faucet base URL.
func (s *Server) FaucetURL() string {
	return s.faucet.URL
}

func (s *Server) Close() {
	s.node.Close()
	s.faucet.Close()
}

// CreateAccount creates address with native coin balance amount.
func (s *Server) CreateAccount(address account.Address, amount uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.ensureAccount(address)
	state.coins[NativeCoin] += amount
}

// FailFunding makes faucet requests for address fail with a 500.
func (s *Server) FailFunding(address account.Address) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failFunding[address] = true
}

// FailNextSubmissions makes the next n submissions fail with a 503 without
// touching ledger state.
func (s *Server) FailNextSubmissions(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failSubmits = n
}

// SetPendingPolls changes the pending window for transactions accepted
// from now on.
func (s *Server) SetPendingPolls(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingPolls = n
}

// AdvanceSequence consumes a sequence number of address, as if another
// client had submitted from the same account.
func (s *Server) AdvanceSequence(address account.Address) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state, ok := s.accounts[address]; ok {
		state.sequence++
	}
}

// SequenceNumber returns the next sequence number of address.
func (s *Server) SequenceNumber(address account.Address) (uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.accounts[address]
	if !ok {
		return 0, false
	}
	return state.sequence, true
}

// Balance returns the balance of coinType held by address and whether the
// account is registered for it.
func (s *Server) Balance(address account.Address, coinType string) (uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	canonical, err := typetag.Canonical(coinType)
	if err != nil {
		return 0, false
	}
	state, ok := s.accounts[address]
	if !ok {
		return 0, false
	}
	value, registered := state.coins[canonical]
	return value, registered
}

// ModulePublished reports whether address::name has been published.
func (s *Server) ModulePublished(address account.Address, name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.modules[moduleKey(address, name)]
	return ok
}

// Submissions returns the number of transactions the node accepted.
func (s *Server) Submissions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submissions
}

// FundingCalls returns the number of faucet requests received.
func (s *Server) FundingCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fundingCalls
}

func (s *Server) handleLedgerInfo(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	info := ledger.LedgerInfo{
		ChainID:       s.chainID,
		LedgerVersion: strconv.FormatUint(s.version, 10),
		NodeRole:      "full_node",
	}
	s.mu.Unlock()
	s.writeJSON(w, r, http.StatusOK, info)
}

func (s *Server) handleAccount(w http.ResponseWriter, r *http.Request) {
	address, err := account.ParseAddress(r.PathValue("address"))
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, ledger.ErrorCodeInvalidInput, err.Error(), nil)
		return
	}

	s.mu.Lock()
	state, ok := s.accounts[address]
	var info ledger.AccountInfo
	if ok {
		info = ledger.AccountInfo{
			SequenceNumber:    strconv.FormatUint(state.sequence, 10),
			AuthenticationKey: state.authKey.StringLong(),
		}
	}
	s.mu.Unlock()

	if !ok {
		s.writeError(w, r, http.StatusNotFound, ledger.ErrorCodeAccountNotFound, "Account not found by Address("+address.String()+")", nil)
		return
	}
	s.writeJSON(w, r, http.StatusOK, info)
}

func (s *Server) handleResource(w http.ResponseWriter, r *http.Request) {
	address, err := account.ParseAddress(r.PathValue("address"))
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, ledger.ErrorCodeInvalidInput, err.Error(), nil)
		return
	}
	resource, err := typetag.ParseStruct(r.PathValue("resource"))
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, ledger.ErrorCodeInvalidInput, err.Error(), nil)
		return
	}

	notFound := func() {
		s.writeError(w, r, http.StatusNotFound, ledger.ErrorCodeResourceNotFound, "Resource not found by Address("+address.String()+"), Struct tag("+resource.String()+")", nil)
	}
	if resource.Address != account.AddressOne || resource.Module != "coin" || resource.Name != "CoinStore" || len(resource.TypeParams) != 1 {
		notFound()
		return
	}

	coinType := resource.TypeParams[0].String()
	s.mu.Lock()
	state, ok := s.accounts[address]
	var value uint64
	registered := false
	if ok {
		value, registered = state.coins[coinType]
	}
	s.mu.Unlock()

	if !registered {
		notFound()
		return
	}
	data := map[string]any{
		"coin":            map[string]any{"value": strconv.FormatUint(value, 10)},
		"frozen":          false,
		"deposit_events":  map[string]any{"counter": "0"},
		"withdraw_events": map[string]any{"counter": "0"},
	}
	encoded, _ := json.Marshal(data)
	s.writeJSON(w, r, http.StatusOK, ledger.Resource{Type: resource.String(), Data: encoded})
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Content-Type") != ledger.ContentTypeSignedTransaction {
		s.writeError(w, r, http.StatusUnsupportedMediaType, ledger.ErrorCodeInvalidInput, "unsupported content type", nil)
		return
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, ledger.ErrorCodeInvalidInput, err.Error(), nil)
		return
	}

	s.mu.Lock()
	if s.failSubmits > 0 {
		s.failSubmits--
		s.mu.Unlock()
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
		return
	}
	s.mu.Unlock()

	signed, err := transaction.Decode(body)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, ledger.ErrorCodeInvalidInput, err.Error(), nil)
		return
	}
	hash := transaction.HashBytes(body)

	s.mu.Lock()
	defer s.mu.Unlock()

	if code, message := s.validate(signed); code != 0 {
		s.writeError(w, r, http.StatusBadRequest, ledger.ErrorCodeVMError, message, &code)
		return
	}

	raw := signed.Raw
	state := s.accounts[raw.Sender]
	state.sequence++
	s.submissions++
	s.version++

	vmStatus := s.execute(raw)
	s.transactions[hash] = &transactionRecord{
		view: ledger.Transaction{
			Type:           ledger.TypeUserTransaction,
			Hash:           hash,
			Version:        strconv.FormatUint(s.version, 10),
			Success:        vmStatus == executedSuccessfully,
			VMStatus:       vmStatus,
			GasUsed:        "10",
			Sender:         raw.Sender.StringLong(),
			SequenceNumber: strconv.FormatUint(raw.SequenceNumber, 10),
		},
		pollsRemaining: s.pendingPolls,
	}

	s.writeJSON(w, r, http.StatusAccepted, ledger.PendingTransaction{
		Hash:                    hash,
		Sender:                  raw.Sender.StringLong(),
		SequenceNumber:          strconv.FormatUint(raw.SequenceNumber, 10),
		MaxGasAmount:            strconv.FormatUint(raw.MaxGasAmount, 10),
		GasUnitPrice:            strconv.FormatUint(raw.GasUnitPrice, 10),
		ExpirationTimestampSecs: strconv.FormatUint(raw.ExpirationTimestampSecs, 10),
	})
}

// validate applies the mempool checks. It returns a non-zero validation
// status code when the transaction must be rejected.
func (s *Server) validate(signed transaction.SignedTransaction) (int, string) {
	raw := signed.Raw
	if err := signed.Verify(); err != nil {
		return transaction.StatusCodeInvalidSignature, "Invalid transaction: Type: Validation Code: INVALID_SIGNATURE"
	}
	state, ok := s.accounts[raw.Sender]
	if !ok {
		return transaction.StatusCodeSendingAccountDoesNotExist, "Invalid transaction: Type: Validation Code: SENDING_ACCOUNT_DOES_NOT_EXIST"
	}
	if signed.Authenticator.AuthenticationKey() != state.authKey {
		return 2, "Invalid transaction: Type: Validation Code: INVALID_AUTH_KEY"
	}
	if raw.ChainID != s.chainID {
		return 33, "Invalid transaction: Type: Validation Code: BAD_CHAIN_ID"
	}
	if raw.SequenceNumber < state.sequence {
		return transaction.StatusCodeSequenceNumberTooOld, "Invalid transaction: Type: Validation Code: SEQUENCE_NUMBER_TOO_OLD"
	}
	if raw.SequenceNumber > state.sequence {
		return transaction.StatusCodeSequenceNumberTooNew, "Invalid transaction: Type: Validation Code: SEQUENCE_NUMBER_TOO_NEW"
	}
	if raw.ExpirationTimestampSecs <= uint64(s.now().Unix()) {
		return transaction.StatusCodeTransactionExpired, "Invalid transaction: Type: Validation Code: TRANSACTION_EXPIRED"
	}
	if state.coins[NativeCoin] < raw.MaxGasAmount*raw.GasUnitPrice {
		return transaction.StatusCodeInsufficientBalanceForGas, "Invalid transaction: Type: Validation Code: INSUFFICIENT_BALANCE_FOR_TRANSACTION_FEE"
	}
	return 0, ""
}

func (s *Server) handleTransaction(w http.ResponseWriter, r *http.Request) {
	hash := r.PathValue("hash")

	s.mu.Lock()
	record, ok := s.transactions[hash]
	var view ledger.Transaction
	if ok {
		view = record.view
		if record.pollsRemaining > 0 {
			record.pollsRemaining--
			view = ledger.Transaction{Type: ledger.TypePendingTransaction, Hash: hash, Sender: record.view.Sender}
		}
	}
	s.mu.Unlock()

	if !ok {
		s.writeError(w, r, http.StatusNotFound, ledger.ErrorCodeTransactionNotFound, "Transaction not found by Transaction hash("+hash+")", nil)
		return
	}
	s.writeJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleMint(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	amount, err := strconv.ParseUint(query.Get("amount"), 10, 64)
	if err != nil {
		http.Error(w, "invalid amount", http.StatusBadRequest)
		return
	}
	address, err := account.ParseAddress(query.Get("address"))
	if err != nil {
		http.Error(w, "invalid address", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.fundingCalls++
	if s.failFunding[address] {
		http.Error(w, "faucet unavailable", http.StatusInternalServerError)
		return
	}

	state := s.ensureAccount(address)
	state.coins[NativeCoin] += amount
	s.version++
	s.faucetCounter++
	hash := fmt.Sprintf("0x%064x", s.faucetCounter)
	s.transactions[hash] = &transactionRecord{
		view: ledger.Transaction{
			Type:     ledger.TypeUserTransaction,
			Hash:     hash,
			Version:  strconv.FormatUint(s.version, 10),
			Success:  true,
			VMStatus: executedSuccessfully,
			Sender:   account.AddressOne.StringLong(),
		},
		pollsRemaining: s.pendingPolls,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode([]string{hash})
}

func (s *Server) ensureAccount(address account.Address) *accountState {
	state, ok := s.accounts[address]
	if !ok {
		state = &accountState{
			authKey: address,
			coins:   map[string]uint64{NativeCoin: 0},
		}
		s.accounts[address] = state
	}
	return state
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	var writer io.Writer = w
	var closer io.Closer
	switch s.compression {
	case "br":
		w.Header().Set("Content-Encoding", "br")
		brotliWriter := brotli.NewWriter(w)
		writer, closer = brotliWriter, brotliWriter
	case "gzip":
		w.Header().Set("Content-Encoding", "gzip")
		gzipWriter := gzip.NewWriter(w)
		writer, closer = gzipWriter, gzipWriter
	}
	w.WriteHeader(status)
	json.NewEncoder(writer).Encode(value)
	if closer != nil {
		closer.Close()
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, code string, message string, vmErrorCode *int) {
	body := map[string]any{"message": message, "error_code": code}
	if vmErrorCode != nil {
		body["vm_error_code"] = *vmErrorCode
	}
	s.writeJSON(w, r, status, body)
}
