package ledgertest

import (
	"fmt"
	"slices"

	"github.com/hashgraph-online/move-sdk-go/pkg/account"
	"github.com/hashgraph-online/move-sdk-go/pkg/payload"
	"github.com/hashgraph-online/move-sdk-go/pkg/transaction"
	"github.com/hashgraph-online/move-sdk-go/pkg/typetag"
)

const executedSuccessfully = "Executed successfully"

// Abort codes reported by the framework modules the fake ledger emulates.
const (
	abortCoinStoreAlreadyPublished = 0x8000a
	abortCoinStoreNotPublished     = 0x60005
	abortNoCapabilities            = 0x50004
	abortInsufficientBalance       = 0x10006
)

func moveAbort(module string, name string, code int, description string) string {
	return fmt.Sprintf("Move abort in 0x1::%s: %s(0x%x): %s", module, name, code, description)
}

func moduleKey(address account.Address, name string) string {
	return address.StringLong() + "::" + name
}

// execute applies raw to the ledger and returns its VM status. Effects are
// only applied when the status is executedSuccessfully. Callers hold s.mu.
func (s *Server) execute(raw transaction.RawTransaction) string {
	entry := raw.Payload.EntryFunction
	module := entry.Module()
	if module.Address != account.AddressOne {
		if _, ok := s.modules[moduleKey(module.Address, module.Name)]; !ok {
			return "LINKER_ERROR"
		}
		return "FUNCTION_RESOLUTION_FAILURE"
	}

	switch module.Name + "::" + entry.Function() {
	case payload.ManagedCoinModule + "::register":
		return s.executeRegister(raw.Sender, entry)
	case payload.ManagedCoinModule + "::mint":
		return s.executeMint(raw.Sender, entry)
	case payload.AptosAccountModule + "::transfer_coins":
		return s.executeTransfer(raw.Sender, entry)
	case payload.CodeModule + "::publish_package_txn":
		return s.executePublish(raw.Sender, entry)
	default:
		return "FUNCTION_RESOLUTION_FAILURE"
	}
}

// coinType returns the canonical coin type argument of entry, or the VM
// status to fail with.
func (s *Server) coinType(entry payload.EntryFunction) (*typetag.StructTag, string) {
	typeArgs := entry.TypeArgs()
	if len(typeArgs) != 1 {
		return nil, "NUMBER_OF_TYPE_ARGUMENTS_MISMATCH"
	}
	tag, ok := typeArgs[0].(*typetag.StructTag)
	if !ok {
		return nil, "TYPE_RESOLUTION_FAILURE"
	}
	if tag.String() == NativeCoin {
		return tag, ""
	}
	published, ok := s.modules[moduleKey(tag.Address, tag.Module)]
	if !ok || !slices.Contains(published.Structs, tag.Name) {
		return nil, "TYPE_RESOLUTION_FAILURE"
	}
	return tag, ""
}

func (s *Server) executeRegister(sender account.Address, entry payload.EntryFunction) string {
	if len(entry.Args()) != 0 {
		return "NUMBER_OF_ARGUMENTS_MISMATCH"
	}
	tag, status := s.coinType(entry)
	if status != "" {
		return status
	}
	state := s.accounts[sender]
	if _, registered := state.coins[tag.String()]; registered {
		return moveAbort("coin", "ECOIN_STORE_ALREADY_PUBLISHED", abortCoinStoreAlreadyPublished, "Account already has `CoinStore` registered for `CoinType`")
	}
	state.coins[tag.String()] = 0
	return executedSuccessfully
}

func (s *Server) executeMint(sender account.Address, entry payload.EntryFunction) string {
	tag, status := s.coinType(entry)
	if status != "" {
		return status
	}
	recipient, amount, status := addressAndAmount(entry)
	if status != "" {
		return status
	}
	if tag.Address != sender {
		return moveAbort("managed_coin", "ENO_CAPABILITIES", abortNoCapabilities, "Account has no capabilities (burn/mint)")
	}
	state, ok := s.accounts[recipient]
	if !ok {
		return moveAbort("coin", "ECOIN_STORE_NOT_PUBLISHED", abortCoinStoreNotPublished, "Account hasn't registered `CoinStore` for `CoinType`")
	}
	if _, registered := state.coins[tag.String()]; !registered {
		return moveAbort("coin", "ECOIN_STORE_NOT_PUBLISHED", abortCoinStoreNotPublished, "Account hasn't registered `CoinStore` for `CoinType`")
	}
	state.coins[tag.String()] += amount
	return executedSuccessfully
}

func (s *Server) executeTransfer(sender account.Address, entry payload.EntryFunction) string {
	tag, status := s.coinType(entry)
	if status != "" {
		return status
	}
	recipient, amount, status := addressAndAmount(entry)
	if status != "" {
		return status
	}
	from := s.accounts[sender]
	balance, registered := from.coins[tag.String()]
	if !registered {
		return moveAbort("coin", "ECOIN_STORE_NOT_PUBLISHED", abortCoinStoreNotPublished, "Account hasn't registered `CoinStore` for `CoinType`")
	}
	if balance < amount {
		return moveAbort("coin", "EINSUFFICIENT_BALANCE", abortInsufficientBalance, "Not enough coins to complete transaction")
	}
	to := s.ensureAccount(recipient)
	from.coins[tag.String()] -= amount
	to.coins[tag.String()] += amount
	return executedSuccessfully
}

func (s *Server) executePublish(sender account.Address, entry payload.EntryFunction) string {
	args := entry.Args()
	if len(args) != 2 || len(entry.TypeArgs()) != 0 {
		return "NUMBER_OF_ARGUMENTS_MISMATCH"
	}
	if _, err := payload.DecodeBytes(args[0]); err != nil {
		return "FAILED_TO_DESERIALIZE_ARGUMENT"
	}
	encodedModules, err := payload.DecodeBytesVector(args[1])
	if err != nil {
		return "FAILED_TO_DESERIALIZE_ARGUMENT"
	}
	if len(encodedModules) == 0 {
		return "CODE_DESERIALIZATION_ERROR"
	}

	seen := map[string]bool{}
	modules := make([]CompiledModule, 0, len(encodedModules))
	for _, encoded := range encodedModules {
		module, err := ParseModule(encoded)
		if err != nil {
			return "CODE_DESERIALIZATION_ERROR"
		}
		if module.Address != sender {
			return "MODULE_ADDRESS_DOES_NOT_MATCH_SENDER"
		}
		if seen[module.Name] {
			return "DUPLICATE_MODULE_NAME"
		}
		seen[module.Name] = true
		modules = append(modules, module)
	}

	for _, module := range modules {
		s.modules[moduleKey(module.Address, module.Name)] = module
	}
	return executedSuccessfully
}

func addressAndAmount(entry payload.EntryFunction) (account.Address, uint64, string) {
	args := entry.Args()
	if len(args) != 2 {
		return account.Address{}, 0, "NUMBER_OF_ARGUMENTS_MISMATCH"
	}
	address, err := payload.DecodeAddress(args[0])
	if err != nil {
		return account.Address{}, 0, "FAILED_TO_DESERIALIZE_ARGUMENT"
	}
	amount, err := payload.DecodeU64(args[1])
	if err != nil {
		return account.Address{}, 0, "FAILED_TO_DESERIALIZE_ARGUMENT"
	}
	return address, amount, ""
}
