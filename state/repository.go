package state

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jong-un-1/mcp-cross-chain/store"
)

var (
	GlobalStateKey = []byte("global")

	OrchestratorPrefix = []byte("orchestrator/")
	OrderPrefix        = []byte("order/")
	OrderHashPrefix    = []byte("orderhash/")
	VaultPrefix        = []byte("vault/")
	MinFeePrefix       = []byte("minfee/")
)

func OrchestratorKey(id common.Hash) []byte {
	return append(append([]byte{}, OrchestratorPrefix...), id.Bytes()...)
}

func OrderKey(address common.Hash) []byte {
	return append(append([]byte{}, OrderPrefix...), address.Bytes()...)
}

func OrderHashKey(orderHash common.Hash) []byte {
	return append(append([]byte{}, OrderHashPrefix...), orderHash.Bytes()...)
}

func VaultKey(token common.Hash) []byte {
	return append(append([]byte{}, VaultPrefix...), token.Bytes()...)
}

func MinFeeKey(chainID uint32) []byte {
	return binary.BigEndian.AppendUint32(append([]byte{}, MinFeePrefix...), chainID)
}

func GetGlobalState(r store.Reader) (*GlobalState, error) {
	g := &GlobalState{}
	err := get(r, GlobalStateKey, g)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// PutGlobalState stores the global state and bumps its version.
func PutGlobalState(w store.Writer, g *GlobalState) error {
	g.Version++
	return put(w, GlobalStateKey, g)
}

func GetOrchestrator(r store.Reader, id common.Hash) (*Orchestrator, error) {
	o := &Orchestrator{}
	err := get(r, OrchestratorKey(id), o)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func PutOrchestrator(w store.Writer, o *Orchestrator) error {
	return put(w, OrchestratorKey(o.Address), o)
}

// GetOrder fetches the order stored at the address derived from trader and seed.
func GetOrder(r store.Reader, address common.Hash) (*Order, error) {
	o := &Order{}
	err := get(r, OrderKey(address), o)
	if err != nil {
		return nil, err
	}
	return o, nil
}

// GetOrderByHash resolves the order through the order hash index.
func GetOrderByHash(r store.Reader, orderHash common.Hash) (*Order, error) {
	address, err := r.Get(OrderHashKey(orderHash))
	if err != nil {
		return nil, err
	}
	return GetOrder(r, common.BytesToHash(address))
}

func HasOrderHash(r store.Reader, orderHash common.Hash) (bool, error) {
	return r.Has(OrderHashKey(orderHash))
}

// PutOrder stores the order together with its order hash index entry.
func PutOrder(w store.Writer, o *Order) error {
	address := o.Address()
	err := put(w, OrderKey(address), o)
	if err != nil {
		return err
	}
	return w.Put(OrderHashKey(o.OrderHash), address.Bytes())
}

// GetVault returns the vault of the token, or an empty one if nothing was
// deposited yet.
func GetVault(r store.Reader, token common.Hash) (*Vault, error) {
	v := &Vault{}
	err := get(r, VaultKey(token), v)
	if errors.Is(err, store.ErrNotFound) {
		return NewVault(token), nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func PutVault(w store.Writer, v *Vault) error {
	return put(w, VaultKey(v.Token), v)
}

// GetTargetChainMinFee returns the min fee of the destination chain, 0 if unset.
func GetTargetChainMinFee(r store.Reader, chainID uint32) (uint64, error) {
	value, err := r.Get(MinFeeKey(chainID))
	if errors.Is(err, store.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	if len(value) != 8 {
		return 0, fmt.Errorf("malformed min fee of chain %d", chainID)
	}
	return binary.BigEndian.Uint64(value), nil
}

func PutTargetChainMinFee(w store.Writer, chainID uint32, minFee uint64) error {
	return w.Put(MinFeeKey(chainID), binary.BigEndian.AppendUint64(nil, minFee))
}

func get(r store.Reader, key []byte, v interface{}) error {
	value, err := r.Get(key)
	if err != nil {
		return err
	}
	return json.Unmarshal(value, v)
}

func put(w store.Writer, key []byte, v interface{}) error {
	value, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return w.Put(key, value)
}
