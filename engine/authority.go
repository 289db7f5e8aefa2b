package engine

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/jong-un-1/mcp-cross-chain/state"
	"github.com/jong-un-1/mcp-cross-chain/store"
	"github.com/rs/zerolog/log"
)

// NominateAuthority proposes a new admin. The current admin stays in charge
// until the nominee accepts.
func (e *Engine) NominateAuthority(caller common.Hash, newAdmin common.Hash) error {
	return e.update("nominateAuthority", func(tx *store.Tx, g *state.GlobalState) error {
		err := requireAdmin(g, caller)
		if err != nil {
			return err
		}

		g.PendingAdmin = state.Some(newAdmin)
		log.Info().Str("nominee", newAdmin.Hex()).Msg("Nominated new admin")
		return state.PutGlobalState(tx, g)
	})
}

func (e *Engine) AcceptAuthority(caller common.Hash) error {
	return e.update("acceptAuthority", func(tx *store.Tx, g *state.GlobalState) error {
		pending, ok := g.PendingAdmin.Get()
		if !ok || pending != caller {
			return fmt.Errorf("%w: %s is not the pending admin", ErrUnauthorized, caller.Hex())
		}

		g.Admin = caller
		g.PendingAdmin = state.None[common.Hash]()
		log.Info().Str("admin", caller.Hex()).Msg("Admin handover accepted")
		return state.PutGlobalState(tx, g)
	})
}

func (e *Engine) AddFreezeAuthority(caller common.Hash, id common.Hash) error {
	return e.update("addFreezeAuthority", func(tx *store.Tx, g *state.GlobalState) error {
		err := requireAdmin(g, caller)
		if err != nil {
			return err
		}

		g.FreezeAuthorities = state.AddAuthority(g.FreezeAuthorities, id)
		return state.PutGlobalState(tx, g)
	})
}

func (e *Engine) RemoveFreezeAuthority(caller common.Hash, id common.Hash) error {
	return e.update("removeFreezeAuthority", func(tx *store.Tx, g *state.GlobalState) error {
		err := requireAdmin(g, caller)
		if err != nil {
			return err
		}

		authorities, ok := state.RemoveAuthority(g.FreezeAuthorities, id)
		if !ok {
			return fmt.Errorf("%w: freeze authority %s", ErrNotFound, id.Hex())
		}
		g.FreezeAuthorities = authorities
		return state.PutGlobalState(tx, g)
	})
}

func (e *Engine) AddThawAuthority(caller common.Hash, id common.Hash) error {
	return e.update("addThawAuthority", func(tx *store.Tx, g *state.GlobalState) error {
		err := requireAdmin(g, caller)
		if err != nil {
			return err
		}

		g.ThawAuthorities = state.AddAuthority(g.ThawAuthorities, id)
		return state.PutGlobalState(tx, g)
	})
}

func (e *Engine) RemoveThawAuthority(caller common.Hash, id common.Hash) error {
	return e.update("removeThawAuthority", func(tx *store.Tx, g *state.GlobalState) error {
		err := requireAdmin(g, caller)
		if err != nil {
			return err
		}

		authorities, ok := state.RemoveAuthority(g.ThawAuthorities, id)
		if !ok {
			return fmt.Errorf("%w: thaw authority %s", ErrNotFound, id.Hex())
		}
		g.ThawAuthorities = authorities
		return state.PutGlobalState(tx, g)
	})
}

// AddOrchestrator creates the orchestrator record, or reactivates a removed
// one, with exactly the given permissions.
func (e *Engine) AddOrchestrator(caller common.Hash, id common.Hash, permissions state.Permissions) error {
	return e.update("addOrchestrator", func(tx *store.Tx, g *state.GlobalState) error {
		err := requireAdmin(g, caller)
		if err != nil {
			return err
		}

		log.Info().Str("orchestrator", id.Hex()).Interface("permissions", permissions).Msg("Added orchestrator")
		return state.PutOrchestrator(tx, &state.Orchestrator{
			Address:     id,
			Permissions: permissions,
			Removed:     false,
		})
	})
}

func (e *Engine) RemoveOrchestrator(caller common.Hash, id common.Hash) error {
	return e.update("removeOrchestrator", func(tx *store.Tx, g *state.GlobalState) error {
		err := requireAdmin(g, caller)
		if err != nil {
			return err
		}

		o, err := state.GetOrchestrator(tx, id)
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: orchestrator %s", ErrNotFound, id.Hex())
		}
		if err != nil {
			return err
		}

		o.Removed = true
		log.Info().Str("orchestrator", id.Hex()).Msg("Removed orchestrator")
		return state.PutOrchestrator(tx, o)
	})
}
