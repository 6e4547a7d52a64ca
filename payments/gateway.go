package payments

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Gateway is the boundary to an external payment processor. Escrow capture
// and release are simulated; no real money moves through this service.
type Gateway interface {
	Capture(reference string, amountCents int64) (string, error)
	Release(reference string, amountCents int64) (string, error)
}

type SimulatedGateway struct{}

func NewSimulatedGateway() *SimulatedGateway {
	return &SimulatedGateway{}
}

func (g *SimulatedGateway) Capture(reference string, amountCents int64) (string, error) {
	txnID := fmt.Sprintf("sim_cap_%s", uuid.NewString())
	log.Info().
		Str("reference", reference).
		Int64("amount_cents", amountCents).
		Str("txn_id", txnID).
		Msg("simulated escrow capture")
	return txnID, nil
}

func (g *SimulatedGateway) Release(reference string, amountCents int64) (string, error) {
	txnID := fmt.Sprintf("sim_rel_%s", uuid.NewString())
	log.Info().
		Str("reference", reference).
		Int64("amount_cents", amountCents).
		Str("txn_id", txnID).
		Msg("simulated escrow release")
	return txnID, nil
}
