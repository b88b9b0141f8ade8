package service

import (
	"context"
	"log/slog"
	"math/rand"

	"github.com/google/uuid"

	"scooter-rental-backend/internal/logger"
)

// declineCodes is the pool of simulated gateway rejections.
var declineCodes = []string{
	"insufficient_funds",
	"card_declined",
	"expired_card",
	"invalid_cvc",
}

var declineMessages = map[string]string{
	"insufficient_funds": "The card has insufficient funds",
	"card_declined":      "The card was declined",
	"expired_card":       "The card has expired",
	"invalid_cvc":        "The card's security code is incorrect",
}

type simulatedGateway struct {
	successRate float64
	// roll returns a pseudo-random float in [0, 1); swappable for
	// deterministic behavior.
	roll func() float64
	pick func(n int) int
	log  *slog.Logger
}

// NewSimulatedGateway returns a gateway that approves charges at the given
// rate. Non-positive amounts are always rejected.
func NewSimulatedGateway(successRate float64) PaymentGateway {
	return &simulatedGateway{
		successRate: successRate,
		roll:        rand.Float64,
		pick:        rand.Intn,
		log:         logger.WithService("payment_gateway"),
	}
}

func (g *simulatedGateway) Charge(ctx context.Context, amount float64) *GatewayResult {
	if amount <= 0 {
		return &GatewayResult{
			Success:     false,
			DeclineCode: "invalid_amount",
			Message:     "Charge amount must be positive",
		}
	}
	if g.roll() >= g.successRate {
		code := declineCodes[g.pick(len(declineCodes))]
		g.log.Debug("charge declined", "amount", amount, "decline_code", code)
		return &GatewayResult{
			Success:     false,
			DeclineCode: code,
			Message:     declineMessages[code],
		}
	}
	txn := "txn_" + uuid.NewString()
	g.log.Debug("charge approved", "amount", amount, "transaction_id", txn)
	return &GatewayResult{
		Success:       true,
		TransactionID: txn,
		Message:       "Charge approved",
	}
}
