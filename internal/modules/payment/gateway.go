package payment

import (
	"context"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
)

// Gateway answers one question: does the gateway consider this transaction
// settled. Implementations must be safe for concurrent use.
type Gateway interface {
	VerifyTransaction(ctx context.Context, txnID string) (bool, error)
}

type midtransGateway struct {
	client coreapi.Client
}

// NewMidtransGateway builds a gateway bound to the given server key. The
// environment toggles sandbox vs production.
func NewMidtransGateway(serverKey string, production bool) Gateway {
	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}

	var client coreapi.Client
	client.New(serverKey, env)
	return &midtransGateway{client: client}
}

func (g *midtransGateway) VerifyTransaction(ctx context.Context, txnID string) (bool, error) {
	resp, err := g.client.CheckTransaction(txnID)
	if err != nil {
		return false, err
	}

	switch resp.TransactionStatus {
	case "settlement":
		return true, nil
	case "capture":
		return resp.FraudStatus == "accept", nil
	}
	return false, nil
}
