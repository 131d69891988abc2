package ledgerfake

import (
	"github.com/shandysiswandi/ledgerdash/internal/pkg/pkgrouter"
)

// RegisterHTTPEndpoint mounts the ledger API on r. An empty seedToken disables
// the seed endpoint.
func RegisterHTTPEndpoint(r *pkgrouter.Router, store *Store, seedToken string) {
	end := &HTTPEndpoint{store: store, seedToken: seedToken}

	r.GET("/api/health", end.Health)
	r.GET("/api/accounts", end.Accounts)
	r.GET("/api/account/:acct/balance", end.Balance)
	r.GET("/api/customer/:cid/transactions", end.CustomerTransactions)
	r.GET("/api/merchants", end.Merchants) // ?q=

	r.POST("/api/transfer", end.Transfer)
	r.POST("/api/pay", end.Pay)
	r.POST("/api/seed/minimal", end.SeedMinimal)
}
