/*
Package wallet serves the read side of a user's account: the profile with its
balance, and the recent transaction history.

Both views are cached in redis and read through:

	svc := wallet.NewService(profiles, transactions, cache, wallet.Config{TTL: 5 * time.Minute}, nil)

	profile, err := svc.GetProfile(ctx, userID)
	history, err := svc.GetTransactions(ctx, userID, 20)

A successful transfer changes the balances and histories of both parties.
Callers must drop the cached views for each of them:

	svc.Invalidate(ctx, senderID, recipientID)

Metrics:

The service reports cache hits and misses to a MetricsCollector. Pass nil to
use NoopMetricsCollector.
*/
package wallet
