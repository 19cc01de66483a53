// Package voucher models shop scoped discount codes and the usage records that
// make redemption idempotent.
//
// A Usage is keyed by {voucherId}_{userId}_{orderId}. Its existence is the
// only evidence that a voucher was applied to an order, and Voucher.currentUsage
// always equals the number of usages. Both are written in one transaction by
// the voucher ledger in the application layer.
package voucher
