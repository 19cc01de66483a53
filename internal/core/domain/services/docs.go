// Package services holds domain services that work across aggregates.
//
// CheckoutPricer turns a shop's cart group into priced order lines. It decides
// which catalog facts block a checkout and which prices the customer pays.
package services
