// Package catalog holds read-only snapshots of the shop, product and cart
// data owned by neighbouring services. The order core reads them at checkout
// and never mutates them, except for clearing a cart group once the order is
// written.
package catalog
