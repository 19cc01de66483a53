// Package review holds customer reviews of delivered orders and the shop
// owner's reply. Review text is stored as plain text: any markup is stripped
// on the way in.
package review
