// Package menu holds the reference data customers order from: categories and
// the items in them, with size variants and prices.
package menu
