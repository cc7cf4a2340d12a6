// Package delivery prices deliveries: it classifies weather readings and turns
// a base fee plus the destination weather into an itemized FeeBreakdown.
package delivery
