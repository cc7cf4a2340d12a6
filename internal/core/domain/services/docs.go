// Package services provides domain services that orchestrate business
// operations spanning more than one aggregate or an outside data source.
//
// The package includes:
//   - OrderDispatcher: assigns ready orders to couriers, completes deliveries
//     and ranks free couriers by distance
//   - DeliveryFeeCalculator: prices a delivery from the destination weather,
//     falling back to a neutral reading when the weather source fails
package services
