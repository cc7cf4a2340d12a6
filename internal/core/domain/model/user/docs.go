// Package user provides the User aggregate: customer, staff and courier
// accounts. Couriers additionally carry availability, a last reported
// location and a DeliverySlot holding at most one order in transportation.
package user
