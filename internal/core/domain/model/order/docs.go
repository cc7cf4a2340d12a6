// Package order provides the Order aggregate root and the order lifecycle
// state machine of the food-ordering system.
//
// The package includes:
//   - Order: the aggregate root holding contact, items, charges, payment flag,
//     status and courier linkage
//   - Status: the lifecycle placed -> processing -> ready -> transportation -> completed
//   - CanTransition: the single rule table deciding who may move an order where
//   - Charges: subtotal, tax, delivery fee and loyalty discount of an order
//
// Key business rules:
//   - Status never moves backward and never skips a state
//   - Staff may not progress an unpaid order
//   - Transportation is entered only through courier assignment and Completed
//     only through completion by the assigned courier
//   - A courier is linked if and only if the order is in transportation or completed
//   - Payment confirmation is idempotent and never changes a set status
package order
