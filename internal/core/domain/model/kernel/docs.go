// Package kernel provides the shared value objects of the food-ordering domain:
// UUID identifiers, geographic Locations, caller Roles and currency rounding
// helpers. Values are immutable and validated at construction.
package kernel
