// Package courier provides the Courier aggregate: the delivery person who takes batches of
// legal notifications out and returns them for reconciliation.
//
// Key business rules:
//   - couriers have a stable unique identifier and a required, non-blank name
//   - contact, document, payment key and preferred route are optional free text
//   - the roster is ordered by name with Brazilian Portuguese collation
//   - deleting a courier removes its batches; the cascade is orchestrated by the
//     DeleteCourier command, not by this package
package courier
