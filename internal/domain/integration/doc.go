// Package integration contains the Integration bounded context.
// This context routes storefront orders to fulfillment locations on the commerce platform
// and forwards storefront company actions.
//
// Key concepts:
//   - GraphQLGateway: Port for issuing queries/mutations against the platform's Admin GraphQL API
//   - FulfillmentPlatform: Port for reading and moving an order's fulfillment orders
//   - CompanyDirectory: Port for B2B company lookups and customer assignment
//   - OrderEvent: Value object normalized from an inbound order webhook
//   - LocationPolicy: Immutable mapping from fulfillment mode to target location
//   - ReconciliationResult: Ordered per-fulfillment-order outcomes of one reconciliation run
//   - ReconciliationRun: Journal entry recording a finished run
//
// Design Pattern: Ports & Adapters
//   - Ports (interfaces) are defined here in the domain layer
//   - Adapters (implementations) are in the infrastructure layer
package integration
