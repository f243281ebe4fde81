// Package integration contains the POS integration bounded context.
// It defines the port through which the shop talks to the KiotViet POS
// and the value types that cross that boundary.
//
// Key concepts:
//   - POSClient: port interface for the remote POS API (catalog pages,
//     inventory, order mirroring, webhook administration)
//   - RemoteProduct / ProductPage: transient snapshots of the remote catalog
//   - OrderStatusEnvelope: inbound webhook payload for order status changes
//   - RemoteAPIError: non-2xx responses from the POS, carried verbatim
//
// Design pattern: ports & adapters. The port lives here in the domain
// layer; the HTTP adapter lives in infrastructure/kiotviet.
package integration
