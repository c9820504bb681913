// Package crypto exposes the hashing used to fingerprint inventory snapshots.
//
// Contents
//
//   - Short BLAKE2b fingerprints for display/logging (Fingerprint)
//   - Order-sensitive digests of an item list plus ceiling (SnapshotDigest)
//
// # Notes
//
// Digests identify a snapshot for users and logs; they are not a security
// boundary. Staleness checks use the store version, not the digest.
package crypto
