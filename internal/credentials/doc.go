// Package credentials establishes a password credential and verifies it.
//
// A credential is persisted as one line "<salt-hex>:<hash-hex>" at a
// configured path. Establishing a credential overwrites the previous one.
//
// Store drives two interactive phases through a Prompter:
//
//   - establish: read candidates until one passes the password policy, then
//     salt, hash and persist it;
//   - verify: read the password again until its hash, computed with the
//     persisted salt, matches the persisted hash.
//
// If the persisted record cannot be read while verifying, Run goes back to
// the establish phase instead of reporting a mismatch.
package credentials
