// Package domain contains the core payment model for payflow.
//
// The domain is transport- and persistence-agnostic: it does not depend on HTTP,
// YAML parsing, SQL or Redis. Infra adapters map into/from these types.
package domain
