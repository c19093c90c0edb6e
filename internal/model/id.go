// Package model holds the domain types persisted by the repositories and
// the generators for their prefixed identifiers.
package model

import (
	"fmt"
	"math/big"

	"github.com/google/uuid"
)

// prefixedID returns an identifier like "USER1234567": the given prefix
// followed by up to seven digits derived from a random UUID.  Collisions are
// possible in principle and are caught by the primary-key constraint.
func prefixedID(prefix string) string {
	u := uuid.New()
	n := new(big.Int).SetBytes(u[:])
	return fmt.Sprintf("%s%d", prefix, n.Mod(n, big.NewInt(10_000_000)))
}

// UserIDPrefix is the prefix every user identifier carries.  Token subjects
// are rejected when they do not start with it.
const UserIDPrefix = "USER"

func NewUserID() string         { return prefixedID(UserIDPrefix) }
func NewRegistrationID() string { return prefixedID("REG") }
func NewEventID() string        { return prefixedID("EVT") }
func NewAssetID() string        { return prefixedID("AST") }
func NewResultID() string       { return prefixedID("RES") }
