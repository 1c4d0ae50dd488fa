// Package utils provides type conversion helpers for values whose concrete type
// depends on the database driver or on the peer that produced them.
package utils
