// Package propdeco holds build metadata for the propdeco module.
package propdeco

// Version is the propdeco release version.
const Version = "0.1.0"

// ModulePath is the Go module path.
const ModulePath = "github.com/mesh-intelligence/propdeco"
