// Package modules provides a minimal module lifecycle to cleanly put the
// moving parts of a service together.
//
// Modules are started in a multi-stage process and may depend on other
// modules:
// - Go's init(): register flags and the module itself
// - prep: check flags, register config variables
// - start: start actual work, access config
// - stop: gracefully shut down, release resources
//
// Modules are stopped in reverse dependency order. Panics in any of the
// control functions are recovered and returned as a *ModuleError.
package modules
