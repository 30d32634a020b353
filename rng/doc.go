// Package rng provides uniformly distributed random integers drawn directly
// from the operating system's secure randomness facility.
//
// Exactly one entropy source is compiled per target:
// - Windows: ProcessPrng() from bcryptprimitives.dll
// - Linux: the getrandom(2) syscall
// - everything else: reads from /dev/urandom
//
// The source is created lazily on first use and shared by the whole process.
// Nothing is ever seeded or cached: every value is made from fresh OS entropy.
//
// If secure randomness cannot be obtained, the process is terminated. There is
// no fallback to weaker randomness and no error is ever returned to callers.
package rng
