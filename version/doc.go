// Package version reports the build version of the binary, from linker
// flags or the VCS information stamped by the Go toolchain.
package version
