// Package runtime shells out to the local Python toolchain. It installs a
// generated agent's requirements with pip and probes interpreter
// availability for the doctor command.
package runtime
