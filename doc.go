// Package unsquash drives the external unsquashfs tool to extract SquashFS
// filesystem images, exposing a typed API instead of requiring callers to
// shell out by hand.
//
// The package is organized around three small pieces:
//   - Locator resolves the absolute path of the unsquashfs executable,
//     either via PATH lookup or an explicit override.
//   - buildArgs maps a validated Request into the exact argument vector
//     passed to the tool. Arguments are always handed to the process as a
//     discrete vector — no shell string is ever constructed, so quoting
//     and injection concerns do not exist here.
//   - Runner spawns the subprocess, waits for it, and classifies the
//     result into an Outcome or a typed error.
//
// Extraction is a single blocking call bounded by the subprocess lifetime.
// The package keeps no state between calls, so an Extractor may be used
// concurrently from multiple goroutines as long as destination directories
// do not collide (which is the caller's responsibility).
//
// unsquashfs only renders its progress bar when writing to a terminal, so
// progress reporting (WithProgress) runs the tool under a pseudo-terminal
// and parses percentage updates from its output stream.
package unsquash
