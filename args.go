package unsquash

import "strconv"

// buildArgs maps a validated Request to the unsquashfs argument vector:
//
//	[-p N] [-f] -d DEST SRC
//
// The thread flag appears only when the request carries an explicit limit,
// the force flag only when overwrite was asked for, and the source image
// is always the final positional argument. The function is pure — no
// filesystem or process I/O — so an identical request always produces an
// identical vector.
func buildArgs(req Request) []string {
	args := make([]string, 0, 6)

	if req.Threads > 0 {
		args = append(args, "-p", strconv.Itoa(req.Threads))
	}
	if req.Overwrite {
		args = append(args, "-f")
	}
	args = append(args, "-d", req.DestDir, req.SourceImage)

	return args
}
