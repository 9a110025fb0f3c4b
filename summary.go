package main

import (
	"errors"
	"fmt"
	"io"
)

// printSummary writes a human readable report of a run
func printSummary(w io.Writer, result *Result) {
	fmt.Fprintf(w, "summary: %d copied, %d skipped, %d missing, %d failed\n",
		result.Count(StatusCopied),
		result.Count(StatusSkipped),
		result.Count(StatusMissing),
		result.Count(StatusFailed),
	)

	for _, o := range result.Outcomes {
		switch o.Status {
		case StatusCopied:
			fmt.Fprintf(w, "  copied:  %s\n", o.Entry)
		case StatusSkipped:
			fmt.Fprintf(w, "  skipped: %s (already exists)\n", o.Entry)
		case StatusMissing:
			fmt.Fprintf(w, "  missing: %s (not in template)\n", o.Entry)
		case StatusFailed:
			cause := o.Err
			var copyErr *CopyError
			if errors.As(cause, &copyErr) {
				cause = copyErr.Err
			}
			fmt.Fprintf(w, "  failed:  %s: %v\n", o.Entry, cause)
		}
	}
}
