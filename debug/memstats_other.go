//go:build !windows

package debug

import (
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// residentBytes reads the resident set size from /proc/self/statm.
func residentBytes() (uint64, error) {
	data, err := os.ReadFile("/proc/self/statm")
	if err != nil {
		return 0, errors.Wrap(err, "read statm")
	}
	fields := strings.Fields(string(data))
	if len(fields) < 2 {
		return 0, errors.Errorf("unexpected statm %q", data)
	}
	pages, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return 0, errors.Wrap(err, "parse statm")
	}
	return pages * uint64(os.Getpagesize()), nil
}
