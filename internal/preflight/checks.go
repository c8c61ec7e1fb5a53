// Package preflight validates the environment before an export run starts,
// so failures surface as one readable report instead of mid-run errors.
package preflight

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Result is the outcome of a single check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Run executes every destination and catalog check. minFreeBytes of zero
// reports free space without enforcing a floor.
func Run(destRoot, catalogPath string, minFreeBytes uint64) []Result {
	results := []Result{
		checkDestinationExists(destRoot),
		checkDestinationWritable(destRoot),
		checkFreeSpace(destRoot, minFreeBytes),
		checkCatalog(catalogPath),
	}
	return results
}

// AllPassed reports whether every check succeeded.
func AllPassed(results []Result) bool {
	for _, result := range results {
		if !result.Passed {
			return false
		}
	}
	return true
}

func checkDestinationExists(root string) Result {
	result := Result{Name: "destination exists"}
	info, err := os.Stat(root)
	switch {
	case err != nil:
		result.Detail = err.Error()
	case !info.IsDir():
		result.Detail = fmt.Sprintf("%s is not a directory", root)
	default:
		result.Passed = true
		result.Detail = root
	}
	return result
}

func checkDestinationWritable(root string) Result {
	result := Result{Name: "destination writable"}
	if err := unix.Access(root, unix.W_OK); err != nil {
		result.Detail = fmt.Sprintf("%s: %v", root, err)
		return result
	}
	result.Passed = true
	result.Detail = "write access confirmed"
	return result
}

func checkFreeSpace(root string, minFreeBytes uint64) Result {
	result := Result{Name: "free space"}
	var stat unix.Statfs_t
	if err := unix.Statfs(root, &stat); err != nil {
		result.Detail = fmt.Sprintf("statfs %s: %v", root, err)
		return result
	}
	available := stat.Bavail * uint64(stat.Bsize)
	result.Detail = FormatBytes(available) + " available"
	if minFreeBytes > 0 && available < minFreeBytes {
		result.Detail = fmt.Sprintf("%s available, need %s",
			FormatBytes(available), FormatBytes(minFreeBytes))
		return result
	}
	result.Passed = true
	return result
}

func checkCatalog(path string) Result {
	result := Result{Name: "catalog database"}
	if path == "" {
		result.Detail = "no database located"
		return result
	}
	info, err := os.Stat(path)
	switch {
	case err != nil:
		result.Detail = err.Error()
	case !info.Mode().IsRegular():
		result.Detail = fmt.Sprintf("%s is not a regular file", path)
	default:
		result.Passed = true
		result.Detail = path
	}
	return result
}

// FormatBytes renders a byte count with a binary unit suffix.
func FormatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
