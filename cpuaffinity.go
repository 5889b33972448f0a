package roitrack

import (
	"strconv"
	"strings"
	"syscall"
	"unsafe"

	"github.com/pkg/errors"
)

// SetCPUAffinity sets the CPU Affinity mask of the program to run on the specified
// cores.  Decoding and tracking are CPU bound so pinning the process to the
// fast cores of a big.LITTLE board gives steadier tick times.
func SetCPUAffinity(mask uintptr) error {

	_, _, err := syscall.RawSyscall(syscall.SYS_SCHED_SETAFFINITY, 0,
		unsafe.Sizeof(mask), uintptr(unsafe.Pointer(&mask)))

	if err != 0 {
		return errors.Wrap(err, "failed to set CPU affinity")
	}

	return nil
}

// GetCPUAffinity gets the current CPU Affinity mask the program is running on
func GetCPUAffinity() (uintptr, error) {

	var mask uintptr

	_, _, err := syscall.RawSyscall(syscall.SYS_SCHED_GETAFFINITY, 0,
		unsafe.Sizeof(mask), uintptr(unsafe.Pointer(&mask)))

	if err != 0 {
		return 0, errors.Wrap(err, "failed to get CPU affinity")
	}

	return mask, nil
}

// CPUCoreMask calculates the core mask by passing in the CPU core numbers as a
// slice, eg: []int{4,5,6,7}
func CPUCoreMask(cores []int) uintptr {

	var mask uintptr

	for _, core := range cores {
		mask |= 1 << core
	}

	return mask
}

// ParseCoreList parses a comma separated list of CPU cores and core ranges,
// eg: "0,2,4-7"
func ParseCoreList(list string) ([]int, error) {

	var cores []int
	maxCore := int(unsafe.Sizeof(uintptr(0)) * 8)

	for _, part := range strings.Split(list, ",") {

		part = strings.TrimSpace(part)

		if part == "" {
			continue
		}

		lo, hi := part, part

		if i := strings.Index(part, "-"); i >= 0 {
			lo, hi = part[:i], part[i+1:]
		}

		start, err := strconv.Atoi(strings.TrimSpace(lo))

		if err != nil {
			return nil, errors.Errorf("invalid core %q", part)
		}

		end, err := strconv.Atoi(strings.TrimSpace(hi))

		if err != nil {
			return nil, errors.Errorf("invalid core %q", part)
		}

		if start < 0 || end < start || end >= maxCore {
			return nil, errors.Errorf("invalid core range %q", part)
		}

		for c := start; c <= end; c++ {
			cores = append(cores, c)
		}
	}

	if len(cores) == 0 {
		return nil, errors.New("no cores given")
	}

	return cores, nil
}
