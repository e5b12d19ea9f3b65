package preflight

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"gridiron/internal/catalog"
	"gridiron/internal/config"
	"gridiron/internal/session"
)

// statfsFunc allows tests to stub filesystem stats.
type statfsFunc func(path string) (total uint64, free uint64, err error)

// freeSpaceFloor is the minimum free-space ratio before the data disk is
// flagged; a draft-day run writes exports and a session database, both
// small, so the floor is low.
const freeSpaceFloor = 0.05

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckCatalog verifies the cheatsheet file loads and reports its size.
func CheckCatalog(path string) Result {
	const name = "Catalog"

	cat, err := catalog.Load(path)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d entries)", path, cat.Len())}
}

// CheckDiskSpace flags the filesystem holding path when it is nearly full.
func CheckDiskSpace(name, path string) Result {
	return checkDiskSpace(name, path, realStatfs)
}

func checkDiskSpace(name, path string, statfs statfsFunc) Result {
	total, free, err := statfs(path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: statfs: %v)", path, err)}
	}
	if total == 0 {
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (unknown filesystem size)", path)}
	}
	ratio := float64(free) / float64(total)
	if ratio < freeSpaceFloor {
		return Result{Name: name, Detail: fmt.Sprintf("%s (%.1f%% free, below %.0f%% floor)", path, ratio*100, freeSpaceFloor*100)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%.1f%% free)", path, ratio*100)}
}

// CheckDatabase opens the session store, which verifies the schema
// version, and closes it again. Fails when another process holds the
// store.
func CheckDatabase(cfg *config.Config) Result {
	const name = "Session database"

	store, err := session.Open(cfg)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	path := store.Path()
	if err := store.Close(); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: close: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: path}
}

func realStatfs(path string) (uint64, uint64, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return 0, 0, err
	}
	total := stat.Blocks * uint64(stat.Bsize)
	free := stat.Bavail * uint64(stat.Bsize)
	return total, free, nil
}
