package core

import (
	"regexp"
	"sort"
	"strconv"
	"sync"
	"time"

	"stock-manager/internal/core/model"
)

// Export filenames carry a date as D.M.YY or D.M.YYYY; the first match
// wins if several numeric triples appear.
var snapshotDateRe = regexp.MustCompile(`(\d{1,2})\.(\d{1,2})\.(\d{2,4})`)

// undatedSentinel is assigned to identifiers without a recognizable
// date so they sort after every real export.
var undatedSentinel = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// SnapshotDate extracts the calendar date embedded in an identifier.
// Two-digit years are read as 2000+YY.
func SnapshotDate(id model.SnapshotID) time.Time {
	m := snapshotDateRe.FindStringSubmatch(string(id))
	if m == nil {
		return undatedSentinel
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	if year < 100 {
		year += 2000
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

// SortSnapshots returns a copy of ids ordered newest first. The sort
// is stable: identifiers with equal dates keep their relative order.
func SortSnapshots(ids []model.SnapshotID) []model.SnapshotID {
	out := make([]model.SnapshotID, len(ids))
	copy(out, ids)
	sort.SliceStable(out, func(i, j int) bool {
		return SnapshotDate(out[i]).After(SnapshotDate(out[j]))
	})
	return out
}

// SelectActive picks the newest identifier. Pure; re-run whenever the
// available set changes.
func SelectActive(ids []model.SnapshotID) (model.SnapshotID, error) {
	if len(ids) == 0 {
		return "", ErrNoSnapshots
	}
	return SortSnapshots(ids)[0], nil
}

// Resolver tracks an optional operator-pinned snapshot for a session.
// Without a pin the active snapshot follows the newest export
// automatically.
type Resolver struct {
	mu     sync.Mutex
	pinned model.SnapshotID
}

func (r *Resolver) Pin(id model.SnapshotID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pinned = id
}

func (r *Resolver) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pinned = ""
}

func (r *Resolver) Pinned() model.SnapshotID {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pinned
}

// Active resolves the current snapshot: the pinned one while it still
// exists, otherwise the newest by extracted date.
func (r *Resolver) Active(ids []model.SnapshotID) (model.SnapshotID, error) {
	if len(ids) == 0 {
		return "", ErrNoSnapshots
	}
	if pinned := r.Pinned(); pinned != "" {
		for _, id := range ids {
			if id == pinned {
				return pinned, nil
			}
		}
		// pinned export disappeared; fall back to newest
	}
	return SelectActive(ids)
}
