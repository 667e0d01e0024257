package foto

import (
	"context"
	"sync"
)

// DefaultWorkers is the folder listing fan-out used when the caller does
// not choose one.
const DefaultWorkers = 10

// rootFolderID is the virtual parent of a space's top-level folders.
const rootFolderID = 0

// Warning records a folder listing that failed during collection. The
// subtree below that folder is absent from the result; sibling branches
// are unaffected.
type Warning struct {
	FolderID int64
	Space    Space
	Err      error
}

// Collector enumerates a space's folder tree through a fixed pool of
// workers, each performing one listing call per task.
type Collector struct {
	client  Client
	workers int
	logger  Logger
}

// NewCollector creates a Collector that lists folders with client using
// the given number of concurrent workers.
func NewCollector(client Client, workers int, logger Logger) *Collector {
	if workers < 1 {
		workers = DefaultWorkers
	}
	if logger == nil {
		logger = NewNopLogger()
	}
	return &Collector{client: client, workers: workers, logger: logger}
}

// Collect walks every folder reachable from the root of the given space
// and returns the id → record mapping plus one warning per failed listing.
//
// A dispatcher goroutine owns the backlog and the mapping; workers only
// perform listing calls and send results back. The mapping is therefore
// built single-threaded and comes out the same regardless of worker
// timing.
func (c *Collector) Collect(ctx context.Context, space Space) (FolderMap, []Warning) {
	type result struct {
		children []Folder
		warning  *Warning
	}

	queue := make(chan int64)
	results := make(chan result)

	var wg sync.WaitGroup
	for i := 0; i < c.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := range queue {
				children, err := c.client.ListFolders(ctx, space, id)
				if err != nil {
					results <- result{warning: &Warning{FolderID: id, Space: space, Err: err}}
					continue
				}
				results <- result{children: children}
			}
		}()
	}

	folders := make(FolderMap)
	var warnings []Warning
	backlog := []int64{rootFolderID}
	outstanding := 0

	for len(backlog) > 0 || outstanding > 0 {
		// A send on a nil channel blocks forever, which disables the
		// dispatch case while the backlog is empty.
		var dispatch chan<- int64
		var next int64
		if len(backlog) > 0 {
			dispatch = queue
			next = backlog[0]
		}

		select {
		case dispatch <- next:
			backlog = backlog[1:]
			outstanding++
		case r := <-results:
			outstanding--
			if r.warning != nil {
				c.logger.Warn("folder listing failed", "space", space, "folder_id", r.warning.FolderID, "error", r.warning.Err)
				warnings = append(warnings, *r.warning)
				continue
			}
			for _, f := range r.children {
				// A folder reported under two parents is listed once, so
				// anomalous listings cannot wedge the queue.
				if _, seen := folders[f.ID]; seen {
					continue
				}
				folders[f.ID] = FolderRecord{Name: f.Name, OwnerID: f.OwnerID}
				backlog = append(backlog, f.ID)
			}
		}
	}

	close(queue)
	wg.Wait()

	return folders, warnings
}
