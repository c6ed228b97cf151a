package drawable

import (
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// minChunk is the smallest number of elements handed to one worker task.
const minChunk = 64

var workerPool = sync.OnceValue(func() worker.DynamicWorkerPool {
	return worker.NewDynamicWorkerPool(max(runtime.NumCPU()-1, 1), 256, 1*time.Second)
})

// parallelRange splits [0, n) into disjoint chunks and runs fn on each chunk
// through the shared worker pool. It returns once every chunk has finished.
// Small ranges run inline on the caller.
func parallelRange(n int, fn func(lo, hi int)) {
	if n <= 0 {
		return
	}
	pool := workerPool()
	workers := pool.GetMaxWorkers()
	chunk := max((n+workers-1)/workers, minChunk)
	if chunk >= n {
		fn(0, n)
		return
	}

	var wg sync.WaitGroup
	id := 0
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		wg.Add(1)
		pool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				fn(lo, hi)
				return nil, nil
			},
		})
		id++
	}
	wg.Wait()
}
