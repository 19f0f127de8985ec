package systems

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/hoshiryu/remesh/pipeline/core"
)

/** Definition for the entry point of a job. */
type JobStart func(params interface{}, results chan interface{}) error

/** Definition for completion/failure callbacks of a job. */
type JobComplete func(results chan interface{})

/**
 * @brief Describes a job to be run on the worker pool.
 */
type JobTask struct {
	/** @brief The job identifier, assigned on submission when empty. */
	ID string
	/** @brief Data to be passed to the entry point upon execution. */
	InputParams interface{}
	/** @brief A function to be invoked when the job starts. Required. */
	OnStart JobStart
	/** @brief A function to be invoked when the job successfully completes. Optional. */
	OnComplete JobComplete
	/** @brief A function to be invoked when the job fails. Optional. */
	OnFailure JobComplete
	/** @brief Invoked after the job finished, regardless of outcome. Optional. */
	OnCompletionCallback func()
}

type JobSystem struct {
	numWorkers int
	jobQueue   chan JobTask
	wg         sync.WaitGroup
}

var ErrNoWorkers = fmt.Errorf("attempting to create worker pool with less than 1 worker")
var ErrNegativeChannelSize = fmt.Errorf("attempting to create worker pool with a negative channel size")

func NewJobSystem(numWorkers int, channelSize int) (*JobSystem, error) {
	if numWorkers <= 0 {
		return nil, ErrNoWorkers
	}
	if channelSize < 0 {
		return nil, ErrNegativeChannelSize
	}

	jq := make(chan JobTask, channelSize)
	js := &JobSystem{
		numWorkers: numWorkers,
		jobQueue:   jq,
	}

	js.start()

	return js, nil
}

func (js *JobSystem) start() {
	for i := 0; i < js.numWorkers; i++ {
		js.wg.Add(1)
		go func() {
			defer js.wg.Done()
			for job := range js.jobQueue {
				resultsChan := make(chan interface{}, 1)
				// Run the job and handle potential errors
				err := job.OnStart(job.InputParams, resultsChan)
				if err != nil {
					core.LogError("job %s failed: %s", job.ID, err.Error())
					if job.OnFailure != nil {
						job.OnFailure(resultsChan)
					}
				} else {
					if job.OnComplete != nil {
						job.OnComplete(resultsChan)
					}
				}

				// Call the completion callback if set
				if job.OnCompletionCallback != nil {
					job.OnCompletionCallback()
				}
			}
		}()
	}
}

/**
 * @brief Shuts the job system down. Blocks until all queued jobs drained.
 */
func (js *JobSystem) Shutdown() error {
	close(js.jobQueue)
	js.wg.Wait()
	return nil
}

// NumWorkers returns the number of workers consuming the job queue.
func (js *JobSystem) NumWorkers() int {
	return js.numWorkers
}

// AddWorkNonBlocking adds work to the pool and returns immediately
func (js *JobSystem) AddWorkNonBlocking(jt JobTask) {
	go js.Submit(jt)
}

/**
 * @brief Submits the provided job to be queued for execution.
 * @param jt The description of the job to be executed.
 */
func (js *JobSystem) Submit(jt JobTask) {
	if jt.ID == "" {
		jt.ID = uuid.New().String()
	}
	js.jobQueue <- jt
}

/**
 * @brief Runs fn over [0, total) split into contiguous chunks, one chunk per
 * worker at most, and blocks until every chunk completed. Chunks must be
 * independent; fn is invoked concurrently with disjoint [start, end) ranges.
 */
func (js *JobSystem) ParallelFor(total int, fn func(start, end int)) {
	if total <= 0 {
		return
	}

	chunks := js.numWorkers
	if chunks > total {
		chunks = total
	}
	chunkSize := (total + chunks - 1) / chunks

	batchID := uuid.New().String()

	var pending sync.WaitGroup
	for start := 0; start < total; start += chunkSize {
		end := start + chunkSize
		if end > total {
			end = total
		}
		s, e := start, end

		pending.Add(1)
		js.Submit(JobTask{
			ID: fmt.Sprintf("%s/%d-%d", batchID, s, e),
			OnStart: func(params interface{}, results chan interface{}) error {
				fn(s, e)
				return nil
			},
			OnCompletionCallback: func() {
				pending.Done()
			},
		})
	}
	pending.Wait()
}
