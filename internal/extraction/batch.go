package extraction

import (
	"fmt"
	"sync"
)

// Failure records one file that could not be extracted.
type Failure struct {
	File   string
	Reason Reason
	Err    error
}

// BatchResult aggregates a settle-all batch extraction. Extractions and
// Failures each preserve the original file order; together they account for
// every input file exactly once.
type BatchResult struct {
	Extractions []Result
	Failures    []Failure
}

// FailedCount returns the number of files that failed extraction.
func (r *BatchResult) FailedCount() int {
	return len(r.Failures)
}

// Summary returns the aggregate failure message, or "" when every file
// succeeded.
func (r *BatchResult) Summary() string {
	if len(r.Failures) == 0 {
		return ""
	}
	return fmt.Sprintf("%d file(s) failed", len(r.Failures))
}

// ExtractAll runs extraction for every file concurrently and waits for every
// outcome before returning. One file's failure never cancels or blocks
// another's completion; failed files are dropped from the working set and
// reported in Failures. Each success is assigned a fresh unique ID.
func ExtractAll(extractor Extractor, ids IDGenerator, files []File) (*BatchResult, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	type outcome struct {
		fields *Fields
		err    error
	}
	outcomes := make([]outcome, len(files))

	var wg sync.WaitGroup
	for i, f := range files {
		wg.Add(1)
		go func(i int, f File) {
			defer wg.Done()
			fields, err := extractor.Extract(f)
			outcomes[i] = outcome{fields: fields, err: err}
		}(i, f)
	}
	wg.Wait()

	result := &BatchResult{}
	for i, o := range outcomes {
		if o.err != nil {
			result.Failures = append(result.Failures, Failure{
				File:   files[i].Name,
				Reason: ClassifyError(o.err),
				Err:    o.err,
			})
			continue
		}
		result.Extractions = append(result.Extractions, Result{
			ID:     ids.Generate(),
			File:   files[i],
			Fields: *o.fields,
		})
	}

	return result, nil
}
