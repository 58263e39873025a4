package world

import (
	"context"
	"fmt"
	"sync"

	"bedrockdb/src/key"
	"bedrockdb/src/nbt"
)

// ScanStats 全库扫描的统计结果
type ScanStats struct {
	Records int
	Bytes   int64
	ByKind  map[key.Kind]int
	ByTag   map[key.Tag]int
	Failed  int
}

func newScanStats() *ScanStats {
	return &ScanStats{ByKind: make(map[key.Kind]int), ByTag: make(map[key.Tag]int)}
}

func (s *ScanStats) merge(o *ScanStats) {
	s.Records += o.Records
	s.Bytes += o.Bytes
	s.Failed += o.Failed
	for k, n := range o.ByKind {
		s.ByKind[k] += n
	}
	for t, n := range o.ByTag {
		s.ByTag[t] += n
	}
}

// ScanError 一条无法解码的记录
type ScanError struct {
	Key key.Key
	Err error
}

func (e ScanError) Error() string {
	return fmt.Sprintf("%s: %v", e.Key, e.Err)
}

func (e ScanError) Unwrap() error {
	return e.Err
}

type scanJob struct {
	key, value []byte
}

// DecodeValue 按键的类别解码一条记录，只报告错误
func DecodeValue(k key.Key, value []byte) error {
	switch {
	case k.Kind == key.KindChunk:
		_, err := DecodeRecord(k.Chunk, value)
		return err
	case k.Kind == key.KindDigest:
		_, err := key.ParseDigest(value)
		return err
	case k.IsNBT():
		_, err := nbt.UnmarshalAll(value)
		return err
	}
	return nil
}

// Scan 使用 workers 个协程解码存储中的全部记录。单条记录解码失败不会中止扫描，
// 失败记录在返回的错误列表中；progress 在每条记录处理后调用，可以为 nil。
func Scan(ctx context.Context, s Store, workers int, progress func()) (*ScanStats, []ScanError, error) {
	if workers < 1 {
		workers = 1
	}
	jobs := make(chan scanJob, workers*4)
	results := make(chan *ScanStats, workers)

	var mu sync.Mutex
	var failures []ScanError

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			local := newScanStats()
			for job := range jobs {
				k := key.Parse(job.key)
				local.Records++
				local.Bytes += int64(len(job.key) + len(job.value))
				local.ByKind[k.Kind]++
				if k.Kind == key.KindChunk {
					local.ByTag[k.Chunk.Tag]++
				}
				if err := DecodeValue(k, job.value); err != nil {
					local.Failed++
					mu.Lock()
					failures = append(failures, ScanError{Key: k, Err: err})
					mu.Unlock()
				}
				if progress != nil {
					progress()
				}
			}
			results <- local
		}()
	}

	iterErr := s.Iterate(nil, func(k, v []byte) bool {
		job := scanJob{key: append([]byte(nil), k...), value: append([]byte(nil), v...)}
		select {
		case jobs <- job:
			return true
		case <-ctx.Done():
			return false
		}
	})
	close(jobs)
	wg.Wait()
	close(results)

	stats := newScanStats()
	for r := range results {
		stats.merge(r)
	}
	if iterErr != nil {
		return stats, failures, iterErr
	}
	return stats, failures, ctx.Err()
}

// Count 统计以 prefix 开头的记录数
func Count(s Store, prefix []byte) (int, error) {
	n := 0
	err := s.Iterate(prefix, func(_, _ []byte) bool {
		n++
		return true
	})
	return n, err
}
