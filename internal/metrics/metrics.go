package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	SourcesFetched    int64
	FetchErrors       int64
	ParseErrors       int64
	ArticlesSeen      int64
	ArticlesInserted  int64
	DuplicatesSkipped int64
	Reclassified      int64
	ImagesResolved    int64

	// Timings
	LastIngestTime    time.Duration
	TotalIngestTime   time.Duration
	AverageIngestTime time.Duration
	IngestCount       int64

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) AddSourcesFetched(n int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SourcesFetched += n
}

func (m *Metrics) IncrementFetchErrors() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FetchErrors++
}

func (m *Metrics) IncrementParseErrors() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ParseErrors++
}

func (m *Metrics) AddArticlesSeen(n int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesSeen += n
}

func (m *Metrics) IncrementArticlesInserted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesInserted++
}

func (m *Metrics) IncrementDuplicatesSkipped() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesSkipped++
}

func (m *Metrics) IncrementReclassified() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Reclassified++
}

func (m *Metrics) IncrementImagesResolved() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ImagesResolved++
}

func (m *Metrics) RecordIngestTime(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastIngestTime = duration
	m.TotalIngestTime += duration
	m.IngestCount++

	if m.IngestCount > 0 {
		m.AverageIngestTime = m.TotalIngestTime / time.Duration(m.IngestCount)
	}
}

func (m *Metrics) SetLastRun() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) Healthy() (bool, time.Time, string) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.IsHealthy, m.LastRunTime, m.LastError
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"sources_fetched":        m.SourcesFetched,
		"fetch_errors":           m.FetchErrors,
		"parse_errors":           m.ParseErrors,
		"articles_seen":          m.ArticlesSeen,
		"articles_inserted":      m.ArticlesInserted,
		"duplicates_skipped":     m.DuplicatesSkipped,
		"reclassified":           m.Reclassified,
		"images_resolved":        m.ImagesResolved,
		"last_ingest_time_ms":    m.LastIngestTime.Milliseconds(),
		"average_ingest_time_ms": m.AverageIngestTime.Milliseconds(),
		"last_run_time":          m.LastRunTime.Format(time.RFC3339),
		"last_error_time":        m.LastErrorTime.Format(time.RFC3339),
		"last_error":             m.LastError,
		"is_healthy":             m.IsHealthy,
	}
}
