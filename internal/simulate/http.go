package simulate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client  *http.Client
	timeout time.Duration
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// Get performs a GET request
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with a JSON body. An empty token skips
// the Authorization header.
func (c *HTTPClient) Post(ctx context.Context, url, token string, body interface{}) (*http.Response, error) {
	jsonData, err := marshalJSON(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return c.client.Do(req)
}

// marshalJSON marshals a struct to JSON
func marshalJSON(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}

// unmarshalJSON unmarshals JSON to a struct
func unmarshalJSON(data []byte, v interface{}) error {
	return json.Unmarshal(data, v)
}

// readResponseBody reads and closes the response body
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// submitScores submits score entries concurrently using worker pools
func submitScores(ctx context.Context, config *Config, token string, submissions []Submission, stats *Stats) error {
	log.Printf("Submitting %d score entries with %d workers...", len(submissions), config.Workers)

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/scores"

	// Counters for statistics
	var (
		ok       int64
		replaced int64
		failed   int64
		sent     int64
	)

	var lastReport time.Time

	// Create worker pool
	subChan := make(chan Submission, config.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()

			for sub := range subChan {
				select {
				case <-ctx.Done():
					return
				default:
					result := submitSingleScore(ctx, client, url, token, sub)

					atomic.AddInt64(&sent, 1)
					switch result {
					case "ok":
						atomic.AddInt64(&ok, 1)
					case "replaced":
						atomic.AddInt64(&replaced, 1)
					case "failed":
						atomic.AddInt64(&failed, 1)
					}

					if time.Since(lastReport) >= ProgressReportInterval {
						lastReport = time.Now()
						total := atomic.LoadInt64(&sent)
						succ := atomic.LoadInt64(&ok)
						repl := atomic.LoadInt64(&replaced)
						fail := atomic.LoadInt64(&failed)

						log.Printf("Progress: %d/%d sent (ok: %d, replaced: %d, failed: %d)",
							total, len(submissions), succ, repl, fail)
					}
				}
			}
		}(i)
	}

	// Send submissions to workers
	go func() {
		defer close(subChan)
		for _, sub := range submissions {
			select {
			case <-ctx.Done():
				return
			case subChan <- sub:
			}
		}
	}()

	wg.Wait()

	stats.SubmissionsSent = int(atomic.LoadInt64(&sent))
	stats.SubmissionsOK = int(atomic.LoadInt64(&ok))
	stats.SubmissionsReplaced = int(atomic.LoadInt64(&replaced))
	stats.SubmissionsFailed = int(atomic.LoadInt64(&failed))

	log.Printf(`Score submission completed:
   OK: %d
   Replaced: %d
   Failed: %d
`, stats.SubmissionsOK, stats.SubmissionsReplaced, stats.SubmissionsFailed)

	return nil
}

// submitSingleScore submits a single score entry and returns the result
func submitSingleScore(ctx context.Context, client *HTTPClient, url, token string, sub Submission) string {
	resp, err := client.Post(ctx, url, token, sub)
	if err != nil {
		return "failed"
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return "failed"
	}

	if resp.StatusCode != StatusOK {
		return "failed"
	}

	var ack AckResponse
	if err := unmarshalJSON(body, &ack); err == nil && ack.Replaced {
		return "replaced"
	}
	return "ok"
}
