package e2etest

import (
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// MockServer imitates the CoinGecko market chart endpoint
type MockServer struct {
	server *httptest.Server

	mu sync.RWMutex
	// statusOverrides makes a coin answer with a fixed status
	statusOverrides map[string]int
	// requests counts market chart requests per coin
	requests map[string]*atomic.Int32
	// lastQuery keeps the query of the latest request per coin
	lastQuery map[string]string
}

// NewMockServer creates and returns a new mock server
func NewMockServer() *MockServer {
	ms := &MockServer{
		statusOverrides: make(map[string]int),
		requests:        make(map[string]*atomic.Int32),
		lastQuery:       make(map[string]string),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", ms.handleRequest)
	ms.server = httptest.NewServer(mux)

	return ms
}

// Close closes the mock server
func (ms *MockServer) Close() {
	if ms.server != nil {
		ms.server.Close()
	}
}

// GetURL returns the base URL of the mock server
func (ms *MockServer) GetURL() string {
	return ms.server.URL
}

// SetStatus makes every request for coin answer with status
func (ms *MockServer) SetStatus(coin string, status int) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.statusOverrides[coin] = status
}

// Requests returns how many market chart requests were made for coin
func (ms *MockServer) Requests(coin string) int {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	if counter, ok := ms.requests[coin]; ok {
		return int(counter.Load())
	}
	return 0
}

// LastQuery returns the raw query of the latest request for coin
func (ms *MockServer) LastQuery(coin string) string {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return ms.lastQuery[coin]
}

// handleRequest processes incoming requests and returns mock data
func (ms *MockServer) handleRequest(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	log.Printf("MockServer: Received request for path: %s", path)

	// Market chart endpoints - match pattern /api/v3/coins/{id}/market_chart
	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) != 5 || segments[0] != "api" || segments[3] == "" || segments[4] != "market_chart" {
		log.Printf("MockServer: Path not found: %s", path)
		http.NotFound(w, r)
		return
	}
	coin := segments[3]

	ms.mu.Lock()
	if _, ok := ms.requests[coin]; !ok {
		ms.requests[coin] = &atomic.Int32{}
	}
	ms.requests[coin].Add(1)
	ms.lastQuery[coin] = r.URL.RawQuery
	status, overridden := ms.statusOverrides[coin]
	ms.mu.Unlock()

	if overridden {
		w.WriteHeader(status)
		fmt.Fprintf(w, `{"error":"status %d"}`, status)
		return
	}

	if coin == "malformed" {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"market_caps":[]}`)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, generateMarketChartData(time.Now(), 30))
}

// generateMarketChartData returns days daily points ending at now, plus the
// repeated current day the real API appends.
func generateMarketChartData(now time.Time, days int) string {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var prices, marketCaps, totalVolumes []string
	add := func(timestamp int64, i int) {
		price := 47777.23 + float64(i)*100
		marketCap := 905000000000 + int64(i)*3000000000
		volume := 28000000000 + int64(i)*500000000

		prices = append(prices, fmt.Sprintf("[%d, %.2f]", timestamp, price))
		marketCaps = append(marketCaps, fmt.Sprintf("[%d, %d]", timestamp, marketCap))
		totalVolumes = append(totalVolumes, fmt.Sprintf("[%d, %d]", timestamp, volume))
	}

	for i := days - 1; i >= 0; i-- {
		add(midnight.AddDate(0, 0, -i).UnixMilli(), days-1-i)
	}
	// terminal duplicate a few hours into the current day
	add(midnight.Add(90*time.Minute).UnixMilli(), days)

	return fmt.Sprintf(`{
		"prices": [%s],
		"market_caps": [%s],
		"total_volumes": [%s]
	}`, strings.Join(prices, ","), strings.Join(marketCaps, ","), strings.Join(totalVolumes, ","))
}
