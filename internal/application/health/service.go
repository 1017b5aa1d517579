package health

import (
	"context"
	"encoding/json"
	"runtime"
	"strconv"
	"time"

	"porvenir-web/internal/middleware"

	"github.com/redis/go-redis/v9"
)

// DBPinger is the snapshot database. Nil means the mirror is not configured.
type DBPinger interface {
	Ping() error
}

// ContentPinger is the headless content API.
type ContentPinger interface {
	Ping(ctx context.Context) error
}

// Dependency states reported in CollectResult.Dependencies.
const (
	StatusConnected    = "connected"
	StatusDisconnected = "disconnected"
	StatusDisabled     = "disabled"
	StatusError        = "error"
	StatusReachable    = "reachable"
	StatusUnreachable  = "unreachable"
)

// CollectResult is the payload of /health/json and the dashboard.
type CollectResult struct {
	Status       string               `json:"status"`
	Runtime      RuntimeInfo          `json:"runtime"`
	Traffic      TrafficInfo          `json:"traffic"`
	Dependencies map[string]DepStatus `json:"dependencies"`
}

type RuntimeInfo struct {
	UptimeSeconds int64      `json:"uptimeSeconds"`
	Memory        MemoryInfo `json:"memory"`
	Goroutines    int        `json:"goroutines"`
	Platform      string     `json:"platform"`
	GoVersion     string     `json:"goVersion"`
}

type MemoryInfo struct {
	Alloc    int `json:"alloc"`
	HeapUsed int `json:"heapUsed"`
}

type TrafficInfo struct {
	TotalRequests   int                    `json:"totalRequests"`
	SuccessCount    int                    `json:"successCount"`
	FailedCount     int                    `json:"failedCount"`
	SuccessRate     string                 `json:"successRate"`
	AvgResponseTime string                 `json:"avgResponseTime"`
	LastRequest     map[string]interface{} `json:"lastRequest"`
}

type DepStatus struct {
	Status string `json:"status"`
	PingMs *int64 `json:"pingMs"`
}

// CollectHealth gathers traffic counters from Redis and pings every dependency.
// The site is "ok" when Redis is connected, the content API answers and the
// snapshot database, if configured, is reachable.
func CollectHealth(ctx context.Context, rdb *redis.Client, db DBPinger, content ContentPinger) CollectResult {
	result := CollectResult{
		Dependencies: make(map[string]DepStatus),
	}

	dbStatus := StatusDisabled
	var dbPingMs *int64
	if db != nil {
		start := time.Now()
		if err := db.Ping(); err == nil {
			ms := time.Since(start).Milliseconds()
			dbPingMs = &ms
			dbStatus = StatusConnected
		} else {
			dbStatus = StatusError
		}
	}
	result.Dependencies["database"] = DepStatus{Status: dbStatus, PingMs: dbPingMs}

	redisStatus := StatusDisconnected
	var redisPingMs *int64
	stats := TrafficInfo{AvgResponseTime: "0", SuccessRate: "100"}
	startTimeMs := time.Now().UnixMilli()

	if rdb != nil {
		start := time.Now()
		if err := rdb.Ping(ctx).Err(); err == nil {
			ms := time.Since(start).Milliseconds()
			redisPingMs = &ms
			redisStatus = StatusConnected
			startTimeMs = readTraffic(ctx, rdb, &stats, startTimeMs)
		} else {
			redisStatus = StatusError
		}
	}
	result.Dependencies["redis"] = DepStatus{Status: redisStatus, PingMs: redisPingMs}

	contentStatus := StatusUnreachable
	var contentPingMs *int64
	if content != nil {
		pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
		start := time.Now()
		if err := content.Ping(pctx); err == nil {
			ms := time.Since(start).Milliseconds()
			contentPingMs = &ms
			contentStatus = StatusReachable
		}
		cancel()
	}
	result.Dependencies["contentApi"] = DepStatus{Status: contentStatus, PingMs: contentPingMs}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	uptimeSec := (time.Now().UnixMilli() - startTimeMs) / 1000
	if uptimeSec < 0 {
		uptimeSec = 0
	}
	result.Runtime = RuntimeInfo{
		UptimeSeconds: uptimeSec,
		Memory:        MemoryInfo{Alloc: int(m.Alloc / 1024 / 1024), HeapUsed: int(m.HeapInuse / 1024 / 1024)},
		Goroutines:    runtime.NumGoroutine(),
		Platform:      runtime.GOOS + " (" + runtime.GOARCH + ")",
		GoVersion:     runtime.Version(),
	}
	result.Traffic = stats

	if redisStatus == StatusConnected && contentStatus == StatusReachable && dbStatus != StatusError {
		result.Status = "ok"
	} else {
		result.Status = "issue"
	}
	return result
}

// readTraffic fills stats from the marker counters and returns the recorded start time.
func readTraffic(ctx context.Context, rdb *redis.Client, stats *TrafficInfo, now int64) int64 {
	totalReq, _ := rdb.Get(ctx, middleware.KeyReqTotal).Result()
	totalErr, _ := rdb.Get(ctx, middleware.KeyReqErrors).Result()
	totalTime, _ := rdb.Get(ctx, middleware.KeyResTime).Result()
	resCount, _ := rdb.Get(ctx, middleware.KeyResCount).Result()
	startTimeStr, _ := rdb.Get(ctx, middleware.KeyStartTime).Result()
	lastReqStr, _ := rdb.Get(ctx, middleware.KeyLastReq).Result()

	startTimeMs := now
	if t, err := strconv.ParseInt(startTimeStr, 10, 64); err == nil {
		startTimeMs = t
	} else {
		rdb.Set(ctx, middleware.KeyStartTime, now, 0)
	}

	stats.TotalRequests, _ = strconv.Atoi(totalReq)
	stats.FailedCount, _ = strconv.Atoi(totalErr)
	stats.SuccessCount = stats.TotalRequests - stats.FailedCount
	if stats.TotalRequests > 0 {
		stats.SuccessRate = strconv.FormatFloat(float64(stats.SuccessCount)/float64(stats.TotalRequests)*100, 'f', 1, 64)
	}
	timeSum, _ := strconv.ParseFloat(totalTime, 64)
	countSum, _ := strconv.Atoi(resCount)
	if countSum > 0 {
		stats.AvgResponseTime = strconv.FormatFloat(timeSum/float64(countSum), 'f', 2, 64)
	}
	if lastReqStr != "" {
		var lastReq map[string]interface{}
		if json.Unmarshal([]byte(lastReqStr), &lastReq) == nil {
			stats.LastRequest = lastReq
		}
	}
	return startTimeMs
}

// ErrorLog returns the newest n entries recorded by the health marker.
func ErrorLog(ctx context.Context, rdb *redis.Client, n int64) ([]middleware.ErrorEntry, error) {
	raw, err := rdb.LRange(ctx, middleware.KeyErrorLog, 0, n-1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]middleware.ErrorEntry, 0, len(raw))
	for _, s := range raw {
		var e middleware.ErrorEntry
		if json.Unmarshal([]byte(s), &e) == nil {
			out = append(out, e)
		}
	}
	return out, nil
}

// Reset clears every counter and restarts the uptime clock.
func Reset(ctx context.Context, rdb *redis.Client, now time.Time) error {
	keys := []string{middleware.KeyReqTotal, middleware.KeyReqErrors, middleware.KeyResTime, middleware.KeyResCount, middleware.KeyStartTime, middleware.KeyLastReq, middleware.KeyErrorLog}
	if err := rdb.Del(ctx, keys...).Err(); err != nil {
		return err
	}
	return rdb.Set(ctx, middleware.KeyStartTime, strconv.FormatInt(now.UnixMilli(), 10), 0).Err()
}
