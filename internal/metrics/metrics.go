package metrics

import (
	"regexp"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestDuration tracks HTTP request duration in seconds by method, path, status.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// RequestTotal counts HTTP requests by method, path, status.
	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// TokenRejections counts tokens refused by the gate, by reason.
	TokenRejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_token_rejections_total",
			Help: "Total number of rejected access tokens by reason",
		},
		[]string{"reason"},
	)

	// LoginsTotal counts login attempts by result (success, failure).
	LoginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_logins_total",
			Help: "Total number of login attempts by result",
		},
		[]string{"result"},
	)

	// BlogWrites counts blog mutations by operation (create, update, delete).
	BlogWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blog_writes_total",
			Help: "Total number of blog writes by operation",
		},
		[]string{"op"},
	)
)

// UnmatchedPath is the path label for requests that matched no route.
const UnmatchedPath = "unmatched"

var (
	numericPathSegment = regexp.MustCompile(`/[0-9]+(/|$)`)
	userPathSegment    = regexp.MustCompile(`^/(user|blogs)/[^/]+$`)
	initOnce           sync.Once
)

func init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestDuration, RequestTotal, TokenRejections, LoginsTotal, BlogWrites)
	})
}

// NormalizePath reduces cardinality by replacing id-like path segments.
// E.g. /blog/123 -> /blog/{id}, /user/5f1c... -> /user/{id}, /blogs/alice -> /blogs/{id}.
func NormalizePath(path string) string {
	path = numericPathSegment.ReplaceAllString(path, "/{id}$1")
	if userPathSegment.MatchString(path) {
		return userPathSegment.ReplaceAllString(path, "/$1/{id}")
	}
	return path
}

// RecordRequest records duration and count for an HTTP request.
func RecordRequest(method, path string, statusCode int, durationSeconds float64) {
	path = NormalizePath(path)
	status := strconv.Itoa(statusCode)
	RequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
	RequestTotal.WithLabelValues(method, path, status).Inc()
}

// IncTokenRejection increments the rejection counter for reason (missing, expired, bad_signature, malformed, unknown_principal).
func IncTokenRejection(reason string) {
	TokenRejections.WithLabelValues(reason).Inc()
}

// IncLogin increments the login counter for result.
func IncLogin(result string) {
	LoginsTotal.WithLabelValues(result).Inc()
}

// IncBlogWrite increments the blog write counter for op.
func IncBlogWrite(op string) {
	BlogWrites.WithLabelValues(op).Inc()
}
