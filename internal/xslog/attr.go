package xslog

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/garrettladley/wellness/internal/version"
	"github.com/garrettladley/wellness/internal/xhttp"
)

const (
	keyError     = "error"
	keyRequestID = "request_id"
	keyStack     = "stack"
	keyStatus    = "status"
	keyDuration  = "duration"
	keyMethod    = "method"
	keyPath      = "path"
	keyIP        = "ip"
	keyBuild     = "build"
	keyVersion   = "version"
	keyRevision  = "revision"
	keyUserID    = "user_id"
	keyMetricID  = "metric_id"
	keyCount     = "count"
	keyScore     = "score"
	keyDriver    = "driver"
	keyCheck     = "check"
	keyFile      = "file"
)

func Error(err error) slog.Attr { return slog.String(keyError, err.Error()) }

func RequestID(requestID string) slog.Attr { return slog.String(keyRequestID, requestID) }

// Stack captures the calling goroutine's stack.
func Stack() slog.Attr { return slog.String(keyStack, string(debug.Stack())) }

func HTTPStatus(status int) slog.Attr { return slog.Int(keyStatus, status) }

func Duration(d time.Duration) slog.Attr { return slog.Duration(keyDuration, d) }

func RequestMethod(r *http.Request) slog.Attr { return slog.String(keyMethod, r.Method) }

func RequestPath(r *http.Request) slog.Attr { return slog.String(keyPath, r.URL.Path) }

func IP(ip string) slog.Attr { return slog.String(keyIP, ip) }

func RequestIP(r *http.Request) slog.Attr { return IP(xhttp.GetRequestIP(r)) }

// Version groups the running binary's version and VCS revision.
func Version() slog.Attr {
	info := version.Read()
	attrs := []slog.Attr{slog.String(keyVersion, info.Version)}
	if info.Revision != "" {
		attrs = append(attrs, slog.String(keyRevision, info.Revision))
	}
	return slog.GroupAttrs(keyBuild, attrs...)
}

func UserID(userID string) slog.Attr { return slog.String(keyUserID, userID) }

func MetricID(id string) slog.Attr { return slog.String(keyMetricID, id) }

func Count(n int) slog.Attr { return slog.Int(keyCount, n) }

// Score is a wellness score in [0,100].
func Score(score int) slog.Attr { return slog.Int(keyScore, score) }

// Driver names a storage backend.
func Driver(driver string) slog.Attr { return slog.String(keyDriver, driver) }

// Check names a health check dependency.
func Check(name string) slog.Attr { return slog.String(keyCheck, name) }

func File(path string) slog.Attr { return slog.String(keyFile, path) }
