package web

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// untrackedPrefixes are never access-logged.
var untrackedPrefixes = []string{"/static/", "/images/", "/favicon", "/profile.jpg", "/healthz"}

// ipHasher hashes client addresses with a salt that lives only as long as
// the process, so log lines for one visitor correlate without storing the IP.
type ipHasher struct {
	salt string
}

func newIPHasher() ipHasher {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic("web: cannot read random salt: " + err.Error())
	}
	return ipHasher{salt: hex.EncodeToString(b)}
}

func (h ipHasher) hash(ip string) string {
	sum := sha256.Sum256([]byte(ip + h.salt))
	return hex.EncodeToString(sum[:])[:16]
}

// requestID reuses an incoming X-Request-ID or generates one.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

// accessLog writes one line per request. Clients sending DNT: 1 are logged
// without an address.
func accessLog(log logrus.FieldLogger, hasher ipHasher) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, p := range untrackedPrefixes {
			if strings.HasPrefix(path, p) {
				c.Next()
				return
			}
		}

		start := time.Now()
		c.Next()

		fields := logrus.Fields{
			"method":     c.Request.Method,
			"path":       path,
			"status":     c.Writer.Status(),
			"latency":    time.Since(start).String(),
			"request_id": c.GetString(requestIDKey),
		}
		if c.GetHeader("DNT") != "1" {
			fields["client"] = hasher.hash(c.ClientIP())
		}

		entry := log.WithFields(fields)
		switch {
		case c.Writer.Status() >= 500:
			entry.Error("request")
		case c.Writer.Status() >= 400:
			entry.Warn("request")
		default:
			entry.Info("request")
		}
	}
}
