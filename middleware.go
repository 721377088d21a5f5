package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	cookiePrefix    = "jaan_"
	cookieSessionID = cookiePrefix + "session"
	cookieToken     = cookiePrefix + "token"
	cookieMaxAge    = 60 * 60 * 48
)

type ctxKeyLog struct{}
type ctxKeyRequestID struct{}
type ctxKeySessionID struct{}
type ctxKeyUserID struct{}

type logHandler struct {
	log  *logrus.Logger
	next http.Handler
}

type responseRecorder struct {
	b      int
	status int
	w      http.ResponseWriter
}

func (r *responseRecorder) Header() http.Header { return r.w.Header() }

func (r *responseRecorder) Write(p []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.w.Write(p)
	r.b += n
	return n, err
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	r.status = statusCode
	r.w.WriteHeader(statusCode)
}

func (lh *logHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID, _ := uuid.NewRandom()
	ctx = context.WithValue(ctx, ctxKeyRequestID{}, requestID.String())

	start := time.Now()
	rr := &responseRecorder{w: w}
	log := lh.log.WithFields(logrus.Fields{
		"http.req.path":   r.URL.Path,
		"http.req.method": r.Method,
		"http.req.id":     requestID.String(),
	})
	if v, ok := r.Context().Value(ctxKeySessionID{}).(string); ok {
		log = log.WithField("session", v)
	}
	log.Debug("request started")
	defer func() {
		log.WithFields(logrus.Fields{
			"http.resp.took_ms": int64(time.Since(start) / time.Millisecond),
			"http.resp.status":  rr.status,
			"http.resp.bytes":   rr.b}).Debugf("request complete")
	}()

	ctx = context.WithValue(ctx, ctxKeyLog{}, log)
	r = r.WithContext(ctx)
	lh.next.ServeHTTP(rr, r)
}

// ensureSessionID guarantees every request carries a storefront session
// cookie; the session id is the cart persistence slot key.
func ensureSessionID(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var sessionID string
		c, err := r.Cookie(cookieSessionID)
		if err == http.ErrNoCookie {
			u, _ := uuid.NewRandom()
			sessionID = u.String()
			http.SetCookie(w, &http.Cookie{
				Name:   cookieSessionID,
				Value:  sessionID,
				Path:   "/",
				MaxAge: cookieMaxAge,
			})
		} else if err != nil {
			return
		} else {
			sessionID = c.Value
		}
		ctx := context.WithValue(r.Context(), ctxKeySessionID{}, sessionID)
		r = r.WithContext(ctx)
		next.ServeHTTP(w, r)
	}
}

// requireAuth gates account, order and checkout routes on a valid token.
// Either the auth cookie or a bearer Authorization header is accepted.
func (fe *storefront) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := ""
		if c, err := r.Cookie(cookieToken); err == nil {
			token = c.Value
		}
		if token == "" {
			const bearer = "Bearer "
			if h := r.Header.Get("Authorization"); len(h) > len(bearer) && h[:len(bearer)] == bearer {
				token = h[len(bearer):]
			}
		}

		userID, ok := fe.auth.Verify(token)
		if token == "" || !ok {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyUserID{}, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

func getUserID(r *http.Request) string {
	if uid, ok := r.Context().Value(ctxKeyUserID{}).(string); ok {
		return uid
	}
	return ""
}

func sessionID(r *http.Request) string {
	if v, ok := r.Context().Value(ctxKeySessionID{}).(string); ok {
		return v
	}
	return ""
}

func requestLogger(r *http.Request, fallback *logrus.Logger) logrus.FieldLogger {
	if log, ok := r.Context().Value(ctxKeyLog{}).(logrus.FieldLogger); ok {
		return log
	}
	return fallback
}

var tokenBucketScript = redis.NewScript(`
	local key = KEYS[1]
	local capacity = tonumber(ARGV[1])
	local rate = tonumber(ARGV[2])
	local now = tonumber(ARGV[3])
	local requested = tonumber(ARGV[4])

	local info = redis.call("HMGET", key, "tokens", "last_refill")
	local tokens = tonumber(info[1])
	local last_refill = tonumber(info[2])

	if tokens == nil then
		tokens = capacity
		last_refill = now
	end

	local delta = math.max(0, now - last_refill)
	local filled_tokens = math.min(capacity, tokens + (delta / 1000 * rate))

	local allowed = 0
	if filled_tokens >= requested then
		filled_tokens = filled_tokens - requested
		allowed = 1
		redis.call("HMSET", key, "tokens", filled_tokens, "last_refill", now)
		redis.call("EXPIRE", key, math.ceil(capacity / rate) * 2)
	end

	return allowed
`)

// Limiter is a Redis token bucket shared across storefront replicas. A nil
// Limiter (no Redis) disables rate limiting.
type Limiter struct {
	client *redis.Client
	log    *logrus.Logger
}

func NewLimiter(client *redis.Client, log *logrus.Logger) *Limiter {
	if client == nil {
		return nil
	}
	return &Limiter{client: client, log: log}
}

func (l *Limiter) Allow(ctx context.Context, key string, capacity int, rate float64) (bool, error) {
	now := time.Now().UnixMilli()
	keys := []string{fmt.Sprintf("rate_limit:%s", key)}
	args := []interface{}{capacity, rate, now, 1}

	result, err := tokenBucketScript.Run(ctx, l.client, keys, args...).Result()
	if err != nil {
		return false, err
	}
	return result.(int64) == 1, nil
}

// GlobalAndIPLimiter applies a global bucket and a per-client-IP bucket. A
// limiter Redis error fails open: the request proceeds.
func (l *Limiter) GlobalAndIPLimiter(next http.Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if l == nil {
			next.ServeHTTP(w, r)
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), 200*time.Millisecond)
		defer cancel()

		ip := getRealIP(r)

		globalRate := getEnvFloat("RATELIMIT_GLOBAL_RPS", 1000.0)
		globalBurst := getEnvInt("RATELIMIT_GLOBAL_BURST", 1000)
		ipRate := getEnvFloat("RATELIMIT_IP_RPS", 5.0)
		ipBurst := getEnvInt("RATELIMIT_IP_BURST", 10)

		globalAllowed, err := l.Allow(ctx, "global_storefront", globalBurst, globalRate)
		if err != nil {
			l.log.Warnf("global limiter redis error: %v", err)
		} else if !globalAllowed {
			writeError(w, http.StatusServiceUnavailable, "system busy")
			return
		}

		ipAllowed, err := l.Allow(ctx, "ip:"+ip, ipBurst, ipRate)
		if err != nil {
			l.log.Warnf("ip limiter redis error: %v", err)
		} else if !ipAllowed {
			writeError(w, http.StatusTooManyRequests, "too many requests")
			return
		}

		next.ServeHTTP(w, r)
	}
}

func getRealIP(r *http.Request) string {
	ip := r.Header.Get("X-Forwarded-For")
	if ip == "" {
		ip = r.Header.Get("X-Real-IP")
	}
	if ip == "" {
		ip, _, _ = net.SplitHostPort(r.RemoteAddr)
	}
	return ip
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val, ok := os.LookupEnv(key); ok {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}
