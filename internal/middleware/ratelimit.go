package middleware

import (
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// IPRateLimiter manages per-IP rate limiting
type IPRateLimiter struct {
	limiters sync.Map
	rate     rate.Limit
	burst    int
}

// NewIPRateLimiter creates a new IP-based rate limiter
func NewIPRateLimiter(r rate.Limit, burst int) *IPRateLimiter {
	return &IPRateLimiter{
		rate:  r,
		burst: burst,
	}
}

// GetLimiter returns the rate limiter for a given IP
func (l *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	limiter, exists := l.limiters.Load(ip)
	if !exists {
		newLimiter := rate.NewLimiter(l.rate, l.burst)
		l.limiters.Store(ip, newLimiter)
		return newLimiter
	}
	return limiter.(*rate.Limiter)
}

// DailyQuota manages the global daily request quota
type DailyQuota struct {
	count   int64
	limit   int64
	resetAt time.Time
	mu      sync.Mutex
}

// NewDailyQuota creates a new daily quota manager
func NewDailyQuota(limit int64) *DailyQuota {
	return &DailyQuota{
		limit:   limit,
		resetAt: nextMidnightPT(),
	}
}

// Allow checks if a request is allowed and increments the counter
func (q *DailyQuota) Allow() bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if time.Now().After(q.resetAt) {
		log.Printf("[QUOTA] Daily quota reset. Previous count: %d", q.count)
		q.count = 0
		q.resetAt = nextMidnightPT()
	}

	if q.count >= q.limit {
		return false
	}
	q.count++
	return true
}

// Remaining returns the remaining quota
func (q *DailyQuota) Remaining() int64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.limit - q.count
}

// SecondsUntilReset returns how long until the quota resets, for the
// Retry-After header.
func (q *DailyQuota) SecondsUntilReset() int64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	seconds := int64(time.Until(q.resetAt).Seconds())
	if seconds < 0 {
		return 0
	}
	return seconds
}

// nextMidnightPT returns the next midnight in Pacific Time (Gemini API reset
// time)
func nextMidnightPT() time.Time {
	loc, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		loc = time.UTC
	}
	now := time.Now().In(loc)
	return time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, loc)
}

// RateLimitMiddleware applies two-stage rate limiting to a route: the global
// daily quota first, then the per-IP limiter. Both rejections answer 429
// with a Retry-After header.
func RateLimitMiddleware(ipLimiter *IPRateLimiter, quota *DailyQuota) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !quota.Allow() {
			log.Printf("[QUOTA] Daily quota exhausted, rejecting request from %s", c.ClientIP())
			c.Header("Retry-After", strconv.FormatInt(quota.SecondsUntilReset(), 10))
			c.AbortWithStatusJSON(429, gin.H{
				"error": "The daily request limit has been reached. Please come back tomorrow.",
				"code":  "DAILY_QUOTA_EXCEEDED",
			})
			return
		}

		if !ipLimiter.GetLimiter(c.ClientIP()).Allow() {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(429, gin.H{
				"error": "Too many requests. Please slow down.",
				"code":  "RATE_LIMITED",
			})
			return
		}

		c.Next()
	}
}
