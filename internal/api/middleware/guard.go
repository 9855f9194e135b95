package middleware

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/avtomart/AVM-TestDriveService/internal/api/handlers"
)

const (
	msgTooManyRequests = "слишком много запросов, попробуйте позже"
	msgForbidden       = "доступ запрещён"
)

// Причины блокировки для метрик
const (
	blockReasonRateLimit = "rate_limit"
	blockReasonBanned    = "banned"
	blockReasonProbe     = "probe"
)

// suspiciousPaths пути, которые запрашивают только сканеры уязвимостей
var suspiciousPaths = []string{
	"/wp-admin",
	"/wp-login",
	"/.env",
	"/phpmyadmin",
	"/xmlrpc.php",
	"/.git",
}

// suspiciousAgents фрагменты User-Agent известных сканеров
var suspiciousAgents = []string{
	"sqlmap",
	"nikto",
	"masscan",
	"nmap",
	"zgrab",
}

// GuardConfig настройки RequestGuard
type GuardConfig struct {
	RequestsPerMinute int           // Лимит запросов с одного IP в минуту
	BanThreshold      int           // Число нарушений до бана
	BanDuration       time.Duration // Длительность бана
}

// Guard ограничивает частоту запросов и отсекает сканеры уязвимостей.
// Счётчики хранятся в CounterStore (Redis) и разделяются между репликами.
// При store == nil используется локальный token bucket на весь процесс:
// деградация грубая, но сервис остаётся защищённым
type Guard struct {
	store    CounterStore
	cfg      GuardConfig
	metrics  MetricsCollector
	logger   Logger
	fallback *rate.Limiter
}

// NewGuard создает новый экземпляр RequestGuard
func NewGuard(store CounterStore, cfg GuardConfig, metrics MetricsCollector, logger Logger) *Guard {
	var fallback *rate.Limiter
	if store == nil {
		fallback = rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60.0), cfg.RequestsPerMinute)
		logger.Warn("Guard: counter store is not configured, using in-process rate limiter")
	}

	return &Guard{
		store:    store,
		cfg:      cfg,
		metrics:  metrics,
		logger:   logger,
		fallback: fallback,
	}
}

// Middleware возвращает middleware-обёртку поверх маршрутизатора
func (g *Guard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		ctx := r.Context()

		// Сканеры получают отказ и страйк независимо от лимитов
		if isProbe(r) {
			g.logger.Warn("Guard: probe request from ip=%s: %s %s", ip, r.Method, r.URL.Path)
			g.incBlocked(blockReasonProbe)
			g.addStrike(r, ip)
			handlers.RespondError(w, http.StatusForbidden, msgForbidden)
			return
		}

		if g.store == nil {
			// Локальный fallback: один общий лимит на процесс
			if !g.fallback.Allow() {
				g.incBlocked(blockReasonRateLimit)
				handlers.RespondError(w, http.StatusTooManyRequests, msgTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
			return
		}

		// Проверяем бан
		banned, err := g.store.Get(ctx, banKey(ip))
		if err != nil {
			// Недоступный Redis не должен ронять трафик
			g.logger.Error("Guard: counter store error, passing request through: %v", err)
			next.ServeHTTP(w, r)
			return
		}
		if banned > 0 {
			g.incBlocked(blockReasonBanned)
			handlers.RespondError(w, http.StatusForbidden, msgForbidden)
			return
		}

		// Счётчик запросов в минутном окне
		count, err := g.store.Incr(ctx, rateKey(ip, time.Now()), time.Minute)
		if err != nil {
			g.logger.Error("Guard: counter store error, passing request through: %v", err)
			next.ServeHTTP(w, r)
			return
		}

		if count > int64(g.cfg.RequestsPerMinute) {
			g.logger.Warn("Guard: rate limit exceeded for ip=%s: %d requests", ip, count)
			g.incBlocked(blockReasonRateLimit)
			g.addStrike(r, ip)
			handlers.RespondError(w, http.StatusTooManyRequests, msgTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// incBlocked учитывает блокировку, метрики могут быть выключены
func (g *Guard) incBlocked(reason string) {
	if g.metrics == nil {
		return
	}
	g.metrics.IncGuardBlocked(reason)
}

// addStrike учитывает нарушение и при превышении порога банит IP
func (g *Guard) addStrike(r *http.Request, ip string) {
	if g.store == nil {
		return
	}

	strikes, err := g.store.Incr(r.Context(), strikeKey(ip), g.cfg.BanDuration)
	if err != nil {
		g.logger.Error("Guard: failed to record strike for ip=%s: %v", ip, err)
		return
	}

	if strikes >= int64(g.cfg.BanThreshold) {
		if _, err := g.store.Incr(r.Context(), banKey(ip), g.cfg.BanDuration); err != nil {
			g.logger.Error("Guard: failed to ban ip=%s: %v", ip, err)
			return
		}
		g.logger.Warn("Guard: banned ip=%s for %s after %d strikes", ip, g.cfg.BanDuration, strikes)
	}
}

// isProbe определяет запрос сканера по пути и User-Agent
func isProbe(r *http.Request) bool {
	path := strings.ToLower(r.URL.Path)
	for _, p := range suspiciousPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}

	agent := strings.ToLower(r.UserAgent())
	for _, a := range suspiciousAgents {
		if strings.Contains(agent, a) {
			return true
		}
	}

	return false
}

// clientIP извлекает IP клиента с учетом прокси
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		// Первый адрес в списке - исходный клиент
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func rateKey(ip string, now time.Time) string {
	return fmt.Sprintf("guard:rate:%s:%d", ip, now.Unix()/60)
}

func strikeKey(ip string) string {
	return fmt.Sprintf("guard:strikes:%s", ip)
}

func banKey(ip string) string {
	return fmt.Sprintf("guard:ban:%s", ip)
}
