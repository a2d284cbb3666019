package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics — счётчики ядра идентификации и доступа.
// Регистратор передаётся снаружи: прод использует общий, тесты — свой.
type Metrics struct {
	MemorialsCreated prometheus.Counter
	SlugRetries      prometheus.Counter
	ResolveHits      prometheus.Counter
	ResolveMisses    prometheus.Counter
	AccessDenied     *prometheus.CounterVec
	ViewsRecorded    prometheus.Counter
}

// New регистрирует метрики в переданном регистраторе.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		MemorialsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "pomnim_memorials_created_total",
			Help: "Total number of memorial pages created",
		}),
		SlugRetries: f.NewCounter(prometheus.CounterOpts{
			Name: "pomnim_slug_allocation_retries_total",
			Help: "Re-allocations caused by unique index conflicts on insert",
		}),
		ResolveHits: f.NewCounter(prometheus.CounterOpts{
			Name: "pomnim_resolve_hits_total",
			Help: "Successful public identifier resolutions",
		}),
		ResolveMisses: f.NewCounter(prometheus.CounterOpts{
			Name: "pomnim_resolve_misses_total",
			Help: "Identifier resolutions that matched nothing",
		}),
		AccessDenied: f.NewCounterVec(prometheus.CounterOpts{
			Name: "pomnim_access_denied_total",
			Help: "Access decisions that ended in a denial, by reason",
		}, []string{"reason"}),
		ViewsRecorded: f.NewCounter(prometheus.CounterOpts{
			Name: "pomnim_views_recorded_total",
			Help: "View counter increments after allowed non-owner reads",
		}),
	}
}
