package workers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/BaronguyenVinasu/riftcounter/internal/metrics"
	"github.com/BaronguyenVinasu/riftcounter/internal/models"
	"github.com/BaronguyenVinasu/riftcounter/internal/services"
	"github.com/BaronguyenVinasu/riftcounter/internal/telemetry"
)

var (
	// ErrNoPatchVersion means the feed parsed but carried no recognizable version.
	ErrNoPatchVersion = errors.New("no patch version found in feed")

	patchTitlePattern = regexp.MustCompile(`(?i)\bpatch\s+(\d+\.\d+[a-z]?)\b`)
)

// titleSelectors are checked in order for a "Patch X.Y" headline.
const titleSelectors = "article h1, article h2, article h3, h1, h2, h3, a, title"

// PatchTracker is the patch state the watcher reads and updates.
type PatchTracker interface {
	Patch() models.PatchInfo
	UpdatePatchInfo(version string, releasedAt, checkedAt time.Time)
	TouchPatchCheck(at time.Time)
	MarkAllStale()
}

// CacheInvalidator drops every cached analysis.
type CacheInvalidator interface {
	InvalidateAll(ctx context.Context) error
}

type PatchWatcherConfig struct {
	FeedURL        string
	PollInterval   time.Duration
	RequestTimeout time.Duration
}

// FeedPatch is one version read from the feed.
type FeedPatch struct {
	Version    string
	ReleasedAt time.Time
}

// PatchWatcher polls the patch-notes page and reacts to a new version.
type PatchWatcher struct {
	cfg       PatchWatcherConfig
	client    *http.Client
	tracker   PatchTracker
	cache     CacheInvalidator
	refresher Refresher
	logger    *logrus.Logger
	now       func() time.Time
	loop      periodic

	mu       sync.Mutex
	baseline string
}

// NewPatchWatcher builds a watcher. cache and refresher may be nil.
func NewPatchWatcher(cfg PatchWatcherConfig, tracker PatchTracker, cache CacheInvalidator,
	refresher Refresher, logger *logrus.Logger) *PatchWatcher {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 15 * time.Second
	}
	w := &PatchWatcher{
		cfg:       cfg,
		client:    &http.Client{Timeout: cfg.RequestTimeout},
		tracker:   tracker,
		cache:     cache,
		refresher: refresher,
		logger:    logger,
		now:       time.Now,
	}
	w.loop = periodic{interval: cfg.PollInterval, fn: func(ctx context.Context) { _, _ = w.Check(ctx) }}
	return w
}

func (w *PatchWatcher) Start(ctx context.Context) {
	if w.loop.start(ctx) {
		w.logger.WithFields(logrus.Fields{
			"feed":     w.cfg.FeedURL,
			"interval": w.cfg.PollInterval.String(),
		}).Info("Starting patch watcher")
	}
}

func (w *PatchWatcher) Stop() {
	if w.loop.stop() {
		w.logger.Info("Patch watcher stopped")
	}
}

// Running reports whether the poll loop is active.
func (w *PatchWatcher) Running() bool {
	return w.loop.running()
}

// Check polls the feed once and reports whether a new patch was detected.
// Fetch and parse failures are logged and leave the data untouched.
func (w *PatchWatcher) Check(ctx context.Context) (bool, error) {
	ctx, span := telemetry.StartSpan(ctx, telemetry.GetWorkerTracer(), "patch.check",
		attribute.String("feed", w.cfg.FeedURL))
	defer span.End()

	patch, err := w.fetch(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		w.logger.WithError(err).WithField("feed", w.cfg.FeedURL).Warn("Patch check failed")
		return false, err
	}
	checked := w.now()
	span.SetAttributes(attribute.String("patch.version", patch.Version))

	w.mu.Lock()
	previous := w.baseline
	w.baseline = patch.Version
	w.mu.Unlock()

	if previous == "" {
		w.recordBaseline(patch, checked)
		return false, nil
	}
	if previous == patch.Version {
		w.tracker.TouchPatchCheck(checked)
		return false, nil
	}

	w.logger.WithFields(logrus.Fields{
		"previous": previous,
		"version":  patch.Version,
	}).Info("New patch detected, marking data stale")

	w.tracker.UpdatePatchInfo(patch.Version, releaseOrNow(patch, checked), checked)
	w.tracker.MarkAllStale()
	metrics.RecordPatchDetected()

	if w.cache != nil {
		if err := w.cache.InvalidateAll(ctx); err != nil {
			w.logger.WithError(err).Warn("Failed to invalidate analysis cache after patch")
		}
	}
	if w.refresher != nil {
		if _, err := w.refresher.Refresh(ctx, "patch"); err != nil && !errors.Is(err, services.ErrRefreshInProgress) {
			w.logger.WithError(err).Error("Refresh after patch failed")
		}
	}
	return true, nil
}

// recordBaseline adopts the feed version on the first successful poll
// without marking anything stale.
func (w *PatchWatcher) recordBaseline(patch FeedPatch, checked time.Time) {
	current := w.tracker.Patch()
	if current.Version != patch.Version {
		w.tracker.UpdatePatchInfo(patch.Version, releaseOrNow(patch, checked), checked)
	} else {
		w.tracker.TouchPatchCheck(checked)
	}
	w.logger.WithField("version", patch.Version).Info("Initial patch recorded")
}

func releaseOrNow(p FeedPatch, now time.Time) time.Time {
	if p.ReleasedAt.IsZero() {
		return now
	}
	return p.ReleasedAt
}

func (w *PatchWatcher) fetch(ctx context.Context) (FeedPatch, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.cfg.FeedURL, nil)
	if err != nil {
		return FeedPatch{}, fmt.Errorf("failed to build feed request: %w", err)
	}
	req.Header.Set("Accept", "text/html")
	req.Header.Set("User-Agent", "riftcounter-patch-watcher/1.0")

	resp, err := w.client.Do(req)
	if err != nil {
		return FeedPatch{}, fmt.Errorf("failed to fetch patch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return FeedPatch{}, fmt.Errorf("patch feed returned HTTP %d", resp.StatusCode)
	}
	return ParsePatchFeed(resp.Body)
}

// ParsePatchFeed extracts the newest patch from a patch-notes page. An
// explicit data-patch-version attribute wins over headline text.
func ParsePatchFeed(r io.Reader) (FeedPatch, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return FeedPatch{}, fmt.Errorf("failed to parse patch feed: %w", err)
	}

	if sel := doc.Find("[data-patch-version]").First(); sel.Length() > 0 {
		version := strings.TrimSpace(sel.AttrOr("data-patch-version", ""))
		if version != "" {
			return FeedPatch{Version: strings.ToLower(version), ReleasedAt: releaseDate(sel)}, nil
		}
	}

	var found FeedPatch
	doc.Find(titleSelectors).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		m := patchTitlePattern.FindStringSubmatch(s.Text())
		if m == nil {
			return true
		}
		found = FeedPatch{Version: strings.ToLower(m[1]), ReleasedAt: releaseDate(s)}
		return false
	})
	if found.Version == "" {
		return FeedPatch{}, ErrNoPatchVersion
	}
	return found, nil
}

// releaseDate reads data-patch-date or the nearest <time datetime>.
func releaseDate(s *goquery.Selection) time.Time {
	raw := s.AttrOr("data-patch-date", "")
	if raw == "" {
		raw = s.Closest("article").Find("time[datetime]").First().AttrOr("datetime", "")
	}
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
