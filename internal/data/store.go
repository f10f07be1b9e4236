// Package data holds the in-memory attribute store and source freshness tracking.
package data

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/BaronguyenVinasu/riftcounter/internal/models"
)

//go:embed seed/*.json
var seedFS embed.FS

const (
	championsFile = "seed/champions.json"
	itemsFile     = "seed/items.json"
	buildsFile    = "seed/builds.json"
	matchupsFile  = "seed/matchups.json"

	maxProfileScore = 10
)

type matchupKey struct {
	challenger string
	opponent   string
	lane       models.Lane
}

type tables struct {
	champions     []*models.Champion
	championIndex map[string]*models.Champion
	items         []*models.Item
	itemIndex     map[string]*models.Item
	builds        map[string][]models.Build
	matchups      map[matchupKey]*models.StoredMatchup
}

// Store serves champion, item, build and matchup records. Reload swaps every
// table at once, so readers always see one consistent dataset.
type Store struct {
	fsys   fs.FS
	logger *logrus.Logger

	mu      sync.RWMutex
	current *tables
	// overlay holds matchups merged from the database; it survives reloads.
	overlay map[matchupKey]*models.StoredMatchup
}

// NewStore loads the bundled dataset.
func NewStore(logger *logrus.Logger) (*Store, error) {
	return NewStoreFromFS(seedFS, logger)
}

// NewStoreFromFS loads a dataset laid out like the bundled seed directory.
func NewStoreFromFS(fsys fs.FS, logger *logrus.Logger) (*Store, error) {
	s := &Store{
		fsys:    fsys,
		logger:  logger,
		overlay: make(map[matchupKey]*models.StoredMatchup),
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads every seed table. On error the previous tables stay live.
func (s *Store) Reload() error {
	t, err := loadTables(s.fsys)
	if err != nil {
		return err
	}

	s.mu.Lock()
	for k, m := range s.overlay {
		t.matchups[k] = m
	}
	s.current = t
	s.mu.Unlock()

	s.logger.WithFields(logrus.Fields{
		"champions": len(t.champions),
		"items":     len(t.items),
		"matchups":  len(t.matchups),
	}).Info("Attribute store loaded")
	return nil
}

func loadTables(fsys fs.FS) (*tables, error) {
	var champions []*models.Champion
	if err := readJSON(fsys, championsFile, &champions); err != nil {
		return nil, err
	}
	var items []*models.Item
	if err := readJSON(fsys, itemsFile, &items); err != nil {
		return nil, err
	}
	var builds []models.Build
	if err := readJSON(fsys, buildsFile, &builds); err != nil {
		return nil, err
	}
	var matchups []*models.StoredMatchup
	if err := readJSON(fsys, matchupsFile, &matchups); err != nil {
		return nil, err
	}

	t := &tables{
		champions:     champions,
		championIndex: make(map[string]*models.Champion, len(champions)),
		items:         items,
		itemIndex:     make(map[string]*models.Item, len(items)),
		builds:        make(map[string][]models.Build),
		matchups:      make(map[matchupKey]*models.StoredMatchup, len(matchups)),
	}
	for _, c := range champions {
		if err := validateChampion(c); err != nil {
			return nil, err
		}
		if _, dup := t.championIndex[c.ID]; dup {
			return nil, fmt.Errorf("duplicate champion id %q", c.ID)
		}
		t.championIndex[c.ID] = c
	}
	for _, it := range items {
		if it.ID == "" {
			return nil, fmt.Errorf("item without id: %q", it.Name)
		}
		t.itemIndex[it.ID] = it
	}
	for _, b := range builds {
		if _, ok := t.championIndex[b.ChampionID]; !ok {
			return nil, fmt.Errorf("build %q references unknown champion %q", b.ID, b.ChampionID)
		}
		t.builds[b.ChampionID] = append(t.builds[b.ChampionID], b)
	}
	for _, m := range matchups {
		if !m.Lane.Valid() {
			return nil, fmt.Errorf("matchup %q has invalid lane %q", m.ID, m.Lane)
		}
		t.matchups[keyOf(m.ChallengerID, m.OpponentID, m.Lane)] = m
	}
	return t, nil
}

func readJSON(fsys fs.FS, name string, out interface{}) error {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

func validateChampion(c *models.Champion) error {
	if c.ID == "" || c.Name == "" {
		return fmt.Errorf("champion requires id and name: %+v", c.Summary())
	}
	if c.ID != strings.ToLower(c.ID) {
		return fmt.Errorf("champion id %q must be lowercase", c.ID)
	}
	scores := map[string]float64{
		"mobilityScore":  c.MobilityScore,
		"ccScore":        c.CCScore,
		"burstScore":     c.BurstScore,
		"sustainScore":   c.SustainScore,
		"waveclearScore": c.WaveclearScore,
		"roamScore":      c.RoamScore,
		"scaleScore":     c.ScaleScore,
	}
	for name, v := range scores {
		if v < 0 || v > maxProfileScore {
			return fmt.Errorf("champion %q: %s %.1f out of range", c.ID, name, v)
		}
	}
	return nil
}

func keyOf(challenger, opponent string, lane models.Lane) matchupKey {
	return matchupKey{challenger: challenger, opponent: opponent, lane: lane}
}

func (s *Store) snapshot() *tables {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *Store) GetChampionByID(id string) (*models.Champion, bool) {
	c, ok := s.snapshot().championIndex[strings.ToLower(strings.TrimSpace(id))]
	return c, ok
}

func (s *Store) GetChampionsByIDs(ids []string) []*models.Champion {
	t := s.snapshot()
	out := make([]*models.Champion, 0, len(ids))
	for _, id := range ids {
		if c, ok := t.championIndex[strings.ToLower(strings.TrimSpace(id))]; ok {
			out = append(out, c)
		}
	}
	return out
}

func (s *Store) GetChampionsByLane(lane models.Lane) []*models.Champion {
	out := make([]*models.Champion, 0)
	for _, c := range s.snapshot().champions {
		if c.PlaysLane(lane) {
			out = append(out, c)
		}
	}
	return out
}

func (s *Store) ListChampions() []*models.Champion {
	src := s.snapshot().champions
	out := make([]*models.Champion, len(src))
	copy(out, src)
	return out
}

// GetBuildsForChampion returns a copy of the champion's curated builds.
func (s *Store) GetBuildsForChampion(championID string) []models.Build {
	src := s.snapshot().builds[championID]
	out := make([]models.Build, len(src))
	copy(out, src)
	return out
}

func (s *Store) GetStoredMatchup(challengerID, opponentID string, lane models.Lane) (*models.StoredMatchup, bool) {
	m, ok := s.snapshot().matchups[keyOf(challengerID, opponentID, lane)]
	return m, ok
}

func (s *Store) GetItemByID(id string) (*models.Item, bool) {
	it, ok := s.snapshot().itemIndex[id]
	return it, ok
}

// ListItems returns items sorted by name.
func (s *Store) ListItems() []*models.Item {
	src := s.snapshot().items
	out := make([]*models.Item, len(src))
	copy(out, src)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// MergeMatchups overlays curated matchups on the bundled ones. Records with an
// invalid lane or unknown champions are skipped.
func (s *Store) MergeMatchups(matchups []models.StoredMatchup) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := *s.current
	next.matchups = make(map[matchupKey]*models.StoredMatchup, len(s.current.matchups)+len(matchups))
	for k, v := range s.current.matchups {
		next.matchups[k] = v
	}

	applied := 0
	for i := range matchups {
		m := matchups[i]
		_, okC := next.championIndex[m.ChallengerID]
		_, okO := next.championIndex[m.OpponentID]
		if !m.Lane.Valid() || !okC || !okO {
			s.logger.WithFields(logrus.Fields{
				"challenger": m.ChallengerID,
				"opponent":   m.OpponentID,
				"lane":       m.Lane,
			}).Warn("Skipping stored matchup with unknown champion or lane")
			continue
		}
		k := keyOf(m.ChallengerID, m.OpponentID, m.Lane)
		next.matchups[k] = &m
		s.overlay[k] = &m
		applied++
	}
	s.current = &next
	return applied
}

// SourceItemCount counts champions, builds and matchups citing source.
func (s *Store) SourceItemCount(source string) int {
	t := s.snapshot()
	count := 0
	for _, c := range t.champions {
		if cites(c.Sources, source) {
			count++
		}
	}
	for _, bs := range t.builds {
		for _, b := range bs {
			if cites(b.Sources, source) {
				count++
			}
		}
	}
	for _, m := range t.matchups {
		if cites(m.Sources, source) {
			count++
		}
	}
	return count
}

func cites(sources []models.DataSource, name string) bool {
	for _, src := range sources {
		if src.Name == name {
			return true
		}
	}
	return false
}

// Counts reports table sizes.
func (s *Store) Counts() map[string]int {
	t := s.snapshot()
	builds := 0
	for _, bs := range t.builds {
		builds += len(bs)
	}
	return map[string]int{
		"champions": len(t.champions),
		"items":     len(t.items),
		"builds":    builds,
		"matchups":  len(t.matchups),
	}
}
