package services

import (
	"sort"
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/BaronguyenVinasu/riftcounter/internal/models"
)

const (
	minPrefixLength    = 2
	maxTypoDistance    = 2
	DefaultSearchLimit = 10
	MaxSearchLimit     = 20
	DefaultPageSize    = 50
	MaxPageSize        = 200
)

var laneAliases = map[string]models.Lane{
	"top":      models.LaneBaron,
	"baron":    models.LaneBaron,
	"solo":     models.LaneBaron,
	"mid":      models.LaneMid,
	"middle":   models.LaneMid,
	"jungle":   models.LaneJungle,
	"jg":       models.LaneJungle,
	"adc":      models.LaneADC,
	"bot":      models.LaneADC,
	"carry":    models.LaneADC,
	"marksman": models.LaneADC,
	"support":  models.LaneSupport,
	"sup":      models.LaneSupport,
	"supp":     models.LaneSupport,
}

// NormalizeLane resolves a lane name or alias such as "top" or "jg".
func NormalizeLane(input string) (models.Lane, bool) {
	lane, ok := laneAliases[strings.ToLower(strings.TrimSpace(input))]
	return lane, ok
}

// foldKey lowercases, strips accents and drops everything that is not a
// letter or digit, so "Kai'Sa" and "kaisa" share a key.
func foldKey(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	var b strings.Builder
	for _, r := range strings.ToLower(folded) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ChampionService resolves free-text champion input and serves list views.
type ChampionService struct {
	store       ChampionSource
	logger      *logrus.Logger
	fuzzyEnable bool
}

func NewChampionService(store ChampionSource, logger *logrus.Logger, fuzzyEnable bool) *ChampionService {
	return &ChampionService{store: store, logger: logger, fuzzyEnable: fuzzyEnable}
}

// NormalizeChampionInput resolves input by id, name, alias, unique-ish
// prefix and finally fuzzy match.
func (s *ChampionService) NormalizeChampionInput(input string) (*models.Champion, bool) {
	key := foldKey(input)
	if key == "" {
		return nil, false
	}

	if c, ok := s.store.GetChampionByID(strings.ToLower(strings.TrimSpace(input))); ok {
		return c, true
	}

	all := s.store.ListChampions()
	for _, c := range all {
		for _, k := range championKeys(c) {
			if k == key {
				return c, true
			}
		}
	}

	if len(key) >= minPrefixLength {
		for _, c := range all {
			for _, k := range championKeys(c) {
				if strings.HasPrefix(k, key) {
					return c, true
				}
			}
		}
	}

	if !s.fuzzyEnable {
		return nil, false
	}
	if c := s.fuzzyMatch(key, all); c != nil {
		s.logger.WithFields(logrus.Fields{
			"input":    input,
			"champion": c.ID,
		}).Debug("Resolved champion by fuzzy match")
		return c, true
	}
	return nil, false
}

// NormalizeChampionInputs resolves each input, returning the matches in input
// order (deduplicated) and the inputs that could not be resolved.
func (s *ChampionService) NormalizeChampionInputs(inputs []string) ([]*models.Champion, []string) {
	resolved := make([]*models.Champion, 0, len(inputs))
	var unknown []string
	seen := make(map[string]bool)
	for _, in := range inputs {
		c, ok := s.NormalizeChampionInput(in)
		if !ok {
			unknown = append(unknown, in)
			continue
		}
		if seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		resolved = append(resolved, c)
	}
	return resolved, unknown
}

func (s *ChampionService) fuzzyMatch(key string, all []*models.Champion) *models.Champion {
	var best *models.Champion
	bestDistance := maxTypoDistance + 1
	for _, c := range all {
		for _, k := range championKeys(c) {
			if len(k) < 3 {
				continue
			}
			d := fuzzy.LevenshteinDistance(key, k)
			if d < bestDistance && d*2 <= len(k) {
				best, bestDistance = c, d
			}
		}
	}
	if best != nil {
		return best
	}

	// Subsequence match for squashed spellings such as "msfrtn".
	if len(key) < 3 {
		return nil
	}
	bestRank := -1
	for _, c := range all {
		for _, k := range championKeys(c) {
			if r := fuzzy.RankMatchNormalizedFold(key, k); r >= 0 && (bestRank < 0 || r < bestRank) {
				best, bestRank = c, r
			}
		}
	}
	if best != nil && bestRank <= len(key)*2 {
		return best
	}
	return nil
}

func championKeys(c *models.Champion) []string {
	keys := []string{foldKey(c.ID), foldKey(c.Name), foldKey(c.DisplayName)}
	for _, a := range c.Aliases {
		keys = append(keys, foldKey(a))
	}
	out := keys[:0]
	for _, k := range keys {
		if k != "" {
			out = append(out, k)
		}
	}
	return out
}

// SearchChampions ranks champions whose name or alias fuzzily contains query.
func (s *ChampionService) SearchChampions(query string, limit int) []models.ChampionSummary {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}
	key := foldKey(query)

	type hit struct {
		champion *models.Champion
		rank     int
	}
	var hits []hit
	for _, c := range s.store.ListChampions() {
		best := -1
		for _, k := range championKeys(c) {
			r := fuzzy.RankMatchNormalizedFold(key, k)
			if strings.HasPrefix(k, key) {
				r = 0
			}
			if r >= 0 && (best < 0 || r < best) {
				best = r
			}
		}
		if best >= 0 {
			hits = append(hits, hit{champion: c, rank: best})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].rank < hits[j].rank
	})

	out := make([]models.ChampionSummary, 0, limit)
	for _, h := range hits {
		if len(out) == limit {
			break
		}
		out = append(out, h.champion.Summary())
	}
	return out
}

// ChampionPage is one page of a filtered champion listing.
type ChampionPage struct {
	Data       []models.ChampionSummary `json:"data"`
	Page       int                      `json:"page"`
	Limit      int                      `json:"limit"`
	Total      int                      `json:"total"`
	TotalPages int                      `json:"totalPages"`
}

// ListChampions filters by lane and name substring, then paginates (1-based).
func (s *ChampionService) ListChampions(lane models.Lane, search string, page, limit int) ChampionPage {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	key := foldKey(search)

	filtered := make([]models.ChampionSummary, 0)
	for _, c := range s.store.ListChampions() {
		if lane != "" && !c.PlaysLane(lane) {
			continue
		}
		if key != "" && !strings.Contains(foldKey(c.Label()), key) && !strings.Contains(foldKey(c.ID), key) {
			continue
		}
		filtered = append(filtered, c.Summary())
	}

	total := len(filtered)
	start := (page - 1) * limit
	end := start + limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	return ChampionPage{
		Data:       filtered[start:end],
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: (total + limit - 1) / limit,
	}
}
