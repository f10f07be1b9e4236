package models

// Item is a purchasable item. Tags are free-form (armor, magicResist, boots, ...).
type Item struct {
	ID                 string             `json:"id"`
	Name               string             `json:"name"`
	Description        string             `json:"description"`
	Cost               int                `json:"cost"`
	Stats              map[string]float64 `json:"stats"`
	Tags               []string           `json:"tags"`
	Passive            string             `json:"passive,omitempty"`
	Active             string             `json:"active,omitempty"`
	BuildPath          []string           `json:"buildPath,omitempty"`
	BuildsInto         []string           `json:"buildsInto,omitempty"`
	SituationalAgainst []ThreatTag        `json:"situationalAgainst,omitempty"`
	IconURL            string             `json:"iconUrl,omitempty"`
}

func (i *Item) HasTag(tag string) bool {
	for _, t := range i.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ItemRef is the display projection of an item inside a recommendation.
type ItemRef struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	IconURL string `json:"iconUrl,omitempty"`
}
