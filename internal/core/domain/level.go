package domain

// Tier is one row of the level table.
type Tier struct {
	Level     int    `json:"level"`
	Name      string `json:"name"`
	Badge     string `json:"badge"`
	Color     string `json:"color"`
	Threshold int    `json:"threshold"`
}

// Tiers is the level table, ascending by threshold. It is the only
// definition; everything that reports a level reads it.
var Tiers = []Tier{
	{Level: 1, Name: "Novice Citizen", Badge: "seedling", Color: "#a8e6cf", Threshold: 0},
	{Level: 2, Name: "Active Neighbor", Badge: "houses", Color: "#88d8b0", Threshold: 40},
	{Level: 3, Name: "Neighborhood Voice", Badge: "megaphone", Color: "#ffd93d", Threshold: 120},
	{Level: 4, Name: "Community Leader", Badge: "medal", Color: "#ffb347", Threshold: 240},
	{Level: 5, Name: "Civic Defender", Badge: "shield", Color: "#ff6b6b", Threshold: 400},
	{Level: 6, Name: "Citizen Hero", Badge: "star", Color: "#c9b1ff", Threshold: 600},
	{Level: 7, Name: "National Legend", Badge: "crown", Color: "#ffd700", Threshold: 1000},
}

// LevelInfo is a tier resolved against a concrete XP value.
type LevelInfo struct {
	Tier
	XP            int  `json:"xp"`
	NextThreshold int  `json:"next_threshold"`
	Progress      int  `json:"progress"`
	IsMax         bool `json:"is_max"`
}

// LevelOf returns the highest tier whose threshold is <= xp and the progress
// towards the next one. Negative xp is treated as zero.
func LevelOf(xp int) LevelInfo {
	if xp < 0 {
		xp = 0
	}

	idx := 0
	for i, t := range Tiers {
		if t.Threshold <= xp {
			idx = i
		}
	}
	cur := Tiers[idx]

	info := LevelInfo{Tier: cur, XP: xp, NextThreshold: cur.Threshold, Progress: 100}
	if idx == len(Tiers)-1 {
		info.IsMax = true
		return info
	}

	next := Tiers[idx+1]
	info.NextThreshold = next.Threshold
	info.Progress = min(100, 100*(xp-cur.Threshold)/(next.Threshold-cur.Threshold))
	return info
}
