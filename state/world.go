package state

import "github.com/reoring/statecanon"

// World is the current time and place.
type World struct {
	Time  string `json:"时间"`
	Place string `json:"地点"`
}

func readWorld(s statecanon.Scope) World {
	return World{Time: s.String(KeyTime, ""), Place: s.String(KeyPlace, "")}
}

// Bulletin is the kingdom news wire.
type Bulletin struct {
	Factions   string `json:"势力要闻"`
	Sovereigns string `json:"尊位行迹"`
	Military   string `json:"军事行动"`
	Economy    string `json:"经济动脉"`
	Disasters  string `json:"灾害预警"`
}

// TavernBoard is the tavern notice board.
type TavernBoard struct {
	Bounties    string `json:"高额悬赏"`
	Discoveries string `json:"冒险发现"`
	Monsters    string `json:"怪物异动"`
	Wanted      string `json:"通缉要犯"`
	Treasure    string `json:"宝物传闻"`
}

// TeaParty is the society column.
type TeaParty struct {
	Gossip      string `json:"社交逸闻"`
	FarSight    string `json:"千里远望"`
	FateRipples string `json:"命运涟漪"`
	Encounters  string `json:"邂逅预兆"`
}

// News groups the three news sections.
type News struct {
	Bulletin Bulletin    `json:"阿斯塔利亚快讯"`
	Tavern   TavernBoard `json:"酒馆留言板"`
	TeaParty TeaParty    `json:"午后茶会"`
}

func readNews(s statecanon.Scope) News {
	b := s.Object(KeyBulletin)
	t := s.Object(KeyTavern)
	p := s.Object(KeyTeaParty)
	return News{
		Bulletin: Bulletin{
			Factions:   b.String(KeyFactions, ""),
			Sovereigns: b.String(KeySovereigns, ""),
			Military:   b.String(KeyMilitary, ""),
			Economy:    b.String(KeyEconomy, ""),
			Disasters:  b.String(KeyDisasters, ""),
		},
		Tavern: TavernBoard{
			Bounties:    t.String(KeyBounties, ""),
			Discoveries: t.String(KeyDiscoveries, ""),
			Monsters:    t.String(KeyMonsters, ""),
			Wanted:      t.String(KeyWanted, ""),
			Treasure:    t.String(KeyTreasure, ""),
		},
		TeaParty: TeaParty{
			Gossip:      p.String(KeyGossip, ""),
			FarSight:    p.String(KeyFarSight, ""),
			FateRipples: p.String(KeyFateRipples, ""),
			Encounters:  p.String(KeyEncounters, ""),
		},
	}
}
