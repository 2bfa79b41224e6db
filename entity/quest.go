package entity

import (
	"github.com/reoring/statecanon"
	js "github.com/reoring/statecanon/jsonschema"
)

// Quest is one entry of the quest log.
type Quest struct {
	Summary   string `json:"简介"`
	Objective string `json:"目标"`
	Reward    string `json:"奖励"`
}

func ReadQuest(s statecanon.Scope) Quest {
	return Quest{
		Summary:   s.String(KeySummary, ""),
		Objective: s.String(KeyObjective, ""),
		Reward:    s.String(KeyReward, ""),
	}
}

// QuestSchema parses a single quest.
func QuestSchema() statecanon.Schema[Quest] {
	return statecanon.ObjectFunc(ReadQuest, QuestJSONSchema)
}

func QuestJSONSchema() *js.Schema {
	return js.Object(
		js.Field{Name: KeySummary, Schema: js.String("")},
		js.Field{Name: KeyObjective, Schema: js.String("")},
		js.Field{Name: KeyReward, Schema: js.String("")},
	)
}
