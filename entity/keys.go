package entity

// Field names shared by the leaf records.
const (
	KeyQuality     = "品质"
	KeyKind        = "类型"
	KeyTags        = "标签"
	KeyEffect      = "效果"
	KeyDescription = "描述"
	KeySlot        = "位置"
	KeyCost        = "消耗"
	KeyQuantity    = "数量"

	KeyStacks    = "层数"
	KeyRemaining = "剩余时间"
	KeySource    = "来源"

	KeySummary   = "简介"
	KeyObjective = "目标"
	KeyReward    = "奖励"

	KeyStrength     = "力量"
	KeyAgility      = "敏捷"
	KeyConstitution = "体质"
	KeyIntellect    = "智力"
	KeySpirit       = "精神"

	KeyName = "名称"
)
