package state

// Root document fields.
const (
	KeyEvents = "事件"
	KeyWorld  = "世界"
	KeyQuests = "任务列表"
	KeyPlayer = "主角"
	KeyFate   = "命定系统"
	KeyNews   = "新闻"
)

// Character fields shared by the player and partners.
const (
	KeyRace       = "种族"
	KeyIdentity   = "身份"
	KeyProfession = "职业"
	KeyTier       = "生命层级"
	KeyLevel      = "等级"
	KeyAttributes = "属性"
	KeyEquipment  = "装备"
	KeySkills     = "技能"
	KeyLadder     = "登神长阶"
)

// Player fields.
const (
	KeyExperience      = "累计经验值"
	KeyNextLevel       = "升级所需经验"
	KeyRank            = "冒险者等级"
	KeyAttributePoints = "属性点"
	KeyMaxHP           = "生命值上限"
	KeyHP              = "生命值"
	KeyMaxMP           = "法力值上限"
	KeyMP              = "法力值"
	KeyMaxStamina      = "体力值上限"
	KeyStamina         = "体力值"
	KeyStatuses        = "状态效果"
	KeyMoney           = "金钱"
	KeyInventory       = "背包"

	KeyGold   = "金币"
	KeySilver = "银币"
	KeyCopper = "铜币"
)

// Partner and fate system fields.
const (
	KeyPresent     = "是否在场"
	KeyPersonality = "性格"
	KeyLikes       = "喜爱"
	KeyAppearance  = "外貌"
	KeyOutfit      = "着装"
	KeyBound       = "是否缔结契约"
	KeyAffection   = "好感度"
	KeyInnerVoice  = "心里话"
	KeyBackstory   = "背景故事"

	KeyFatePoints = "命运点数"
	KeyPartners   = "命定之人"
)

// World fields.
const (
	KeyTime  = "时间"
	KeyPlace = "地点"
)

// News sections and fields.
const (
	KeyBulletin = "阿斯塔利亚快讯"
	KeyTavern   = "酒馆留言板"
	KeyTeaParty = "午后茶会"

	KeyFactions   = "势力要闻"
	KeySovereigns = "尊位行迹"
	KeyMilitary   = "军事行动"
	KeyEconomy    = "经济动脉"
	KeyDisasters  = "灾害预警"

	KeyBounties    = "高额悬赏"
	KeyDiscoveries = "冒险发现"
	KeyMonsters    = "怪物异动"
	KeyWanted      = "通缉要犯"
	KeyTreasure    = "宝物传闻"

	KeyGossip      = "社交逸闻"
	KeyFarSight    = "千里远望"
	KeyFateRipples = "命运涟漪"
	KeyEncounters  = "邂逅预兆"
)

// Limits and defaults.
const (
	MinLevel         = 1
	MaxLevel         = 25
	DefaultNextLevel = 120
	MaxLevelMarker   = "MAX"
	DefaultRank      = "未评级"
	MinAffection     = -100
	MaxAffection     = 100
)
