package component

// Kind is the archetype tag every simulation entity carries. Two entities
// of the same Kind never collide with each other, and detection rules are
// written in terms of Kinds.
type Kind uint8

const (
	KindNone Kind = iota
	KindPlayer
	KindTower
	KindTowerBanner
	KindFootman
	KindBubbleSpawner
	KindBubble
	KindHarvester
	KindPotionShelf
	KindPotion
)

var kindNames = [...]string{
	KindNone:          "none",
	KindPlayer:        "player",
	KindTower:         "tower",
	KindTowerBanner:   "tower_banner",
	KindFootman:       "footman",
	KindBubbleSpawner: "bubble_spawner",
	KindBubble:        "bubble",
	KindHarvester:     "harvester",
	KindPotionShelf:   "potion_shelf",
	KindPotion:        "potion",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// ParseKind is the inverse of String.
func ParseKind(s string) (Kind, bool) {
	for k, n := range kindNames {
		if n == s {
			return Kind(k), true
		}
	}
	return KindNone, false
}

// KindSet is a small bit set of Kinds.
type KindSet uint32

func KindsOf(kinds ...Kind) KindSet {
	var s KindSet
	for _, k := range kinds {
		s |= 1 << k
	}
	return s
}

func (s KindSet) Contains(k Kind) bool { return s&(1<<k) != 0 }
