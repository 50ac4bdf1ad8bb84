package entities

// 地牢主题名称，仅用于叙述文本
var monsterNames = map[Suit]map[Rank]string{
	SuitSpades: {
		RankAce: "Death Knight", RankKing: "Lich King", RankQueen: "Banshee Queen", RankJack: "Vampire Lord",
		Rank10: "Wraith", Rank9: "Skeleton Champion", Rank8: "Ghoul", Rank7: "Shadow Demon",
		Rank6: "Zombie Knight", Rank5: "Imp", Rank4: "Skeleton Archer", Rank3: "Ghost", Rank2: "Rat Swarm",
	},
	SuitClubs: {
		RankAce: "Dragon", RankKing: "Demon Lord", RankQueen: "Medusa", RankJack: "Minotaur",
		Rank10: "Troll", Rank9: "Ogre", Rank8: "Werewolf", Rank7: "Basilisk",
		Rank6: "Harpy", Rank5: "Goblin Chief", Rank4: "Giant Spider", Rank3: "Kobold", Rank2: "Giant Bat",
	},
}

var weaponNames = map[Rank]string{
	Rank10: "Legendary Blade", Rank9: "Battle Axe", Rank8: "Warhammer", Rank7: "Longsword",
	Rank6: "Mace", Rank5: "Short Sword", Rank4: "Dagger", Rank3: "Rusty Sword", Rank2: "Broken Blade",
}

var potionNames = map[Rank]string{
	Rank10: "Grand Elixir", Rank9: "Greater Healing", Rank8: "Healing Draught", Rank7: "Vitality Potion",
	Rank6: "Health Tonic", Rank5: "Minor Healing", Rank4: "Healing Salve", Rank3: "Weak Potion", Rank2: "Bandages",
}

// ThemedName returns the dungeon name of the card, falling back to String.
func (c Card) ThemedName() string {
	var name string
	switch c.Type {
	case CardTypeMonster:
		name = monsterNames[c.Suit][c.Rank]
	case CardTypeWeapon:
		name = weaponNames[c.Rank]
	case CardTypePotion:
		name = potionNames[c.Rank]
	}
	if name == "" {
		return c.String()
	}
	return name
}
