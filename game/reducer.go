package game

import (
	"fmt"

	"go-scoundrel/entities"
)

// NewState is the idle state before the first deal.
func NewState(highScore int) entities.GameState {
	return entities.GameState{
		HP:         StartingHP,
		MaxHP:      MaxHP,
		Deck:       []entities.Card{},
		Room:       []entities.Card{},
		Discard:    []entities.Card{},
		GameStatus: entities.GameStatusPlaying,
		HighScore:  highScore,
	}
}

// Reduce applies a to s and returns the resulting state. Illegal actions
// return s unchanged; a finished game only accepts a new start or a
// high-score restore.
func Reduce(s entities.GameState, a Action) entities.GameState {
	switch a := a.(type) {
	case StartGame:
		src := a.Rand
		if src == nil {
			src = NewRandom()
		}
		return deal(s.HighScore, Shuffle(BuildDeck(), src), nil,
			"The dungeon opens. Face three of every four cards...")
	case StartDailyChallenge:
		seed := a.Seed
		return deal(s.HighScore, SeededShuffle(BuildDeck(), seed), &seed,
			fmt.Sprintf("Daily challenge %s begins.", seed))
	case SetHighScore:
		next := cloneState(s)
		next.HighScore = a.Score
		return next
	}

	if s.IsOver() {
		return s
	}

	switch a := a.(type) {
	case DrawRoom:
		return drawRoom(s)
	case FightMonster:
		return fightMonster(s, a)
	case DrinkPotion:
		return drinkPotion(s, a)
	case EquipWeapon:
		return equipWeapon(s, a)
	case AvoidRoom:
		return avoidRoom(s)
	}
	return s
}

func deal(highScore int, deck []entities.Card, dailySeed *string, msg string) entities.GameState {
	next := NewState(highScore)
	n := min(RoomSize, len(deck))
	next.Room = cards(deck[:n])
	next.Deck = cards(deck[n:])
	next.IsDailyChallenge = dailySeed != nil
	next.DailySeed = dailySeed
	next.LastAction = said(msg)
	return next
}

func drawRoom(s entities.GameState) entities.GameState {
	if !CanProceedToNextRoom(len(s.Room)) {
		return s
	}
	n := min(CardsToDraw(len(s.Room)), len(s.Deck))

	next := cloneState(s)
	next.Room = append(cards(s.Room), s.Deck[:n]...)
	next.Deck = cards(s.Deck[n:])
	next.RoomCardsResolved = 0
	next.PotionUsedThisTurn = false
	next.LastRoomAvoided = false
	switch n {
	case 0:
		next.LastAction = said("Only the carried-over card remains.")
	case 1:
		next.LastAction = said("Entered a new room with 1 new card.")
	default:
		next.LastAction = said(fmt.Sprintf("Entered a new room with %d new cards.", n))
	}
	// 胜利加分沿用上一回合记录的药水状态
	return settle(next, s.LastCardWasPotion, s.LastPotionValue)
}

func fightMonster(s entities.GameState, a FightMonster) entities.GameState {
	card, ok := s.RoomCard(a.Card.ID)
	if !ok || !card.IsMonster() {
		return s
	}
	armed := a.UseWeapon && s.Weapon != nil
	if armed && !CanUseWeapon(card.Value, s.LastMonsterSlain) {
		return s
	}

	next := cloneState(s)
	damage := card.Value
	if armed {
		damage = WeaponDamage(card.Value, s.Weapon.Value)
		slain := card.Value
		next.LastMonsterSlain = &slain
	}
	next.HP = max(0, s.HP-damage)
	next.Room = without(s.Room, card.ID)
	next.Discard = append(cards(s.Discard), card)
	next.RoomCardsResolved++
	next.LastCardWasPotion = false

	method := " barehanded"
	if armed {
		method = fmt.Sprintf(" with the %s", s.Weapon.ThemedName())
	}
	if damage > 0 {
		next.LastAction = said(fmt.Sprintf("Fought the %s%s. Took %d damage!", card.ThemedName(), method, damage))
	} else {
		next.LastAction = said(fmt.Sprintf("Fought the %s%s. No damage taken!", card.ThemedName(), method))
	}

	next = settle(next, false, 0)
	if next.GameStatus == entities.GameStatusLost {
		next.LastAction = said(fmt.Sprintf("Slain by the %s (%d).", card.ThemedName(), card.Value))
	}
	return next
}

func drinkPotion(s entities.GameState, a DrinkPotion) entities.GameState {
	card, ok := s.RoomCard(a.Card.ID)
	if !ok || !card.IsPotion() {
		return s
	}

	next := cloneState(s)
	next.Room = without(s.Room, card.ID)
	next.Discard = append(cards(s.Discard), card)
	next.RoomCardsResolved++

	if s.PotionUsedThisTurn {
		// 本回合已喝过药水：这瓶直接作废，不改变加分记录
		next.LastAction = said(fmt.Sprintf("%s wasted, a potion was already used this turn.", card.ThemedName()))
		return settle(next, false, 0)
	}

	next.HP = Heal(s.HP, card.Value)
	next.PotionUsedThisTurn = true
	next.LastCardWasPotion = true
	next.LastPotionValue = card.Value
	if healed := next.HP - s.HP; healed > 0 {
		next.LastAction = said(fmt.Sprintf("Drank %s. Healed %d HP!", card.ThemedName(), healed))
	} else {
		next.LastAction = said(fmt.Sprintf("Drank %s. Already at full health!", card.ThemedName()))
	}
	return settle(next, true, card.Value)
}

func equipWeapon(s entities.GameState, a EquipWeapon) entities.GameState {
	card, ok := s.RoomCard(a.Card.ID)
	if !ok || !card.IsWeapon() {
		return s
	}

	next := cloneState(s)
	next.Room = without(s.Room, card.ID)
	next.Discard = cards(s.Discard)
	msg := fmt.Sprintf("Equipped the %s (%d ATK)!", card.ThemedName(), card.Value)
	if s.Weapon != nil {
		next.Discard = append(next.Discard, *s.Weapon)
		msg += " Old weapon discarded."
	}
	next.Weapon = &card
	next.LastMonsterSlain = nil
	next.RoomCardsResolved++
	next.LastCardWasPotion = false
	next.LastAction = said(msg)
	return settle(next, false, 0)
}

// avoidRoom sends the whole room to the bottom of the deck and deals a new
// one. The avoided cards rejoin the pile first, so the new room is always
// full and no game-over check is needed.
func avoidRoom(s entities.GameState) entities.GameState {
	if !CanAvoidRoom(s.LastRoomAvoided, len(s.Room)) {
		return s
	}
	pile := append(cards(s.Deck), s.Room...)
	n := min(RoomSize, len(pile))

	next := cloneState(s)
	next.Room = cards(pile[:n])
	next.Deck = cards(pile[n:])
	next.RoomCardsResolved = 0
	next.PotionUsedThisTurn = false
	next.LastRoomAvoided = true
	next.LastCardWasPotion = false
	next.LastAction = said("Avoided the room. Its cards sink to the bottom of the dungeon.")
	return next
}

// settle runs the game-over check after hp, deck or room changed.
func settle(s entities.GameState, lastCardWasPotion bool, lastPotionValue int) entities.GameState {
	switch CheckGameOver(s.HP, len(s.Deck), len(s.Room)) {
	case OutcomeLost:
		remaining := append(cards(s.Deck), s.Room...)
		s.HP = 0
		s.GameStatus = entities.GameStatusLost
		s.Score = Score(0, false, remaining, false, 0)
		s.LastAction = said("The dungeon claims another scoundrel.")
	case OutcomeWon:
		s.GameStatus = entities.GameStatusWon
		s.Score = Score(s.HP, true, nil, lastCardWasPotion, lastPotionValue)
		s.HighScore = max(s.HighScore, s.Score)
		s.LastAction = said("Victory! You conquered the dungeon!")
	}
	return s
}

func cloneState(s entities.GameState) entities.GameState {
	s.Deck = cards(s.Deck)
	s.Room = cards(s.Room)
	s.Discard = cards(s.Discard)
	if s.Weapon != nil {
		w := *s.Weapon
		s.Weapon = &w
	}
	if s.LastMonsterSlain != nil {
		v := *s.LastMonsterSlain
		s.LastMonsterSlain = &v
	}
	if s.LastAction != nil {
		s.LastAction = said(*s.LastAction)
	}
	if s.DailySeed != nil {
		seed := *s.DailySeed
		s.DailySeed = &seed
	}
	return s
}

// cards copies src into a new, never-nil slice.
func cards(src []entities.Card) []entities.Card {
	out := make([]entities.Card, len(src), len(src)+RoomSize)
	copy(out, src)
	return out
}

func without(src []entities.Card, id string) []entities.Card {
	out := make([]entities.Card, 0, len(src))
	for _, c := range src {
		if c.ID != id {
			out = append(out, c)
		}
	}
	return out
}

func said(msg string) *string {
	return &msg
}
