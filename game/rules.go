package game

import "go-scoundrel/entities"

// Outcome of a game-over check.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWon
	OutcomeLost
)

func WeaponDamage(monsterValue, weaponValue int) int {
	return max(0, monsterValue-weaponValue)
}

// CanUseWeapon reports whether a weapon that last slew lastSlain may engage
// a monster of monsterValue. A nil lastSlain is a fresh weapon.
func CanUseWeapon(monsterValue int, lastSlain *int) bool {
	if lastSlain == nil {
		return true
	}
	return monsterValue <= *lastSlain
}

func Heal(currentHP, potionValue int) int {
	return min(currentHP+potionValue, MaxHP)
}

// Score computes the final score. A loss subtracts every monster still in
// remaining; a win at full health right after a potion adds that potion.
func Score(hp int, won bool, remaining []entities.Card, lastCardWasPotion bool, lastPotionValue int) int {
	if !won {
		for _, c := range remaining {
			if c.IsMonster() {
				hp -= c.Value
			}
		}
		return hp
	}
	if hp == MaxHP && lastCardWasPotion {
		return hp + lastPotionValue
	}
	return hp
}

// CanProceedToNextRoom is true once at most the carried-over card remains.
func CanProceedToNextRoom(roomSize int) bool {
	return roomSize <= 1
}

func CanAvoidRoom(lastRoomAvoided bool, roomSize int) bool {
	return !lastRoomAvoided && roomSize == RoomSize
}

func CanDrinkPotion(hp int, potionUsedThisTurn bool) bool {
	return hp < MaxHP && !potionUsedThisTurn
}

// CheckGameOver gives loss priority over win.
func CheckGameOver(hp, deckSize, roomSize int) Outcome {
	if hp <= 0 {
		return OutcomeLost
	}
	if deckSize == 0 && roomSize == 0 {
		return OutcomeWon
	}
	return OutcomeNone
}

func CardsToDraw(currentRoomSize int) int {
	return max(0, RoomSize-currentRoomSize)
}
