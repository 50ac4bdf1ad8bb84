package game

import "go-scoundrel/entities"

// Action is one of the closed set of moves Reduce understands.
type Action interface {
	action()
}

// StartGame deals a fresh game. A nil Rand uses NewRandom.
type StartGame struct {
	Rand RandomSource
}

type StartDailyChallenge struct {
	Seed string
}

type DrawRoom struct{}

type FightMonster struct {
	Card      entities.Card
	UseWeapon bool
}

type DrinkPotion struct {
	Card entities.Card
}

type EquipWeapon struct {
	Card entities.Card
}

type AvoidRoom struct{}

// SetHighScore restores a persisted high score.
type SetHighScore struct {
	Score int
}

func (StartGame) action()           {}
func (StartDailyChallenge) action() {}
func (DrawRoom) action()            {}
func (FightMonster) action()        {}
func (DrinkPotion) action()         {}
func (EquipWeapon) action()         {}
func (AvoidRoom) action()           {}
func (SetHighScore) action()        {}
