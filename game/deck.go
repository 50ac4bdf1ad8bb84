// Package game implements the Scoundrel rules: deck construction,
// shuffling, the pure rules functions and the state reducer.
package game

import "go-scoundrel/entities"

const (
	MaxHP      = 20
	StartingHP = 20
	RoomSize   = 4
	DeckSize   = 44
)

// BuildDeck returns the 44 Scoundrel cards in a fixed order: every rank of
// the black suits, numeric ranks only for the red suits.
func BuildDeck() []entities.Card {
	deck := make([]entities.Card, 0, DeckSize)
	for _, suit := range entities.Suits {
		for _, rank := range entities.NumericRanks {
			deck = append(deck, entities.NewCard(suit, rank))
		}
		if entities.TypeOf(suit) != entities.CardTypeMonster {
			continue
		}
		for _, rank := range entities.FaceRanks {
			deck = append(deck, entities.NewCard(suit, rank))
		}
	}
	return deck
}
