package entities

import "fmt"

type Suit string

const (
	SuitHearts   Suit = "hearts"
	SuitDiamonds Suit = "diamonds"
	SuitClubs    Suit = "clubs"
	SuitSpades   Suit = "spades"
)

// Suits in deck construction order.
var Suits = []Suit{SuitHearts, SuitDiamonds, SuitClubs, SuitSpades}

type Rank string

const (
	Rank2     Rank = "2"
	Rank3     Rank = "3"
	Rank4     Rank = "4"
	Rank5     Rank = "5"
	Rank6     Rank = "6"
	Rank7     Rank = "7"
	Rank8     Rank = "8"
	Rank9     Rank = "9"
	Rank10    Rank = "10"
	RankJack  Rank = "J"
	RankQueen Rank = "Q"
	RankKing  Rank = "K"
	RankAce   Rank = "A"
)

// NumericRanks are the ranks every suit carries.
var NumericRanks = []Rank{Rank2, Rank3, Rank4, Rank5, Rank6, Rank7, Rank8, Rank9, Rank10}

// FaceRanks only exist for the black suits.
var FaceRanks = []Rank{RankJack, RankQueen, RankKing, RankAce}

var rankValues = map[Rank]int{
	Rank2: 2, Rank3: 3, Rank4: 4, Rank5: 5, Rank6: 6, Rank7: 7, Rank8: 8, Rank9: 9, Rank10: 10,
	RankJack: 11, RankQueen: 12, RankKing: 13, RankAce: 14,
}

// Value returns the numeric strength of the rank, 0 for an unknown rank.
func (r Rank) Value() int {
	return rankValues[r]
}

type CardType string

const (
	CardTypeMonster CardType = "monster"
	CardTypeWeapon  CardType = "weapon"
	CardTypePotion  CardType = "potion"
)

// TypeOf maps a suit to the role its cards play in the dungeon.
func TypeOf(s Suit) CardType {
	switch s {
	case SuitClubs, SuitSpades:
		return CardTypeMonster
	case SuitDiamonds:
		return CardTypeWeapon
	default:
		return CardTypePotion
	}
}

type Card struct {
	ID    string   `json:"id"`
	Suit  Suit     `json:"suit"`
	Rank  Rank     `json:"rank"`
	Value int      `json:"value"`
	Type  CardType `json:"type"`
}

func NewCard(s Suit, r Rank) Card {
	return Card{
		ID:    CardID(s, r),
		Suit:  s,
		Rank:  r,
		Value: r.Value(),
		Type:  TypeOf(s),
	}
}

func CardID(s Suit, r Rank) string {
	return fmt.Sprintf("%s-%s", s, r)
}

func (c Card) IsMonster() bool { return c.Type == CardTypeMonster }
func (c Card) IsWeapon() bool  { return c.Type == CardTypeWeapon }
func (c Card) IsPotion() bool  { return c.Type == CardTypePotion }

var rankNames = map[Rank]string{
	RankJack: "Jack", RankQueen: "Queen", RankKing: "King", RankAce: "Ace",
}

var suitNames = map[Suit]string{
	SuitHearts: "Hearts", SuitDiamonds: "Diamonds", SuitClubs: "Clubs", SuitSpades: "Spades",
}

// String renders the card the way a player reads it, e.g. "Ace of Spades".
func (c Card) String() string {
	rank, ok := rankNames[c.Rank]
	if !ok {
		rank = string(c.Rank)
	}
	return fmt.Sprintf("%s of %s", rank, suitNames[c.Suit])
}
