package entities

type GameStatus string

const (
	GameStatusPlaying GameStatus = "playing"
	GameStatusWon     GameStatus = "won"
	GameStatusLost    GameStatus = "lost"
)

// GameState is the authoritative snapshot of one run through the dungeon.
// It is replaced wholesale on every action.
type GameState struct {
	HP                 int        `json:"hp"`
	MaxHP              int        `json:"maxHp"`
	Weapon             *Card      `json:"weapon"`
	LastMonsterSlain   *int       `json:"lastMonsterSlain"`
	Deck               []Card     `json:"deck"`
	Room               []Card     `json:"room"`
	Discard            []Card     `json:"discard"`
	RoomCardsResolved  int        `json:"roomCardsResolved"`
	PotionUsedThisTurn bool       `json:"potionUsedThisTurn"`
	LastRoomAvoided    bool       `json:"lastRoomAvoided"`
	GameStatus         GameStatus `json:"gameStatus"`
	Score              int        `json:"score"`
	HighScore          int        `json:"highScore"`
	LastAction         *string    `json:"lastAction"`
	IsDailyChallenge   bool       `json:"isDailyChallenge"`
	DailySeed          *string    `json:"dailySeed"`

	// 胜利加分：最近一次结算的牌是否为生效的药水
	LastCardWasPotion bool `json:"lastCardWasPotion"`
	LastPotionValue   int  `json:"lastPotionValue"`
}

func (s GameState) IsOver() bool {
	return s.GameStatus == GameStatusWon || s.GameStatus == GameStatusLost
}

// CardCount counts every card the state owns, including the equipped weapon.
func (s GameState) CardCount() int {
	n := len(s.Deck) + len(s.Room) + len(s.Discard)
	if s.Weapon != nil {
		n++
	}
	return n
}

// RoomCard finds a card in the current room by id.
func (s GameState) RoomCard(id string) (Card, bool) {
	for _, c := range s.Room {
		if c.ID == id {
			return c, true
		}
	}
	return Card{}, false
}
