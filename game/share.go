package game

import "fmt"

// ShareText is the brag line offered after a game ends.
func ShareText(score int, won bool, url string) string {
	text := fmt.Sprintf("Scoundrel - The dungeon defeated me with a score of %d. Can you do better?", score)
	if won {
		text = fmt.Sprintf("Scoundrel - I scored %d and conquered the dungeon! Can you survive?", score)
	}
	if url == "" {
		return text
	}
	return text + "\n" + url
}
