package common

import "fmt"

// PlayerName is the display name of a seat.
func PlayerName(player int) string {
	return fmt.Sprintf("玩家%d", player+1)
}
