package service

import (
	"log"
	"time"

	"stressdost/internal/model"
)

// popupCadence is the pause between replayed cards.
const popupCadence = 3 * time.Second

// replayPopups streams a completed session's popup batch over the
// broadcaster. Each card is emitted twice so a briefly disconnected client
// still catches it. Runs in its own goroutine; panics are contained.
func replayPopups(b Broadcaster, sessionID string, popups []model.Popup) {
	if b == nil || len(popups) == 0 {
		return
	}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("popup replay for %s panicked: %v", sessionID, r)
			}
		}()
		for _, popup := range popups {
			b.Emit(sessionID, "popup", popup)
			time.Sleep(popupCadence)
			b.Emit(sessionID, "popup", popup)
		}
	}()
}
