package tool

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

func GenerateUUIDV7() string {
	return uuid.Must(uuid.NewV7()).String()
}

// GenerateTrackingCode derives an affiliate tracking code from the owning user
// id and the creation instant. The result is unique by construction (one
// affiliate row per creation call) and matches ^AFF\d+$ for easy validation.
func GenerateTrackingCode(userID uint, at time.Time) string {
	return fmt.Sprintf("AFF%d%d", userID, at.Unix())
}
