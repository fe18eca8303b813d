package service

import (
	"encoding/json"
	"log"
	"time"
)

// logEvent writes one JSON line to stdout. Used for best-effort side effects
// (notifications, activity records) whose failures must never propagate into
// the primary operation.
func logEvent(fields map[string]any) {
	fields["ts"] = time.Now().UTC().Format(time.RFC3339Nano)
	if _, ok := fields["level"]; !ok {
		fields["level"] = "info"
	}
	b, err := json.Marshal(fields)
	if err != nil {
		log.Printf("failed to marshal log event: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
