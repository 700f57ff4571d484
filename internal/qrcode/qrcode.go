// Package qrcode mints admission codes and parses the payloads that gate
// scanners send back.
package qrcode

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// BatchPrefix marks a scanner payload carrying several ticket IDs at once.
const BatchPrefix = "TICKETS:"

// Generator mints unguessable admission codes. The ticket ID is embedded so a
// scanned code can be traced back to its row without a lookup table.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) Code(ticketID int64) (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate admission code: %w", err)
	}

	return fmt.Sprintf("TICKET-%d-%s", ticketID, hex.EncodeToString(buf)), nil
}

// BatchCode renders a multi-ticket scanner payload ("TICKETS:1,2,3").
func (g *Generator) BatchCode(ticketIDs []int64) string {
	parts := make([]string, len(ticketIDs))
	for i, id := range ticketIDs {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return BatchPrefix + strings.Join(parts, ",")
}

// ParsePayload extracts ticket IDs from a scanner payload. Accepted forms are
// the batch format ("TICKETS:1,2,3") and a bare numeric ticket ID. Whitespace
// around IDs is tolerated; anything else is rejected.
func ParsePayload(payload string) ([]int64, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, fmt.Errorf("empty scan payload")
	}

	raw := payload
	if strings.HasPrefix(payload, BatchPrefix) {
		raw = strings.TrimPrefix(payload, BatchPrefix)
	}

	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad ticket id %q in scan payload", part)
		}

		ids = append(ids, id)
	}

	if len(ids) == 0 {
		return nil, fmt.Errorf("scan payload %q carries no ticket ids", payload)
	}

	return ids, nil
}
