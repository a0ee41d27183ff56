// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/confetti/jsonl.go
// Summary: Renderer that streams bursts as JSON lines for hosts without a terminal.

package confetti

import (
	"encoding/json"
	"io"
	"log"
	"sync"
	"time"

	"github.com/framegrace/celebrate/celebration"
)

// BurstEvent is one line written by JSONRenderer.
type BurstEvent struct {
	Type   string                      `json:"type"`
	Time   time.Time                   `json:"time"`
	Params celebration.BurstParameters `json:"params"`
}

// JSONRenderer writes each burst to w as one JSON object per line.
type JSONRenderer struct {
	mu  sync.Mutex
	enc *json.Encoder
	now func() time.Time
}

func NewJSONRenderer(w io.Writer) *JSONRenderer {
	return &JSONRenderer{enc: json.NewEncoder(w), now: time.Now}
}

func (r *JSONRenderer) RenderBurst(p celebration.BurstParameters) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.enc.Encode(BurstEvent{Type: "burst", Time: r.now(), Params: p}); err != nil {
		log.Printf("Confetti: Failed to write burst: %v", err)
	}
}
