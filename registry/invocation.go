// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: registry/invocation.go
// Summary: Parses JSON invocation lists such as [{"id":"triggerCelebration","duration_ms":5000}].

package registry

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Invocation names a command and carries its arguments.
type Invocation struct {
	Name string
	Args Args
}

// ParseInvocations accepts a JSON string (one object or an array), decoded
// JSON values, or maps. Entries without an "id" are skipped.
func ParseInvocations(raw interface{}) ([]Invocation, error) {
	var entries []map[string]interface{}
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return nil, nil
		}
		if strings.HasPrefix(trimmed, "{") {
			var entry map[string]interface{}
			if err := json.Unmarshal([]byte(trimmed), &entry); err != nil {
				return nil, fmt.Errorf("parse invocation: %w", err)
			}
			entries = []map[string]interface{}{entry}
		} else if err := json.Unmarshal([]byte(trimmed), &entries); err != nil {
			return nil, fmt.Errorf("parse invocations: %w", err)
		}
	case map[string]interface{}:
		entries = []map[string]interface{}{v}
	case []interface{}:
		bytes, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(bytes, &entries); err != nil {
			return nil, err
		}
	case []map[string]interface{}:
		entries = v
	default:
		return nil, fmt.Errorf("parse invocations: unsupported type %T", raw)
	}

	invocations := make([]Invocation, 0, len(entries))
	for _, entry := range entries {
		name, _ := entry["id"].(string)
		if name == "" {
			continue
		}
		args := make(Args)
		for k, v := range entry {
			if k == "id" {
				continue
			}
			args[k] = v
		}
		invocations = append(invocations, Invocation{Name: name, Args: args})
	}
	return invocations, nil
}
