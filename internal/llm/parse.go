package llm

import (
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/idworks/idscan/internal/common"
)

// StripFence removes a single leading and trailing fenced-code-block marker
// when both are present, tolerating models that wrap JSON in a delimiter
// pair. An unbalanced fence leaves the text as-is (trimmed).
func StripFence(s string) string {
	t := strings.TrimSpace(s)
	if strings.HasPrefix(t, "```") && strings.HasSuffix(t, "```") {
		lines := strings.Split(t, "\n")
		if len(lines) <= 2 {
			return ""
		}
		return strings.TrimSpace(strings.Join(lines[1:len(lines)-1], "\n"))
	}
	return t
}

// ParseRecords turns the model's raw reply into normalized records. The
// reply must be a JSON array of objects after fence-stripping; anything
// else is a ParseError. Objects that fail the record schema are logged and
// kept — validation is advisory, the fixed field set still decodes.
func ParseRecords(content string, logger *slog.Logger) ([]Record, error) {
	if logger == nil {
		logger = slog.Default()
	}
	stripped := StripFence(content)

	var rawItems []json.RawMessage
	if err := json.Unmarshal([]byte(stripped), &rawItems); err != nil {
		return nil, common.NewParseError("reply is not a JSON array", err)
	}

	records := make([]Record, 0, len(rawItems))
	for i, raw := range rawItems {
		if err := ValidateRecord(raw); err != nil {
			logger.Warn("llm.parse.schema_mismatch", "index", i, "error", err)
		}
		var rec Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, common.NewParseError("array element is not an object", err)
		}
		records = append(records, NormalizeRecord(rec))
	}
	return records, nil
}
