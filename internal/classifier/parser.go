package classifier

import (
	"encoding/json"
	"regexp"
	"strings"

	internalErrors "github.com/conflictcheck/namecheck/internal/errors"
	"github.com/conflictcheck/namecheck/model"
)

// maxMatches bounds how many entries a classifier response may
// contribute, mirroring the prompt's own limit.
const maxMatches = 10

var codeFenceRegex = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")

// rawMatch mirrors one entry of the classifier's JSON array. Pointers
// distinguish a missing field from a zero value so partially filled
// entries can be dropped instead of failing the whole response.
type rawMatch struct {
	Name          *string  `json:"name"`
	Tier          *float64 `json:"tier"`
	Justification *string  `json:"justification"`
}

// ParseResponse turns raw classifier output into validated match
// results. Markdown code fences are tolerated. Entries that are not
// objects or have missing fields are dropped silently; names outside
// the candidate set are discarded; tiers are clamped to [1,4]; output
// is capped at 10. Content that is not a JSON array at all yields
// ErrMalformedResponse.
func ParseResponse(content string, candidates []string) ([]model.MatchResult, error) {
	jsonStr := strings.TrimSpace(content)
	if fenced := codeFenceRegex.FindStringSubmatch(jsonStr); fenced != nil {
		jsonStr = strings.TrimSpace(fenced[1])
	}

	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(jsonStr), &elements); err != nil {
		return nil, internalErrors.NewMalformedResponseError("not a JSON array", content)
	}

	allowed := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		allowed[c] = struct{}{}
	}

	matches := make([]model.MatchResult, 0, len(elements))
	for _, element := range elements {
		// A bad element loses only itself, not the whole response.
		var m rawMatch
		if err := json.Unmarshal(element, &m); err != nil {
			continue
		}
		if m.Name == nil || m.Tier == nil || m.Justification == nil {
			continue
		}
		if _, ok := allowed[*m.Name]; !ok {
			continue
		}
		matches = append(matches, model.MatchResult{
			Name:          *m.Name,
			Tier:          model.ClampTier(int(*m.Tier)),
			Justification: *m.Justification,
		})
		if len(matches) == maxMatches {
			break
		}
	}

	return matches, nil
}
