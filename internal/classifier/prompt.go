package classifier

import (
	"fmt"
	"strings"

	"github.com/conflictcheck/namecheck/services"
)

// BuildPrompt renders the instruction block for the tier classifier.
// The matching criteria, tiering rules and output format are the
// behavioral contract the backend must honor; changing the wording
// changes matching behavior, so edits here need the same care as
// changes to the pre-filter weights.
func BuildPrompt(req services.ClassifierRequest) string {
	var b strings.Builder

	b.WriteString("You are a name matching expert for a law firm's conflict checking system. ")
	b.WriteString("Your task is to identify potential matches between a search name and a list of existing names in the database.\n\n")

	fmt.Fprintf(&b, "SEARCH NAME: %q\n", req.SearchName)
	if req.SearchAcronym != "" {
		fmt.Fprintf(&b, "ACRONYM OF SEARCH NAME: %q (candidates equal to this acronym are likely the same entity in short form)\n", req.SearchAcronym)
	}
	b.WriteString("\nCANDIDATE NAMES TO CHECK:\n")
	for i, name := range req.Candidates {
		fmt.Fprintf(&b, "%d. %s\n", i+1, name)
	}

	if len(req.ContactMatches) > 0 {
		b.WriteString("\nALREADY CONFIRMED VIA CONTACT DETAILS (do not re-classify, context only):\n")
		for _, m := range req.ContactMatches {
			fmt.Fprintf(&b, "- %s (matched on %s)\n", m.Name, m.MatchedField)
		}
	}

	b.WriteString(`
MATCHING CRITERIA:
Analyze each candidate and determine if it could be a match for the search name. Consider:

1. **Exact matches** - Identical names (Tier 1)
2. **Very close matches** - Minor typos, missing/extra letters, abbreviations like "Ltd"/"Limited", "Co"/"Company", "Inc"/"Incorporated", "&"/"and" (Tier 2)
3. **Acronym pairs** - An acronym and its expansion (e.g. "DKNY" / "Donna Karan New York") are always Tier 2, never Tier 1: the names differ even when the entity is the same
4. **Possible matches** - Homophones, phonetic similarities, common nickname equivalents like "Bill"/"William", "Bob"/"Robert", a rare or unusual name component shared between the names, or a hyphenated surname sharing a component with an unhyphenated one in either direction (Tier 3)
5. **Distant similarities** - Partial name overlaps that might warrant investigation (Tier 4)

Reject coincidental overlap: a short fragment appearing inside an unrelated longer word, or a common surname shared between otherwise different names, is not a match. When in doubt about a Tier 3 or Tier 4 candidate, omit it.

TIERING RULES:
- Always show Tier 1 and Tier 2 matches
- Only show Tier 3 matches if there are fewer than 3 matches in Tiers 1 and 2
- Only show Tier 4 matches if there are no matches in any higher tier
- Maximum 10 matches total

OUTPUT FORMAT:
Respond with ONLY a JSON array (no markdown, no explanation). Each match should have:
- "name": the matching name from the candidate list
- "tier": number 1-4
- "justification": brief explanation of why this is a match (1-2 sentences)

If there are NO matches at all, return an empty array: []

Analyze the candidates now and return ONLY the JSON array:`)

	return b.String()
}
