// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"strings"
	"time"
)

// MEDLINE is a line-tagged plain-text citation format. The grammar this
// parser implements:
//
//   - a field line is a tag padded to four characters, a hyphen, and a
//     space ("PMID- ", "TI  - ", "AB  - ") followed by the field value;
//   - a continuation line starts with six spaces and extends the value of
//     the most recent field;
//   - a "PMID- " line or a blank line between records starts a new record.
//
// Anything else ends the current field.

// medlineRecord is one parsed MEDLINE citation.
type medlineRecord struct {
	PMID     string
	Title    string
	Abstract string
	Authors  []string
	Date     time.Time
}

// valid reports whether the record carries enough content to be usable.
// Records failing this are individual parse failures and are skipped.
func (r medlineRecord) valid() bool {
	return r.Title != "" || r.Abstract != ""
}

const continuationIndent = "      "

// parseMEDLINE splits the response text into records and parses the fields
// the pipeline uses: PMID, TI (title), AB (abstract), AU (authors, repeating),
// and DP (publication date).
func parseMEDLINE(text string) []medlineRecord {
	var records []medlineRecord

	cur := medlineRecord{}
	started := false
	curTag := ""
	fields := map[string][]string{}

	flush := func() {
		if !started {
			return
		}
		cur.Title = strings.Join(fields["TI"], " ")
		cur.Abstract = strings.Join(fields["AB"], " ")
		cur.Authors = fields["AU"]
		if dp := fields["DP"]; len(dp) > 0 {
			cur.Date = parseMedlineDate(dp[0])
		}
		if pmid := fields["PMID"]; len(pmid) > 0 {
			cur.PMID = pmid[0]
		}
		if cur.valid() {
			records = append(records, cur)
		}
		cur = medlineRecord{}
		fields = map[string][]string{}
		curTag = ""
		started = false
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")

		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}

		if strings.HasPrefix(line, continuationIndent) && curTag != "" {
			vals := fields[curTag]
			vals[len(vals)-1] += " " + strings.TrimSpace(line)
			fields[curTag] = vals
			continue
		}

		tag, value, ok := splitFieldLine(line)
		if !ok {
			curTag = ""
			continue
		}

		if tag == "PMID" {
			flush()
		}
		started = true
		curTag = tag
		fields[tag] = append(fields[tag], value)
	}
	flush()

	return records
}

// splitFieldLine parses a "TAG - value" line. The tag occupies the first
// four columns (right-padded with spaces) followed by "- ".
func splitFieldLine(line string) (tag, value string, ok bool) {
	if len(line) < 6 || line[4] != '-' || line[5] != ' ' {
		return "", "", false
	}
	tag = strings.TrimRight(line[:4], " ")
	if tag == "" {
		return "", "", false
	}
	return tag, strings.TrimSpace(line[6:]), true
}

// medlineDateLayouts are tried in order against the DP field ("2023 Jun 15",
// "2023 Jun", "2023").
var medlineDateLayouts = []string{"2006 Jan 2", "2006 Jan", "2006"}

func parseMedlineDate(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range medlineDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
