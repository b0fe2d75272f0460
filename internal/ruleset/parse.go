package ruleset

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/box1bs/lemmagen/internal/model"
)

const (
	fieldSep 	= '\t'
	commentMark = '#'
	fieldCount 	= 4
)

var bom = []byte{0xef, 0xbb, 0xbf}

// parse reads suffix<TAB>strip<TAB>append<TAB>weight records.
// Every string is copied out of data, so data may be unmapped afterwards.
func parse(data []byte) ([]*model.Rule, error) {
	data = bytes.TrimPrefix(data, bom)
	rules := make([]*model.Rule, 0, bytes.Count(data, []byte{'\n'})+1)

	lineNo := 0
	for len(data) > 0 {
		lineNo++
		var line []byte
		if i := bytes.IndexByte(data, '\n'); i >= 0 {
			line, data = data[:i], data[i+1:]
		} else {
			line, data = data, nil
		}
		line = bytes.TrimSuffix(line, []byte{'\r'})
		// a line holding any tab is a record, even when its fields are empty
		if isBlank(line) || line[0] == commentMark {
			continue
		}

		rule, err := parseRecord(string(line), lineNo)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func parseRecord(line string, lineNo int) (*model.Rule, error) {
	fields := strings.Split(line, string(fieldSep))
	if len(fields) != fieldCount {
		return nil, malformed(lineNo, "expected %d fields, got %d", fieldCount, len(fields))
	}

	strip, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, malformed(lineNo, "strip count %q is not a number", fields[1])
	}
	if strip < 0 {
		return nil, malformed(lineNo, "negative strip count %d", strip)
	}

	weight, err := strconv.ParseInt(fields[3], 10, 64)
	if err != nil {
		return nil, malformed(lineNo, "weight %q is not a number", fields[3])
	}

	rule := &model.Rule{
		Suffix: fields[0],
		Strip: 	strip,
		Append: fields[2],
		Weight: weight,
		Line: 	lineNo,
	}
	if strip > rule.SuffixLen() {
		return nil, malformed(lineNo, "strip count %d exceeds suffix %q", strip, rule.Suffix)
	}
	return rule, nil
}

func isBlank(line []byte) bool {
	return bytes.IndexByte(line, fieldSep) < 0 && len(bytes.TrimSpace(line)) == 0
}
