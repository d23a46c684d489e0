package ingest

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	"golang.org/x/text/unicode/norm"
)

// DefaultNameFixes repairs names mangled by a DOS code page being read as
// Latin-1 in the program's spreadsheets.
var DefaultNameFixes = map[string]string{
	"L£cia":  "Lúcia",
	"J£lia":  "Júlia",
	"F tima": "Fátima",
}

var (
	yearFirst = regexp2.MustCompile(`^(?<year>\d{4})(?<sep>[-/.])(?<month>\d{1,2})\k<sep>(?<day>\d{1,2})(?:[ T].*)?$`, regexp2.None)
	dayFirst  = regexp2.MustCompile(`^(?<day>\d{1,2})(?<sep>[-/.])(?<month>\d{1,2})\k<sep>(?<year>\d{4})(?:[ T].*)?$`, regexp2.None)
)

var presenceValues = map[string]bool{
	"1": true, "1.0": true, "true": true, "t": true, "sim": true, "s": true, "yes": true, "y": true, "presente": true,
	"0": false, "0.0": false, "false": false, "não": false, "nao": false, "n": false, "no": false, "ausente": false,
}

// parseDate accepts YYYY-MM-DD and DD/MM/YYYY style dates with a consistent
// separator (-, / or .). A trailing time of day is ignored. The result is
// midnight UTC.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, re := range []*regexp2.Regexp{yearFirst, dayFirst} {
		m, err := re.FindStringMatch(s)
		if err != nil {
			return time.Time{}, err
		}
		if m == nil {
			continue
		}

		year, _ := strconv.Atoi(m.GroupByName("year").String())
		month, _ := strconv.Atoi(m.GroupByName("month").String())
		day, _ := strconv.Atoi(m.GroupByName("day").String())

		d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		if d.Year() != year || int(d.Month()) != month || d.Day() != day {
			return time.Time{}, fmt.Errorf("%w: no such day", ErrInvalidDate)
		}
		return d, nil
	}

	return time.Time{}, ErrInvalidDate
}

func parsePresent(s string) (bool, error) {
	v, ok := presenceValues[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return false, ErrInvalidPresence
	}
	return v, nil
}

func parseAge(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	age, err := strconv.Atoi(s)
	if err != nil {
		// Spreadsheet exports sometimes write integers as floats.
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil || f != float64(int(f)) {
			return 0, ErrInvalidAge
		}
		age = int(f)
	}
	if age < 0 || age > 130 {
		return 0, ErrInvalidAge
	}
	return age, nil
}

type nameFixer struct {
	replacer *strings.Replacer
}

func newNameFixer(fixes map[string]string) nameFixer {
	if fixes == nil {
		fixes = DefaultNameFixes
	}

	// Longest first, so a fix is never shadowed by one of its prefixes.
	keys := make([]string, 0, len(fixes))
	for k := range fixes {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, norm.NFC.String(k), fixes[k])
	}

	return nameFixer{replacer: strings.NewReplacer(pairs...)}
}

func (f nameFixer) fix(name string) string {
	name = norm.NFC.String(strings.TrimSpace(name))
	return f.replacer.Replace(name)
}
