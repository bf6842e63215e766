// Where: cli/internal/domain/inspect/inspect.go
// What: Human-readable literal rendering for invocation payloads.
// Why: Log payloads in the same shape serverless users already read in plugin output.
package inspect

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/iancoleman/orderedmap"
)

// Rendering limits. They mirror the defaults of Node's util.inspect.
const (
	maxDepth        = 2
	breakLength     = 128
	compact         = 3
	maxArrayLength  = 100
	maxStringLength = 10000
	minLineWidth    = 16
)

var identifierKey = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z_0-9]*$`)

type entry struct {
	key   string
	value any
}

type formatter struct {
	indentationLvl int
	currentDepth   int
}

// Format renders v as a source-like literal: strings quoted, objects as
// `{ key: value }`, arrays as `[ a, b ]`.
func Format(v any) string {
	f := &formatter{}
	return f.formatValue(v, 0)
}

func (f *formatter) formatValue(v any, recurseTimes int) string {
	switch typed := v.(type) {
	case nil:
		return "null"
	case string:
		return f.formatString(typed)
	case bool:
		return strconv.FormatBool(typed)
	case float64:
		return formatNumber(typed)
	case float32:
		return formatNumber(float64(typed))
	case int:
		return strconv.Itoa(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	case int32:
		return strconv.FormatInt(int64(typed), 10)
	case uint:
		return strconv.FormatUint(uint64(typed), 10)
	case uint64:
		return strconv.FormatUint(typed, 10)
	case json.Number:
		if n, err := typed.Float64(); err == nil {
			return formatNumber(n)
		}
		return typed.String()
	case *orderedmap.OrderedMap:
		if typed == nil {
			return "null"
		}
		return f.formatObject(orderedEntries(typed), recurseTimes)
	case orderedmap.OrderedMap:
		return f.formatObject(orderedEntries(&typed), recurseTimes)
	case map[string]any:
		return f.formatObject(sortedEntries(typed), recurseTimes)
	case []any:
		return f.formatArray(typed, recurseTimes)
	case error:
		return typed.Error()
	}
	return f.formatReflect(v, recurseTimes)
}

func (f *formatter) formatReflect(v any, recurseTimes int) string {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return "null"
		}
		return f.formatValue(rv.Elem().Interface(), recurseTimes)
	case reflect.Slice, reflect.Array:
		items := make([]any, rv.Len())
		for i := range items {
			items[i] = rv.Index(i).Interface()
		}
		return f.formatArray(items, recurseTimes)
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		values := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			values[iter.Key().String()] = iter.Value().Interface()
		}
		return f.formatObject(sortedEntries(values), recurseTimes)
	}
	return fmt.Sprint(v)
}

func orderedEntries(m *orderedmap.OrderedMap) []entry {
	keys := m.Keys()
	out := make([]entry, 0, len(keys))
	for _, key := range keys {
		value, _ := m.Get(key)
		out = append(out, entry{key: key, value: value})
	}
	return out
}

func sortedEntries(m map[string]any) []entry {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	out := make([]entry, 0, len(keys))
	for _, key := range keys {
		out = append(out, entry{key: key, value: m[key]})
	}
	return out
}

func (f *formatter) formatObject(entries []entry, recurseTimes int) string {
	if len(entries) == 0 {
		return "{}"
	}
	if recurseTimes > maxDepth {
		return "[Object]"
	}
	recurseTimes++
	f.currentDepth = recurseTimes

	output := make([]string, 0, len(entries))
	for _, e := range entries {
		f.indentationLvl += 2
		str := f.formatValue(e.value, recurseTimes)
		f.indentationLvl -= 2
		output = append(output, formatKey(e.key)+": "+str)
	}
	return f.reduceToSingleString(output, "{", "}", nil, recurseTimes)
}

func (f *formatter) formatArray(items []any, recurseTimes int) string {
	if len(items) == 0 {
		return "[]"
	}
	if recurseTimes > maxDepth {
		return "[Array]"
	}
	recurseTimes++
	f.currentDepth = recurseTimes

	n := min(len(items), maxArrayLength)
	output := make([]string, 0, n+1)
	for i := 0; i < n; i++ {
		f.indentationLvl += 2
		output = append(output, f.formatValue(items[i], recurseTimes))
		f.indentationLvl -= 2
	}
	if remaining := len(items) - n; remaining > 0 {
		output = append(output, fmt.Sprintf("... %d more item%s", remaining, plural(remaining)))
	}
	return f.reduceToSingleString(output, "[", "]", items, recurseTimes)
}

// reduceToSingleString joins entries on one line when the value nests fewer
// than compact levels and fits within breakLength; otherwise one entry per line.
func (f *formatter) reduceToSingleString(output []string, open, close string, items []any, recurseTimes int) string {
	entries := len(output)
	if items != nil && entries > 6 {
		output = f.groupArrayElements(output, items)
	}
	if f.currentDepth-recurseTimes < compact && entries == len(output) {
		start := len(output) + f.indentationLvl + len(open) + 10
		if isBelowBreakLength(output, start) {
			joined := strings.Join(output, ", ")
			if !strings.Contains(joined, "\n") {
				return open + " " + joined + " " + close
			}
		}
	}
	indentation := "\n" + strings.Repeat(" ", f.indentationLvl)
	return open + indentation + "  " + strings.Join(output, ","+indentation+"  ") + indentation + close
}

func isBelowBreakLength(output []string, start int) bool {
	total := len(output) + start
	if total+len(output) > breakLength {
		return false
	}
	for _, s := range output {
		total += jsLen(s)
		if total > breakLength {
			return false
		}
	}
	return true
}

// groupArrayElements lays long arrays of short entries out in aligned columns.
func (f *formatter) groupArrayElements(output []string, items []any) []string {
	const separatorSpace = 2
	totalLength := 0
	maxLength := 0
	outputLength := len(output)
	hasMore := len(items) > maxArrayLength
	if hasMore {
		outputLength--
	}

	dataLen := make([]int, outputLength)
	for i := 0; i < outputLength; i++ {
		l := jsLen(output[i])
		dataLen[i] = l
		totalLength += l + separatorSpace
		if maxLength < l {
			maxLength = l
		}
	}

	actualMax := maxLength + separatorSpace
	if actualMax*3+f.indentationLvl >= breakLength ||
		(float64(totalLength)/float64(actualMax) <= 5 && maxLength > 6) {
		return output
	}

	const approxCharHeights = 2.5
	averageBias := math.Sqrt(float64(actualMax) - float64(totalLength)/float64(len(output)))
	biasedMax := math.Max(float64(actualMax)-3-averageBias, 1)
	columns := min(
		int(math.Round(math.Sqrt(approxCharHeights*biasedMax*float64(outputLength))/biasedMax)),
		(breakLength-f.indentationLvl)/actualMax,
		compact*4,
		15,
	)
	if columns <= 1 {
		return output
	}

	maxLineLength := make([]int, 0, columns)
	for i := 0; i < columns; i++ {
		lineLength := 0
		for j := i; j < outputLength; j += columns {
			if dataLen[j] > lineLength {
				lineLength = dataLen[j]
			}
		}
		maxLineLength = append(maxLineLength, lineLength+separatorSpace)
	}

	alignRight := true
	for i := 0; i < len(output) && i < len(items); i++ {
		if !isNumber(items[i]) {
			alignRight = false
			break
		}
	}

	grouped := make([]string, 0, outputLength/columns+2)
	for i := 0; i < outputLength; i += columns {
		end := min(i+columns, outputLength)
		var line strings.Builder
		j := i
		for ; j < end-1; j++ {
			cell := output[j] + ", "
			if alignRight {
				line.WriteString(padStart(cell, maxLineLength[j-i]))
			} else {
				line.WriteString(padEnd(cell, maxLineLength[j-i]))
			}
		}
		if alignRight {
			line.WriteString(padStart(output[j], maxLineLength[j-i]-separatorSpace))
		} else {
			line.WriteString(output[j])
		}
		grouped = append(grouped, line.String())
	}
	if hasMore {
		grouped = append(grouped, output[outputLength])
	}
	return grouped
}

func (f *formatter) formatString(s string) string {
	trailer := ""
	if n := jsLen(s); n > maxStringLength {
		remaining := n - maxStringLength
		s = truncateUnits(s, maxStringLength)
		trailer = fmt.Sprintf("... %d more character%s", remaining, plural(remaining))
	}
	if n := jsLen(s); n > minLineWidth && n > breakLength-f.indentationLvl-4 {
		lines := strings.SplitAfter(s, "\n")
		parts := make([]string, 0, len(lines))
		for _, line := range lines {
			if line == "" {
				continue
			}
			parts = append(parts, quote(line))
		}
		return strings.Join(parts, " +\n"+strings.Repeat(" ", f.indentationLvl+2)) + trailer
	}
	return quote(s) + trailer
}

func formatKey(key string) string {
	if identifierKey.MatchString(key) {
		return key
	}
	return quote(key)
}

// quote picks single quotes, then double quotes, then backticks, whichever
// avoids escaping, and escapes control characters.
func quote(s string) string {
	open, close := "'", "'"
	escapeQuote := true
	if strings.Contains(s, "'") {
		switch {
		case !strings.Contains(s, `"`):
			open, close = `"`, `"`
			escapeQuote = false
		case !strings.Contains(s, "`") && !strings.Contains(s, "${"):
			open, close = "`", "`"
			escapeQuote = false
		}
	}

	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteString(open)
	for _, r := range s {
		switch {
		case r == '\'' && escapeQuote:
			b.WriteString(`\'`)
		case r == '\\':
			b.WriteString(`\\`)
		case r < 0x20 || (r > 0x7e && r < 0xa0):
			b.WriteString(escapeControl(r))
		default:
			b.WriteRune(r)
		}
	}
	b.WriteString(close)
	return b.String()
}

func escapeControl(r rune) string {
	switch r {
	case '\b':
		return `\b`
	case '\t':
		return `\t`
	case '\n':
		return `\n`
	case '\f':
		return `\f`
	case '\r':
		return `\r`
	}
	return fmt.Sprintf(`\x%02X`, r)
}

// formatNumber follows JavaScript Number#toString.
func formatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	case n == 0:
		if math.Signbit(n) {
			return "-0"
		}
		return "0"
	}
	abs := math.Abs(n)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(n, 'e', -1, 64)
		mantissa, exp, _ := strings.Cut(s, "e")
		digits := strings.TrimLeft(exp[1:], "0")
		return mantissa + "e" + exp[:1] + digits
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

func isNumber(v any) bool {
	switch v.(type) {
	case float64, float32, int, int64, int32, uint, uint64, json.Number:
		return true
	}
	return false
}

// jsLen counts UTF-16 code units, the unit JavaScript string lengths use.
func jsLen(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

func truncateUnits(s string, limit int) string {
	n := 0
	for i, r := range s {
		n += utf16.RuneLen(r)
		if n > limit {
			return s[:i]
		}
	}
	return s
}

func padStart(s string, width int) string {
	if pad := width - jsLen(s); pad > 0 {
		return strings.Repeat(" ", pad) + s
	}
	return s
}

func padEnd(s string, width int) string {
	if pad := width - jsLen(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

func plural(n int) string {
	if n > 1 {
		return "s"
	}
	return ""
}
