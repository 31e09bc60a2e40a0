package rice

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Field keys with special rendering.
const (
	FieldUserHost = "userhost"
	FieldColors   = "colors"
	FieldMemory   = "memory"
	FieldDisk     = "disk"
)

// InfoField is one entry of the info block.
type InfoField struct {
	Key   string
	Label string
	Value string
	// Color is a color name such as "green" or "bright_blue"; empty is white.
	Color string
}

// FieldSource resolves display values by field key. Unresolvable fields
// report ok=false and are left out of the info block.
type FieldSource interface {
	Field(key string) (value string, ok bool)
}

// UsageSource is implemented by sources that also expose numeric usage for
// the memory and disk fields.
type UsageSource interface {
	Usage(key string) (used, total uint64, ok bool)
}

// FieldOptions controls how fields are built.
type FieldOptions struct {
	// Colors maps field keys to color names.
	Colors map[string]string
	// Bars appends a usage bar to the memory and disk values.
	Bars bool
}

// BarWidth is the number of cells inside a usage bar's brackets.
const BarWidth = 10

var labels = map[string]string{
	"os":         "OS",
	"hostname":   "Host",
	"kernel":     "Kernel",
	"uptime":     "Uptime",
	"packages":   "Packages",
	"shell":      "Shell",
	"resolution": "Resolution",
	"de":         "DE",
	"wm":         "WM",
	"terminal":   "Terminal",
	"cpu":        "CPU",
	"memory":     "Memory",
	"disk":       "Disk",
	"colors":     "Colors",
}

// Label returns the display label of a field key. Unknown keys get their
// first letter upper-cased and underscores replaced by spaces.
func Label(key string) string {
	if l, ok := labels[key]; ok {
		return l
	}
	s := strings.ReplaceAll(key, "_", " ")
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// BuildFields resolves keys in order. Duplicate keys are kept once.
func BuildFields(keys []string, src FieldSource, opts FieldOptions) []InfoField {
	usage, _ := src.(UsageSource)
	seen := make(map[string]bool, len(keys))
	fields := make([]InfoField, 0, len(keys))

	for _, key := range keys {
		if seen[key] {
			continue
		}
		seen[key] = true

		value, ok := src.Field(key)
		if !ok {
			continue
		}
		if opts.Bars && usage != nil && (key == FieldMemory || key == FieldDisk) {
			if used, total, ok := usage.Usage(key); ok {
				value += " " + UsageBar(used, total, BarWidth)
			}
		}
		fields = append(fields, InfoField{
			Key:   key,
			Label: Label(key),
			Value: value,
			Color: opts.Colors[key],
		})
	}
	return fields
}

// UsageBar renders used/total as "[####------]" with width cells inside.
func UsageBar(used, total uint64, width int) string {
	if width <= 0 {
		return "[]"
	}
	filled := 0
	if total > 0 {
		if used > total {
			used = total
		}
		filled = int((used*uint64(width) + total/2) / total)
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}
