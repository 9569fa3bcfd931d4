// Package flagx helps several independent flag sets share os.Args.
//
// The config package parses the JSON file flag and its own overrides in
// separate passes; each pass keeps only the arguments it understands so that
// unknown flags from the other pass do not abort parsing.
package flagx

import (
	"flag"
	"io"
	"strings"
)

// ConfigFileFlags are the names accepted for the JSON config file path.
var ConfigFileFlags = []string{"-c", "-config"}

// FilterArgs returns the subset of args that belongs to allowedFlags.
//
// Both "-flag value" and "-flag=value" forms are recognised. A value is only
// consumed when the next argument does not itself start with '-'. Parsing
// stops at a literal "--". The result is never nil.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}
		if !strings.HasPrefix(arg, "-") {
			continue
		}

		name, _, hasValue := strings.Cut(arg, "=")
		if _, ok := allowed[name]; !ok {
			continue
		}
		filtered = append(filtered, arg)
		if hasValue {
			continue
		}
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}
	return filtered
}

// ConfigFile extracts the JSON config file path from args (-c or -config).
// The last occurrence wins; "" means no file was requested.
func ConfigFile(args []string) string {
	var path string

	fs := flag.NewFlagSet("config-file", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "path to JSON config file")
	fs.StringVar(&path, "c", "", "path to JSON config file (short)")
	_ = fs.Parse(FilterArgs(args, ConfigFileFlags))

	return path
}
