package config

import (
	"flag"
	"fmt"
	"io"
)

// Flags holds the raw command-line values plus which flags were explicitly
// set, so file-configured values only yield to flags the user passed.
type Flags struct {
	ConfigPath   string
	Input        string
	PresetID     string
	OutputDir    string
	EncoderPath  string
	HistoryPath  string
	ListPresets  bool
	Recursive    bool
	SkipExisting bool
	Format       string
	LogLevel     string
	LogFormat    string

	set map[string]bool
}

func (f *Flags) isSet(name string) bool {
	return f.set[name]
}

// shortAliases maps single-letter flags to their canonical names.
var shortAliases = map[string]string{
	"i": "input",
	"p": "preset",
	"l": "list-presets",
	"o": "output-dir",
	"c": "config",
	"f": "format",
}

// ParseFlags parses the command line. The returned error is flag.ErrHelp
// when -h/--help was requested.
func ParseFlags(args []string) (*Flags, error) {
	f := &Flags{set: make(map[string]bool)}

	fs := flag.NewFlagSet("video-compress", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs.Output()) }

	fs.StringVar(&f.Input, "input", "", "input file or directory")
	fs.StringVar(&f.Input, "i", "", "input file or directory")
	fs.StringVar(&f.PresetID, "preset", "", "conversion preset id")
	fs.StringVar(&f.PresetID, "p", "", "conversion preset id")
	fs.BoolVar(&f.ListPresets, "list-presets", false, "print the preset table and exit")
	fs.BoolVar(&f.ListPresets, "l", false, "print the preset table and exit")
	fs.StringVar(&f.OutputDir, "output-dir", "", "output directory")
	fs.StringVar(&f.OutputDir, "o", "", "output directory")
	fs.StringVar(&f.ConfigPath, "config", "", "YAML config file")
	fs.StringVar(&f.ConfigPath, "c", "", "YAML config file")
	fs.StringVar(&f.Format, "format", "table", "report format: table, json or csv")
	fs.StringVar(&f.Format, "f", "table", "report format: table, json or csv")
	fs.StringVar(&f.EncoderPath, "encoder", "", "encoder binary path")
	fs.BoolVar(&f.Recursive, "recursive", false, "recurse into subdirectories")
	fs.BoolVar(&f.SkipExisting, "skip-existing", false, "skip jobs whose output already exists")
	fs.StringVar(&f.HistoryPath, "history", "", "SQLite history database path")
	fs.StringVar(&f.LogLevel, "log-level", "", "log level: debug, info, warn or error")
	fs.StringVar(&f.LogFormat, "log-format", "", "log format: text or json")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(fs.Output(), "unexpected argument: %s\n", fs.Arg(0))
		fs.Usage()
		return nil, fmt.Errorf("unexpected argument: %s", fs.Arg(0))
	}

	fs.Visit(func(fl *flag.Flag) {
		name := fl.Name
		if canonical, ok := shortAliases[name]; ok {
			name = canonical
		}
		f.set[name] = true
	})

	return f, nil
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `video-compress - batch video conversion with fixed presets

Usage:
  video-compress -i <path> [options]
  video-compress --list-presets

Options:
  -i, --input <path>       input .mp4 file or directory of .mp4 files
  -p, --preset <id>        conversion preset (default h265_fhd_6)
  -l, --list-presets       print the preset table and exit
  -o, --output-dir <dir>   write outputs under this directory
  -c, --config <path>      YAML config file
  -f, --format <fmt>       report format: table, json or csv (default table)
      --encoder <path>     encoder binary (default: ffmpeg)
      --recursive          recurse into subdirectories of a directory input
      --skip-existing      skip jobs whose output file already exists
      --history <path>     record job results in this SQLite database
      --log-level <level>  debug, info, warn or error (default info)
      --log-format <fmt>   text or json (default text)
`)
}
