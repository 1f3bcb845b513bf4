package common

import (
	"errors"
	"os"
	"path"

	ini "github.com/lars-t-hansen/ini"
)

// Defaults for command line options can be stored in $HOME/.fluxjoblog.  A
// value from the file is applied only when the corresponding option was not
// set on the command line.

// MT: Constant after initialization
var (
	p     = ini.NewParser()
	store *ini.Store

	exporter             = p.AddSection("exporter")
	ExporterStateFile    = exporter.AddString("state-file")
	ExporterOutputFile   = exporter.AddString("output-file")
	ExporterEligibleTime = exporter.AddString("eligible-time")

	kafka       = p.AddSection("kafka")
	KafkaBroker = kafka.AddString("broker")
	KafkaTopic  = kafka.AddString("topic")

	database    = p.AddSection("database")
	DatabaseURI = database.AddString("uri")
)

func init() {
	home := os.Getenv("HOME")
	if home == "" {
		return
	}
	fn := path.Join(path.Clean(home), ".fluxjoblog")
	input, err := os.Open(fn)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			Log.Errorf("Error in trying to open %s: %s", fn, err.Error())
		}
		return
	}
	defer input.Close()
	store, err = p.Parse(input)
	if err != nil {
		Log.Errorf("Error in trying to parse %s: %s", fn, err.Error())
		return
	}
}

func ApplyDefault(sp *string, f *ini.Field) bool {
	if *sp != "" || store == nil || !f.Present(store) {
		return false
	}
	*sp = os.ExpandEnv(f.StringVal(store))
	return true
}
