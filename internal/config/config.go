// Package config layers a config file and BLASTSEED_* environment variables
// under the command line. Keys are the long flag names:
//
//	word-size: 11
//	finder: ag
//	subjects: [nt.00.fa.zst, nt.01.fa.zst]
//
// BLASTSEED_WORD_SIZE=11 sets the same option from the environment. A flag
// given on the command line always wins, then the environment, then the file.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "BLASTSEED"

	// DefaultName is looked up (any supported extension) in the working
	// directory and the user config dir when no file is named.
	DefaultName = "blastseed"
)

// skipped flags are never taken from a file or the environment.
var skipped = map[string]bool{"config": true, "help": true, "version": true}

// repeatable is implemented by flag values that append on every Set.
type repeatable interface{ Repeatable() bool }

// Load reads the optional config file and enables BLASTSEED_* lookups.
// A named file must exist; the default search tolerates a missing file.
func Load(path string) (*viper.Viper, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(DefaultName)
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, DefaultName))
		}
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: %w", err)
		}
	}
	return v, nil
}

// Apply sets every long flag of fs that was not given on the command line
// and has a value in v. aliases maps short names to the long flag they
// share a target with; giving the alias counts as giving the long flag.
func Apply(fs *flag.FlagSet, v *viper.Viper, aliases map[string]string) error {
	given := map[string]bool{}
	fs.Visit(func(f *flag.Flag) {
		given[f.Name] = true
		if long, ok := aliases[f.Name]; ok {
			given[long] = true
		}
	})

	var errs []error
	fs.VisitAll(func(f *flag.Flag) {
		if _, alias := aliases[f.Name]; alias || skipped[f.Name] || given[f.Name] || !v.IsSet(f.Name) {
			return
		}
		for _, val := range values(f, v.Get(f.Name)) {
			if err := fs.Set(f.Name, val); err != nil {
				errs = append(errs, fmt.Errorf("config: %s=%q: %w", f.Name, val, err))
			}
		}
	})
	return errors.Join(errs...)
}

// values flattens a config value into the strings Set expects. Lists (or
// comma-separated strings) feed repeatable flags one element at a time.
func values(f *flag.Flag, raw any) []string {
	r, multi := f.Value.(repeatable)
	if !multi || !r.Repeatable() {
		return []string{cast.ToString(raw)}
	}
	if s, ok := raw.(string); ok {
		return strings.Split(s, ",")
	}
	return cast.ToStringSlice(raw)
}

// ApplyFile is Load followed by Apply.
func ApplyFile(fs *flag.FlagSet, path string, aliases map[string]string) error {
	v, err := Load(path)
	if err != nil {
		return err
	}
	return Apply(fs, v, aliases)
}
