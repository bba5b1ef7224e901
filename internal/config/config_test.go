package config

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type list []string

func (l *list) String() string     { return strings.Join(*l, ",") }
func (l *list) Set(v string) error { *l = append(*l, v); return nil }
func (l *list) Repeatable() bool   { return true }

type opts struct {
	wordSize int
	threads  int
	finder   string
	single   bool
	subjects list
}

var aliases = map[string]string{"t": "threads"}

func newFlags(o *opts) *flag.FlagSet {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.IntVar(&o.wordSize, "word-size", 11, "")
	fs.IntVar(&o.threads, "threads", 0, "")
	fs.IntVar(&o.threads, "t", 0, "")
	fs.StringVar(&o.finder, "finder", "contiguous", "")
	fs.BoolVar(&o.single, "single-hit", false, "")
	fs.Var(&o.subjects, "subjects", "")
	fs.String("config", "", "")
	return fs
}

type ConfigTestSuite struct {
	suite.Suite
	dir string
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (s *ConfigTestSuite) SetupTest() {
	s.dir = s.T().TempDir()
	wd, err := os.Getwd()
	require.NoError(s.T(), err)
	require.NoError(s.T(), os.Chdir(s.dir))
	s.T().Cleanup(func() { _ = os.Chdir(wd) })
}

func (s *ConfigTestSuite) writeConfig(name, body string) string {
	p := filepath.Join(s.dir, name)
	require.NoError(s.T(), os.WriteFile(p, []byte(body), 0o644))
	return p
}

func (s *ConfigTestSuite) TestFileFillsUnsetFlags() {
	path := s.writeConfig("run.yaml", "word-size: 16\nfinder: ag\nsingle-hit: true\nthreads: 8\nsubjects:\n  - a.fa\n  - b.fa\n")
	var o opts
	fs := newFlags(&o)
	require.NoError(s.T(), fs.Parse([]string{"--word-size", "12"}))
	require.NoError(s.T(), ApplyFile(fs, path, aliases))

	s.Equal(12, o.wordSize, "command line wins")
	s.Equal("ag", o.finder)
	s.True(o.single)
	s.Equal(8, o.threads)
	s.Equal(list{"a.fa", "b.fa"}, o.subjects)
}

func (s *ConfigTestSuite) TestEnvOverridesFile() {
	path := s.writeConfig("run.toml", "finder = \"ag\"\nthreads = 2\n")
	s.T().Setenv("BLASTSEED_FINDER", "discontiguous")
	s.T().Setenv("BLASTSEED_SUBJECTS", "x.fa,y.fa")
	var o opts
	fs := newFlags(&o)
	require.NoError(s.T(), fs.Parse(nil))
	require.NoError(s.T(), ApplyFile(fs, path, aliases))

	s.Equal("discontiguous", o.finder)
	s.Equal(2, o.threads)
	s.Equal(list{"x.fa", "y.fa"}, o.subjects)
}

func (s *ConfigTestSuite) TestAliasCountsAsGiven() {
	path := s.writeConfig("run.yaml", "threads: 8\n")
	var o opts
	fs := newFlags(&o)
	require.NoError(s.T(), fs.Parse([]string{"-t", "3"}))
	require.NoError(s.T(), ApplyFile(fs, path, aliases))
	s.Equal(3, o.threads)
}

func (s *ConfigTestSuite) TestDefaultSearchFindsWorkingDirFile() {
	s.writeConfig("blastseed.yaml", "word-size: 20\n")
	var o opts
	fs := newFlags(&o)
	require.NoError(s.T(), fs.Parse(nil))
	require.NoError(s.T(), ApplyFile(fs, "", aliases))
	s.Equal(20, o.wordSize)
}

func (s *ConfigTestSuite) TestDefaultSearchToleratesMissingFile() {
	var o opts
	fs := newFlags(&o)
	require.NoError(s.T(), fs.Parse(nil))
	require.NoError(s.T(), ApplyFile(fs, "", aliases))
	s.Equal(11, o.wordSize)
}

func (s *ConfigTestSuite) TestNamedFileMustExist() {
	var o opts
	fs := newFlags(&o)
	s.Error(ApplyFile(fs, filepath.Join(s.dir, "missing.yaml"), aliases))
}

func (s *ConfigTestSuite) TestBadValueReported() {
	path := s.writeConfig("bad.yaml", "word-size: eleven\n")
	var o opts
	fs := newFlags(&o)
	require.NoError(s.T(), fs.Parse(nil))
	err := ApplyFile(fs, path, aliases)
	s.Require().Error(err)
	s.Contains(err.Error(), "word-size")
}
