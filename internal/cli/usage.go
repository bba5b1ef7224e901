// internal/cli/usage.go
package cli

import (
	"flag"
	"fmt"

	"blastseed/internal/version"
)

// Usage installs the grouped help on fs.
func Usage(fs *flag.FlagSet, name string) {
	fs.Usage = func() {
		out := fs.Output()
		def := func(flagName string) string {
			if f := fs.Lookup(flagName); f != nil {
				return f.DefValue
			}
			return ""
		}

		fmt.Fprintf(out, "%s – BLAST-style seed and ungapped extension filter\n\n", name)
		fmt.Fprintf(out, "Version: %s\n\n", version.Version)
		fmt.Fprintln(out, "Usage:")
		fmt.Fprintf(out, "  %s --query q.fa [options] subjects.fa [more.fa.gz ...]\n", name)
		fmt.Fprintf(out, "  zcat nt.fa.gz | %s --query q.fa --output jsonl -\n", name)

		fmt.Fprintln(out, "\nInput:")
		fmt.Fprintln(out, "  -Q, --query file            Query FASTA [*]")
		fmt.Fprintf(out, "      --each-query            Search every query record, not just the first [%s]\n", def("each-query"))
		fmt.Fprintln(out, "  -s, --subjects file         Subject FASTA volume(s) (repeatable) or '-' for STDIN")

		fmt.Fprintln(out, "\nWord finding:")
		fmt.Fprintf(out, "  -w, --word-size int         Seed word size [%s]\n", def("word-size"))
		fmt.Fprintf(out, "      --finder string         Word finder: contiguous | ag | discontiguous [%s]\n", def("finder"))
		fmt.Fprintf(out, "      --window int            Two-hit window (0 with --single-hit) [%s]\n", def("window"))
		fmt.Fprintf(out, "  -x, --xdrop int             Ungapped X-drop [%s]\n", def("xdrop"))
		fmt.Fprintf(out, "      --cutoff int            Minimum ungapped score to report [%s]\n", def("cutoff"))
		fmt.Fprintf(out, "      --single-hit            Extend every seed [%s]\n", def("single-hit"))
		fmt.Fprintf(out, "      --drift int             AG diagonal tolerance when pairing [%s]\n", def("drift"))
		fmt.Fprintf(out, "      --template string       Discontiguous template: coding | optimal | mask [%s]\n", def("template"))
		fmt.Fprintf(out, "      --sparse                Bucketed stack history for every finder [%s]\n", def("sparse"))
		fmt.Fprintf(out, "      --buckets int           Stack history buckets [%s]\n", def("buckets"))
		fmt.Fprintf(out, "      --stack-depth int       Stack history entries per bucket [%s]\n", def("stack-depth"))
		fmt.Fprintf(out, "      --list-size int         Initial hit list capacity [%s]\n", def("list-size"))
		fmt.Fprintf(out, "      --fixed-list            Never grow the hit list [%s]\n", def("fixed-list"))
		fmt.Fprintf(out, "      --defer-extension       Save seeds unextended [%s]\n", def("defer-extension"))

		fmt.Fprintln(out, "\nScoring:")
		fmt.Fprintf(out, "      --reward int            Match reward [%s]\n", def("reward"))
		fmt.Fprintf(out, "      --penalty int           Mismatch penalty [%s]\n", def("penalty"))
		fmt.Fprintf(out, "      --strand string         Query strand(s): plus | minus | both [%s]\n", def("strand"))

		fmt.Fprintln(out, "\nPerformance:")
		fmt.Fprintf(out, "  -t, --threads int           Worker threads (0=all CPUs) [%s]\n", def("threads"))
		fmt.Fprintf(out, "      --partition string      Work split: subject | volume [%s]\n", def("partition"))
		fmt.Fprintf(out, "      --chunk-size int        Split subjects into N-bp windows (0=no chunking) [%s]\n", def("chunk-size"))

		fmt.Fprintln(out, "\nOutput:")
		fmt.Fprintf(out, "  -o, --output string         Output: text | json | jsonl [%s]\n", def("output"))
		fmt.Fprintf(out, "      --pretty                Pretty ASCII alignment block (text) [%s]\n", def("pretty"))
		fmt.Fprintf(out, "      --sort                  Sort outputs deterministically [%s]\n", def("sort"))
		fmt.Fprintf(out, "      --no-header             Suppress header line [%s]\n", def("no-header"))
		fmt.Fprintf(out, "      --summary               Print a run summary to stderr [%s]\n", def("summary"))
		fmt.Fprintf(out, "      --no-match-exit-code int  Exit code when no HSPs found [%s]\n", def("no-match-exit-code"))

		fmt.Fprintln(out, "\nMiscellaneous:")
		fmt.Fprintf(out, "  -q, --quiet                 Only log errors [%s]\n", def("quiet"))
		fmt.Fprintf(out, "      --log-level string      Log level: debug | info | warn | error [%s]\n", def("log-level"))
		fmt.Fprintf(out, "      --log-json              Log JSON lines instead of console text [%s]\n", def("log-json"))
		fmt.Fprintln(out, "      --config file           Config file; BLASTSEED_<FLAG> env vars also apply")
		fmt.Fprintln(out, "  -v, --version               Print version and exit")
		fmt.Fprintln(out, "  -h, --help                  Show this help and exit")
	}
}
