/*
Copyright 2024-2026 the shrink authors
Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
you may obtain a copy of the License at

                http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/shrinklab/shrink"
)

const (
	APP_HEADER = "Shrink 1.0 - classical lossless codecs"

	APP_USAGE = `Usage: shrink [mode] [options]

Modes:
   -c, --compress        compress the input file(s) into artifact JSON
   -d, --decompress      restore the original bytes from artifact JSON
   -q, --quantize        reduce an image to a limited color palette (lossy)
   -h, --help            show this message

Options:
   -i, --input=FILE      input file; -c accepts a comma separated list
   -o, --output=FILE     output file (default: input + ".shrink.json" for -c,
                         input without that suffix for -d, input + ".q.png" for -q)
   -t, --technique=NAME  rle, huffman, golomb or lzw (default: huffman)
   -m, --divisor=N       Golomb divisor m >= 1 (default: 4)
   -j, --jobs=N          parallel workers for multi-file compression (default: NumCPU)
       --colors=N        palette size for -q, 2..256 (default: 256)
   -v, --verbose=N       0=quiet, 1=stats, 2=details (default: 1)`
)

// Printer writes buffered, verbosity-gated messages. The message
// printer gives thousands separators in the stats output.
type Printer struct {
	os      *bufio.Writer
	msg     *message.Printer
	verbose int
}

func (this *Printer) Println(level int, text string) {
	if this.verbose >= level {
		_, _ = this.os.WriteString(text + "\n")
		_ = this.os.Flush()
	}
}

func (this *Printer) Printf(level int, format string, args ...any) {
	if this.verbose >= level {
		_, _ = this.msg.Fprintf(this.os, format, args...)
		_ = this.os.Flush()
	}
}

var log = &Printer{os: bufio.NewWriter(os.Stdout), msg: message.NewPrinter(language.English), verbose: 1}

type appArgs struct {
	mode      string
	inputs    []string
	output    string
	technique shrink.Technique
	golombM   int
	jobs      int
	colors    int
	verbose   int
}

func main() {
	args, code := processCommandLine(os.Args)

	if code >= 0 {
		os.Exit(code)
	}

	log.verbose = args.verbose
	log.Println(2, APP_HEADER)
	status := shrink.ERR_UNKNOWN

	switch args.mode {
	case "c":
		status = compress(args)
	case "d":
		status = decompress(args)
	case "q":
		status = quantizeImage(args)
	default:
		fmt.Println("Missing mode: try --help or -h")
		status = shrink.ERR_MISSING_PARAM
	}

	os.Exit(status)
}

// processCommandLine fills appArgs from os.Args. The second return
// value is -1 to continue, or an exit code when parsing already settled
// the outcome (help, bad flag).
func processCommandLine(cmdArgs []string) (*appArgs, int) {
	args := &appArgs{
		technique: shrink.Huffman,
		golombM:   0, // 0 = default, resolved by the artifact layer
		colors:    256,
		verbose:   1,
	}

	ctx := ""

	fail := func(format string, a ...any) (*appArgs, int) {
		fmt.Printf(format+"\n", a...)
		return nil, shrink.ERR_INVALID_PARAM
	}

	for i := 1; i < len(cmdArgs); i++ {
		arg := strings.TrimSpace(cmdArgs[i])

		if ctx != "" {
			if code := applyOption(args, ctx, arg); code != "" {
				return fail(code)
			}

			ctx = ""
			continue
		}

		switch arg {
		case "-h", "--help":
			fmt.Println(APP_HEADER)
			fmt.Println(APP_USAGE)
			return nil, 0
		case "-c", "--compress":
			if args.mode == "d" || args.mode == "q" {
				return fail("Only one mode can be provided.")
			}

			args.mode = "c"
		case "-d", "--decompress":
			if args.mode == "c" || args.mode == "q" {
				return fail("Only one mode can be provided.")
			}

			args.mode = "d"
		case "-q", "--quantize":
			if args.mode == "c" || args.mode == "d" {
				return fail("Only one mode can be provided.")
			}

			args.mode = "q"
		case "-i", "-o", "-t", "-m", "-j", "-v":
			ctx = arg
		default:
			handled := false

			for flag, long := range map[string]string{
				"-i": "--input=", "-o": "--output=", "-t": "--technique=",
				"-m": "--divisor=", "-j": "--jobs=", "-v": "--verbose=",
				"--colors": "--colors=",
			} {
				if strings.HasPrefix(arg, long) {
					if code := applyOption(args, flag, strings.TrimPrefix(arg, long)); code != "" {
						return fail(code)
					}

					handled = true
					break
				}
			}

			if !handled {
				return fail("Ignoring invalid option [%s]; try --help", arg)
			}
		}
	}

	if ctx != "" {
		return fail("Option %s is missing its value", ctx)
	}

	return args, -1
}

// applyOption assigns one flag value; a non-empty return is the error
// text to print.
func applyOption(args *appArgs, flag, value string) string {
	value = strings.TrimSpace(value)

	switch flag {
	case "-i":
		for _, name := range strings.Split(value, ",") {
			if name = strings.TrimSpace(name); name != "" {
				args.inputs = append(args.inputs, name)
			}
		}

		if len(args.inputs) == 0 {
			return "Empty input file name"
		}

	case "-o":
		args.output = value

	case "-t":
		t, err := shrink.ParseTechnique(strings.ToLower(value))

		if err != nil {
			return err.Error()
		}

		args.technique = t

	case "-m":
		m, err := strconv.Atoi(value)

		if err != nil || m < 1 {
			return "Invalid Golomb divisor provided on command line: " + value
		}

		args.golombM = m

	case "-j":
		j, err := strconv.Atoi(value)

		if err != nil || j < 1 {
			return "Invalid number of jobs provided on command line: " + value
		}

		args.jobs = j

	case "--colors":
		c, err := strconv.Atoi(value)

		if err != nil {
			return "Invalid color count provided on command line: " + value
		}

		args.colors = c

	case "-v":
		v, err := strconv.Atoi(value)

		if err != nil || v < 0 || v > 2 {
			return "Invalid verbosity level provided on command line: " + value
		}

		args.verbose = v
	}

	return ""
}
