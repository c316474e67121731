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
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shrinklab/shrink"
	"github.com/shrinklab/shrink/artifact"
	"github.com/shrinklab/shrink/batch"
	"github.com/shrinklab/shrink/quantize"
)

const ARTIFACT_SUFFIX = ".shrink.json"

func compress(args *appArgs) int {
	if len(args.inputs) == 0 {
		fmt.Println("Missing input file: try --help or -h")
		return shrink.ERR_MISSING_PARAM
	}

	if args.output != "" && len(args.inputs) > 1 {
		fmt.Println("An explicit output name is only valid for a single input file")
		return shrink.ERR_INVALID_PARAM
	}

	payloads := make([][]byte, len(args.inputs))

	for i, name := range args.inputs {
		data, err := os.ReadFile(name)

		if err != nil {
			fmt.Printf("Cannot read input file '%s': %v\n", name, err)
			return shrink.ERR_READ_FILE
		}

		payloads[i] = data
	}

	var opts []artifact.Option

	if args.golombM > 0 {
		opts = append(opts, artifact.WithGolombParameter(args.golombM))
	}

	before := time.Now()
	artifacts, err := batch.Compress(context.Background(), payloads, args.technique, args.jobs, opts...)

	if err != nil {
		fmt.Printf("An error occurred during compression: %v\n", err)
		return shrink.ERR_ENCODE
	}

	elapsed := time.Since(before)

	for i, a := range artifacts {
		output := args.output

		if output == "" {
			output = args.inputs[i] + ARTIFACT_SUFFIX
		}

		f, err := os.Create(output)

		if err != nil {
			fmt.Printf("Cannot create output file '%s': %v\n", output, err)
			return shrink.ERR_WRITE_FILE
		}

		err = a.Save(f)
		_ = f.Close()

		if err != nil {
			fmt.Printf("Cannot write output file '%s': %v\n", output, err)
			return shrink.ERR_WRITE_FILE
		}

		log.Printf(1, "%s: %d bytes -> %d bits (%s), ratio %.2f\n",
			args.inputs[i], len(payloads[i]), a.CompressedBits(), a.Technique, a.Ratio())
		log.Printf(2, "Artifact written to %s\n", output)
	}

	log.Printf(1, "Compression of %d file(s) took %d ms\n", len(artifacts), elapsed.Milliseconds())
	return 0
}

func decompress(args *appArgs) int {
	if len(args.inputs) != 1 {
		fmt.Println("Decompression expects exactly one input file: try --help or -h")
		return shrink.ERR_MISSING_PARAM
	}

	input := args.inputs[0]
	f, err := os.Open(input)

	if err != nil {
		fmt.Printf("Cannot read input file '%s': %v\n", input, err)
		return shrink.ERR_OPEN_FILE
	}

	a, err := artifact.Load(f)
	_ = f.Close()

	if err != nil {
		fmt.Printf("'%s' is not a valid artifact: %v\n", input, err)
		return shrink.ERR_DECODE
	}

	before := time.Now()
	data, err := a.Decompress()

	if err != nil {
		fmt.Printf("An error occurred during decompression: %v\n", err)
		return shrink.ERR_DECODE
	}

	elapsed := time.Since(before)
	output := args.output

	if output == "" {
		output = strings.TrimSuffix(input, ARTIFACT_SUFFIX)

		if output == input {
			output = input + ".out"
		}
	}

	if err := os.WriteFile(output, data, 0644); err != nil {
		fmt.Printf("Cannot write output file '%s': %v\n", output, err)
		return shrink.ERR_WRITE_FILE
	}

	log.Printf(1, "%s: %d bits (%s) -> %d bytes\n", input, a.CompressedBits(), a.Technique, len(data))
	log.Printf(1, "Decompression took %d ms\n", elapsed.Milliseconds())
	return 0
}

func quantizeImage(args *appArgs) int {
	if len(args.inputs) != 1 {
		fmt.Println("Quantization expects exactly one input image: try --help or -h")
		return shrink.ERR_MISSING_PARAM
	}

	input := args.inputs[0]
	f, err := os.Open(input)

	if err != nil {
		fmt.Printf("Cannot read input file '%s': %v\n", input, err)
		return shrink.ERR_OPEN_FILE
	}

	img, err := quantize.Decode(f)
	_ = f.Close()

	if err != nil {
		fmt.Printf("Cannot decode image '%s': %v\n", input, err)
		return shrink.ERR_DECODE
	}

	reduced, err := quantize.Reduce(img, args.colors)

	if err != nil {
		fmt.Printf("An error occurred during quantization: %v\n", err)
		return shrink.ERR_INVALID_PARAM
	}

	output := args.output

	if output == "" {
		output = input + ".q.png"
	}

	out, err := os.Create(output)

	if err != nil {
		fmt.Printf("Cannot create output file '%s': %v\n", output, err)
		return shrink.ERR_WRITE_FILE
	}

	err = quantize.EncodePNG(out, reduced)
	_ = out.Close()

	if err != nil {
		fmt.Printf("Cannot write output file '%s': %v\n", output, err)
		return shrink.ERR_WRITE_FILE
	}

	log.Printf(1, "%s: quantized to %d colors, written to %s\n", input, len(reduced.Palette), output)
	return 0
}
