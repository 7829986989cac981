// Command wgslc compiles a WGSL compute shader to SPIR-V.
//
// With no output flag it acts as a validator: the shader is compiled
// and the word count reported. With -o the SPIR-V binary is written
// little-endian, suitable for loading as a precompiled module.
package main

import (
	"encoding/binary"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/gogpu/compute/backend/native"
)

func main() {
	var (
		output = flag.String("o", "", "output SPIR-V file (default: validate only)")
		label  = flag.String("label", "", "shader label for diagnostics (default: input name)")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatalf("usage: wgslc [-o out.spv] [-label name] shader.wgsl")
	}
	input := flag.Arg(0)
	if *label == "" {
		*label = filepath.Base(input)
	}

	source, err := os.ReadFile(input)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", input, err)
	}

	words, err := native.Compiler(string(source), *label)
	if err != nil {
		log.Fatalf("Failed to compile: %v", err)
	}

	if *output == "" {
		log.Printf("OK: %s compiles to %d SPIR-V words\n", *label, len(words))
		return
	}

	// SPIR-V files are a stream of little-endian 32-bit words.
	buf := make([]byte, 4*len(words))
	for i, w := range words {
		binary.LittleEndian.PutUint32(buf[4*i:], w)
	}
	if err := os.WriteFile(*output, buf, 0o644); err != nil {
		log.Fatalf("Failed to write %s: %v", *output, err)
	}
	log.Printf("Compiled %s: %d words -> %s\n", *label, len(words), *output)
}
