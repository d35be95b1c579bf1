// Package main provides the CLI entrypoint for cdecl-generator.
//
// cdecl-generator reads preprocessed C header text with cdecl_* markers,
// resolves each tagged symbol against the parsed declarations, and prints
// machine-accurate C declarations suitable for an FFI cdef block:
//   - Parses the header subset (typedefs, aggregates, variables, prototypes)
//   - Composes declarator syntax with correct pointer/array/function precedence
//   - Optionally renames symbols via a YAML override table, pinning the
//     original link-time symbol with an assembler label
package main

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"cdecl-generator/internal/extract"
	"cdecl-generator/internal/header"
	"cdecl-generator/internal/overrides"
	"cdecl-generator/options"
)

var categoryNames = map[string]options.CategoryEnum{
	"type":   options.CategoryType,
	"struct": options.CategoryStruct,
	"union":  options.CategoryUnion,
	"enum":   options.CategoryEnumeration,
	"var":    options.CategoryVariable,
	"func":   options.CategoryFunction,
	"const":  options.CategoryConstant,
}

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger()

	flags := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	flags.SortFlags = false
	headerPath := flags.String("header", "", "path to preprocessed C header with cdecl_* markers")
	overridesPath := flags.String("overrides", "", "path to YAML name-override table")
	outputPath := flags.String("output", "", "output file (default stdout)")
	categories := flags.StringSlice("categories", nil,
		"marker categories to extract: type,struct,union,enum,var,func,const (default all)")
	verbose := flags.Bool("verbose", false, "enable debug logging")

	if err := flags.Parse(os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("could not parse options")
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if *headerPath == "" {
		log.Fatal().Msg("--header is required")
	}

	selected := options.CategoryAll
	if len(*categories) > 0 {
		selected = options.CategoryNone
		for _, name := range *categories {
			c, ok := categoryNames[strings.TrimSpace(name)]
			if !ok {
				log.Fatal().Str("category", name).Msg("unknown category")
			}
			selected |= c
		}
	}

	data, err := os.ReadFile(*headerPath)
	if err != nil {
		log.Fatal().Err(err).Str("header", *headerPath).Msg("could not read header")
	}

	table, err := header.Parse(string(data))
	if err != nil {
		log.Fatal().Err(err).Str("header", *headerPath).Msg("could not parse header")
	}
	log.Debug().Int("symbols", len(table.Symbols)).Msg("header parsed")

	var ov overrides.Map
	if *overridesPath != "" {
		ov, err = overrides.LoadFile(*overridesPath)
		if err != nil {
			log.Fatal().Err(err).Str("overrides", *overridesPath).Msg("could not load overrides")
		}
		log.Debug().Int("overrides", len(ov)).Msg("overrides loaded")
	}

	decls, err := extract.New(table, ov, selected).Run()
	if err != nil {
		log.Fatal().Err(err).Msg("extraction failed")
	}

	var sb strings.Builder
	for _, d := range decls {
		sb.WriteString(d.Text)
		sb.WriteString(";\n")
	}

	if *outputPath == "" {
		os.Stdout.WriteString(sb.String())
		return
	}

	if err := os.WriteFile(*outputPath, []byte(sb.String()), 0644); err != nil {
		log.Fatal().Err(err).Str("output", *outputPath).Msg("could not write output")
	}
	log.Info().Str("output", *outputPath).Int("declarations", len(decls)).Msg("generated")
}
