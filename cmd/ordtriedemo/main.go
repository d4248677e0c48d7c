// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Command ordtriedemo exercises an ordtrie.Map with a random workload,
// logging a summary after the fill (size, trie shape, bounds) and after
// the erase pass (entries erased, size, memory estimate).
package main

import (
	"flag"
	"math/rand/v2"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/glennteitelbaum/ordtrie"
)

func main() {
	count := flag.Int("n", 200_000, "number of keys to insert")
	seed := flag.Uint64("seed", 42, "PRNG seed")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger()

	prng := rand.New(rand.NewPCG(*seed, *seed))

	m := new(ordtrie.Map[uint32, int])

	ts := time.Now()
	for i := 0; i < *count; i++ {
		k := prng.Uint32()
		m.InsertOrAssign(k, i)
	}
	log.Info().Dur("elapsed", time.Since(ts)).Int("size", m.Len()).Msg("random fill complete")

	stats := m.Stats()
	log.Info().
		Int("entries", stats.Entries).
		Int("bitmaskNodes", stats.BitmaskNodes).
		Int("compactLeaves", stats.CompactLeaves).
		Int("bitmapLeaves", stats.BitmapLeaves).
		Int("maxDepth", stats.MaxDepth).
		Int("skipBytesTotal", stats.SkipBytesTotal).
		Msg("trie shape")

	minK, _, _ := m.Min()
	maxK, _, _ := m.Max()
	log.Info().Uint32("min", minK).Uint32("max", maxK).Msg("bounds")

	erased := 0
	for i := 0; i < *count/2; i++ {
		k := prng.Uint32()
		if m.Erase(k) {
			erased++
		}
	}
	log.Info().Int("erased", erased).Int("sizeAfter", m.Len()).
		Uint64("memBytes", uint64(m.MemoryUsage())).
		Msg("random erase complete")
}
