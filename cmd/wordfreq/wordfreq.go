// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/btcsuite/collections/internal/log"
	"github.com/btcsuite/collections/ordmap"
	"github.com/btcsuite/collections/timer"
	"github.com/decred/dcrd/lru"
)

var wfrqLog = log.WfrqLog

// wordCount is the number of occurrences of a distinct word.
type wordCount struct {
	word  string
	count int
}

// compareRank orders word counts by decreasing count, then alphabetically.
func compareRank(a, b *wordCount) int {
	if c := cmp.Compare(b.count, a.count); c != 0 {
		return c
	}
	return strings.Compare(a.word, b.word)
}

// normalizeWord lowercases word and strips the punctuation around it.
func normalizeWord(word string) string {
	word = strings.TrimFunc(word, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	return strings.ToLower(word)
}

// readWords inserts every word read from r into words.  Reading stops early,
// between two words, once stop is closed.  It returns the number of words
// inserted.
func readWords(r io.Reader, words *ordmap.Map[string, string],
	stop <-chan struct{}) (int, error) {

	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	var n int
	for scanner.Scan() {
		if interruptRequested(stop) {
			break
		}
		word := normalizeWord(scanner.Text())
		if word == "" {
			continue
		}
		if err := words.Insert(word); err != nil {
			return n, err
		}
		n++
	}
	return n, scanner.Err()
}

// countWords returns a map holding one entry per distinct word of words.
func countWords(words *ordmap.Map[string, string]) (*ordmap.Map[*wordCount, string], error) {
	counts, err := ordmap.New(&ordmap.Config[*wordCount, string]{
		Key:     func(wc *wordCount) string { return wc.word },
		Compare: strings.Compare,
		Unique:  true,
	})
	if err != nil {
		return nil, err
	}

	// Equal words are adjacent in a sorted traversal.
	var last *wordCount
	words.Traverse(func(word string) ordmap.Verdict {
		if last != nil && last.word == word {
			last.count++
			return ordmap.Continue
		}
		last = &wordCount{word: word, count: 1}
		if err = counts.Insert(last); err != nil {
			return ordmap.Stop
		}
		return ordmap.Continue
	}, nil)
	if err != nil {
		return nil, err
	}
	return counts, nil
}

// rankWords moves every entry of counts into a new map ordered by decreasing
// count.  counts is left empty.
func rankWords(counts *ordmap.Map[*wordCount, string]) (*ordmap.Map[*wordCount, *wordCount], error) {
	ranking, err := ordmap.New(&ordmap.Config[*wordCount, *wordCount]{
		Compare: compareRank,
		Unique:  true,
	})
	if err != nil {
		return nil, err
	}

	size := counts.Size()
	if moved := counts.Traverse(ordmap.MoveTo(ranking), nil); moved != size {
		return nil, fmt.Errorf("ranked %d of %d words", moved, size)
	}
	return ranking, nil
}

// report writes the top ranked words, every word when top is 0, followed by
// the number of occurrences of each distinct looked up word.
func report(w io.Writer, words *ordmap.Map[string, string],
	ranking *ordmap.Map[*wordCount, *wordCount], top int,
	lookups []string) error {

	bw := bufio.NewWriter(w)
	var shown int
	ranking.Traverse(func(wc *wordCount) ordmap.Verdict {
		fmt.Fprintf(bw, "%7d %s\n", wc.count, wc.word)
		shown++
		if top > 0 && shown >= top {
			return ordmap.Stop
		}
		return ordmap.Continue
	}, nil)

	// Each distinct word is reported once.
	seen := lru.NewCache(uint(len(lookups)))
	for _, lookup := range lookups {
		word := normalizeWord(lookup)
		if seen.Contains(word) {
			continue
		}
		seen.Add(word)

		n, err := words.FindByKey(word, nil)
		if err != nil {
			return err
		}
		fmt.Fprintf(bw, "%s: %d %s\n", word, n,
			log.PickNoun(uint64(n), "occurrence", "occurrences"))
	}
	return bw.Flush()
}

// readInputs reads the files named by paths, or stdin when there are none,
// into words.
func readInputs(paths []string, words *ordmap.Map[string, string],
	stop <-chan struct{}) error {

	if len(paths) == 0 {
		n, err := readWords(os.Stdin, words, stop)
		wfrqLog.Debugf("Read %d words from stdin", n)
		return err
	}

	for _, path := range paths {
		if interruptRequested(stop) {
			return nil
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		n, err := readWords(f, words, stop)
		f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		wfrqLog.Debugf("Read %d words from %s", n, path)
	}
	return nil
}

// wordfreqMain is the real main function for wordfreq.  It is necessary to
// work around the fact that deferred functions do not run when os.Exit() is
// called.
func wordfreqMain() error {
	cfg, paths, err := loadConfig(os.Args[1:])
	if err != nil {
		return err
	}
	defer func() {
		if log.LogRotator != nil {
			log.LogRotator.Close()
		}
	}()

	// Reading stops on an interrupt signal or when the timeout elapses.
	stop, requestStop := interruptListener()
	defer requestStop()
	if cfg.Timeout > 0 {
		deadline := timer.DeadlineFromDelay(cfg.Timeout)
		t, err := timer.Schedule(deadline, func(any) {
			wfrqLog.Warnf("Timeout of %vs elapsed, reporting the "+
				"words read so far", cfg.Timeout)
			requestStop()
		}, nil)
		if err != nil {
			return err
		}
		defer timer.Shutdown()
		defer timer.Cancel(t)
	}

	words, err := ordmap.NewSorted(strings.Compare, false)
	if err != nil {
		return err
	}
	if err := readInputs(paths, words, stop); err != nil {
		wfrqLog.Errorf("Unable to read input: %v", err)
		return err
	}
	wfrqLog.Infof("Read %d words, tree height %d after %d rebalancing "+
		"operations", words.Size(), words.Height(), words.Rebalances())

	counts, err := countWords(words)
	if err != nil {
		return err
	}
	wfrqLog.Infof("Found %d distinct %s", counts.Size(),
		log.PickNoun(uint64(counts.Size()), "word", "words"))
	ranking, err := rankWords(counts)
	if err != nil {
		return err
	}
	if err := counts.Close(); err != nil {
		return err
	}

	if err := report(os.Stdout, words, ranking, cfg.Top, cfg.Lookup); err != nil {
		return err
	}

	words.Traverse(ordmap.RemoveAll[string](nil), nil)
	ranking.Traverse(ordmap.RemoveAll[*wordCount](nil), nil)
	if err := words.Close(); err != nil {
		return err
	}
	return ranking.Close()
}

func main() {
	if err := wordfreqMain(); err != nil {
		if err == errShowOnly {
			return
		}
		os.Exit(1)
	}
}
