package dictionary

import (
	_ "embed"
	"bufio"
	"strconv"
	"strings"

	"github.com/chewing/gochewing/internal/zhuyin"
)

//go:embed seed.txt
var seedData string

// LoadSeed parses the embedded seed dictionary into the keyed-entry shape
// NewReadOnlyMapDict expects. Each non-blank, non-comment line is
// "phrase freq zhuyin1,zhuyin2,...", phrase possibly repeated across
// lines for distinct readings.
func LoadSeed() map[string][]Phrase {
	return parseSeed(seedData)
}

// ParseSeedText parses a user-supplied dictionary file in the same
// "phrase freq zhuyin1,zhuyin2,..." line format as the embedded seed
// dictionary, for chewing-cli's "dict import" subcommand.
func ParseSeedText(data string) map[string][]Phrase {
	return parseSeed(data)
}

func parseSeed(data string) map[string][]Phrase {
	out := make(map[string][]Phrase)
	sc := bufio.NewScanner(strings.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			continue
		}
		freq, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil {
			continue
		}
		var syls []zhuyin.Syllable
		valid := true
		for _, spelling := range strings.Split(fields[2], ",") {
			s, err := zhuyin.ParseString(spelling)
			if err != nil {
				valid = false
				break
			}
			syls = append(syls, s)
		}
		if !valid {
			continue
		}
		k := key(syls)
		out[k] = append(out[k], Phrase{Text: fields[0], Freq: uint32(freq)})
	}
	return out
}
