// Package conversion turns a composition buffer into one or more
// candidate sequences of phrase intervals, scored by phrase frequency and
// a learned per-length prior so that, all else equal, fewer, longer
// phrases are preferred over many short ones.
package conversion

import (
	"container/heap"
	"math"

	"github.com/chewing/gochewing/internal/composition"
	"github.com/chewing/gochewing/internal/dictionary"
	"github.com/chewing/gochewing/internal/zhuyin"
)

// lengthPrior is a fixed empirical log-prior over phrase length in
// syllables, carried over unmodified from the reference segmentation
// model: two-syllable phrases get the highest prior, one-, three- and
// four-syllable phrases a lower one, five a much lower one, and every
// length from six on shares lengthPriorLong.
var lengthPrior = map[int]float64{
	1: -1.5204,
	2: -0.4237,
	3: -1.4558,
	4: -1.6178,
	5: -4.4258,
}

const lengthPriorLong = -4.7874

func priorFor(syllableLen int) float64 {
	if p, ok := lengthPrior[syllableLen]; ok {
		return p
	}
	return lengthPriorLong
}

// DefaultK is the number of alternative segmentations Yen's algorithm
// computes; the editor's "next conversion" cycles through them.
const DefaultK = 100

// freqScale (Z in the reference model) rescales raw frequencies before
// the log so that edge cost stays in a small, comparable range
// regardless of how many edges a segmentation uses.
const freqScale = 1e9

// forcedEdgeCost is far below any frequency-derived edge cost, so
// Dijkstra/Yen's always routes through a user-forced selection edge
// rather than around it.
const forcedEdgeCost = -1000

func clampFreq(freq uint32) float64 {
	f := float64(freq)
	switch {
	case f < 1:
		return 1
	case f > 9999999:
		return 9999999
	default:
		return f
	}
}

func edgeCost(freq uint32, syllableLen int) float64 {
	return -(math.Log(clampFreq(freq)/freqScale) + priorFor(syllableLen))
}

// edge is one candidate phrase spanning [Start, End) in the composition
// buffer.
type edge struct {
	Start, End int
	Text       string
	Cost       float64
}

// buildEdges enumerates every phrase (and, for symbols with no match, the
// single passthrough symbol) that could plausibly span some range of the
// composition buffer, never crossing a Break gap and never partially
// overlapping a user-forced selection. Every selection is additionally
// injected as a forced, artificially cheap edge so the search always
// routes through it verbatim.
func buildEdges(com *composition.Composition, dict dictionary.Dictionary, strategy dictionary.LookupStrategy) []edge {
	n := com.Len()
	var edges []edge
	selections := com.Selections()

	crossesBreak := func(start, end int) bool {
		for i := start + 1; i < end; i++ {
			if gap, ok := com.Gap(i); ok && gap == composition.GapBreak {
				return true
			}
		}
		return false
	}
	// overlapsSelection reports whether [start,end) can't be offered as a
	// normal dictionary/char edge because a forced selection claims any
	// part of it -- including an exact-span match, which is instead
	// represented solely by the forced edge appended below, so a
	// selection's text is the only text ever available across its span.
	overlapsSelection := func(start, end int) bool {
		for _, sel := range selections {
			if sel.IntersectRange(start, end) {
				return true
			}
		}
		return false
	}

	for start := 0; start < n; start++ {
		sym, _ := com.Symbol(start)
		if sym.IsChar() {
			if !overlapsSelection(start, start+1) {
				r, _ := sym.Char()
				edges = append(edges, edge{Start: start, End: start + 1, Text: string(r), Cost: edgeCost(1, 1)})
			}
			continue
		}
		matchedAny := false
		for end := start + 1; end <= n; end++ {
			if crossesBreak(start, end) {
				break
			}
			syls, ok := syllablesInRange(com, start, end)
			if !ok {
				break
			}
			if overlapsSelection(start, end) {
				continue
			}
			phrases := dict.Lookup(syls, strategy)
			for _, p := range phrases {
				matchedAny = true
				edges = append(edges, edge{Start: start, End: end, Text: p.Text, Cost: edgeCost(p.Freq, end-start)})
			}
		}
		if !matchedAny && !overlapsSelection(start, start+1) {
			s, _ := sym.Syllable()
			edges = append(edges, edge{Start: start, End: start + 1, Text: s.String(), Cost: edgeCost(1, 1)})
		}
	}

	for _, sel := range selections {
		edges = append(edges, edge{Start: sel.Start, End: sel.End, Text: sel.Text, Cost: forcedEdgeCost})
	}
	return edges
}

func syllablesInRange(com *composition.Composition, start, end int) ([]zhuyin.Syllable, bool) {
	syls := make([]zhuyin.Syllable, 0, end-start)
	for i := start; i < end; i++ {
		sym, ok := com.Symbol(i)
		if !ok {
			return nil, false
		}
		s, ok := sym.Syllable()
		if !ok {
			return nil, false
		}
		syls = append(syls, s)
	}
	return syls, true
}

// Path is one complete segmentation of the composition buffer.
type Path struct {
	Intervals []composition.Interval
	Cost      float64
}

// Engine segments a composition buffer into one or more scored Paths.
type Engine interface {
	Convert(com *composition.Composition, dict dictionary.Dictionary) []Path
}

// ChewingEngine finds the K lowest-cost segmentations of the buffer via
// Dijkstra for the single shortest path, then Yen's algorithm to recover
// the next K-1 loopless alternatives.
type ChewingEngine struct {
	K int
	// Strategy is the dictionary lookup strategy edge enumeration uses;
	// the zero value behaves as dictionary.Standard.
	Strategy dictionary.LookupStrategy
}

// NewChewingEngine returns an engine producing up to DefaultK paths using
// exact dictionary lookups.
func NewChewingEngine() *ChewingEngine {
	return &ChewingEngine{K: DefaultK, Strategy: dictionary.Standard}
}

func (e *ChewingEngine) Convert(com *composition.Composition, dict dictionary.Dictionary) []Path {
	k := e.K
	if k <= 0 {
		k = DefaultK
	}
	n := com.Len()
	if n == 0 {
		return nil
	}
	edges := buildEdges(com, dict, e.Strategy)
	byStart := make(map[int][]edge, n)
	for _, ed := range edges {
		byStart[ed.Start] = append(byStart[ed.Start], ed)
	}
	paths := yenKShortest(n, byStart, k)
	return applyGlue(com, paths)
}

// FuzzyChewingEngine behaves exactly like ChewingEngine except that edge
// enumeration looks phrases up with dictionary.FuzzyPartialPrefix,
// tolerating a missing medial/rime/tone on any one syllable of the
// composition. Selected via the conversion_engine=Fuzzy ABI option.
type FuzzyChewingEngine struct {
	ChewingEngine
}

// NewFuzzyChewingEngine returns a ChewingEngine variant using fuzzy
// dictionary lookups.
func NewFuzzyChewingEngine() *FuzzyChewingEngine {
	return &FuzzyChewingEngine{ChewingEngine{K: DefaultK, Strategy: dictionary.FuzzyPartialPrefix}}
}

// SimpleEngine skips the DAG/Yen's search entirely: it emits one interval
// per symbol using the first dictionary phrase for each syllable (or the
// raw char), then overlays any existing user selections. Selected via
// the conversion_engine=Simple ABI option.
type SimpleEngine struct{}

// NewSimpleEngine returns a SimpleEngine.
func NewSimpleEngine() *SimpleEngine { return &SimpleEngine{} }

func (e *SimpleEngine) Convert(com *composition.Composition, dict dictionary.Dictionary) []Path {
	n := com.Len()
	if n == 0 {
		return nil
	}
	intervals := make([]composition.Interval, 0, n)
	for i := 0; i < n; i++ {
		sym, _ := com.Symbol(i)
		if r, ok := sym.Char(); ok {
			intervals = append(intervals, composition.Interval{Start: i, End: i + 1, Text: string(r)})
			continue
		}
		s, _ := sym.Syllable()
		text := s.String()
		if phrases := dict.Lookup([]zhuyin.Syllable{s}, dictionary.Standard); len(phrases) > 0 {
			text = phrases[0].Text
		}
		intervals = append(intervals, composition.Interval{Start: i, End: i + 1, Text: text})
	}
	return []Path{{Intervals: overlaySelections(com, intervals)}}
}

// overlaySelections replaces every run of per-symbol intervals covered by
// a user selection with a single interval carrying the selection's text.
func overlaySelections(com *composition.Composition, intervals []composition.Interval) []composition.Interval {
	sels := com.Selections()
	if len(sels) == 0 {
		return intervals
	}
	out := make([]composition.Interval, 0, len(intervals))
	i := 0
	for i < len(intervals) {
		forced := false
		for _, sel := range sels {
			if intervals[i].Start != sel.Start {
				continue
			}
			out = append(out, composition.Interval{Start: sel.Start, End: sel.End, IsPhrase: true, Text: sel.Text})
			for i < len(intervals) && intervals[i].End <= sel.End {
				i++
			}
			forced = true
			break
		}
		if !forced {
			out = append(out, intervals[i])
			i++
		}
	}
	return out
}

// applyGlue merges, within each path, any two consecutive intervals that
// straddle a Glue gap into a single concatenated interval.
func applyGlue(com *composition.Composition, paths []Path) []Path {
	for i := range paths {
		paths[i].Intervals = mergeGlue(com, paths[i].Intervals)
	}
	return paths
}

func mergeGlue(com *composition.Composition, intervals []composition.Interval) []composition.Interval {
	if len(intervals) == 0 {
		return intervals
	}
	out := make([]composition.Interval, 0, len(intervals))
	cur := intervals[0]
	for _, next := range intervals[1:] {
		if gap, ok := com.Gap(cur.End); ok && gap == composition.GapGlue {
			cur = composition.Interval{Start: cur.Start, End: next.End, IsPhrase: true, Text: cur.Text + next.Text}
			continue
		}
		out = append(out, cur)
		cur = next
	}
	return append(out, cur)
}

// edgeHeapItem is one frontier node for Dijkstra's single-source shortest
// path search, tracking the edge path taken to reach it.
type edgeHeapItem struct {
	node int
	cost float64
	path []edge
}

type edgeHeap []*edgeHeapItem

func (h edgeHeap) Len() int            { return len(h) }
func (h edgeHeap) Less(i, j int) bool  { return h[i].cost < h[j].cost }
func (h edgeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *edgeHeap) Push(x interface{}) { *h = append(*h, x.(*edgeHeapItem)) }
func (h *edgeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// dijkstraFrom finds the lowest-cost path from start to n, excluding any
// edge in banned and any node in bannedNodes (used by Yen's algorithm to
// force loopless alternatives).
func dijkstraFrom(n int, byStart map[int][]edge, start int, banned map[edge]bool, bannedNodes map[int]bool) []edge {
	h := &edgeHeap{}
	heap.Init(h)
	heap.Push(h, &edgeHeapItem{node: start, cost: 0})
	best := make(map[int]float64)
	best[start] = 0

	for h.Len() > 0 {
		cur := heap.Pop(h).(*edgeHeapItem)
		if cur.node == n {
			return cur.path
		}
		if c, ok := best[cur.node]; ok && cur.cost > c {
			continue
		}
		for _, ed := range byStart[cur.node] {
			if banned[ed] || bannedNodes[ed.End] {
				continue
			}
			newCost := cur.cost + ed.Cost
			if c, ok := best[ed.End]; !ok || newCost < c {
				best[ed.End] = newCost
				path := append(append([]edge{}, cur.path...), ed)
				heap.Push(h, &edgeHeapItem{node: ed.End, cost: newCost, path: path})
			}
		}
	}
	return nil
}

func pathCost(path []edge) float64 {
	var c float64
	for _, e := range path {
		c += e.Cost
	}
	return c
}

// yenKShortest implements Yen's algorithm for the K loopless shortest
// paths from node 0 to node n over the edge-list graph in byStart.
func yenKShortest(n int, byStart map[int][]edge, k int) []Path {
	first := dijkstraFrom(n, byStart, 0, nil, nil)
	if first == nil {
		return nil
	}
	paths := [][]edge{first}
	var candidates [][]edge

	for len(paths) < k {
		lastPath := paths[len(paths)-1]
		for i := 0; i < len(lastPath); i++ {
			spurNode := lastPath[i].Start
			rootPath := append([]edge{}, lastPath[:i]...)

			banned := make(map[edge]bool)
			for _, p := range paths {
				if len(p) > i && sameRoot(p[:i], rootPath) {
					banned[p[i]] = true
				}
			}
			bannedNodes := make(map[int]bool)
			for _, re := range rootPath {
				if re.Start != spurNode {
					bannedNodes[re.Start] = true
				}
			}

			spurPath := dijkstraFrom(n, byStart, spurNode, banned, bannedNodes)
			if spurPath == nil {
				continue
			}
			total := append(append([]edge{}, rootPath...), spurPath...)
			if !containsPath(candidates, total) && !containsPath(paths, total) {
				candidates = append(candidates, total)
			}
		}
		if len(candidates) == 0 {
			break
		}
		bestIdx := 0
		bestCost := pathCost(candidates[0])
		for i := 1; i < len(candidates); i++ {
			if c := pathCost(candidates[i]); c < bestCost {
				bestCost, bestIdx = c, i
			}
		}
		paths = append(paths, candidates[bestIdx])
		candidates = append(candidates[:bestIdx], candidates[bestIdx+1:]...)
	}

	out := make([]Path, len(paths))
	for i, p := range paths {
		out[i].Cost = pathCost(p)
	}
	return attachIntervals(paths, out)
}

func attachIntervals(paths [][]edge, out []Path) []Path {
	for i, p := range paths {
		out[i].Intervals = make([]composition.Interval, len(p))
		for j, e := range p {
			out[i].Intervals[j] = composition.Interval{Start: e.Start, End: e.End, IsPhrase: e.End-e.Start > 1, Text: e.Text}
		}
	}
	return out
}

func sameRoot(a, b []edge) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func containsPath(paths [][]edge, p []edge) bool {
	for _, existing := range paths {
		if sameRoot(existing, p) {
			return true
		}
	}
	return false
}
