package detect

import (
	"sort"

	"github.com/suryansh-23/txguard/internal/types"
)

// Finding is a detected secret span inside a text.
type Finding struct {
	Kind  types.SecretKind
	Rule  string
	Start int
	End   int
}

// Marker returns the replacement marker for the finding.
func (f Finding) Marker() string {
	return markerFor(f.Kind)
}

// Scan reports every secret span in text, resolving overlaps so the returned
// findings are sorted and disjoint. It does not truncate; callers scanning
// untrusted text should bound its length first.
func Scan(text string) []Finding {
	var candidates []Finding
	for _, idx := range PrivateKeyPattern.FindAllStringIndex(text, -1) {
		candidates = append(candidates, Finding{Kind: types.SecretPrivateKey, Rule: "hex_private_key", Start: idx[0], End: idx[1]})
	}
	for _, rule := range apiKeyRules {
		for _, idx := range rule.Re.FindAllStringIndex(text, -1) {
			candidates = append(candidates, Finding{Kind: types.SecretAPIKey, Rule: rule.Name, Start: idx[0], End: idx[1]})
		}
	}
	candidates = append(candidates, mnemonicSpans(text)...)
	if len(candidates) == 0 {
		return nil
	}
	return resolveOverlaps(candidates)
}

// MnemonicSpans returns the quoted and labelled spans of text whose content
// passes IsMnemonicPhrase. Quoted spans include their quotes; labelled spans
// cover only the phrase.
func MnemonicSpans(text string) []Finding {
	return mnemonicSpans(text)
}

func mnemonicSpans(text string) []Finding {
	var out []Finding
	for _, idx := range QuotedMnemonicPattern.FindAllStringSubmatchIndex(text, -1) {
		start, end := captureBounds(idx, 1)
		if start < 0 {
			start, end = captureBounds(idx, 2)
		}
		if start < 0 || !IsMnemonicPhrase(text[start:end]) {
			continue
		}
		out = append(out, Finding{Kind: types.SecretMnemonic, Rule: "quoted_mnemonic", Start: idx[0], End: idx[1]})
	}
	for _, label := range MnemonicLabelPattern.FindAllStringIndex(text, -1) {
		run := labeledRunPattern.FindString(text[label[1]:])
		if run == "" {
			continue
		}
		start, end, ok := phraseWindow(run)
		if !ok {
			continue
		}
		start += label[1]
		end += label[1]
		if overlapsAny(out, start, end) {
			continue
		}
		out = append(out, Finding{Kind: types.SecretMnemonic, Rule: "labeled_mnemonic", Start: start, End: end})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

// phraseWindow returns the byte range of the mnemonic at the start of run.
// The longest leading window of 11 to 24 words that passes IsMnemonicPhrase
// wins; trailing words outside the wordlist are then dropped when the rest
// still passes, so prose after the phrase survives.
func phraseWindow(run string) (int, int, bool) {
	var bounds [][2]int
	for i := 0; i < len(run); {
		for i < len(run) && run[i] == ' ' {
			i++
		}
		j := i
		for j < len(run) && run[j] != ' ' {
			j++
		}
		if j > i {
			bounds = append(bounds, [2]int{i, j})
		}
		i = j
	}
	for n := min(len(bounds), MaxMnemonicWords); n >= MinMnemonicWords; n-- {
		start, end := bounds[0][0], bounds[n-1][1]
		if !IsMnemonicPhrase(run[start:end]) {
			continue
		}
		k := n
		for k > 1 && !IsWordlistWord(run[bounds[k-1][0]:bounds[k-1][1]]) {
			k--
		}
		if k < n && IsMnemonicPhrase(run[start:bounds[k-1][1]]) {
			end = bounds[k-1][1]
		}
		return start, end, true
	}
	return 0, 0, false
}

func overlapsAny(spans []Finding, start, end int) bool {
	for _, s := range spans {
		if start < s.End && s.Start < end {
			return true
		}
	}
	return false
}

func captureBounds(submatches []int, group int) (int, int) {
	idx := group * 2
	if group < 0 || idx+1 >= len(submatches) {
		return -1, -1
	}
	return submatches[idx], submatches[idx+1]
}

func resolveOverlaps(candidates []Finding) []Finding {
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Start == candidates[j].Start {
			return candidates[i].End > candidates[j].End
		}
		return candidates[i].Start < candidates[j].Start
	})
	var out []Finding
	for _, cand := range candidates {
		if len(out) == 0 {
			out = append(out, cand)
			continue
		}
		last := out[len(out)-1]
		if cand.Start >= last.End {
			out = append(out, cand)
			continue
		}
		if betterFinding(cand, last) {
			out[len(out)-1] = cand
		}
	}
	return out
}

// betterFinding prefers the higher-priority kind, then the longer span.
func betterFinding(a, b Finding) bool {
	if pa, pb := kindPriority(a.Kind), kindPriority(b.Kind); pa != pb {
		return pa > pb
	}
	return a.End-a.Start > b.End-b.Start
}

// kindPriority mirrors redaction order: keys first, then API keys.
func kindPriority(kind types.SecretKind) int {
	switch kind {
	case types.SecretPrivateKey:
		return 3
	case types.SecretAPIKey:
		return 2
	case types.SecretMnemonic:
		return 1
	default:
		return 0
	}
}
