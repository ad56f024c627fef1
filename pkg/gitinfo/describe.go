package gitinfo

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const dirtySuffix = "-dirty"

// Describe is the parsed output of git describe.
type Describe struct {
	Tag      string // nearest reachable tag
	Distance int    // commits between Tag and HEAD, 0 when HEAD is tagged
	Hash     string // abbreviated HEAD hash, empty when HEAD is tagged
	Dirty    bool   // working tree had local modifications
}

// String reassembles the describe output.
func (d Describe) String() string {
	var b strings.Builder

	b.WriteString(d.Tag)

	if d.Distance > 0 {
		fmt.Fprintf(&b, "-%d-g%s", d.Distance, d.Hash)
	}

	if d.Dirty {
		b.WriteString(dirtySuffix)
	}

	return b.String()
}

// Exact reports whether HEAD is the tagged commit itself.
func (d Describe) Exact() bool { return d.Distance == 0 }

// ParseDescribe parses git describe output of the form
// "<tag>[-<distance>-g<hash>][-dirty]".
//
// Tags may contain dashes themselves ("v1.0.0-rc.1"), so the suffix is only
// recognised when both distance and hash are well-formed.
func ParseDescribe(s string) (Describe, error) {
	var d Describe

	s = strings.TrimSpace(s)
	if s == "" {
		return d, errors.New("gitinfo: empty describe output")
	}

	if rest, ok := strings.CutSuffix(s, dirtySuffix); ok {
		d.Dirty = true
		s = rest
	}

	d.Tag = s

	hashAt := strings.LastIndex(s, "-g")
	if hashAt <= 0 {
		return validTag(d)
	}

	hash := s[hashAt+2:]
	if !isHex(hash) {
		return validTag(d)
	}

	distAt := strings.LastIndex(s[:hashAt], "-")
	if distAt <= 0 {
		return validTag(d)
	}

	dist, err := strconv.Atoi(s[distAt+1 : hashAt])
	if err != nil || dist <= 0 {
		return validTag(d)
	}

	d.Tag = s[:distAt]
	d.Distance = dist
	d.Hash = hash

	return d, nil
}

func validTag(d Describe) (Describe, error) {
	if d.Tag == "" {
		return Describe{}, errors.New("gitinfo: describe output has no tag")
	}

	return d, nil
}

func isHex(s string) bool {
	if len(s) < 4 {
		return false
	}

	for _, r := range s {
		if !strings.ContainsRune("0123456789abcdef", r) {
			return false
		}
	}

	return true
}
