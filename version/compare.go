package version

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Compare orders two major.minor.patch strings: 1 if a > b, -1 if a < b and 0 otherwise.
// A leading "v" and any pre-release suffix are ignored.
func Compare(a, b string) (int, error) {
	type semver struct {
		major, minor, patch int
	}

	parse := func(s string) (semver, error) {
		var v semver
		s = strings.TrimPrefix(s, "v")
		s, _, _ = strings.Cut(s, "-")
		_, err := fmt.Sscanf(s, "%d.%d.%d", &v.major, &v.minor, &v.patch)
		if err != nil {
			return v, fmt.Errorf("malformed version %q: %w", s, err)
		}
		return v, nil
	}

	av, err := parse(a)
	if err != nil {
		return 0, err
	}
	bv, err := parse(b)
	if err != nil {
		return 0, err
	}

	for _, pair := range []lo.Tuple2[int, int]{
		{A: av.major, B: bv.major},
		{A: av.minor, B: bv.minor},
		{A: av.patch, B: bv.patch},
	} {
		if pair.A > pair.B {
			return 1, nil
		}
		if pair.A < pair.B {
			return -1, nil
		}
	}

	return 0, nil
}
